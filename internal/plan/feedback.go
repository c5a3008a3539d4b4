package plan

import "sort"

// WithFeedback filters the collection to lessons where at least one
// feedback field is filled in, sorted by class date descending. The sort
// is stable so lessons on the same date keep their original relative order.
func WithFeedback(c Collection) []Lesson {
	out := make([]Lesson, 0, len(c))
	for _, l := range c {
		if l.Feedback.HasContent() {
			out = append(out, l)
		}
	}
	// ISO dates compare correctly as strings.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ClassDate > out[j].ClassDate
	})
	return out
}
