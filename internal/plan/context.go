package plan

import (
	"fmt"
	"strings"
)

// feedbackContextLimit caps how many past lessons feed a generation request.
const feedbackContextLimit = 5

const noneRecorded = "None recorded."

// BuildFeedbackContext summarizes the most recent lessons that carry
// feedback into a plain-text block for the generation prompt. At most
// five lessons are included, ordered oldest first so the most recent
// feedback sits closest to the generation instruction. Returns the empty
// string when no lesson qualifies.
func BuildFeedbackContext(c Collection) string {
	recent := WithFeedback(c)
	if len(recent) == 0 {
		return ""
	}
	if len(recent) > feedbackContextLimit {
		recent = recent[:feedbackContextLimit]
	}

	var b strings.Builder
	// WithFeedback returns newest first; walk backwards for oldest-first.
	for i := len(recent) - 1; i >= 0; i-- {
		l := recent[i]
		b.WriteString("---\n")
		b.WriteString(fmt.Sprintf("### Class feedback: %q (%s)\n", l.Title, l.ClassDate))
		b.WriteString(fmt.Sprintf("- Positive points: %s\n", orPlaceholder(l.Feedback.Positive)))
		b.WriteString(fmt.Sprintf("- Points to improve: %s\n", orPlaceholder(l.Feedback.Improvement)))
		b.WriteString(fmt.Sprintf("- New ideas: %s\n", orPlaceholder(l.Feedback.Ideas)))
		b.WriteString("---\n")
	}
	return b.String()
}

// BuildContinuationContext carries a continuation prompt forward, sourced
// from a prior lesson's suggestion or from analyzed document text. No
// transformation beyond trimming.
func BuildContinuationContext(sourceText string) string {
	return strings.TrimSpace(sourceText)
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return noneRecorded
	}
	return s
}
