package plan

import (
	"fmt"
	"strings"
	"testing"
)

func lessonWithFeedback(id, date, positive string) Lesson {
	l := validLesson(id)
	l.ClassDate = date
	l.Feedback = Feedback{Positive: positive}
	return l
}

func TestWithFeedback_FiltersAndSorts(t *testing.T) {
	c := Collection{
		lessonWithFeedback("a", "2026-01-10", "good pace"),
		validLesson("b"), // no feedback
		lessonWithFeedback("c", "2026-02-20", "great energy"),
		lessonWithFeedback("d", "2026-01-24", "kids engaged"),
	}

	got := WithFeedback(c)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantOrder := []string{"c", "d", "a"} // newest class first
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestBuildFeedbackContext_Empty(t *testing.T) {
	if got := BuildFeedbackContext(nil); got != "" {
		t.Errorf("empty collection produced %q", got)
	}
	if got := BuildFeedbackContext(Collection{validLesson("a")}); got != "" {
		t.Errorf("collection without feedback produced %q", got)
	}
}

func TestBuildFeedbackContext_LimitsToFiveNewest(t *testing.T) {
	var c Collection
	for i := 1; i <= 7; i++ {
		c = append(c, lessonWithFeedback(
			fmt.Sprintf("l%d", i),
			fmt.Sprintf("2026-01-%02d", i),
			fmt.Sprintf("note %d", i),
		))
	}

	got := BuildFeedbackContext(c)

	// The two oldest must be excluded.
	if strings.Contains(got, "note 1") || strings.Contains(got, "note 2") {
		t.Error("context includes feedback beyond the five most recent lessons")
	}
	for i := 3; i <= 7; i++ {
		if !strings.Contains(got, fmt.Sprintf("note %d", i)) {
			t.Errorf("context is missing note %d", i)
		}
	}

	// Within the window, oldest first.
	if strings.Index(got, "note 3") > strings.Index(got, "note 7") {
		t.Error("context is not ordered oldest first")
	}
}

func TestBuildFeedbackContext_Placeholders(t *testing.T) {
	l := validLesson("a")
	l.Feedback = Feedback{Positive: "strong start"}
	got := BuildFeedbackContext(Collection{l})

	if !strings.Contains(got, "strong start") {
		t.Error("filled field missing from context")
	}
	if strings.Count(got, "None recorded.") != 2 {
		t.Errorf("expected two placeholders for the empty fields, got:\n%s", got)
	}
}

func TestBuildContinuationContext_Trims(t *testing.T) {
	if got := BuildContinuationContext("  continue with knots \n"); got != "continue with knots" {
		t.Errorf("got %q", got)
	}
	if got := BuildContinuationContext("   "); got != "" {
		t.Errorf("whitespace-only input produced %q", got)
	}
}
