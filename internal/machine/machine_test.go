package machine

import (
	"errors"
	"testing"

	"github.com/ecarvalho/aulaplan/internal/plan"
)

func storedLesson(id string) plan.Lesson {
	return plan.Lesson{
		ID:             id,
		Title:          "Orientação noturna",
		TargetAudience: plan.AudienceJuvenile,
		Activities: []plan.Activity{
			{Time: "19:00", Activity: "Formatura", Description: "Chamada"},
		},
		NextClassSuggestion: "Revisar uso da bússola em trilha",
		ClassDate:           "2026-04-11",
	}
}

func fillDraft(t *testing.T, m *Machine) {
	t.Helper()
	d := m.Draft()
	if d == nil {
		t.Fatal("no draft open")
	}
	d.Lesson.Title = "Primeiros socorros"
	d.Lesson.ClassDate = "2026-05-02"
	d.Lesson.Activities = []plan.Activity{
		{Time: "19:00", Activity: "Teoria", Description: "Sinais vitais"},
	}
	d.Lesson.NextClassSuggestion = "Simular resgate em dupla"
}

func TestCreateSave_RaisesOneProposal(t *testing.T) {
	m := New(nil)
	if err := m.CreateNew(); err != nil {
		t.Fatal(err)
	}
	if m.Mode() != ModeCreating {
		t.Fatalf("mode = %v, want creating", m.Mode())
	}
	fillDraft(t, m)

	lesson, err := m.SaveDraft()
	if err != nil {
		t.Fatal(err)
	}
	if m.Mode() != ModeViewing {
		t.Fatalf("mode after save = %v, want viewing", m.Mode())
	}

	p := m.Proposal()
	if p == nil {
		t.Fatal("true creation did not raise a proposal")
	}
	if p.SourceID != lesson.ID {
		t.Errorf("proposal source = %q, want %q", p.SourceID, lesson.ID)
	}
	if p.Suggestion != "Simular resgate em dupla" {
		t.Errorf("proposal suggestion = %q", p.Suggestion)
	}
}

func TestEditSave_NeverRaisesProposal(t *testing.T) {
	m := New(plan.Collection{storedLesson("l1")})
	if err := m.SelectLesson("l1"); err != nil {
		t.Fatal(err)
	}
	if err := m.Edit(); err != nil {
		t.Fatal(err)
	}
	if m.Mode() != ModeEditing {
		t.Fatalf("mode = %v, want editing", m.Mode())
	}
	if !m.Draft().Editing {
		t.Error("draft seeded from a stored lesson should be marked editing")
	}

	m.Draft().Lesson.Title = "Orientação noturna (rev)"
	if _, err := m.SaveDraft(); err != nil {
		t.Fatal(err)
	}
	if m.Proposal() != nil {
		t.Error("edit-save raised a proposal")
	}

	got, ok := m.Viewing()
	if !ok || got.Title != "Orientação noturna (rev)" {
		t.Errorf("viewing %+v after edit-save", got)
	}
}

func TestSaveDraft_ValidatesBeforeCommit(t *testing.T) {
	m := New(nil)
	if err := m.CreateNew(); err != nil {
		t.Fatal(err)
	}
	// Draft left empty: title and activities missing.
	if _, err := m.SaveDraft(); err == nil {
		t.Fatal("expected validation error")
	}
	if m.Mode() != ModeCreating {
		t.Errorf("failed save changed mode to %v", m.Mode())
	}
	if len(m.Collection()) != 0 {
		t.Error("failed save mutated the collection")
	}
}

func TestUpdateFeedback_NoProposalNoModeChange(t *testing.T) {
	m := New(plan.Collection{storedLesson("l1")})
	if err := m.SelectLesson("l1"); err != nil {
		t.Fatal(err)
	}

	fb := plan.Feedback{Positive: "todos participaram"}
	if err := m.UpdateFeedback("l1", fb); err != nil {
		t.Fatal(err)
	}

	if m.Proposal() != nil {
		t.Error("feedback update raised a proposal")
	}
	if m.Mode() != ModeViewing {
		t.Errorf("feedback update changed mode to %v", m.Mode())
	}
	got, _ := m.Collection().FindByID("l1")
	if got.Feedback.Positive != "todos participaram" {
		t.Error("feedback not stored")
	}
	if !m.Dirty() {
		t.Error("feedback update should mark the collection dirty")
	}
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	m := New(plan.Collection{storedLesson("l1")})
	if err := m.SelectLesson("l1"); err != nil {
		t.Fatal(err)
	}

	// Confirm without a pending request is invalid.
	var invalid *ErrInvalidTransition
	if err := m.ConfirmDelete(); !errors.As(err, &invalid) {
		t.Fatalf("confirm without request: %v", err)
	}

	if err := m.RequestDelete(); err != nil {
		t.Fatal(err)
	}
	if !m.PendingDelete() {
		t.Fatal("request did not arm the confirmation")
	}

	m.DeclineDelete()
	if m.PendingDelete() {
		t.Error("decline left the confirmation armed")
	}
	if !m.Collection().Contains("l1") {
		t.Fatal("decline removed the lesson")
	}

	if err := m.RequestDelete(); err != nil {
		t.Fatal(err)
	}
	if err := m.ConfirmDelete(); err != nil {
		t.Fatal(err)
	}
	if m.Collection().Contains("l1") {
		t.Error("confirm did not remove the lesson")
	}
	if m.Mode() != ModeListing {
		t.Errorf("mode after delete = %v, want listing", m.Mode())
	}
}

func TestAcceptProposal_SeedsContinuation(t *testing.T) {
	m := New(nil)
	if err := m.CreateNew(); err != nil {
		t.Fatal(err)
	}
	fillDraft(t, m)
	first, err := m.SaveDraft()
	if err != nil {
		t.Fatal(err)
	}

	if err := m.AcceptProposal(); err != nil {
		t.Fatal(err)
	}
	if m.Mode() != ModeCreating {
		t.Fatalf("mode = %v, want creating", m.Mode())
	}
	if m.Proposal() != nil {
		t.Error("accept did not clear the proposal")
	}

	d := m.Draft()
	if d.ContinuationContext != "Simular resgate em dupla" {
		t.Errorf("continuation = %q", d.ContinuationContext)
	}
	if d.Lesson.ID == first.ID {
		t.Error("chained draft reused the previous lesson id")
	}
}

func TestDismissProposal(t *testing.T) {
	m := New(nil)
	if err := m.CreateNew(); err != nil {
		t.Fatal(err)
	}
	fillDraft(t, m)
	if _, err := m.SaveDraft(); err != nil {
		t.Fatal(err)
	}

	m.DismissProposal()
	if m.Proposal() != nil {
		t.Error("dismiss left the proposal")
	}
	if m.Mode() != ModeViewing {
		t.Errorf("dismiss changed mode to %v", m.Mode())
	}
}

func TestChainFromAnalysis(t *testing.T) {
	m := New(nil)
	if err := m.Analyze(); err != nil {
		t.Fatal(err)
	}
	if err := m.ChainFromAnalysis("  Trabalhar sinais de pista  "); err != nil {
		t.Fatal(err)
	}
	if m.Mode() != ModeCreating {
		t.Fatalf("mode = %v, want creating", m.Mode())
	}
	if got := m.Draft().ContinuationContext; got != "Trabalhar sinais de pista" {
		t.Errorf("continuation = %q", got)
	}
}

func TestInvalidTransitions(t *testing.T) {
	m := New(plan.Collection{storedLesson("l1")})

	var invalid *ErrInvalidTransition

	// Listing accepts no save.
	if _, err := m.SaveDraft(); !errors.As(err, &invalid) {
		t.Errorf("save in listing: %v", err)
	}
	// Creating accepts no second create, no select, no analyze.
	if err := m.CreateNew(); err != nil {
		t.Fatal(err)
	}
	if err := m.CreateNew(); !errors.As(err, &invalid) {
		t.Errorf("create in creating: %v", err)
	}
	if err := m.SelectLesson("l1"); !errors.As(err, &invalid) {
		t.Errorf("select in creating: %v", err)
	}
	if err := m.Analyze(); !errors.As(err, &invalid) {
		t.Errorf("analyze in creating: %v", err)
	}
	if err := m.ChainFromAnalysis("x"); !errors.As(err, &invalid) {
		t.Errorf("chain in creating: %v", err)
	}
}

func TestBack_DiscardsDraft(t *testing.T) {
	m := New(nil)
	if err := m.CreateNew(); err != nil {
		t.Fatal(err)
	}
	fillDraft(t, m)

	m.Back()
	if m.Mode() != ModeListing {
		t.Fatalf("mode = %v, want listing", m.Mode())
	}
	if m.Draft() != nil {
		t.Error("back kept the draft")
	}
	if len(m.Collection()) != 0 {
		t.Error("discarded draft reached the collection")
	}
}

func TestDraft_CapturesFeedbackContext(t *testing.T) {
	l := storedLesson("l1")
	l.Feedback = plan.Feedback{Positive: "ritmo bom"}
	m := New(plan.Collection{l})

	if err := m.CreateNew(); err != nil {
		t.Fatal(err)
	}
	if m.Draft().FeedbackContext == "" {
		t.Error("draft did not capture feedback context from the collection")
	}
}

func TestRestore_OnlyFromListing(t *testing.T) {
	m := New(plan.Collection{storedLesson("l1")})

	replacement := plan.Collection{storedLesson("r1"), storedLesson("r2")}
	if err := m.Restore(replacement); err != nil {
		t.Fatal(err)
	}
	if len(m.Collection()) != 2 {
		t.Errorf("restore kept %d lessons, want 2", len(m.Collection()))
	}
	if m.Dirty() {
		t.Error("restore should clear the dirty flag")
	}

	if err := m.CreateNew(); err != nil {
		t.Fatal(err)
	}
	var invalid *ErrInvalidTransition
	if err := m.Restore(nil); !errors.As(err, &invalid) {
		t.Errorf("restore outside listing: %v", err)
	}
}
