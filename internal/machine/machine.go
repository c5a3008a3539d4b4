// Package machine holds the continuity state machine: the single source
// of truth for which mode the application is in and for the cross-lesson
// handshakes (the next-lesson proposal after a true creation, and the
// create-from-analysis chain). It is pure and synchronous; screens feed
// it events and persist its collection through the store.
package machine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ecarvalho/aulaplan/internal/plan"
)

// Mode enumerates the mutually exclusive application modes. Exactly one
// is active at a time; there is no terminal mode.
type Mode int

const (
	ModeListing Mode = iota
	ModeCreating
	ModeViewing
	ModeEditing
	ModeAnalyzing
	ModeReviewingFeedback
)

func (m Mode) String() string {
	switch m {
	case ModeListing:
		return "listing"
	case ModeCreating:
		return "creating"
	case ModeViewing:
		return "viewing"
	case ModeEditing:
		return "editing"
	case ModeAnalyzing:
		return "analyzing"
	case ModeReviewingFeedback:
		return "reviewing-feedback"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ErrInvalidTransition reports an event fired in a mode that does not
// accept it.
type ErrInvalidTransition struct {
	Mode  Mode
	Event string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("event %q not allowed in mode %s", e.Event, e.Mode)
}

// Draft is an in-progress, not-yet-persisted lesson under construction.
type Draft struct {
	// Lesson is the working copy. Its ID is assigned when the draft is
	// opened and survives into persistence.
	Lesson plan.Lesson

	// ContinuationContext seeds generation from a prior lesson's
	// suggestion or analyzed document text.
	ContinuationContext string

	// FeedbackContext is the aggregated feedback text captured when the
	// draft was opened.
	FeedbackContext string

	// Editing is true when the draft was seeded from a stored lesson.
	Editing bool
}

// Proposal is the next-lesson handshake raised after a true creation.
type Proposal struct {
	// SourceID is the lesson whose save raised the proposal.
	SourceID string

	// Suggestion is that lesson's next-class suggestion.
	Suggestion string
}

// Machine is the continuity state machine.
type Machine struct {
	mode          Mode
	collection    plan.Collection
	draft         *Draft
	viewingID     string
	proposal      *Proposal
	pendingDelete bool
	dirty         bool
}

// New creates a machine in Listing mode over the given collection.
func New(collection plan.Collection) *Machine {
	return &Machine{
		mode:       ModeListing,
		collection: collection,
	}
}

// Mode returns the active mode.
func (m *Machine) Mode() Mode { return m.mode }

// Collection returns the current lesson collection.
func (m *Machine) Collection() plan.Collection { return m.collection }

// Draft returns the in-progress draft, or nil outside Creating/Editing.
func (m *Machine) Draft() *Draft { return m.draft }

// Viewing returns the lesson on screen in Viewing mode.
func (m *Machine) Viewing() (plan.Lesson, bool) {
	if m.mode != ModeViewing {
		return plan.Lesson{}, false
	}
	return m.collection.FindByID(m.viewingID)
}

// Proposal returns the pending next-lesson proposal, if any.
func (m *Machine) Proposal() *Proposal { return m.proposal }

// PendingDelete reports whether a delete confirmation is being awaited.
func (m *Machine) PendingDelete() bool { return m.pendingDelete }

// Dirty reports whether the collection changed since the last backup
// export.
func (m *Machine) Dirty() bool { return m.dirty }

// CreateNew opens an empty draft. The feedback context is captured from
// the collection as it stands right now.
func (m *Machine) CreateNew() error {
	if m.mode != ModeListing {
		return &ErrInvalidTransition{Mode: m.mode, Event: "create-new"}
	}
	m.openDraft("")
	return nil
}

// SelectLesson moves from the list to viewing a stored lesson.
func (m *Machine) SelectLesson(id string) error {
	if m.mode != ModeListing {
		return &ErrInvalidTransition{Mode: m.mode, Event: "select-lesson"}
	}
	if !m.collection.Contains(id) {
		return fmt.Errorf("no lesson with id %q", id)
	}
	m.viewingID = id
	m.mode = ModeViewing
	return nil
}

// ReviewFeedback opens the feedback history.
func (m *Machine) ReviewFeedback() error {
	if m.mode != ModeListing {
		return &ErrInvalidTransition{Mode: m.mode, Event: "review-feedback"}
	}
	m.mode = ModeReviewingFeedback
	return nil
}

// Analyze opens the previous-lesson analyzer.
func (m *Machine) Analyze() error {
	if m.mode != ModeListing {
		return &ErrInvalidTransition{Mode: m.mode, Event: "analyze"}
	}
	m.mode = ModeAnalyzing
	return nil
}

// Back returns to the list, discarding any draft and clearing the
// current selection and pending delete.
func (m *Machine) Back() {
	m.draft = nil
	m.viewingID = ""
	m.pendingDelete = false
	m.mode = ModeListing
}

// SaveDraft validates and commits the draft. A save whose id did not
// previously exist in the collection is a true creation and raises
// exactly one next-lesson proposal; edit-saves never do. The machine
// moves to Viewing the saved lesson.
func (m *Machine) SaveDraft() (plan.Lesson, error) {
	if m.mode != ModeCreating && m.mode != ModeEditing {
		return plan.Lesson{}, &ErrInvalidTransition{Mode: m.mode, Event: "save"}
	}

	lesson := m.draft.Lesson
	if err := lesson.Validate(); err != nil {
		return plan.Lesson{}, err
	}

	updated, isNew := m.collection.Upsert(lesson)
	m.collection = updated
	m.dirty = true

	if isNew {
		m.proposal = &Proposal{
			SourceID:   lesson.ID,
			Suggestion: lesson.NextClassSuggestion,
		}
	}

	m.draft = nil
	m.viewingID = lesson.ID
	m.mode = ModeViewing
	return lesson, nil
}

// Edit reopens the viewed lesson as a draft seeded from its stored values.
func (m *Machine) Edit() error {
	lesson, ok := m.Viewing()
	if !ok {
		return &ErrInvalidTransition{Mode: m.mode, Event: "edit"}
	}
	m.draft = &Draft{
		Lesson:          lesson,
		FeedbackContext: plan.BuildFeedbackContext(m.collection),
		Editing:         true,
	}
	m.mode = ModeEditing
	return nil
}

// UpdateFeedback attaches or updates feedback on a persisted lesson. The
// id already exists, so no proposal is raised and the mode is unchanged.
func (m *Machine) UpdateFeedback(id string, fb plan.Feedback) error {
	lesson, ok := m.collection.FindByID(id)
	if !ok {
		return fmt.Errorf("no lesson with id %q", id)
	}
	lesson.Feedback = fb
	m.collection, _ = m.collection.Upsert(lesson)
	m.dirty = true
	return nil
}

// RequestDelete starts the delete confirmation handshake for the viewed
// lesson. The repository mutation waits for ConfirmDelete.
func (m *Machine) RequestDelete() error {
	if m.mode != ModeViewing {
		return &ErrInvalidTransition{Mode: m.mode, Event: "request-delete"}
	}
	m.pendingDelete = true
	return nil
}

// ConfirmDelete removes the viewed lesson and returns to the list.
func (m *Machine) ConfirmDelete() error {
	if m.mode != ModeViewing || !m.pendingDelete {
		return &ErrInvalidTransition{Mode: m.mode, Event: "confirm-delete"}
	}
	m.collection = m.collection.Remove(m.viewingID)
	m.dirty = true
	m.pendingDelete = false
	m.viewingID = ""
	m.mode = ModeListing
	return nil
}

// DeclineDelete cancels the confirmation handshake; nothing is removed.
func (m *Machine) DeclineDelete() {
	m.pendingDelete = false
}

// AcceptProposal opens a new draft seeded with the proposal's suggestion
// as continuation context. The proposal is cleared.
func (m *Machine) AcceptProposal() error {
	if m.mode != ModeViewing || m.proposal == nil {
		return &ErrInvalidTransition{Mode: m.mode, Event: "accept-proposal"}
	}
	suggestion := m.proposal.Suggestion
	m.proposal = nil
	m.openDraft(plan.BuildContinuationContext(suggestion))
	return nil
}

// DismissProposal clears the proposal without creating a draft.
func (m *Machine) DismissProposal() {
	m.proposal = nil
}

// ChainFromAnalysis opens a new draft seeded with an analysis suggestion.
// Used when the analyzer's chain option is enabled; with it disabled the
// suggestion is only displayed and the analyzer stays open.
func (m *Machine) ChainFromAnalysis(suggestion string) error {
	if m.mode != ModeAnalyzing {
		return &ErrInvalidTransition{Mode: m.mode, Event: "chain-from-analysis"}
	}
	m.openDraft(plan.BuildContinuationContext(suggestion))
	return nil
}

// Restore replaces the collection wholesale after a backup import.
func (m *Machine) Restore(c plan.Collection) error {
	if m.mode != ModeListing {
		return &ErrInvalidTransition{Mode: m.mode, Event: "restore"}
	}
	m.collection = c
	m.dirty = false
	return nil
}

// MarkBackedUp clears the unsaved-changes indicator after an export.
func (m *Machine) MarkBackedUp() {
	m.dirty = false
}

// openDraft resets state into Creating with a fresh lesson id.
func (m *Machine) openDraft(continuation string) {
	m.viewingID = ""
	m.pendingDelete = false
	m.draft = &Draft{
		Lesson: plan.Lesson{
			ID: uuid.NewString(),
		},
		ContinuationContext: continuation,
		FeedbackContext:     plan.BuildFeedbackContext(m.collection),
	}
	m.mode = ModeCreating
}
