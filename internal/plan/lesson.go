package plan

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Audience is the closed set of class audiences.
type Audience int

const (
	AudienceKids Audience = iota
	AudienceJuvenile
	AudienceCombined
)

// audienceLabels are the canonical wire/display values. They match the
// values written by earlier versions of the planner so old backups restore.
var audienceLabels = map[Audience]string{
	AudienceKids:     "Kids (10-13 anos)",
	AudienceJuvenile: "Juvenil (14-17 anos)",
	AudienceCombined: "Turmas Combinadas",
}

// AllAudiences returns every audience in display order.
func AllAudiences() []Audience {
	return []Audience{AudienceKids, AudienceJuvenile, AudienceCombined}
}

func (a Audience) String() string {
	if s, ok := audienceLabels[a]; ok {
		return s
	}
	return fmt.Sprintf("Audience(%d)", int(a))
}

// DurationHours is the class length implied by the audience: combined
// classes run longer.
func (a Audience) DurationHours() int {
	switch a {
	case AudienceKids, AudienceJuvenile:
		return 2
	case AudienceCombined:
		return 3
	}
	return 2
}

// ParseAudience maps a wire value back to an Audience.
func ParseAudience(s string) (Audience, error) {
	for a, label := range audienceLabels {
		if s == label {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown audience %q", s)
}

func (a Audience) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Audience) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAudience(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Condition is the closed set of forecast conditions.
type Condition int

const (
	Sunny Condition = iota
	Cloudy
	Rainy
)

var conditionLabels = map[Condition]string{
	Sunny:  "Ensolarado",
	Cloudy: "Nublado",
	Rainy:  "Chuvoso",
}

// AllConditions returns every condition in display order.
func AllConditions() []Condition {
	return []Condition{Sunny, Cloudy, Rainy}
}

func (c Condition) String() string {
	if s, ok := conditionLabels[c]; ok {
		return s
	}
	return fmt.Sprintf("Condition(%d)", int(c))
}

// ParseCondition maps a wire value back to a Condition.
func ParseCondition(s string) (Condition, error) {
	for c, label := range conditionLabels {
		if s == label {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown weather condition %q", s)
}

func (c Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Condition) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCondition(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Activity is one scheduled item in a lesson's timetable. Order within a
// lesson is chronological and preserved exactly as generated or edited.
type Activity struct {
	Time        string `json:"time"`
	Activity    string `json:"activity"`
	Description string `json:"description"`
}

// Feedback holds the instructor's post-class notes. Empty string means
// "not yet recorded"; fields are never absent once a lesson is persisted.
type Feedback struct {
	Positive    string `json:"positive"`
	Improvement string `json:"improvement"`
	Ideas       string `json:"ideas"`
}

// HasContent reports whether any feedback field has been filled in.
func (f Feedback) HasContent() bool {
	return strings.TrimSpace(f.Positive) != "" ||
		strings.TrimSpace(f.Improvement) != "" ||
		strings.TrimSpace(f.Ideas) != ""
}

// DateFormat is the calendar-date wire format used throughout.
const DateFormat = "2006-01-02"

// Lesson is a single planned class session.
type Lesson struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	TargetAudience      Audience   `json:"targetAudience"`
	Theme               string     `json:"theme"`
	Objectives          string     `json:"objectives"`
	Activities          []Activity `json:"activities"`
	NextClassSuggestion string     `json:"nextClassSuggestion"`
	Feedback            Feedback   `json:"feedback"`
	ClassDate           string     `json:"classDate"` // DateFormat
	WeatherCondition    Condition  `json:"weatherCondition"`
}

// ClassDateTime parses ClassDate, returning the zero time on failure.
func (l Lesson) ClassDateTime() time.Time {
	t, err := time.Parse(DateFormat, l.ClassDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Validate checks the invariants required before a lesson may be persisted.
func (l Lesson) Validate() error {
	if l.ID == "" {
		return &ValidationError{Field: "id", Reason: "missing id"}
	}
	if strings.TrimSpace(l.Title) == "" {
		return &ValidationError{Field: "title", Reason: "title is required"}
	}
	if len(l.Activities) == 0 {
		return &ValidationError{Field: "activities", Reason: "a lesson needs at least one activity"}
	}
	if _, err := time.Parse(DateFormat, l.ClassDate); err != nil {
		return &ValidationError{Field: "classDate", Reason: fmt.Sprintf("bad date %q", l.ClassDate)}
	}
	return nil
}

// ValidationError reports a missing or malformed lesson field. It blocks
// the save action; the message is shown inline next to the field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid lesson: %s", e.Reason)
}

// Collection is the full set of lessons, the unit of backup and restore.
// Insertion order carries no meaning; display order is derived where needed.
type Collection []Lesson

// FindByID returns the lesson with the given id, if present.
func (c Collection) FindByID(id string) (Lesson, bool) {
	for _, l := range c {
		if l.ID == id {
			return l, true
		}
	}
	return Lesson{}, false
}

// Contains reports whether a lesson with the given id exists.
func (c Collection) Contains(id string) bool {
	_, ok := c.FindByID(id)
	return ok
}

// Upsert replaces the lesson with a matching id in place, or appends it.
// It returns the updated collection and whether the lesson was new.
func (c Collection) Upsert(lesson Lesson) (Collection, bool) {
	for i, l := range c {
		if l.ID == lesson.ID {
			out := make(Collection, len(c))
			copy(out, c)
			out[i] = lesson
			return out, false
		}
	}
	out := make(Collection, 0, len(c)+1)
	out = append(out, c...)
	return append(out, lesson), true
}

// Remove deletes the lesson with the given id, if present.
func (c Collection) Remove(id string) Collection {
	out := make(Collection, 0, len(c))
	for _, l := range c {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}
