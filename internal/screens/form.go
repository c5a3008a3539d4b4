package screens

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ecarvalho/aulaplan/internal/genplan"
	"github.com/ecarvalho/aulaplan/internal/plan"
	"github.com/ecarvalho/aulaplan/internal/router"
	"github.com/ecarvalho/aulaplan/internal/screen"
	"github.com/ecarvalho/aulaplan/internal/ui/components"
	"github.com/ecarvalho/aulaplan/internal/ui/layout"
	"github.com/ecarvalho/aulaplan/internal/ui/theme"
	"github.com/ecarvalho/aulaplan/internal/weather"
)

// form field focus order.
const (
	fieldTitle = iota
	fieldAudience
	fieldDate
	fieldWeather
	fieldTheme
	fieldObjectives
	fieldCount
)

// FormScreen is the lesson draft editor, used for both creation and
// editing. Theme and objectives left blank ask the model to originate
// them; filled in, they are honored verbatim.
type FormScreen struct {
	deps Deps

	title      components.TextInput
	audience   components.Selector
	date       components.TextInput
	weather    components.Selector
	themeField components.TextInput
	objectives components.TextArea

	focus int

	// draftID pins async completions to this draft.
	draftID string

	// lastWeatherIssued implements last-issued-wins for forecast lookups.
	lastWeatherIssued time.Time
	lastFetchedDate   string

	generating bool
	notice     string
	errMsg     string
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)

// NewForm creates the form over the machine's current draft.
func NewForm(deps Deps) *FormScreen {
	draft := deps.Machine.Draft()

	audienceLabels := make([]string, 0, len(plan.AllAudiences()))
	for _, a := range plan.AllAudiences() {
		audienceLabels = append(audienceLabels, a.String())
	}
	conditionLabels := make([]string, 0, len(plan.AllConditions()))
	for _, c := range plan.AllConditions() {
		conditionLabels = append(conditionLabels, c.String())
	}

	f := &FormScreen{
		deps:       deps,
		title:      components.NewTextInput("Título da aula", 120),
		audience:   components.NewSelector(audienceLabels),
		date:       components.NewTextInput(plan.DateFormat, 10),
		weather:    components.NewSelector(conditionLabels),
		themeField: components.NewTextInput("Tema (em branco = gerar)", 200),
		objectives: components.NewTextArea("Objetivos (em branco = gerar)", 4),
	}

	if draft != nil {
		f.draftID = draft.Lesson.ID
		f.title.SetValue(draft.Lesson.Title)
		f.audience.Selected = int(draft.Lesson.TargetAudience)
		f.date.SetValue(draft.Lesson.ClassDate)
		f.weather.Selected = int(draft.Lesson.WeatherCondition)
		f.themeField.SetValue(draft.Lesson.Theme)
		f.objectives.SetValue(draft.Lesson.Objectives)
		f.lastFetchedDate = draft.Lesson.ClassDate
	}

	return f
}

func (f *FormScreen) Init() tea.Cmd {
	return f.applyFocus()
}

func (f *FormScreen) Title() string {
	if d := f.deps.Machine.Draft(); d != nil && d.Editing {
		return "Editar Aula"
	}
	return "Nova Aula"
}

func (f *FormScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+G", Description: "Generate"},
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Esc", Description: "Discard"},
	}
	if f.deps.Gen == nil {
		hints[1].Description = "Generate (unavailable)"
	}
	return hints
}

func (f *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case weatherResolvedMsg:
		return f, f.handleWeather(msg)

	case scheduleGeneratedMsg:
		return f, f.handleGenerated(msg)

	case collectionSavedMsg:
		if msg.Err != nil {
			f.errMsg = fmt.Sprintf("save failed: %v", msg.Err)
		}
		return f, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			f.deps.Machine.Back()
			return f, func() tea.Msg { return router.PopToRootMsg{} }
		case "tab", "shift+tab":
			prev := f.focus
			if msg.String() == "tab" {
				f.focus = (f.focus + 1) % fieldCount
			} else {
				f.focus = (f.focus + fieldCount - 1) % fieldCount
			}
			cmds := []tea.Cmd{f.applyFocus()}
			if prev == fieldDate {
				if cmd := f.maybeFetchWeather(); cmd != nil {
					cmds = append(cmds, cmd)
				}
			}
			return f, tea.Batch(cmds...)
		case "ctrl+g":
			return f, f.startGeneration()
		case "ctrl+s":
			return f, f.save()
		}

		return f, f.updateFocused(msg)
	}

	return f, f.updateFocused(msg)
}

// applyFocus focuses the active field and blurs the rest.
func (f *FormScreen) applyFocus() tea.Cmd {
	f.title.Blur()
	f.audience.Blur()
	f.date.Blur()
	f.weather.Blur()
	f.themeField.Blur()
	f.objectives.Blur()

	switch f.focus {
	case fieldTitle:
		return f.title.Focus()
	case fieldAudience:
		f.audience.Focus()
	case fieldDate:
		return f.date.Focus()
	case fieldWeather:
		f.weather.Focus()
	case fieldTheme:
		return f.themeField.Focus()
	case fieldObjectives:
		return f.objectives.Focus()
	}
	return nil
}

func (f *FormScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldAudience:
		f.audience, cmd = f.audience.Update(msg)
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	case fieldWeather:
		f.weather, cmd = f.weather.Update(msg)
	case fieldTheme:
		f.themeField, cmd = f.themeField.Update(msg)
	case fieldObjectives:
		f.objectives, cmd = f.objectives.Update(msg)
	}
	return cmd
}

// maybeFetchWeather issues a forecast lookup when the date field holds a
// valid date that has not been looked up yet.
func (f *FormScreen) maybeFetchWeather() tea.Cmd {
	date := strings.TrimSpace(f.date.Value())
	if date == "" || date == f.lastFetchedDate {
		return nil
	}
	if _, err := time.Parse(plan.DateFormat, date); err != nil {
		f.date.SetError(fmt.Sprintf("use the %s format", plan.DateFormat))
		return nil
	}
	f.date.SetError("")
	f.lastFetchedDate = date

	issued := time.Now()
	f.lastWeatherIssued = issued
	draftID := f.draftID
	forecaster := f.deps.Weather

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		cond, err := forecaster.Forecast(ctx, date, weather.DefaultCity)
		return weatherResolvedMsg{
			DraftID:   draftID,
			IssuedAt:  issued,
			Condition: cond,
			Err:       err,
		}
	}
}

// handleWeather applies a forecast completion unless a newer lookup has
// been issued or the draft changed underneath it.
func (f *FormScreen) handleWeather(msg weatherResolvedMsg) tea.Cmd {
	if msg.DraftID != f.draftID || !msg.IssuedAt.Equal(f.lastWeatherIssued) {
		return nil
	}
	if msg.Err != nil {
		f.weather.Selected = int(plan.Cloudy)
		f.notice = "Forecast unavailable, assuming overcast. Adjust if needed."
		return nil
	}
	f.weather.Selected = int(msg.Condition)
	return nil
}

// startGeneration launches one schedule generation for the current draft.
func (f *FormScreen) startGeneration() tea.Cmd {
	if f.deps.Gen == nil {
		f.notice = "AI features are unavailable: no API key configured."
		return nil
	}
	if f.generating {
		return nil
	}

	draft := f.deps.Machine.Draft()
	if draft == nil {
		return nil
	}

	date := strings.TrimSpace(f.date.Value())
	if _, err := time.Parse(plan.DateFormat, date); err != nil {
		f.date.SetError(fmt.Sprintf("a valid date (%s) is needed before generating", plan.DateFormat))
		return nil
	}
	f.date.SetError("")

	req := genplan.ScheduleRequest{
		Audience:            plan.Audience(f.audience.Selected),
		ClassDate:           date,
		Weather:             plan.Condition(f.weather.Selected),
		Theme:               f.themeField.Value(),
		Objectives:          f.objectives.Value(),
		ContinuationContext: draft.ContinuationContext,
		FeedbackContext:     draft.FeedbackContext,
	}

	f.generating = true
	f.errMsg = ""
	f.notice = "Generating schedule…"
	draftID := f.draftID
	gen := f.deps.Gen

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		res, err := gen.GenerateSchedule(ctx, req)
		return scheduleGeneratedMsg{DraftID: draftID, Result: res, Err: err}
	}
}

// handleGenerated folds a generation result into the draft, discarding
// results for drafts no longer on screen.
func (f *FormScreen) handleGenerated(msg scheduleGeneratedMsg) tea.Cmd {
	if msg.DraftID != f.draftID {
		return nil
	}
	f.generating = false
	f.notice = ""

	if msg.Err != nil {
		var genErr *genplan.ErrGenerationFailed
		if errors.As(msg.Err, &genErr) {
			f.errMsg = fmt.Sprintf("Generation failed: %v. Press Ctrl+G to retry.", genErr.Cause)
		} else {
			f.errMsg = fmt.Sprintf("Generation failed: %v. Press Ctrl+G to retry.", msg.Err)
		}
		return nil
	}

	draft := f.deps.Machine.Draft()
	if draft == nil {
		return nil
	}

	res := msg.Result
	if res.Theme != "" {
		f.themeField.SetValue(res.Theme)
	}
	if res.Objectives != "" {
		f.objectives.SetValue(res.Objectives)
	}
	draft.Lesson.Activities = res.Activities
	draft.Lesson.NextClassSuggestion = res.NextClassSuggestion

	if strings.TrimSpace(f.title.Value()) == "" {
		f.title.SetValue(f.themeField.Value())
	}

	f.notice = fmt.Sprintf("Schedule generated: %d activities.", len(res.Activities))
	return nil
}

// save syncs fields into the draft and commits it through the machine.
func (f *FormScreen) save() tea.Cmd {
	draft := f.deps.Machine.Draft()
	if draft == nil {
		return nil
	}

	draft.Lesson.Title = strings.TrimSpace(f.title.Value())
	draft.Lesson.TargetAudience = plan.Audience(f.audience.Selected)
	draft.Lesson.ClassDate = strings.TrimSpace(f.date.Value())
	draft.Lesson.WeatherCondition = plan.Condition(f.weather.Selected)
	draft.Lesson.Theme = strings.TrimSpace(f.themeField.Value())
	draft.Lesson.Objectives = strings.TrimSpace(f.objectives.Value())

	if _, err := f.deps.Machine.SaveDraft(); err != nil {
		var vErr *plan.ValidationError
		if errors.As(err, &vErr) {
			switch vErr.Field {
			case "title":
				f.title.SetError(vErr.Reason)
			case "classDate":
				f.date.SetError(vErr.Reason)
			default:
				f.errMsg = vErr.Reason
			}
		} else {
			f.errMsg = err.Error()
		}
		return nil
	}

	deps := f.deps
	return tea.Batch(
		persistCmd(deps),
		func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: NewDetail(deps)}
		},
	)
}

func (f *FormScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	field := func(label, view string) {
		b.WriteString("  " + theme.Label.Render(label) + "\n")
		b.WriteString("  " + view + "\n\n")
	}

	field("Título", f.title.View())
	field("Turma", f.audience.View())
	field("Data da aula", f.date.View())
	field("Previsão do tempo", f.weather.View())
	field("Tema", f.themeField.View())
	field("Objetivos", f.objectives.View())

	if draft := f.deps.Machine.Draft(); draft != nil {
		if draft.ContinuationContext != "" {
			b.WriteString("  " + theme.Hint.Render("Continuing from: "+truncate(draft.ContinuationContext, 70)) + "\n")
		}
		if n := len(draft.Lesson.Activities); n > 0 {
			b.WriteString("  " + theme.Body.Render(fmt.Sprintf("Schedule: %d activities ready.", n)) + "\n")
		}
	}

	if f.generating {
		b.WriteString("\n  " + theme.NoticeText.Render("Working…") + "\n")
	}
	if f.notice != "" && !f.generating {
		b.WriteString("\n  " + theme.NoticeText.Render(f.notice) + "\n")
	}
	if f.errMsg != "" {
		b.WriteString("\n  " + theme.ErrorText.Render(f.errMsg) + "\n")
	}

	return b.String()
}
