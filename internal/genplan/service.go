package genplan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ecarvalho/aulaplan/internal/llm"
	"github.com/ecarvalho/aulaplan/internal/plan"
)

// ErrGenerationFailed is the single failure surfaced to callers: transport
// errors and malformed responses both collapse into it. Callers show the
// cause inline and offer a manual retry.
type ErrGenerationFailed struct {
	Cause error
}

func (e *ErrGenerationFailed) Error() string {
	return fmt.Sprintf("schedule generation failed: %v", e.Cause)
}

func (e *ErrGenerationFailed) Unwrap() error { return e.Cause }

// ScheduleRequest carries everything a generation call needs. Theme and
// Objectives absent together signal full generation: the model must also
// originate them. Present together, they are honored verbatim and only
// the timetable is generated.
type ScheduleRequest struct {
	Audience            plan.Audience
	ClassDate           string // plan.DateFormat
	Weather             plan.Condition
	Theme               string
	Objectives          string
	ContinuationContext string
	FeedbackContext     string
}

// FullGeneration reports whether the model must originate theme and
// objectives.
func (r ScheduleRequest) FullGeneration() bool {
	return strings.TrimSpace(r.Theme) == "" || strings.TrimSpace(r.Objectives) == ""
}

// ScheduleResult is a validated lesson fragment. Theme and Objectives are
// set only for full generation.
type ScheduleResult struct {
	Theme               string
	Objectives          string
	Activities          []plan.Activity
	NextClassSuggestion string
}

// Service is the generation client. It owns the request/response contract
// with the model and isolates every external failure mode.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a generation client.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// scheduleOutput mirrors the wire response.
type scheduleOutput struct {
	Theme               string          `json:"theme"`
	Objectives          string          `json:"objectives"`
	Schedule            []plan.Activity `json:"schedule"`
	NextClassSuggestion string          `json:"nextClassSuggestion"`
}

// GenerateSchedule asks the model for a schedule and validates the result.
// Every failure comes back as *ErrGenerationFailed.
func (s *Service) GenerateSchedule(ctx context.Context, req ScheduleRequest) (*ScheduleResult, error) {
	ctx = llm.WithPurpose(ctx, "schedule")

	schema := ActivitiesScheduleSchema
	if req.FullGeneration() {
		schema = FullScheduleSchema
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      scheduleSystemPrompt,
		Prompt:      SchedulePrompt(req),
		Schema:      schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, &ErrGenerationFailed{Cause: err}
	}

	var out scheduleOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &ErrGenerationFailed{Cause: fmt.Errorf("parse schedule response: %w", err)}
	}

	result := &ScheduleResult{
		Activities:          out.Schedule,
		NextClassSuggestion: strings.TrimSpace(out.NextClassSuggestion),
	}
	if req.FullGeneration() {
		result.Theme = strings.TrimSpace(out.Theme)
		result.Objectives = strings.TrimSpace(out.Objectives)
	}

	if err := validateResult(result, req); err != nil {
		return nil, &ErrGenerationFailed{Cause: err}
	}

	// Degrade gracefully: a full generation that somehow comes back without
	// a theme gets a fallback title from the date instead of a hard failure.
	if req.FullGeneration() && result.Theme == "" {
		result.Theme = FallbackTheme(req.ClassDate)
	}

	return result, nil
}

// validateResult enforces the response contract regardless of whether the
// provider already ran schema validation.
func validateResult(res *ScheduleResult, req ScheduleRequest) error {
	if len(res.Activities) == 0 {
		return fmt.Errorf("response contains no activities")
	}
	for i, a := range res.Activities {
		if strings.TrimSpace(a.Time) == "" ||
			strings.TrimSpace(a.Activity) == "" ||
			strings.TrimSpace(a.Description) == "" {
			return fmt.Errorf("activity %d has empty fields", i+1)
		}
	}
	if res.NextClassSuggestion == "" {
		return fmt.Errorf("response is missing a next class suggestion")
	}
	if req.FullGeneration() && res.Objectives == "" {
		return fmt.Errorf("response is missing objectives")
	}
	return nil
}

// FallbackTheme synthesizes a lesson theme from the class date.
func FallbackTheme(classDate string) string {
	return fmt.Sprintf("Aula de %s", classDate)
}

// AnalyzeLesson takes arbitrary lesson text (pasted or extracted from a
// document) and returns a single continuation suggestion. Failures collapse
// the same way GenerateSchedule's do.
func (s *Service) AnalyzeLesson(ctx context.Context, lessonText string) (string, error) {
	ctx = llm.WithPurpose(ctx, "analysis")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      analysisSystemPrompt,
		Prompt:      AnalysisPrompt(lessonText),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", &ErrGenerationFailed{Cause: err}
	}

	suggestion := strings.TrimSpace(strings.Trim(string(resp.Content), `"`))
	if suggestion == "" {
		return "", &ErrGenerationFailed{Cause: fmt.Errorf("model returned an empty suggestion")}
	}
	return suggestion, nil
}
