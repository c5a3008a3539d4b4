package genplan

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ecarvalho/aulaplan/internal/llm"
	"github.com/ecarvalho/aulaplan/internal/plan"
)

func fullRequest() ScheduleRequest {
	return ScheduleRequest{
		Audience:  plan.AudienceJuvenile,
		ClassDate: "2026-04-11",
		Weather:   plan.Rainy,
	}
}

func guidedRequest() ScheduleRequest {
	req := fullRequest()
	req.Theme = "Primeiros socorros"
	req.Objectives = "Avaliar sinais vitais e imobilizar fraturas"
	return req
}

func fullScheduleJSON() json.RawMessage {
	return json.RawMessage(`{
		"theme": "Sobrevivência na chuva",
		"objectives": "Adaptar técnicas de abrigo para ambientes internos",
		"schedule": [
			{"time": "19:00", "activity": "Formatura", "description": "Chamada e hino"},
			{"time": "19:20", "activity": "Nós e amarras", "description": "Prática em sala"}
		],
		"nextClassSuggestion": "Aplicar as amarras na construção de uma maca improvisada"
	}`)
}

func activitiesOnlyJSON() json.RawMessage {
	return json.RawMessage(`{
		"schedule": [
			{"time": "19:00", "activity": "Teoria", "description": "Sinais vitais"}
		],
		"nextClassSuggestion": "Simular um resgate completo em duplas"
	}`)
}

func TestGenerateSchedule_Full(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: fullScheduleJSON()})
	svc := NewService(mock, DefaultConfig())

	res, err := svc.GenerateSchedule(context.Background(), fullRequest())
	if err != nil {
		t.Fatal(err)
	}
	if res.Theme != "Sobrevivência na chuva" {
		t.Errorf("theme = %q", res.Theme)
	}
	if res.Objectives == "" {
		t.Error("full generation returned no objectives")
	}
	if len(res.Activities) != 2 {
		t.Errorf("activities = %d, want 2", len(res.Activities))
	}
	if res.NextClassSuggestion == "" {
		t.Error("no next class suggestion")
	}

	req, _ := mock.LastCall()
	if req.Schema == nil || req.Schema.Name != "full-lesson-schedule" {
		t.Errorf("full generation sent schema %+v", req.Schema)
	}
	if !strings.Contains(req.Prompt, "from scratch") {
		t.Error("full generation prompt missing the from-scratch task")
	}
}

func TestGenerateSchedule_GuidedHonorsThemeVerbatim(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: activitiesOnlyJSON()})
	svc := NewService(mock, DefaultConfig())

	res, err := svc.GenerateSchedule(context.Background(), guidedRequest())
	if err != nil {
		t.Fatal(err)
	}
	// Guided mode never overwrites the caller's theme or objectives.
	if res.Theme != "" || res.Objectives != "" {
		t.Errorf("guided generation returned theme %q objectives %q", res.Theme, res.Objectives)
	}

	req, _ := mock.LastCall()
	if req.Schema == nil || req.Schema.Name != "lesson-schedule" {
		t.Errorf("guided generation sent schema %+v", req.Schema)
	}
	if !strings.Contains(req.Prompt, "Primeiros socorros") {
		t.Error("prompt missing the given theme")
	}
	if !strings.Contains(req.Prompt, "honoring them verbatim") {
		t.Error("prompt missing the verbatim instruction")
	}
}

func TestGenerateSchedule_PromptCarriesParameters(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: fullScheduleJSON()})
	svc := NewService(mock, DefaultConfig())

	req := fullRequest()
	req.Audience = plan.AudienceCombined
	req.FeedbackContext = "### Class feedback: \"X\"\n- Positive points: bom ritmo\n"
	req.ContinuationContext = "Aprofundar a leitura de mapas"

	if _, err := svc.GenerateSchedule(context.Background(), req); err != nil {
		t.Fatal(err)
	}

	call, _ := mock.LastCall()
	for _, want := range []string{
		"Turmas Combinadas",
		"Class duration: 3 hours",
		"Chuvoso",
		"bom ritmo",
		"Aprofundar a leitura de mapas",
		"2026-04-11",
	} {
		if !strings.Contains(call.Prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerateSchedule_EmptyActivitiesRejected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"theme":"x","objectives":"y","schedule":[],"nextClassSuggestion":"z"}`),
	})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.GenerateSchedule(context.Background(), fullRequest())
	var genErr *ErrGenerationFailed
	if !errors.As(err, &genErr) {
		t.Fatalf("want ErrGenerationFailed, got %v", err)
	}
}

func TestGenerateSchedule_ProviderErrorCollapses(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrUnavailable{}})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.GenerateSchedule(context.Background(), fullRequest())
	var genErr *ErrGenerationFailed
	if !errors.As(err, &genErr) {
		t.Fatalf("want ErrGenerationFailed, got %v", err)
	}
	var unavailable *llm.ErrUnavailable
	if !errors.As(err, &unavailable) {
		t.Error("cause not reachable through Unwrap")
	}
}

func TestGenerateSchedule_MalformedJSONCollapses(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.GenerateSchedule(context.Background(), fullRequest())
	var genErr *ErrGenerationFailed
	if !errors.As(err, &genErr) {
		t.Fatalf("want ErrGenerationFailed, got %v", err)
	}
}

func TestGenerateSchedule_FallbackTheme(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"theme": "",
			"objectives": "objetivos",
			"schedule": [{"time":"19:00","activity":"a","description":"d"}],
			"nextClassSuggestion": "s"
		}`),
	})
	svc := NewService(mock, DefaultConfig())

	res, err := svc.GenerateSchedule(context.Background(), fullRequest())
	if err != nil {
		t.Fatal(err)
	}
	if res.Theme != FallbackTheme("2026-04-11") {
		t.Errorf("theme = %q, want fallback", res.Theme)
	}
}

func TestAnalyzeLesson(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`"Aplicar os nós aprendidos na construção de abrigos"`),
	})
	svc := NewService(mock, DefaultConfig())

	got, err := svc.AnalyzeLesson(context.Background(), "Aula sobre nós básicos")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Aplicar os nós aprendidos na construção de abrigos" {
		t.Errorf("suggestion = %q", got)
	}

	call, _ := mock.LastCall()
	if call.Schema != nil {
		t.Error("analysis should not send a structured-output schema")
	}
	if !strings.Contains(call.Prompt, "Aula sobre nós básicos") {
		t.Error("prompt missing the lesson text")
	}
}

func TestAnalyzeLesson_EmptySuggestion(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`"  "`)})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.AnalyzeLesson(context.Background(), "texto")
	var genErr *ErrGenerationFailed
	if !errors.As(err, &genErr) {
		t.Fatalf("want ErrGenerationFailed, got %v", err)
	}
}
