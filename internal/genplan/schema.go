package genplan

import "github.com/ecarvalho/aulaplan/internal/llm"

func activitiesProperty() map[string]any {
	return map[string]any{
		"type":        "array",
		"description": "The ordered list of activities for the class schedule.",
		"minItems":    1,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"time": map[string]any{
					"type":        "string",
					"description": "Time interval of the activity (e.g. '14:00 - 14:10').",
				},
				"activity": map[string]any{
					"type":        "string",
					"description": "The name of the activity (e.g. 'Formation and Ceremony').",
				},
				"description": map[string]any{
					"type":        "string",
					"description": "A short description of what happens in the activity.",
				},
			},
			"required":             []any{"time", "activity", "description"},
			"additionalProperties": false,
		},
	}
}

func suggestionProperty() map[string]any {
	return map[string]any{
		"type":        "string",
		"description": "A suggestion for the next class that continues the learning arc.",
	}
}

// FullScheduleSchema is used when the model must also originate the theme
// and pedagogical objectives.
var FullScheduleSchema = &llm.Schema{
	Name:        "full-lesson-schedule",
	Description: "A complete class schedule including AI-generated theme and objectives",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"theme": map[string]any{
				"type":        "string",
				"description": "The main theme of the class.",
			},
			"objectives": map[string]any{
				"type":        "string",
				"description": "The pedagogical objectives of the class.",
			},
			"schedule":            activitiesProperty(),
			"nextClassSuggestion": suggestionProperty(),
		},
		"required":             []any{"theme", "objectives", "schedule", "nextClassSuggestion"},
		"additionalProperties": false,
	},
}

// ActivitiesScheduleSchema is used when the instructor supplied the theme
// and objectives and only the timetable is generated.
var ActivitiesScheduleSchema = &llm.Schema{
	Name:        "lesson-schedule",
	Description: "A class schedule for a given theme and objectives",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"schedule":            activitiesProperty(),
			"nextClassSuggestion": suggestionProperty(),
		},
		"required":             []any{"schedule", "nextClassSuggestion"},
		"additionalProperties": false,
	},
}
