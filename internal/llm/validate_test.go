package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-schedule",
		Description: "test",
		Definition: map[string]any{
			"type":     "object",
			"required": []string{"theme", "schedule"},
			"properties": map[string]any{
				"theme": map[string]any{"type": "string", "minLength": 1},
				"schedule": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    map[string]any{"type": "object"},
				},
			},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"theme": "Nós", "schedule": [{}]}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
}

func TestValidateResponse_NilSchemaPasses(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("nil schema should pass: %v", err)
	}
}

func TestValidateResponse_Violations(t *testing.T) {
	cases := map[string]string{
		"not json":        `{{{`,
		"missing field":   `{"theme": "x"}`,
		"empty schedule":  `{"theme": "x", "schedule": []}`,
		"wrong type":      `{"theme": 3, "schedule": [{}]}`,
		"extra property":  `{"theme": "x", "schedule": [{}], "junk": 1}`,
		"top-level array": `[]`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(payload))
			var invalid *ErrInvalidResponse
			if !errors.As(err, &invalid) {
				t.Fatalf("want ErrInvalidResponse, got %v", err)
			}
			if string(invalid.Content) != payload {
				t.Error("error does not carry the offending content")
			}
		})
	}
}

func TestValidateResponse_CachesCompiledSchema(t *testing.T) {
	raw := json.RawMessage(`{"theme": "x", "schedule": [{}]}`)
	s := testSchema()

	if err := validateResponse(s, raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := schemaCache.Load(s.Name); !ok {
		t.Error("schema not cached after first validation")
	}
	// Second call goes through the cache.
	if err := validateResponse(s, raw); err != nil {
		t.Fatal(err)
	}
}
