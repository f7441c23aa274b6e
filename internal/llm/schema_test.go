package llm

import (
	"errors"
	"testing"
)

var rankedSchema = MustOutputSchema("ranked", "labels with a score", map[string]any{
	"type": "object",
	"properties": map[string]any{
		"results": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"label":      map[string]any{"type": "string"},
					"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
				},
				"required": []any{"label", "confidence"},
			},
		},
	},
	"required": []any{"results"},
})

func TestOutputSchemaCheck(t *testing.T) {
	tests := []struct {
		name string
		body string
		ok   bool
	}{
		{"valid", `{"results":[{"label":"dengue","confidence":72.5}]}`, true},
		{"empty list", `{"results":[]}`, true},
		{"missing results", `{}`, false},
		{"confidence as string", `{"results":[{"label":"dengue","confidence":"high"}]}`, false},
		{"confidence above range", `{"results":[{"label":"dengue","confidence":140}]}`, false},
		{"missing label", `{"results":[{"confidence":12}]}`, false},
		{"not json", `Sure! Here are the results`, false},
		{"empty body", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rankedSchema.Check([]byte(tt.body))
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var e *Error
			if !errors.As(err, &e) || e.Kind != InvalidOutput {
				t.Fatalf("expected InvalidOutput, got %T (%v)", err, err)
			}
			if string(e.Body) != tt.body {
				t.Errorf("body = %q, want %q", e.Body, tt.body)
			}
		})
	}
}

func TestNewOutputSchema_RejectsBadDefinition(t *testing.T) {
	_, err := NewOutputSchema("broken", "", map[string]any{"type": 5})
	if err == nil {
		t.Fatal("expected compile error")
	}
}

func TestOutputSchemaJSON(t *testing.T) {
	s := MustOutputSchema("tiny", "", map[string]any{"type": "string"})
	if got := string(s.JSON()); got != `{"type":"string"}` {
		t.Fatalf("JSON() = %s", got)
	}
}
