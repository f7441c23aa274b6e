package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestToGenaiSchema(t *testing.T) {
	s := toGenaiSchema(rankedSchema.Definition)

	if s.Type != genai.TypeObject {
		t.Fatalf("type = %s", s.Type)
	}
	results := s.Properties["results"]
	if results == nil || results.Type != genai.TypeArray {
		t.Fatalf("results = %+v", results)
	}
	item := results.Items
	if item.Type != genai.TypeObject || len(item.Required) != 2 {
		t.Fatalf("item = %+v", item)
	}
	conf := item.Properties["confidence"]
	if conf.Type != genai.TypeNumber {
		t.Errorf("confidence type = %s", conf.Type)
	}
	if conf.Minimum == nil || *conf.Minimum != 0 || conf.Maximum == nil || *conf.Maximum != 100 {
		t.Errorf("confidence bounds = %v..%v", conf.Minimum, conf.Maximum)
	}
	if len(s.Required) != 1 || s.Required[0] != "results" {
		t.Errorf("required = %v", s.Required)
	}
}

func TestToGenaiSchema_Enum(t *testing.T) {
	s := toGenaiSchema(map[string]any{"type": "string", "enum": []string{"dengue", "malaria"}})
	if s.Type != genai.TypeString || len(s.Enum) != 2 {
		t.Fatalf("schema = %+v", s)
	}
}

func TestGemini_Complete(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": `{"results":[{"label":"typhoid","confidence":55}]}`}},
				},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     40,
				"candidatesTokenCount": 12,
				"totalTokenCount":      52,
			},
		})
	}))
	t.Cleanup(srv.Close)

	p, err := NewGemini(context.Background(), VendorConfig{APIKey: "g-test", Model: "gemini-flash", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewGemini: %v", err)
	}
	c, err := p.Complete(context.Background(), Request{Prompt: "symptoms", Output: rankedSchema})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(c.Body), "typhoid") || c.Usage.Input != 40 || c.Usage.Output != 12 {
		t.Errorf("completion = %+v", c)
	}
	if !strings.Contains(path, "gemini-2.0-flash:generateContent") {
		t.Errorf("path = %q", path)
	}
}
