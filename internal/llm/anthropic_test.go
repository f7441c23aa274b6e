package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func anthropicServer(t *testing.T, status int, body any, seen *map[string]any) Provider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	p, err := NewAnthropic(VendorConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewAnthropic: %v", err)
	}
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropic_Complete(t *testing.T) {
	var sent map[string]any
	p := anthropicServer(t, http.StatusOK,
		anthropicMessage(`{"results":[{"label":"dengue","confidence":72.5}]}`, "end_turn"), &sent)

	c, err := p.Complete(context.Background(), Request{
		System: "You are a clinical triage assistant.",
		Prompt: "Reported symptoms:\n- High Fever (high_fever)",
		Output: rankedSchema,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Usage.Input != 50 || c.Usage.Output != 30 {
		t.Errorf("usage = %+v", c.Usage)
	}
	if c.Model != "claude-haiku-4-5-20251001" || c.Truncated {
		t.Errorf("completion = %+v", c)
	}
	if p.Model() != "claude-haiku-4-5-20251001" {
		t.Errorf("model = %q", p.Model())
	}

	if sent["max_tokens"] != float64(defaultMaxTokens) {
		t.Errorf("max_tokens = %v", sent["max_tokens"])
	}
	msgs, _ := sent["messages"].([]any)
	if len(msgs) != 1 || !strings.Contains(mustJSON(t, msgs[0]), "high_fever") {
		t.Errorf("messages = %v", sent["messages"])
	}
}

func TestAnthropic_Errors(t *testing.T) {
	errBody := func(typ string) map[string]any {
		return map[string]any{"type": "error", "error": map[string]any{"type": typ, "message": "nope"}}
	}
	tests := []struct {
		name   string
		status int
		body   any
		want   Kind
	}{
		{"rate limited", http.StatusTooManyRequests, errBody("rate_limit_error"), RateLimited},
		{"server error", http.StatusInternalServerError, errBody("api_error"), Unavailable},
		{"truncated", http.StatusOK, anthropicMessage(`{"results":[{"lab`, "max_tokens"), Truncated},
		{"prose", http.StatusOK, anthropicMessage(`I think it is dengue.`, "end_turn"), InvalidOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := anthropicServer(t, tt.status, tt.body, nil)
			_, err := p.Complete(context.Background(), Request{Prompt: "test", Output: rankedSchema})
			k, ok := KindOf(err)
			if !ok || k != tt.want {
				t.Fatalf("expected %s, got %T (%v)", tt.want, err, err)
			}
			if !strings.HasPrefix(err.Error(), "anthropic: ") {
				t.Errorf("vendor missing from %q", err)
			}
		})
	}
}

func TestNewAnthropic_RequiresKey(t *testing.T) {
	if _, err := NewAnthropic(VendorConfig{}); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
