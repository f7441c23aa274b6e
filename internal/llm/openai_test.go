package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type chatCapture struct {
	path    string
	headers http.Header
	body    map[string]any
}

func chatServer(t *testing.T, status int, reply any) (*httptest.Server, *chatCapture) {
	t.Helper()
	got := &chatCapture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.headers = r.Header.Clone()
		json.NewDecoder(r.Body).Decode(&got.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func chatReply(content, finish string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 20, "completion_tokens": 8, "total_tokens": 28},
	}
}

func TestOpenAI_Complete(t *testing.T) {
	srv, got := chatServer(t, http.StatusOK, chatReply(`{"results":[{"label":"malaria","confidence":40}]}`, "stop"))
	p, err := NewOpenAI(VendorConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAI: %v", err)
	}

	c, err := p.Complete(context.Background(), Request{
		System: "triage",
		Prompt: "symptoms",
		Output: rankedSchema,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Model != "gpt-4o-mini-2024-07-18" || c.Usage.Total() != 28 {
		t.Errorf("completion = %+v", c)
	}

	if got.path != "/v1/chat/completions" {
		t.Errorf("path = %q", got.path)
	}
	if auth := got.headers.Get("Authorization"); auth != "Bearer sk-test" {
		t.Errorf("authorization = %q", auth)
	}
	msgs, _ := got.body["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages = %v", got.body["messages"])
	}
	format, _ := got.body["response_format"].(map[string]any)
	schema, _ := format["json_schema"].(map[string]any)
	if format["type"] != "json_schema" || schema["name"] != "ranked" || schema["strict"] != true {
		t.Errorf("response_format = %v", got.body["response_format"])
	}
}

func TestOpenAI_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		reply  any
		want   Kind
	}{
		{"rate limited", http.StatusTooManyRequests,
			map[string]any{"error": map[string]any{"message": "slow down", "type": "requests", "code": "rate_limit_exceeded"}},
			RateLimited},
		{"server error", http.StatusBadGateway,
			map[string]any{"error": map[string]any{"message": "upstream", "type": "server_error"}},
			Unavailable},
		{"length", http.StatusOK, chatReply(`{"results":[`, "length"), Truncated},
		{"no choices", http.StatusOK, map[string]any{"id": "x", "choices": []any{}}, InvalidOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := chatServer(t, tt.status, tt.reply)
			p, err := NewOpenAI(VendorConfig{APIKey: "sk-test", Model: "gpt-4o", BaseURL: srv.URL})
			if err != nil {
				t.Fatalf("NewOpenAI: %v", err)
			}
			_, err = p.Complete(context.Background(), Request{Prompt: "x", Output: rankedSchema})
			if k, ok := KindOf(err); !ok || k != tt.want {
				t.Fatalf("expected %s, got %T (%v)", tt.want, err, err)
			}
		})
	}
}

func TestOpenRouter(t *testing.T) {
	srv, got := chatServer(t, http.StatusOK, chatReply(`{"results":[]}`, "stop"))
	p, err := NewOpenRouter(VendorConfig{
		APIKey:  "sk-or-test",
		Model:   "anthropic/claude-3-haiku",
		BaseURL: srv.URL,
	})
	if err != nil {
		t.Fatalf("NewOpenRouter: %v", err)
	}
	if p.Model() != "anthropic/claude-3-haiku" {
		t.Errorf("model = %q, want vendor-prefixed ID unchanged", p.Model())
	}

	if _, err := p.Complete(context.Background(), Request{Prompt: "x", Output: rankedSchema}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.headers.Get("X-Title") != "symcheck" || got.headers.Get("HTTP-Referer") == "" {
		t.Errorf("app headers missing: %v", got.headers)
	}
	if got.body["model"] != "anthropic/claude-3-haiku" {
		t.Errorf("model sent = %v", got.body["model"])
	}

	if _, err := NewOpenRouter(VendorConfig{Model: "x"}); err == nil {
		t.Fatal("expected error for missing key")
	}
}
