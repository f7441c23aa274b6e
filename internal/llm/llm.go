// Package llm talks to hosted language models that can answer in a
// caller-supplied JSON shape. Each vendor SDK sits behind Provider; the
// diagnosis backend only ever sees validated JSON bodies.
package llm

import (
	"context"
	"encoding/json"
)

// Provider completes a single-turn prompt.
type Provider interface {
	// Complete sends req and returns the model's answer. When req.Output
	// is set, the body has already been checked against it.
	Complete(ctx context.Context, req Request) (*Completion, error)

	// Model names the model requests are sent to.
	Model() string
}

// Request is one prompt. Conversations are never needed here, so there
// is exactly one user turn.
type Request struct {
	System string
	Prompt string

	// Output constrains the answer to a JSON document. Nil asks for
	// free text.
	Output *OutputSchema

	MaxTokens   int
	Temperature float64
}

// Completion is a model answer.
type Completion struct {
	Body      json.RawMessage
	Model     string
	Usage     Usage
	Truncated bool // generation stopped at MaxTokens
}

// Usage counts tokens for one call.
type Usage struct {
	Input  int
	Output int
}

func (u Usage) Total() int { return u.Input + u.Output }

const defaultMaxTokens = 1024

func maxTokens(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}
