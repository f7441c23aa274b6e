package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// Reply is one scripted answer.
type Reply struct {
	Body      json.RawMessage
	Usage     Usage
	Truncated bool
	Err       error
}

// Fake is a scripted Provider. Replies are served in order and go through
// the same output checks as a real vendor, so a malformed Body surfaces
// as InvalidOutput.
type Fake struct {
	mu       sync.Mutex
	replies  []Reply
	requests []Request
}

// NewFake returns a Fake that answers with replies.
func NewFake(replies ...Reply) *Fake {
	return &Fake{replies: replies}
}

// Queue appends replies.
func (f *Fake) Queue(replies ...Reply) {
	f.mu.Lock()
	f.replies = append(f.replies, replies...)
	f.mu.Unlock()
}

// Requests returns every request seen so far.
func (f *Fake) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

func (f *Fake) Model() string { return "fake" }

func (f *Fake) Complete(ctx context.Context, req Request) (*Completion, error) {
	return (&vendorClient{vendor: "fake", model: "fake", api: f}).Complete(ctx, req)
}

func (f *Fake) send(_ context.Context, model string, req Request) (*Completion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if len(f.replies) == 0 {
		return nil, &Error{Kind: Unavailable, Err: errors.New("no scripted reply left")}
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	return &Completion{Body: r.Body, Model: model, Usage: r.Usage, Truncated: r.Truncated}, nil
}
