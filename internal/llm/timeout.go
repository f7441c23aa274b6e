package llm

import (
	"context"
	"errors"
	"time"
)

type deadline struct {
	next    Provider
	timeout time.Duration
}

// WithTimeout bounds each call through p. An expired bound is reported
// as Unavailable; a caller's own cancellation passes through unchanged.
// Calls are never retried.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &deadline{next: p, timeout: timeout}
}

func (d *deadline) Model() string { return d.next.Model() }

func (d *deadline) Complete(ctx context.Context, req Request) (*Completion, error) {
	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	c, err := d.next.Complete(callCtx, req)
	if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return nil, &Error{Kind: Unavailable, Err: callCtx.Err()}
	}
	return c, err
}
