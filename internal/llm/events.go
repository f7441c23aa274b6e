package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/symcheck/internal/store"
)

type purposeKey struct{}

// WithPurpose labels calls made with ctx, e.g. "diagnosis".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "unknown"
}

type recorder struct {
	next   Provider
	vendor string
	events store.EventRepo
	now    func() time.Time
}

// WithEvents records every call made through p as an LLM request event.
// A failed append is reported on stderr and never fails the call.
func WithEvents(p Provider, vendor string, events store.EventRepo) Provider {
	return &recorder{next: p, vendor: vendor, events: events, now: time.Now}
}

func (r *recorder) Model() string { return r.next.Model() }

func (r *recorder) Complete(ctx context.Context, req Request) (*Completion, error) {
	start := r.now()
	c, err := r.next.Complete(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    r.vendor,
		Model:       r.next.Model(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   r.now().Sub(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if c != nil {
		data.Model = c.Model
		data.InputTokens = c.Usage.Input
		data.OutputTokens = c.Usage.Output
		data.ResponseBody = string(c.Body)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		var e *Error
		if errors.As(err, &e) && len(e.Body) > 0 {
			data.ResponseBody = string(e.Body)
		}
	}

	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}
	if aerr := r.events.AppendLLMRequest(ctx, data); aerr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record LLM request: %v\n", aerr)
	}
	return c, err
}

// transcript renders req for the event log.
func transcript(req Request) string {
	var b strings.Builder
	section := func(title, body string) {
		fmt.Fprintf(&b, "--- %s ---\n%s\n", title, strings.TrimRight(body, "\n"))
	}
	if req.System != "" {
		section("system", req.System)
	}
	section("user", req.Prompt)
	if req.Output != nil {
		section("output "+req.Output.Name, string(req.Output.JSON()))
	}
	return b.String()
}
