package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a provider failure.
type Kind int

const (
	// Unavailable covers transport failures, timeouts and vendor 5xx.
	Unavailable Kind = iota
	// RateLimited is a vendor 429.
	RateLimited
	// InvalidOutput means the answer did not match the requested schema.
	InvalidOutput
	// Truncated means the answer hit MaxTokens before it was complete.
	Truncated
)

func (k Kind) String() string {
	switch k {
	case RateLimited:
		return "rate_limited"
	case InvalidOutput:
		return "invalid_output"
	case Truncated:
		return "truncated"
	default:
		return "unavailable"
	}
}

// Error is the only error type providers return.
type Error struct {
	Kind   Kind
	Vendor string
	Status int             // HTTP status, when the vendor answered
	Body   json.RawMessage // the model's answer, for InvalidOutput and Truncated
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Vendor != "" {
		msg = e.Vendor + ": " + msg
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of err if it carries an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// statusError classifies a vendor HTTP failure.
func statusError(vendor string, status int, err error) *Error {
	kind := Unavailable
	if status == http.StatusTooManyRequests {
		kind = RateLimited
	}
	return &Error{Kind: kind, Vendor: vendor, Status: status, Err: err}
}
