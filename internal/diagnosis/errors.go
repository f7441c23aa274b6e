package diagnosis

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoSymptoms is returned when a diagnosis is requested with an empty
// selection. No request is sent.
var ErrNoSymptoms = errors.New("no symptoms selected")

// TransportError indicates the diagnosis request failed or the service
// answered with a non-success status.
type TransportError struct {
	StatusCode int    // 0 when no HTTP response was received
	Message    string // service-provided message, if any
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("diagnosis service returned %d: %s", e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("diagnosis service returned %d", e.StatusCode)
	case e.Message != "":
		return fmt.Sprintf("diagnosis service error: %s", e.Message)
	case e.Err != nil:
		return fmt.Sprintf("diagnosis request failed: %v", e.Err)
	default:
		return "diagnosis request failed"
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError indicates the service answered with a body that
// does not match either accepted response shape, or that contains an
// invalid entry. The whole response is rejected.
type MalformedResponseError struct {
	Body json.RawMessage
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed diagnosis response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ErrorKind names the category of err for event logging:
// "no-symptoms", "transport", "malformed" or "other".
func ErrorKind(err error) string {
	var te *TransportError
	var me *MalformedResponseError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoSymptoms):
		return "no-symptoms"
	case errors.As(err, &me):
		return "malformed"
	case errors.As(err, &te):
		return "transport"
	default:
		return "other"
	}
}
