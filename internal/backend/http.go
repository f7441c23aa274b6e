package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/abhisek/symcheck/internal/diagnosis"
	"github.com/abhisek/symcheck/internal/symptom"
)

// MaxResponseBytes caps how much of a service response is read.
const MaxResponseBytes = 1 << 20

// HTTPBackend posts symptom sets to a JSON diagnosis endpoint. Failed
// requests are reported, never retried.
type HTTPBackend struct {
	endpoint string
	client   *http.Client
}

// NewHTTPBackend creates a backend posting to endpoint. A nil client uses
// http.DefaultClient.
func NewHTTPBackend(endpoint string, client *http.Client) *HTTPBackend {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPBackend{endpoint: endpoint, client: client}
}

func (b *HTTPBackend) Name() string { return KindHTTP }

// Endpoint returns the URL requests are posted to.
func (b *HTTPBackend) Endpoint() string { return b.endpoint }

func (b *HTTPBackend) Diagnose(ctx context.Context, symptoms []symptom.ID) (*diagnosis.Response, error) {
	if len(symptoms) == 0 {
		return nil, diagnosis.ErrNoSymptoms
	}

	payload, err := json.Marshal(Request{Symptoms: symptoms})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &diagnosis.TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, &diagnosis.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return nil, &diagnosis.TransportError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &diagnosis.TransportError{
			StatusCode: resp.StatusCode,
			Message:    envelopeMessage(body),
		}
	}

	if len(body) > MaxResponseBytes {
		return nil, &diagnosis.MalformedResponseError{
			Err: fmt.Errorf("response body exceeds %d bytes", MaxResponseBytes),
		}
	}

	return diagnosis.DecodeResponse(body)
}

// envelopeMessage extracts "message" (or "error") from a JSON error body.
func envelopeMessage(body []byte) string {
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}
