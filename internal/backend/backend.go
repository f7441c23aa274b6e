// Package backend sends symptom selections to a diagnosis service and
// returns the normalized response.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/abhisek/symcheck/internal/diagnosis"
	"github.com/abhisek/symcheck/internal/llm"
	"github.com/abhisek/symcheck/internal/store"
	"github.com/abhisek/symcheck/internal/symptom"
)

// Backend produces a ranked diagnosis for a symptom set.
type Backend interface {
	// Diagnose returns the service response for symptoms. Errors are
	// diagnosis.ErrNoSymptoms, *diagnosis.TransportError or
	// *diagnosis.MalformedResponseError.
	Diagnose(ctx context.Context, symptoms []symptom.ID) (*diagnosis.Response, error)

	// Name identifies the backend in events ("http", "llm").
	Name() string
}

// Request is the JSON body posted to a diagnosis service.
type Request struct {
	Symptoms []symptom.ID `json:"symptoms"`
}

const (
	KindHTTP = "http"
	KindLLM  = "llm"

	DefaultEndpoint = "http://localhost:5000/api/diagnose"
)

// Config selects and configures a Backend.
type Config struct {
	Kind     string
	Endpoint string        // KindHTTP only
	Timeout  time.Duration // per request; 0 = no bound
	LLM      LLMConfig     // KindLLM only
}

// DefaultConfig returns a Config for the local HTTP service.
func DefaultConfig() Config {
	return Config{
		Kind:     KindHTTP,
		Endpoint: DefaultEndpoint,
		LLM:      DefaultLLMConfig(),
	}
}

// ConfigFromEnv overlays SYMCHECK_BACKEND, SYMCHECK_ENDPOINT,
// SYMCHECK_TIMEOUT and SYMCHECK_LLM_CONDITIONS (comma-separated) on the
// defaults.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if v := os.Getenv("SYMCHECK_BACKEND"); v != "" {
		cfg.Kind = v
	}
	if v := os.Getenv("SYMCHECK_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("SYMCHECK_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("SYMCHECK_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("SYMCHECK_LLM_CONDITIONS"); v != "" {
		var conds []string
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				conds = append(conds, c)
			}
		}
		cfg.LLM.Conditions = conds
	}
	return cfg, nil
}

// Validate checks the selected backend has what it needs.
func (c Config) Validate() error {
	switch c.Kind {
	case KindHTTP:
		if c.Endpoint == "" {
			return fmt.Errorf("endpoint is required for the http backend")
		}
	case KindLLM:
		if err := c.LLM.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown backend: %q", c.Kind)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// New builds the Backend selected by cfg. LLM calls are recorded in
// eventRepo when it is non-nil.
func New(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Kind {
	case KindLLM:
		provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
		if err != nil {
			return nil, fmt.Errorf("LLM provider not configured: %w", err)
		}
		if cfg.Timeout > 0 {
			provider = llm.WithTimeout(provider, cfg.Timeout)
		}
		return NewLLMBackend(provider, cfg.LLM), nil
	default:
		return NewHTTPBackend(cfg.Endpoint, &http.Client{Timeout: cfg.Timeout}), nil
	}
}
