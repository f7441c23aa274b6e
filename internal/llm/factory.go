package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/symcheck/internal/store"
)

// NewProvider builds the provider cfg selects. Calls pass through the
// timeout first, then the event recorder when events is non-nil.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case "anthropic":
		p, err = NewAnthropic(cfg.Anthropic)
	case "openai":
		p, err = NewOpenAI(cfg.OpenAI)
	case "gemini":
		p, err = NewGemini(ctx, cfg.Gemini)
	case "openrouter":
		p, err = NewOpenRouter(cfg.OpenRouter)
	case "fake":
		p = NewFake()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if events != nil {
		p = WithEvents(p, cfg.Provider, events)
	}
	return WithTimeout(p, cfg.Timeout), nil
}

// NewProviderFromEnv builds a provider from SYMCHECK_* variables, or from
// a discovered vendor key when SYMCHECK_LLM_PROVIDER is unset.
func NewProviderFromEnv(ctx context.Context, events store.EventRepo) (Provider, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		discovered.Timeout = cfg.Timeout
		cfg = discovered
	}
	return NewProvider(ctx, cfg, events)
}
