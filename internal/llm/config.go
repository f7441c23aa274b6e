package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// VendorConfig is the connection setting shared by every vendor.
// BaseURL is optional and points the client at a proxy, a compatible API
// or a test server.
type VendorConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Config selects a provider ("anthropic", "openai", "gemini",
// "openrouter" or "fake") and holds the settings for each vendor.
type Config struct {
	Provider   string
	Anthropic  VendorConfig
	OpenAI     VendorConfig
	Gemini     VendorConfig
	OpenRouter VendorConfig

	// Timeout bounds a single request. Zero disables the bound.
	Timeout time.Duration
}

// vendor describes where a vendor's settings live. Order is the
// discovery priority.
type vendor struct {
	name     string
	model    string // default model
	envKey   string // the vendor's own key variable, used for discovery
	settings func(*Config) *VendorConfig
}

var vendors = []vendor{
	{"gemini", "gemini-flash", "GEMINI_API_KEY", func(c *Config) *VendorConfig { return &c.Gemini }},
	{"openai", "gpt-4o-mini", "OPENAI_API_KEY", func(c *Config) *VendorConfig { return &c.OpenAI }},
	{"anthropic", "claude-haiku", "ANTHROPIC_API_KEY", func(c *Config) *VendorConfig { return &c.Anthropic }},
	{"openrouter", "google/gemini-2.0-flash-exp", "OPENROUTER_API_KEY", func(c *Config) *VendorConfig { return &c.OpenRouter }},
}

func lookupVendor(name string) (vendor, bool) {
	for _, v := range vendors {
		if v.name == name {
			return v, true
		}
	}
	return vendor{}, false
}

// envName is the SYMCHECK_ variable holding field for vendor v.
func (v vendor) envName(field string) string {
	return "SYMCHECK_" + strings.ToUpper(v.name) + "_" + field
}

// DefaultConfig selects Anthropic with each vendor's default model and a
// 30 second timeout.
func DefaultConfig() Config {
	cfg := Config{Provider: "anthropic", Timeout: 30 * time.Second}
	for _, v := range vendors {
		v.settings(&cfg).Model = v.model
	}
	return cfg
}

// ConfigFromEnv overlays SYMCHECK_LLM_PROVIDER, SYMCHECK_LLM_TIMEOUT and
// SYMCHECK_<VENDOR>_{API_KEY,MODEL,BASE_URL} on the defaults.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	overlay := func(dst *string, key string) {
		if val := os.Getenv(key); val != "" {
			*dst = val
		}
	}

	overlay(&cfg.Provider, "SYMCHECK_LLM_PROVIDER")
	for _, v := range vendors {
		s := v.settings(&cfg)
		overlay(&s.APIKey, v.envName("API_KEY"))
		overlay(&s.Model, v.envName("MODEL"))
		overlay(&s.BaseURL, v.envName("BASE_URL"))
	}

	if raw := os.Getenv("SYMCHECK_LLM_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, fmt.Errorf("SYMCHECK_LLM_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// DiscoverConfig returns a Config for the first vendor whose standard key
// variable (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY,
// OPENROUTER_API_KEY) is set.
func DiscoverConfig() (Config, bool) {
	for _, v := range vendors {
		key := os.Getenv(v.envKey)
		if key == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = v.name
		v.settings(&cfg).APIKey = key
		return cfg, true
	}
	return Config{}, false
}

// Validate checks the selected provider is known and has an API key.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("LLM timeout must not be negative, got %s", c.Timeout)
	}
	if c.Provider == "fake" {
		return nil
	}
	v, ok := lookupVendor(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if v.settings(&c).APIKey == "" {
		return fmt.Errorf("%s is required for the %s provider", v.envName("API_KEY"), c.Provider)
	}
	return nil
}
