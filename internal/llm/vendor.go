package llm

import (
	"context"
	"errors"
)

// roundTripper performs one call against a vendor API. It reports
// truncation but leaves schema checks to vendorClient.
type roundTripper interface {
	send(ctx context.Context, model string, req Request) (*Completion, error)
}

// vendorClient is the Provider every vendor adapter is exposed through.
type vendorClient struct {
	vendor string
	model  string
	api    roundTripper
}

func (c *vendorClient) Model() string { return c.model }

func (c *vendorClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	out, err := c.api.send(ctx, c.model, req)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			if e.Vendor == "" {
				e.Vendor = c.vendor
			}
			return nil, e
		}
		return nil, &Error{Kind: Unavailable, Vendor: c.vendor, Err: err}
	}
	if out.Model == "" {
		out.Model = c.model
	}
	if req.Output == nil {
		return out, nil
	}

	if out.Truncated {
		return nil, &Error{Kind: Truncated, Vendor: c.vendor, Body: out.Body}
	}
	if err := req.Output.Check(out.Body); err != nil {
		err.(*Error).Vendor = c.vendor
		return nil, err
	}
	return out, nil
}

// modelAliases lets configuration name a model family instead of a
// dated model ID. Unknown names are sent as given.
var modelAliases = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
	"gpt-4o":        "gpt-4o",
	"gpt-4o-mini":   "gpt-4o-mini",
	"gemini-flash":  "gemini-2.0-flash",
	"gemini-pro":    "gemini-2.0-pro",
}

func resolveModel(name string) string {
	if id, ok := modelAliases[name]; ok {
		return id
	}
	return name
}
