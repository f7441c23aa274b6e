package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type anthropicAPI struct {
	client anthropic.Client
}

// NewAnthropic returns a Provider backed by the Anthropic Messages API.
func NewAnthropic(cfg VendorConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &vendorClient{
		vendor: "anthropic",
		model:  resolveModel(cfg.Model),
		api:    &anthropicAPI{client: anthropic.NewClient(opts...)},
	}, nil
}

func (a *anthropicAPI) send(ctx context.Context, model string, req Request) (*Completion, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens(req)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.Output != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{Schema: req.Output.Definition},
		}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, statusError("anthropic", apiErr.StatusCode, err)
		}
		return nil, err
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, &Error{Kind: InvalidOutput, Err: errors.New("answer has no text block")}
	}

	return &Completion{
		Body:      []byte(text.String()),
		Model:     string(msg.Model),
		Usage:     Usage{Input: int(msg.Usage.InputTokens), Output: int(msg.Usage.OutputTokens)},
		Truncated: msg.StopReason == "max_tokens",
	}, nil
}
