package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type geminiAPI struct {
	client *genai.Client
}

// NewGemini returns a Provider backed by the Gemini API.
func NewGemini(ctx context.Context, cfg VendorConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &vendorClient{
		vendor: "gemini",
		model:  resolveModel(cfg.Model),
		api:    &geminiAPI{client: client},
	}, nil
}

func (a *geminiAPI) send(ctx context.Context, model string, req Request) (*Completion, error) {
	conf := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens(req)),
	}
	if req.Temperature > 0 {
		conf.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.System != "" {
		conf.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Output != nil {
		conf.ResponseMIMEType = "application/json"
		conf.ResponseSchema = toGenaiSchema(req.Output.Definition)
	}

	result, err := a.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), conf)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, statusError("gemini", apiErr.Code, err)
		}
		return nil, err
	}

	out := &Completion{Body: []byte(result.Text()), Model: model}
	if u := result.UsageMetadata; u != nil {
		out.Usage = Usage{Input: int(u.PromptTokenCount), Output: int(u.CandidatesTokenCount)}
	}
	if len(result.Candidates) > 0 && result.Candidates[0].FinishReason == "MAX_TOKENS" {
		out.Truncated = true
	}
	return out, nil
}

// toGenaiSchema converts the subset of JSON Schema the Gemini API
// accepts. Keywords it has no field for are dropped; the answer is still
// checked against the full schema afterwards.
func toGenaiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{}
	for key, v := range def {
		switch key {
		case "type":
			if t, ok := v.(string); ok {
				s.Type = genai.Type(strings.ToUpper(t))
			}
		case "description":
			s.Description, _ = v.(string)
		case "items":
			if items, ok := v.(map[string]any); ok {
				s.Items = toGenaiSchema(items)
			}
		case "properties":
			props, _ := v.(map[string]any)
			s.Properties = make(map[string]*genai.Schema, len(props))
			for name, p := range props {
				if pm, ok := p.(map[string]any); ok {
					s.Properties[name] = toGenaiSchema(pm)
				}
			}
		case "required":
			s.Required = stringList(v)
		case "enum":
			s.Enum = stringList(v)
		case "minimum":
			s.Minimum = number(v)
		case "maximum":
			s.Maximum = number(v)
		}
	}
	return s
}

func stringList(v any) []string {
	var out []string
	switch list := v.(type) {
	case []string:
		out = append(out, list...)
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func number(v any) *float64 {
	switch n := v.(type) {
	case int:
		f := float64(n)
		return &f
	case float64:
		return &n
	}
	return nil
}
