package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"text/template"

	"github.com/abhisek/symcheck/internal/diagnosis"
	"github.com/abhisek/symcheck/internal/llm"
	"github.com/abhisek/symcheck/internal/symptom"
)

// LLMConfig holds configuration for the LLM backend.
type LLMConfig struct {
	// Conditions are the single conditions the model may name. Every
	// pair is also offered as a co-occurrence label.
	Conditions  []string
	MaxTokens   int
	Temperature float64
}

// DefaultLLMConfig returns the conditions the reference service ranks.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Conditions:  []string{"dengue", "malaria", "typhoid", "covid19"},
		MaxTokens:   512,
		Temperature: 0.2,
	}
}

// Validate rejects condition names that would read as co-occurrences.
func (c LLMConfig) Validate() error {
	if len(c.Conditions) == 0 {
		return fmt.Errorf("llm backend needs at least one condition")
	}
	for _, name := range c.Conditions {
		if name == "" || diagnosis.IsCoOccurrence(name) {
			return fmt.Errorf("llm condition %q must be non-empty and must not contain %q", name, diagnosis.Separator)
		}
	}
	return nil
}

// LLMBackend asks a language model for a ranked diagnosis.
type LLMBackend struct {
	provider llm.Provider
	cfg      LLMConfig
	labels   []string
	allowed  map[string]struct{}
}

// NewLLMBackend creates a backend over provider.
func NewLLMBackend(provider llm.Provider, cfg LLMConfig) *LLMBackend {
	labels := candidateLabels(cfg.Conditions)
	allowed := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		allowed[l] = struct{}{}
	}
	return &LLMBackend{provider: provider, cfg: cfg, labels: labels, allowed: allowed}
}

func (b *LLMBackend) Name() string { return KindLLM }

// candidateLabels lists each condition followed by every pair joined
// with the co-occurrence separator, in configuration order.
func candidateLabels(conditions []string) []string {
	labels := append([]string(nil), conditions...)
	for i := range conditions {
		for j := i + 1; j < len(conditions); j++ {
			labels = append(labels, conditions[i]+diagnosis.Separator+conditions[j])
		}
	}
	return labels
}

type llmOutput struct {
	Results []struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	} `json:"results"`
}

func (b *LLMBackend) Diagnose(ctx context.Context, symptoms []symptom.ID) (*diagnosis.Response, error) {
	if len(symptoms) == 0 {
		return nil, diagnosis.ErrNoSymptoms
	}
	ctx = llm.WithPurpose(ctx, "diagnosis")

	prompt, err := buildDiagnosisPrompt(symptoms, b.labels)
	if err != nil {
		return nil, fmt.Errorf("build diagnosis prompt: %w", err)
	}

	resp, err := b.provider.Complete(ctx, llm.Request{
		System:      diagnosisSystemPrompt,
		Prompt:      prompt,
		Output:      resultsSchema,
		MaxTokens:   b.cfg.MaxTokens,
		Temperature: b.cfg.Temperature,
	})
	if err != nil {
		var le *llm.Error
		if errors.As(err, &le) && (le.Kind == llm.InvalidOutput || le.Kind == llm.Truncated) {
			return nil, &diagnosis.MalformedResponseError{Body: le.Body, Err: err}
		}
		return nil, &diagnosis.TransportError{Err: err}
	}

	var out llmOutput
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, &diagnosis.MalformedResponseError{Body: resp.Body, Err: err}
	}

	// Labels outside the offered set are treated as no match.
	results := make([]diagnosis.RawResult, 0, len(out.Results))
	for _, r := range out.Results {
		if _, ok := b.allowed[r.Label]; !ok {
			continue
		}
		results = append(results, diagnosis.RawResult{Label: r.Label, Confidence: r.Confidence})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	// Re-encode as the bare wire shape so range checks match the HTTP path.
	body, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("encode results: %w", err)
	}
	return diagnosis.DecodeResponse(body)
}

var resultsSchema = llm.MustOutputSchema(
	"diagnosis-results",
	"Ranked likelihood of each candidate condition for a symptom set",
	map[string]any{
		"type": "object",
		"properties": map[string]any{
			"results": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"label": map[string]any{
							"type":        "string",
							"description": "One of the candidate labels, verbatim",
						},
						"confidence": map[string]any{
							"type":        "number",
							"description": "Likelihood as a percentage between 0 and 100",
						},
					},
					"required":             []any{"label", "confidence"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"results"},
		"additionalProperties": false,
	},
)

const diagnosisSystemPrompt = `You are a clinical triage assistant for tropical fevers. Given a patient's reported symptoms, estimate how likely each candidate condition is.

Instructions:
- Only use labels from the candidate list. Do NOT invent new labels.
- A label joining two conditions with "_" means both are present together (co-infection).
- Give each confidence as a percentage from 0 to 100.
- Order results from most to least likely.
- Omit candidates you consider implausible.`

var diagnosisUserTemplate = template.Must(template.New("diagnosis").Funcs(template.FuncMap{
	"label": symptom.Label,
}).Parse(`Reported symptoms:
{{range .Symptoms}}- {{label .}} ({{.}})
{{end}}
Candidate labels:
{{range .Labels}}- {{.}}
{{end}}`))

func buildDiagnosisPrompt(symptoms []symptom.ID, labels []string) (string, error) {
	var buf bytes.Buffer
	err := diagnosisUserTemplate.Execute(&buf, struct {
		Symptoms []symptom.ID
		Labels   []string
	}{symptoms, labels})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
