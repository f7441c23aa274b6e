package backend

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/symcheck/internal/diagnosis"
	"github.com/abhisek/symcheck/internal/llm"
	"github.com/abhisek/symcheck/internal/symptom"
)

func TestCandidateLabels(t *testing.T) {
	got := candidateLabels([]string{"dengue", "malaria", "typhoid"})
	assert.Equal(t, []string{
		"dengue", "malaria", "typhoid",
		"dengue_malaria", "dengue_typhoid", "malaria_typhoid",
	}, got)
}

func TestLLMBackend_RanksAndFilters(t *testing.T) {
	fake := llm.NewFake(llm.Reply{
		Body: json.RawMessage(`{"results":[
			{"label":"malaria","confidence":30},
			{"label":"dengue","confidence":82.5},
			{"label":"ebola","confidence":99},
			{"label":"dengue_malaria","confidence":47}
		]}`),
	})
	b := NewLLMBackend(fake, DefaultLLMConfig())

	resp, err := b.Diagnose(context.Background(), symptom.IDs("high_fever", "retro_orbital_pain"))
	require.NoError(t, err)
	assert.Equal(t, []diagnosis.RawResult{
		{Label: "dengue", Confidence: 82.5},
		{Label: "dengue_malaria", Confidence: 47},
		{Label: "malaria", Confidence: 30},
	}, resp.Results)

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	require.NotNil(t, reqs[0].Output)
	assert.Equal(t, "diagnosis-results", reqs[0].Output.Name)
	assert.Contains(t, reqs[0].Prompt, "- Retro Orbital Pain (retro_orbital_pain)")
	assert.Contains(t, reqs[0].Prompt, "- typhoid_covid19")
}

func TestLLMBackend_EmptySelection(t *testing.T) {
	fake := llm.NewFake()
	b := NewLLMBackend(fake, DefaultLLMConfig())

	_, err := b.Diagnose(context.Background(), nil)
	assert.ErrorIs(t, err, diagnosis.ErrNoSymptoms)
	assert.Empty(t, fake.Requests())
}

func TestLLMBackend_ProviderFailureIsTransport(t *testing.T) {
	fake := llm.NewFake(llm.Reply{Err: &llm.Error{Kind: llm.RateLimited, Status: 429}})
	b := NewLLMBackend(fake, DefaultLLMConfig())

	_, err := b.Diagnose(context.Background(), symptom.IDs("cough"))
	var te *diagnosis.TransportError
	require.True(t, errors.As(err, &te), "got %v", err)
	kind, ok := llm.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, llm.RateLimited, kind)
}

func TestLLMBackend_InvalidOutputIsMalformed(t *testing.T) {
	tests := []struct {
		name string
		reply llm.Reply
	}{
		{"schema failure", llm.Reply{Body: json.RawMessage(`{"results":[{"label":"dengue"}]}`)}},
		{"not json", llm.Reply{Body: json.RawMessage(`oops`)}},
		{"truncated", llm.Reply{Body: json.RawMessage(`{"results":[{"lab`), Truncated: true}},
		{"confidence out of range", llm.Reply{Body: json.RawMessage(`{"results":[{"label":"dengue","confidence":140}]}`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewLLMBackend(llm.NewFake(tt.reply), DefaultLLMConfig())
			_, err := b.Diagnose(context.Background(), symptom.IDs("cough"))
			assert.True(t, diagnosis.IsMalformed(err), "got %v", err)
		})
	}
}

func TestLLMBackend_NoPlausibleResults(t *testing.T) {
	fake := llm.NewFake(llm.Reply{Body: json.RawMessage(`{"results":[]}`)})
	b := NewLLMBackend(fake, DefaultLLMConfig())

	resp, err := b.Diagnose(context.Background(), symptom.IDs("cough"))
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.True(t, diagnosis.Classify(resp.Results).IsEmpty())
}
