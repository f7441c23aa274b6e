package symptom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelector_StartsEmpty(t *testing.T) {
	s := NewSelector()
	assert.True(t, s.IsEmpty())
	assert.Empty(t, s.Snapshot())
	assert.Equal(t, 0, s.Len())
}

func TestSelector_ToggleIsInvolutive(t *testing.T) {
	ids := IDs("high_fever", "cough", "chills", "not_in_catalog")
	for _, id := range ids {
		s := NewSelector()
		s.Toggle("petechiae")

		before := s.Has(id)
		s.Toggle(id)
		assert.NotEqual(t, before, s.Has(id), "first toggle of %q should flip membership", id)
		s.Toggle(id)
		assert.Equal(t, before, s.Has(id), "second toggle of %q should restore membership", id)
		assert.True(t, s.Has("petechiae"), "unrelated member must be untouched")
	}
}

func TestSelector_DoubleToggleLeavesEmpty(t *testing.T) {
	s := NewSelector()
	s.Toggle("high_fever")
	s.Toggle("high_fever")
	assert.True(t, s.IsEmpty())
}

func TestSelector_IsEmptyMatchesSnapshot(t *testing.T) {
	s := NewSelector()
	steps := IDs("cough", "fatigue", "cough", "fatigue", "jaundice")
	for _, id := range steps {
		s.Toggle(id)
		assert.Equal(t, s.IsEmpty(), len(s.Snapshot()) == 0)
	}
}

func TestSelector_SnapshotIsDetached(t *testing.T) {
	s := NewSelector()
	s.Toggle("cough")
	s.Toggle("chills")

	snap := s.Snapshot()
	s.Toggle("cough")
	s.Toggle("nausea")

	assert.ElementsMatch(t, IDs("chills", "cough"), snap)
	assert.ElementsMatch(t, IDs("chills", "nausea"), s.Snapshot())
}

func TestSelector_NoDuplicates(t *testing.T) {
	s := NewSelector()
	s.Toggle("cough")
	s.Toggle("cough")
	s.Toggle("cough")
	assert.Equal(t, []ID{"cough"}, s.Snapshot())
}

func TestLabel(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{"high_fever", "High Fever"},
		{"retro_orbital_pain", "Retro Orbital Pain"},
		{"cough", "Cough"},
		{"gi_bleeding", "Gi Bleeding"},
		{"covid19_exposure", "Covid19 Exposure"},
		{"écchymose_légère", "Écchymose Légère"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Label(tt.id), "Label(%q)", tt.id)
	}
}
