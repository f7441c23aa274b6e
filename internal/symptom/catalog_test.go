package symptom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()
	require.NoError(t, cat.Validate())
	assert.Len(t, cat.Categories, 8)
	assert.Len(t, cat.All(), 35)
	assert.Equal(t, "Fever Patterns", cat.Categories[0].Name)
	assert.True(t, cat.Contains("relative_bradycardia"))
	assert.False(t, cat.Contains("hiccups"))
}

func TestLoadCatalog_EmptyPathUsesDefault(t *testing.T) {
	cat, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog(), cat)
}

func TestLoadCatalog_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `categories:
  - name: Fever
    symptoms: [high_fever, chills]
  - name: Skin
    symptoms:
      - petechiae
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cat, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, cat.Categories, 2)
	assert.Equal(t, "Skin", cat.Categories[1].Name)
	assert.Equal(t, IDs("high_fever", "chills", "petechiae"), cat.All())
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", "categories: []"},
		{"no symptoms", "categories:\n  - name: A\n    symptoms: []\n"},
		{"blank name", "categories:\n  - name: ''\n    symptoms: [a]\n"},
		{"duplicate", "categories:\n  - name: A\n    symptoms: [a]\n  - name: B\n    symptoms: [a]\n"},
		{"not yaml", "categories: [:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}
