package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/symcheck/internal/diagnosis"
	"github.com/abhisek/symcheck/internal/symptom"
)

// execute runs the root command with args and returns what it printed.
// Flag values persist across runs, so each test uses its own command.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestClassifyCommand_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "response.json")
	body := `{"status":"success","results":[["fever",75],["dengue_malaria",45],["flu_cold",35]]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	out, err := execute(t, "classify", path, "--json")
	require.NoError(t, err)

	var rs diagnosis.ResultSet
	require.NoError(t, json.Unmarshal([]byte(out), &rs))
	require.Len(t, rs.Singles, 1)
	assert.True(t, rs.Singles[0].HighConfidence)
	require.Len(t, rs.CoOccurrences, 1)
	assert.Equal(t, "dengue + malaria", rs.CoOccurrences[0].Phrase)
}

func TestCatalogCommand_YAMLIsLoadable(t *testing.T) {
	out, err := execute(t, "catalog", "--yaml")
	require.NoError(t, err)

	cat, err := symptom.ParseCatalog([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, symptom.DefaultCatalog(), cat)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "symcheck "), out)
}

func TestWriteResultText(t *testing.T) {
	var b bytes.Buffer
	writeResultText(&b, diagnosis.Classify([]diagnosis.RawResult{
		{Label: "fever", Confidence: 75},
		{Label: "dengue_typhoid", Confidence: 72},
	}))
	out := b.String()

	assert.Contains(t, out, "Primary Disease Possibilities:")
	assert.Contains(t, out, "* fever")
	assert.Contains(t, out, "75.00% confidence")
	assert.Contains(t, out, "dengue + typhoid")
	assert.Contains(t, out, "Severity: Severe - Immediate medical attention recommended")

	b.Reset()
	writeResultText(&b, diagnosis.Classify(nil))
	assert.Contains(t, b.String(), "No conditions matched")
}

func TestWriteTable(t *testing.T) {
	var b bytes.Buffer
	writeTable(&b, []string{"ID", "Backend"}, [][]string{{"1", "http"}, {"2", "llm"}})
	out := b.String()
	for _, want := range []string{"ID", "Backend", "http", "llm"} {
		assert.Contains(t, out, want)
	}
}

func TestClipAndUSD(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "dengu…", clip("dengue_malaria", 6))
	assert.Equal(t, "héll…", clip("héllo wörld", 5))

	assert.Equal(t, "$0.0042", usd(0.0042))
	assert.Equal(t, "$0.00", usd(0))
	assert.Equal(t, "$1.25", usd(1.25))
}
