package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCommandText(t *testing.T) {
	dict := writeDictionary(t)

	out, _, err := runCLI(t, "", "--dictionary", dict, "--log-level", "error",
		"encode", "divide", "property")
	require.NoError(t, err)
	assert.Equal(t, "__saMpraBinna__", strings.TrimSpace(out))
}

func TestEncodeCommandVerbatimPassThrough(t *testing.T) {
	dict := writeDictionary(t)

	out, _, err := runCLI(t, "", "--dictionary", dict, "--log-level", "error",
		"encode", "xylophone")
	require.NoError(t, err)
	assert.Equal(t, "xylophone", strings.TrimSpace(out))
}

func TestEncodeCommandJSON(t *testing.T) {
	dict := writeDictionary(t)

	out, _, err := runCLI(t, "", "--dictionary", dict, "--log-level", "error",
		"--output", "json", "encode", "divide", "property")
	require.NoError(t, err)

	var result struct {
		Output        string
		Confidence    float64
		MatchedCount  int
		TotalWords    int
		WindowResults []struct {
			Token    string
			Score    float64
			Decision string
		}
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "__saMpraBinna__", result.Output)
	assert.Greater(t, result.Confidence, 0.8)
	assert.Equal(t, 2, result.MatchedCount)
	assert.Equal(t, 2, result.TotalWords)
	require.Len(t, result.WindowResults, 1)
	assert.Equal(t, "saMpraBinna", result.WindowResults[0].Token)
}

func TestEncodeCommandStdin(t *testing.T) {
	dict := writeDictionary(t)

	out, _, err := runCLI(t, "divide property\n", "--dictionary", dict, "--log-level", "error",
		"encode")
	require.NoError(t, err)
	assert.Equal(t, "__saMpraBinna__", strings.TrimSpace(out))
}

func TestEncodeCommandEmptyStdin(t *testing.T) {
	dict := writeDictionary(t)

	root := NewRootCommand()
	root.SetOut(new(strings.Builder))
	root.SetErr(new(strings.Builder))
	root.SetIn(strings.NewReader("   \n"))
	root.SetArgs([]string{"--dictionary", dict, "--log-level", "error", "encode"})

	assert.Error(t, root.Execute())
}

func TestEncodeCommandTrace(t *testing.T) {
	dict := writeDictionary(t)

	out, _, err := runCLI(t, "", "--dictionary", dict, "--log-level", "error", "--no-color",
		"encode", "--trace", "divide", "property")
	require.NoError(t, err)

	assert.Contains(t, out, "__saMpraBinna__")
	assert.Contains(t, out, "Confidence:")
	assert.Contains(t, out, "ACCEPT")
}

func TestEncodeCommandSingleChunk(t *testing.T) {
	dict := writeDictionary(t)

	out, _, err := runCLI(t, "", "--dictionary", dict, "--log-level", "error",
		"encode", "--single-chunk", "divide", "property")
	require.NoError(t, err)

	assert.Contains(t, out, "saMpraBinna (")
	assert.Contains(t, out, "iteration 1")
}

func TestEncodeCommandSingleChunkGuidance(t *testing.T) {
	dict := writeDictionary(t)

	plain, _, err := runCLI(t, "", "--dictionary", dict, "--log-level", "error",
		"encode", "--single-chunk", "divide", "property")
	require.NoError(t, err)

	guided, _, err := runCLI(t, "", "--dictionary", dict, "--log-level", "error",
		"encode", "--single-chunk", "--expect", "saMpraBinna", "divide", "property")
	require.NoError(t, err)

	// The expected-token boost must reach the single-chunk path and lift
	// the reported score.
	assert.Contains(t, guided, "saMpraBinna (")
	assert.NotEqual(t, plain, guided)
}

func TestEncodeCommandGuidanceFlags(t *testing.T) {
	dict := writeDictionary(t)

	out, _, err := runCLI(t, "", "--dictionary", dict, "--log-level", "error",
		"encode", "--expect", "saMpraBinna", "--context", "legal", "divide", "property")
	require.NoError(t, err)
	assert.Equal(t, "__saMpraBinna__", strings.TrimSpace(out))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-10", truncate("exactly-10", 10))
	assert.Equal(t, "this is...", truncate("this is far too long", 10))
}
