package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplSession(t *testing.T) {
	dict := writeDictionary(t)

	session := strings.Join([]string{
		"divide property",
		":decode __saMpraBinna__",
		":trace on",
		":trace off",
		":help",
		":bogus",
		":quit",
	}, "\n") + "\n"

	out, _, err := runCLI(t, session, "--dictionary", dict, "--log-level", "error", "repl")
	require.NoError(t, err)

	assert.Contains(t, out, "entries loaded")
	assert.Contains(t, out, "__saMpraBinna__")
	assert.Contains(t, out, "confidence")
	assert.Contains(t, out, "divide property")
	assert.Contains(t, out, "trace on")
	assert.Contains(t, out, "trace off")
	assert.Contains(t, out, ":decode <text>")
	assert.Contains(t, out, "unknown command :bogus")
	assert.Contains(t, out, "bye")
}

func TestReplEndsOnEOF(t *testing.T) {
	dict := writeDictionary(t)

	out, _, err := runCLI(t, "divide property\n", "--dictionary", dict, "--log-level", "error", "repl")
	require.NoError(t, err)
	assert.Contains(t, out, "bye")
}

func TestReplTraceFlag(t *testing.T) {
	dict := writeDictionary(t)

	out, _, err := runCLI(t, "divide property\n:quit\n", "--dictionary", dict,
		"--log-level", "error", "--no-color", "repl", "--trace")
	require.NoError(t, err)
	assert.Contains(t, out, "ACCEPT")
}
