package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosha-labs/kosha/internal/testutil"
	kerrors "github.com/kosha-labs/kosha/pkg/errors"
)

const sampleCSV = `sanskrit,english,semantic_frame,Contextual_Triggers,Usage_Frequency_Index
saMpraBinna,divide property,divide|property,divide|property,legal:0.9
viBAga,division; a share,divide|share,,
,orphan row without token,,,
KaNqa , piece of cake ,cake|dessert,,food:0.8
`

func TestReadCSV(t *testing.T) {
	dict, err := ReadCSV(strings.NewReader(sampleCSV), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, dict.Len())

	e, ok := dict.Lookup("saMpraBinna")
	require.True(t, ok)
	assert.Equal(t, "divide property", e.Definition)
	assert.Equal(t, "divide|property", e.SemanticFrame)
	assert.Equal(t, "legal:0.9", e.UsageFrequencyIndex)
	// Columns absent from the file stay empty.
	assert.Empty(t, e.ConceptualAnchors)
	assert.Empty(t, e.SemanticNeighbors)

	// Whitespace around cells is trimmed.
	e, ok = dict.Lookup("KaNqa")
	require.True(t, ok)
	assert.Equal(t, "piece of cake", e.Definition)
}

func TestReadCSVModernHeader(t *testing.T) {
	in := "token,definition\nalpha,first entry\n"
	dict, err := ReadCSV(strings.NewReader(in), nil)
	require.NoError(t, err)
	e, ok := dict.Lookup("alpha")
	require.True(t, ok)
	assert.Equal(t, "first entry", e.Definition)
}

func TestReadCSVShortRows(t *testing.T) {
	in := "token,definition,semantic_frame\nalpha,first\nbeta\n"
	dict, err := ReadCSV(strings.NewReader(in), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, dict.Len())

	e, _ := dict.Lookup("alpha")
	assert.Empty(t, e.SemanticFrame)
}

func TestReadCSVEmptyDictionary(t *testing.T) {
	in := "token,definition\n,no token here\n"
	_, err := ReadCSV(strings.NewReader(in), nil)
	require.Error(t, err)
	assert.True(t, kerrors.IsCode(err, kerrors.ErrCodeDictionaryEmpty))
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	log := testutil.NewMockLogger()
	dict, err := LoadCSV(path, log)
	require.NoError(t, err)
	assert.Equal(t, 3, dict.Len())
	assert.True(t, log.Has("info", "dictionary loaded"))
	assert.True(t, log.Has("debug", "skipping dictionary row"))
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"), nil)
	require.Error(t, err)
	assert.True(t, kerrors.IsCode(err, kerrors.ErrCodeDictionaryLoad))
}
