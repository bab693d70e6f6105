package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosha-labs/kosha/internal/domain/lexicon"
)

func newTestDecoder(t *testing.T) *Decoder {
	t.Helper()
	dict, err := lexicon.NewDictionary([]lexicon.Entry{
		{Token: "saMpraBinna", Definition: "divide property; share an estate"},
		{Token: "viBAga", Definition: "division, a share"},
		{Token: "two words", Definition: "a multiword symbol"},
	})
	require.NoError(t, err)
	d, err := New(dict, nil)
	require.NoError(t, err)
	return d
}

func TestNewRequiresDictionary(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)
}

func TestDecodeToken(t *testing.T) {
	d := newTestDecoder(t)

	t.Run("primary definition is the first clause", func(t *testing.T) {
		def, ok := d.DecodeToken("saMpraBinna")
		require.True(t, ok)
		assert.Equal(t, "divide property", def)

		def, ok = d.DecodeToken("viBAga")
		require.True(t, ok)
		assert.Equal(t, "division", def)
	})

	t.Run("wire form of a multiword token resolves", func(t *testing.T) {
		def, ok := d.DecodeToken("two_words")
		require.True(t, ok)
		assert.Equal(t, "a multiword symbol", def)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, ok := d.DecodeToken("nope")
		assert.False(t, ok)
	})
}

func TestDecode(t *testing.T) {
	d := newTestDecoder(t)

	t.Run("mixed tokens and verbatim words", func(t *testing.T) {
		res := d.Decode("the __saMpraBinna__ fairly")
		assert.Equal(t, "the divide property fairly", res.Output)
		assert.Equal(t, 1, res.TokenCount)
		assert.Equal(t, 1, res.KnownCount)
	})

	t.Run("token runs expand in order", func(t *testing.T) {
		res := d.Decode("__saMpraBinna__viBAga__")
		assert.Equal(t, "divide property division", res.Output)
		assert.Equal(t, 2, res.TokenCount)
	})

	t.Run("unknown tokens are bracketed", func(t *testing.T) {
		res := d.Decode("__ghost__")
		assert.Equal(t, "[ghost]", res.Output)
		assert.Equal(t, 1, res.TokenCount)
		assert.Zero(t, res.KnownCount)
	})

	t.Run("plain text passes through untouched", func(t *testing.T) {
		res := d.Decode("nothing encoded here")
		assert.Equal(t, "nothing encoded here", res.Output)
		assert.Zero(t, res.TokenCount)
	})

	t.Run("empty input", func(t *testing.T) {
		res := d.Decode("")
		assert.Empty(t, res.Output)
		assert.Empty(t, res.Words)
	})
}
