// Package decoder inverts the encoder's surface form, mapping emitted
// tokens back to their plain-language definitions.
package decoder

import (
	"strings"

	"github.com/kosha-labs/kosha/internal/domain/lexicon"
	"github.com/kosha-labs/kosha/internal/infrastructure/monitoring/logging"
	"github.com/kosha-labs/kosha/pkg/errors"
)

// WordResult is the decoding of one output unit.
type WordResult struct {
	// Input is the token or verbatim word as it appeared on the wire.
	Input string

	// Output is the decoded text.
	Output string

	// Known reports whether Input was a dictionary token.
	Known bool
}

// Result is the decoding of a whole encoded text.
type Result struct {
	Output string
	Words  []WordResult

	// KnownCount and TokenCount give per-token coverage: how many of the
	// encountered tokens resolved against the dictionary.
	KnownCount int
	TokenCount int
}

// Decoder resolves tokens back to definitions over a read-only dictionary.
type Decoder struct {
	dict *lexicon.Dictionary
	log  logging.Logger
}

// New returns a Decoder.  The dictionary must be non-empty.
func New(dict *lexicon.Dictionary, log logging.Logger) (*Decoder, error) {
	if dict == nil || dict.Len() == 0 {
		return nil, errors.New(errors.ErrCodeDictionaryEmpty, "decoder requires a non-empty dictionary")
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Decoder{dict: dict, log: log}, nil
}

// DecodeToken resolves a single token to its primary definition: the first
// clause of the entry's definition, split on semicolons and commas.
func (d *Decoder) DecodeToken(token string) (string, bool) {
	entry, ok := d.dict.Lookup(token)
	if !ok {
		// Tokens with internal spaces travel underscore-joined.
		entry, ok = d.dict.Lookup(lexicon.DesanitizeToken(token))
	}
	if !ok {
		return "", false
	}
	return primaryDefinition(entry.Definition), true
}

// Decode inverts an encoded text: token runs are expanded to their primary
// definitions, verbatim words pass through unchanged, unknown tokens are
// kept bracketed so the caller can see what failed to resolve.
func (d *Decoder) Decode(text string) Result {
	var res Result
	var out []string

	for _, field := range strings.Fields(text) {
		tokens := lexicon.DecodeTokenRun(field)
		if tokens == nil {
			out = append(out, field)
			res.Words = append(res.Words, WordResult{Input: field, Output: field})
			continue
		}
		for _, tok := range tokens {
			res.TokenCount++
			if def, ok := d.DecodeToken(tok); ok {
				res.KnownCount++
				out = append(out, def)
				res.Words = append(res.Words, WordResult{Input: tok, Output: def, Known: true})
				continue
			}
			d.log.Debug("unknown token in encoded text", logging.String("token", tok))
			bracketed := "[" + tok + "]"
			out = append(out, bracketed)
			res.Words = append(res.Words, WordResult{Input: tok, Output: bracketed})
		}
	}

	res.Output = strings.Join(out, " ")
	return res
}

// primaryDefinition takes the first clause of a definition.
func primaryDefinition(definition string) string {
	def := definition
	if i := strings.IndexByte(def, ';'); i >= 0 {
		def = def[:i]
	}
	if i := strings.IndexByte(def, ','); i >= 0 {
		def = def[:i]
	}
	return strings.TrimSpace(def)
}
