package lexicon

import (
	"sort"
	"strings"

	"github.com/kosha-labs/kosha/pkg/errors"
)

// Dictionary is the read-only token → entry mapping shared by every engine
// component.  It is immutable after construction, so concurrent readers need
// no synchronisation.  Iteration always happens over the sorted token list
// to keep match results deterministic across runs.
type Dictionary struct {
	entries map[string]*Entry
	tokens  []string
}

// NewDictionary validates and indexes the supplied entries.  Tokens are
// trimmed; entries with a blank token are dropped.  An empty or unusable
// result is the one fatal condition of the core and is reported explicitly.
func NewDictionary(entries []Entry) (*Dictionary, error) {
	m := make(map[string]*Entry, len(entries))
	for i := range entries {
		e := entries[i]
		e.Token = strings.TrimSpace(e.Token)
		if e.Token == "" {
			continue
		}
		m[e.Token] = &e
	}
	if len(m) == 0 {
		return nil, errors.New(errors.ErrCodeDictionaryEmpty, "dictionary has no usable entries")
	}

	tokens := make([]string, 0, len(m))
	for tok := range m {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)

	return &Dictionary{entries: m, tokens: tokens}, nil
}

// Lookup returns the entry for token, or (nil, false) when absent.
func (d *Dictionary) Lookup(token string) (*Entry, bool) {
	e, ok := d.entries[token]
	return e, ok
}

// Contains reports whether token has an entry.
func (d *Dictionary) Contains(token string) bool {
	_, ok := d.entries[token]
	return ok
}

// Tokens returns the sorted token list.  The returned slice is shared and
// must not be modified by callers.
func (d *Dictionary) Tokens() []string { return d.tokens }

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.entries) }
