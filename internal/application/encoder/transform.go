package encoder

import (
	"strings"

	"github.com/kosha-labs/kosha/internal/domain/semantics"
)

// synonymLimit bounds how many synonym variants one word contributes; the
// cascade explores breadth across words, not depth per word.
const synonymLimit = 2

// Transformer rewrites low-scoring chunks into semantically equivalent
// variants for re-scoring.  Backed by the expander's synonym closure, read
// in sorted order so variant lists are deterministic.
type Transformer struct {
	expander *semantics.Expander
}

// NewTransformer returns a Transformer over the given expander.
func NewTransformer(expander *semantics.Expander) *Transformer {
	return &Transformer{expander: expander}
}

// synonyms returns up to synonymLimit related single words, sorted, the word
// itself excluded.
func (t *Transformer) synonyms(word string) []string {
	var out []string
	for _, c := range t.expander.ExpandWord(word).Values() {
		if c == strings.ToLower(word) || strings.ContainsRune(c, ' ') {
			continue
		}
		out = append(out, c)
		if len(out) == synonymLimit {
			break
		}
	}
	return out
}

// PairVariants expands a verb–object pair into scoring variants: the direct
// combination, article insertions, the reversed order, and limited synonym
// substitutions on either side.
func (t *Transformer) PairVariants(verb, object string) []string {
	variants := []string{
		verb + " " + object,
		verb + " a " + object,
		verb + " the " + object,
		object + " " + verb,
	}
	for _, vs := range t.synonyms(verb) {
		variants = append(variants, vs+" "+object)
	}
	for _, os := range t.synonyms(object) {
		variants = append(variants, verb+" "+os)
	}
	return dedupe(variants)
}

// WordVariants returns synonym substitutes for a single word.
func (t *Transformer) WordVariants(word string) []string {
	return t.synonyms(word)
}

// PhraseVariants rewrites a phrase: the phrase itself, its outermost pair's
// variants, and per-word synonym substitutions.
func (t *Transformer) PhraseVariants(phrase string) []string {
	variants := []string{phrase}
	words := strings.Fields(phrase)
	if len(words) >= 2 {
		variants = append(variants, t.PairVariants(words[0], words[len(words)-1])...)
	}
	for i, w := range words {
		for _, s := range t.synonyms(w) {
			sub := make([]string, len(words))
			copy(sub, words)
			sub[i] = s
			variants = append(variants, strings.Join(sub, " "))
		}
	}
	return dedupe(variants)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
