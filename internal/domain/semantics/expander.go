package semantics

import (
	"regexp"
	"strings"
	"sync"
)

// wordPattern extracts lower-case word tokens of at least two letters.
var wordPattern = regexp.MustCompile(`\b[a-z]{2,}\b`)

// Expander expands words and texts into closed sets of semantically related
// concepts using a static synonym table and its reverse index.  Expansion is
// a pure function of its lower-cased input, so results are memoized per
// instance; the cache never returns a stale set because the underlying table
// is immutable.  Safe for concurrent use.
type Expander struct {
	synonyms map[string][]string
	groups   []ContextGroup

	reverseOnce sync.Once
	reverse     map[string][]string

	mu    sync.RWMutex
	cache map[string]ConceptSet
}

// Expansion is the result of a context-aware text expansion.
type Expansion struct {
	// Concepts is the full concept set of the text.
	Concepts ConceptSet

	// Contexts partitions matched concepts into the fixed context groups.
	Contexts map[string]ConceptSet

	// PrimaryContext is the group with the most matched concepts, ties
	// broken by declaration order; empty when no group matched.
	PrimaryContext string
}

// NewExpander returns an Expander over the default synonym table.
func NewExpander() *Expander {
	return NewExpanderWithTables(defaultSynonyms, defaultContextGroups)
}

// NewExpanderWithTables returns an Expander over caller-supplied tables.
// The tables must not be mutated after construction.
func NewExpanderWithTables(synonyms map[string][]string, groups []ContextGroup) *Expander {
	return &Expander{
		synonyms: synonyms,
		groups:   groups,
		cache:    make(map[string]ConceptSet),
	}
}

// buildReverse constructs the related-word → keys index once, on first use.
func (x *Expander) buildReverse() {
	x.reverseOnce.Do(func() {
		rev := make(map[string][]string)
		for key, values := range x.synonyms {
			for _, v := range values {
				rev[v] = append(rev[v], key)
			}
		}
		x.reverse = rev
	})
}

// ExpandWord expands a single word into its concept set: the word itself,
// its direct synonym-table hits, and — through the reverse index — every key
// that lists the word together with that key's own values.  The returned set
// is shared with the memoization cache and must be treated as read-only.
func (x *Expander) ExpandWord(word string) ConceptSet {
	w := strings.ToLower(strings.TrimSpace(word))

	x.mu.RLock()
	if cached, ok := x.cache[w]; ok {
		x.mu.RUnlock()
		return cached
	}
	x.mu.RUnlock()

	x.buildReverse()

	concepts := NewConceptSet(w)
	for _, c := range x.synonyms[w] {
		concepts.Add(c)
	}
	for _, key := range x.reverse[w] {
		concepts.Add(key)
		for _, c := range x.synonyms[key] {
			concepts.Add(c)
		}
	}

	x.mu.Lock()
	x.cache[w] = concepts
	x.mu.Unlock()
	return concepts
}

// ExpandText expands a whole text: word tokens of at least two letters are
// extracted, stop words removed, and the remaining words' expansions
// unioned. The returned set is owned by the caller.
func (x *Expander) ExpandText(text string) ConceptSet {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	all := make(ConceptSet)
	for _, w := range words {
		if expansionStopWords.Has(w) {
			continue
		}
		all.AddAll(x.ExpandWord(w))
	}
	return all
}

// ExpandSegments expands each pipe-delimited segment as a text and unions
// the results.  Blank segments contribute nothing.
func (x *Expander) ExpandSegments(segments []string) ConceptSet {
	all := make(ConceptSet)
	for _, seg := range segments {
		all.AddAll(x.ExpandText(seg))
	}
	return all
}

// ExpandWithContext expands text and additionally partitions the matched
// concepts into the fixed context groups, reporting the dominant group.
func (x *Expander) ExpandWithContext(text string) Expansion {
	lower := strings.ToLower(text)
	exp := Expansion{
		Concepts: x.ExpandText(text),
		Contexts: make(map[string]ConceptSet),
	}

	best := 0
	for _, g := range x.groups {
		matched := make(ConceptSet)
		for _, w := range g.Words {
			if strings.Contains(lower, w) {
				matched.Add(w)
				matched.AddAll(x.ExpandWord(w))
			}
		}
		if matched.Len() == 0 {
			continue
		}
		exp.Contexts[g.Name] = matched
		// Strictly greater keeps the first-declared group on ties.
		if matched.Len() > best {
			best = matched.Len()
			exp.PrimaryContext = g.Name
		}
	}
	return exp
}
