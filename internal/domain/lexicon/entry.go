// Package lexicon defines the immutable symbolic dictionary that the
// matching engine resolves natural-language input against.  Entries are
// constructed once by a loader and never mutated afterwards; every accessor
// tolerates blank fields, which simply contribute nothing to a match.
package lexicon

import (
	"strconv"
	"strings"
)

// FieldSeparator delimits the segments of the pipe-delimited entry fields.
const FieldSeparator = "|"

// Entry is one record of the symbolic dictionary, identified by a unique
// token.  All descriptive fields are stored in their raw pipe-delimited
// form; an absent source column is represented by the empty string, never
// by a sentinel.
type Entry struct {
	// Token is the symbolic identifier emitted for a matched span.
	Token string

	// Definition is the plain-language meaning of the token.
	Definition string

	// SemanticFrame is the ordered outer→inner hierarchy of defining
	// concept descriptors.
	SemanticFrame string

	// ContextualTriggers lists concepts that should co-occur with correct
	// usage of the token.
	ContextualTriggers string

	// ConceptualAnchors lists secondary concepts anchoring the token's
	// meaning.
	ConceptualAnchors string

	// AmbiguityResolvers lists keywords that disambiguate between
	// near-synonymous entries.
	AmbiguityResolvers string

	// UsageFrequencyIndex holds pipe-delimited context:weight pairs.
	UsageFrequencyIndex string

	// SemanticNeighbors lists tokens considered closely related, used as a
	// fallback match source.
	SemanticNeighbors string
}

// FrequencyPair is one parsed context:weight segment of the usage frequency
// index.
type FrequencyPair struct {
	Context string
	Weight  float64
}

// SplitField splits a pipe-delimited field into trimmed, non-empty segments.
// A blank field yields nil.
func SplitField(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	parts := strings.Split(field, FieldSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FrameSegments returns the semantic frame descriptors, outer first.
func (e *Entry) FrameSegments() []string { return SplitField(e.SemanticFrame) }

// TriggerSegments returns the contextual trigger keywords.
func (e *Entry) TriggerSegments() []string { return SplitField(e.ContextualTriggers) }

// AnchorSegments returns the conceptual anchor keywords.
func (e *Entry) AnchorSegments() []string { return SplitField(e.ConceptualAnchors) }

// ResolverSegments returns the ambiguity resolver keywords, lower-cased.
func (e *Entry) ResolverSegments() []string {
	segs := SplitField(e.AmbiguityResolvers)
	for i, s := range segs {
		segs[i] = strings.ToLower(s)
	}
	return segs
}

// Neighbors returns the semantic neighbor tokens.
func (e *Entry) Neighbors() []string { return SplitField(e.SemanticNeighbors) }

// FrequencyPairs parses the usage frequency index.  Segments without a
// weight, or whose weight does not parse as a float, are skipped
// individually; the rest of the field is still used.  The split is on the
// last colon so context names may themselves contain colons.
func (e *Entry) FrequencyPairs() []FrequencyPair {
	segs := SplitField(e.UsageFrequencyIndex)
	if len(segs) == 0 {
		return nil
	}
	pairs := make([]FrequencyPair, 0, len(segs))
	for _, seg := range segs {
		idx := strings.LastIndex(seg, ":")
		if idx <= 0 {
			continue
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(seg[idx+1:]), 64)
		if err != nil {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(seg[:idx]))
		if name == "" {
			continue
		}
		pairs = append(pairs, FrequencyPair{Context: name, Weight: weight})
	}
	return pairs
}
