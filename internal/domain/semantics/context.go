package semantics

import (
	"strings"

	"github.com/kosha-labs/kosha/internal/domain/lexicon"
)

// Neutral and fallback priority levels returned by Priority.
const (
	PriorityNeutral = 0.5 // no primary context detected
	PriorityTrigger = 0.7 // entry triggers overlap the detected context
	PriorityLow     = 0.3 // detected context, no evidence in the entry
)

// Detector classifies a text span into weighted domain contexts from keyword
// hits against a fixed pattern table.  It is stateless and safe for
// concurrent use.
type Detector struct {
	patterns []ContextPattern
}

// Detection is the result of classifying one span.
type Detection struct {
	// Primary is the highest-scoring context, ties broken by pattern
	// declaration order; empty when nothing matched.
	Primary string

	// Scores holds the per-context scores; contexts with zero matched
	// keywords are omitted.
	Scores map[string]float64

	// Keywords holds the matched keywords per scored context.
	Keywords map[string][]string
}

// NewDetector returns a Detector over the default context pattern table.
func NewDetector() *Detector {
	return NewDetectorWithPatterns(defaultContextPatterns)
}

// NewDetectorWithPatterns returns a Detector over a caller-supplied table,
// which must not be mutated after construction.
func NewDetectorWithPatterns(patterns []ContextPattern) *Detector {
	return &Detector{patterns: patterns}
}

// DetectContext scores every context pattern against text.  A context scores
// (#keywords present) / (#keywords in pattern) × weight; keyword presence is
// substring containment over the lower-cased text.
func (d *Detector) DetectContext(text string) Detection {
	lower := strings.ToLower(text)
	det := Detection{
		Scores:   make(map[string]float64),
		Keywords: make(map[string][]string),
	}

	best := 0.0
	for _, p := range d.patterns {
		if len(p.Keywords) == 0 {
			continue
		}
		var matched []string
		for _, kw := range p.Keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, kw)
			}
		}
		if len(matched) == 0 {
			continue
		}
		score := float64(len(matched)) / float64(len(p.Keywords)) * p.Weight
		det.Scores[p.Name] = score
		det.Keywords[p.Name] = matched
		// Strictly greater keeps the first-declared pattern on ties.
		if score > best {
			best = score
			det.Primary = p.Name
		}
	}
	return det
}

// Priority rates how appropriate entry is for the primary context of text.
// With no primary context it returns the neutral 0.5.  Otherwise the entry's
// usage frequency index is consulted first: an exact context match returns
// that context's weight.  Failing that, any overlap between the matched
// context keywords and the entry's contextual triggers returns 0.7, and 0.3
// is the low-confidence default.
func (d *Detector) Priority(text string, entry *lexicon.Entry) float64 {
	det := d.DetectContext(text)
	return d.PriorityFor(det, entry)
}

// PriorityFor is Priority over an already-computed Detection, letting
// callers that rank many entries against one span detect the context once.
func (d *Detector) PriorityFor(det Detection, entry *lexicon.Entry) float64 {
	if det.Primary == "" {
		return PriorityNeutral
	}

	for _, pair := range entry.FrequencyPairs() {
		if pair.Context == det.Primary {
			return pair.Weight
		}
	}

	triggers := entry.TriggerSegments()
	if len(triggers) > 0 {
		matched := NewConceptSet(det.Keywords[det.Primary]...)
		for _, t := range triggers {
			if matched.Has(strings.ToLower(t)) {
				return PriorityTrigger
			}
		}
	}
	return PriorityLow
}
