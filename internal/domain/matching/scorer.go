package matching

import (
	"strings"

	"github.com/kosha-labs/kosha/internal/domain/lexicon"
	"github.com/kosha-labs/kosha/internal/domain/semantics"
)

// Factor weights.  The four entry-field weights sum to 1.0; the definition
// bonus is added on top, so the pre-boost base can exceed 1.0 and the total
// is clamped at the end.
const (
	WeightSemanticFrame      = 0.40
	WeightContextualTriggers = 0.25
	WeightConceptualAnchors  = 0.20
	WeightUsageFrequency     = 0.15
	WeightDefinition         = 0.20
)

// Tie-break boost rates and their activation gates.  A boost contributes
// only above its gate, so close calls are never destabilised by noise; all
// contributions together are capped at MaxBoost.
const (
	MaxBoost = 0.20

	frameBoostRate    = 0.05
	frameBoostGate    = 0.70
	resolverBoostRate = 0.05
	resolverBoostGate = 0.60
	freqBoostRate     = 0.03
	freqBoostGate     = 0.50
	priorityBoostRate = 0.02
	priorityBoostGate = 0.50

	expectedTokenBoost    = 0.10
	expectedNeighborBoost = 0.05
	expectedTriggerRate   = 0.05
	expectedFreqRate      = 0.03

	// exactContextFactor amplifies a frequency weight whose context is the
	// detected primary context of the input.
	exactContextFactor = 1.5
)

// Scorer computes the bounded multi-factor similarity between an input span
// and a dictionary entry.  Stateless apart from the shared read-only
// dictionary and the expander's memoization cache; safe for concurrent use.
type Scorer struct {
	dict     *lexicon.Dictionary
	expander *semantics.Expander
	detector *semantics.Detector
}

// NewScorer returns a Scorer over the given dictionary and semantic tables.
func NewScorer(dict *lexicon.Dictionary, expander *semantics.Expander, detector *semantics.Detector) *Scorer {
	return &Scorer{dict: dict, expander: expander, detector: detector}
}

// Score rates entry against text.  Blank entry fields contribute zero to
// their factor, never an error; the result is always in [0, 1].
func (s *Scorer) Score(text string, entry *lexicon.Entry, guidance *Guidance) Candidate {
	concepts := s.expander.ExpandText(text)
	det := s.detector.DetectContext(text)

	b := Breakdown{
		SemanticFrame:      s.overlapFactor(concepts, entry.FrameSegments()),
		ContextualTriggers: s.overlapFactor(concepts, entry.TriggerSegments()),
		ConceptualAnchors:  s.overlapFactor(concepts, entry.AnchorSegments()),
		UsageFrequency:     frequencyFactor(entry, det.Primary, concepts),
		Definition:         s.definitionFactor(concepts, entry.Definition),
	}
	b.Base = b.SemanticFrame*WeightSemanticFrame +
		b.ContextualTriggers*WeightContextualTriggers +
		b.ConceptualAnchors*WeightConceptualAnchors +
		b.UsageFrequency*WeightUsageFrequency +
		b.Definition*WeightDefinition

	b.Boost = s.tieBreakBoost(entry, det, concepts, b, guidance)

	score := b.Base + b.Boost
	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}
	return Candidate{Token: entry.Token, Score: score, Breakdown: b}
}

// overlapFactor is the shared four-factor formula: expand the entry field's
// pipe segments, intersect with the input concepts, normalise by the entry
// side.  Zero when either side is empty.
func (s *Scorer) overlapFactor(concepts semantics.ConceptSet, segments []string) float64 {
	if concepts.Len() == 0 || len(segments) == 0 {
		return 0
	}
	entryConcepts := s.expander.ExpandSegments(segments)
	if entryConcepts.Len() == 0 {
		return 0
	}
	f := float64(concepts.IntersectionCount(entryConcepts)) / float64(entryConcepts.Len())
	if f > 1.0 {
		f = 1.0
	}
	return f
}

func (s *Scorer) definitionFactor(concepts semantics.ConceptSet, definition string) float64 {
	if strings.TrimSpace(definition) == "" {
		return 0
	}
	return s.overlapFactor(concepts, []string{definition})
}

// frequencyFactor sums the entry's context weights: 1.5× for the detected
// primary context, 1× for any context named among the input concepts,
// clamped to 1.0.
func frequencyFactor(entry *lexicon.Entry, primary string, concepts semantics.ConceptSet) float64 {
	sum := 0.0
	for _, pair := range entry.FrequencyPairs() {
		switch {
		case primary != "" && pair.Context == primary:
			sum += pair.Weight * exactContextFactor
		case concepts.Has(pair.Context):
			sum += pair.Weight
		}
	}
	if sum > 1.0 {
		sum = 1.0
	}
	return sum
}

// tieBreakBoost accumulates the small gated boosts, including the optional
// guidance-driven ones, and caps the total.
func (s *Scorer) tieBreakBoost(entry *lexicon.Entry, det semantics.Detection, concepts semantics.ConceptSet, b Breakdown, guidance *Guidance) float64 {
	boost := 0.0

	if b.SemanticFrame > frameBoostGate {
		boost += frameBoostRate * b.SemanticFrame
	}
	if rf := resolverFactor(entry, concepts); rf > resolverBoostGate {
		boost += resolverBoostRate * rf
	}
	if b.UsageFrequency > freqBoostGate {
		boost += freqBoostRate * b.UsageFrequency
	}
	if p := s.detector.PriorityFor(det, entry); p > priorityBoostGate {
		boost += priorityBoostRate * p
	}

	if guidance != nil {
		boost += s.guidanceBoost(entry, guidance)
	}

	if boost > MaxBoost {
		boost = MaxBoost
	}
	return boost
}

// resolverFactor is the fraction of the entry's ambiguity resolvers present
// among the input concepts.
func resolverFactor(entry *lexicon.Entry, concepts semantics.ConceptSet) float64 {
	resolvers := entry.ResolverSegments()
	if len(resolvers) == 0 {
		return 0
	}
	hits := 0
	for _, r := range resolvers {
		if concepts.Has(r) {
			hits++
		}
	}
	return float64(hits) / float64(len(resolvers))
}

func (s *Scorer) guidanceBoost(entry *lexicon.Entry, guidance *Guidance) float64 {
	boost := 0.0

	for _, expected := range guidance.ExpectedTokens {
		if expected == entry.Token {
			boost += expectedTokenBoost
			continue
		}
		if exp, ok := s.dict.Lookup(expected); ok {
			for _, n := range exp.Neighbors() {
				if n == entry.Token {
					boost += expectedNeighborBoost
					break
				}
			}
		}
	}

	if ec := strings.ToLower(strings.TrimSpace(guidance.ExpectedContext)); ec != "" {
		ecConcepts := s.expander.ExpandText(ec)
		if f := s.overlapFactor(ecConcepts, entry.TriggerSegments()); f > 0 {
			boost += expectedTriggerRate * f
		}
		for _, pair := range entry.FrequencyPairs() {
			if pair.Context == ec {
				w := pair.Weight
				if w > 1.0 {
					w = 1.0
				}
				boost += expectedFreqRate * w
				break
			}
		}
	}
	return boost
}
