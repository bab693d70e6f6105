package matching

// Breakdown reports the per-factor sub-scores of one candidate.  Fixed
// struct shape rather than a string-keyed map so callers and tests address
// factors by name.
type Breakdown struct {
	// SemanticFrame is the concept overlap with the entry's frame hierarchy.
	SemanticFrame float64

	// ContextualTriggers is the concept overlap with the entry's triggers.
	ContextualTriggers float64

	// ConceptualAnchors is the concept overlap with the entry's anchors.
	ConceptualAnchors float64

	// UsageFrequency is the context-weighted frequency factor.
	UsageFrequency float64

	// Definition is the concept overlap with the entry's plain definition.
	Definition float64

	// Base is the weighted sum of the factors before tie-break boosts.
	Base float64

	// Boost is the capped sum of all tie-break boost contributions.
	Boost float64
}

// Candidate is one scored dictionary entry.  Produced fresh per scoring
// call and never cached across input spans.
type Candidate struct {
	Token     string
	Score     float64
	Breakdown Breakdown
}

// Guidance optionally biases candidate ranking toward caller expectations.
// It never changes which entries are eligible, only their scores and the
// order they are examined in.
type Guidance struct {
	// ExpectedTokens are scored first and receive a flat priority multiplier.
	ExpectedTokens []string

	// ExpectedContext rewards entries whose triggers or frequency index
	// align with the named context.
	ExpectedContext string
}
