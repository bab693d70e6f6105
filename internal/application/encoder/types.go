package encoder

import "github.com/kosha-labs/kosha/internal/domain/matching"

// IterationResult records one cascade iteration's outcome for a chunk.
type IterationResult struct {
	// Iteration is 1-based, at most the configured maximum.
	Iteration int

	// Chunk is the span (possibly a sub-span or transformed variant of the
	// original) that produced the match.
	Chunk string

	// Token is the matched dictionary token; empty when nothing matched.
	Token string

	Score     float64
	Breakdown matching.Breakdown
	Decision  matching.Decision
	Reason    string
}

// ChunkResult is the outcome of one full cascade run: the best iteration
// plus the ordered trace of every iteration tried.
type ChunkResult struct {
	Best  IterationResult
	Trace []IterationResult
}

// Result is the outcome of processing a whole text.
type Result struct {
	// Output is the surface-encoded token/verbatim sequence.
	Output string

	// Confidence is the mean score of the matched windows; 0 when nothing
	// matched.
	Confidence float64

	// WindowResults holds the cascade outcome of every matched window, in
	// input order.
	WindowResults []IterationResult

	// MatchedCount is the number of input words consumed into tokens.
	MatchedCount int

	// TotalWords is the number of whitespace-delimited input words.
	TotalWords int
}
