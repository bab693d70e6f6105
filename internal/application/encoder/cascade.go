package encoder

import (
	"strings"
	"time"

	"github.com/kosha-labs/kosha/internal/domain/matching"
	"github.com/kosha-labs/kosha/internal/infrastructure/monitoring/logging"
)

// Per-iteration breadth limits.  The cascade narrows the span, not the
// candidate set, so each iteration explores only a handful of variants.
const (
	phraseLimit   = 5
	pairLimit     = 3
	wordLimit     = 5
	neighborLimit = 3

	// resolverOverlapBoost is added per overlapping resolver keyword during
	// final resolution.
	resolverOverlapBoost = 0.1

	// neighborFallbackThreshold gates the semantic-neighbor fallback: only
	// when resolver overlap produced nothing better.
	neighborFallbackThreshold = 0.50
)

// ProcessChunk runs the narrowing cascade over one span: the full span, its
// phrases, verb–object pair variants, single words with synonyms, and a
// final resolution pass.  It stops at the first accept, otherwise returns
// the max-scoring iteration, with the full trace attached either way.
// Guidance is optional; it biases ranking but never eligibility.
func (e *Engine) ProcessChunk(text string, guidance *matching.Guidance) ChunkResult {
	return e.processChunk(text, guidance)
}

func (e *Engine) processChunk(text string, guidance *matching.Guidance) ChunkResult {
	start := time.Now()
	var (
		trace []IterationResult
		prev  *float64
	)

	// record appends an iteration, tracks the running best score the next
	// decision is judged against, and reports whether the cascade is done.
	record := func(r IterationResult) bool {
		trace = append(trace, r)
		e.metrics.ObserveDecision(r.Decision.String())
		if r.Decision == matching.DecisionAccept {
			return true
		}
		if prev == nil || r.Score > *prev {
			s := r.Score
			prev = &s
		}
		return false
	}

	finish := func() ChunkResult {
		e.metrics.ObserveCascade(len(trace), time.Since(start))
		best := trace[0]
		for _, r := range trace[1:] {
			if r.Score > best.Score {
				best = r
			}
		}
		e.log.Debug("cascade finished",
			logging.String("chunk", text),
			logging.Int("iterations", len(trace)),
			logging.String("token", best.Token),
			logging.Float64("score", best.Score),
			logging.String("decision", best.Decision.String()))
		return ChunkResult{Best: best, Trace: trace}
	}

	r := e.iterFullSpan(text, prev, guidance)
	if record(r) {
		return finish()
	}

	// Iterations 2–4 run only while the previous decision asked for them; a
	// reject skips straight to final resolution.
	narrowing := []func(string, *float64, *matching.Guidance) IterationResult{
		e.iterPhrases, e.iterPairs, e.iterWords,
	}
	for _, iter := range narrowing {
		if trace[len(trace)-1].Decision != matching.DecisionContinue {
			break
		}
		if record(iter(text, prev, guidance)) {
			return finish()
		}
	}

	record(e.iterFinal(text, prev, guidance))
	return finish()
}

// iterFullSpan scores the whole span in one search.
func (e *Engine) iterFullSpan(text string, prev *float64, guidance *matching.Guidance) IterationResult {
	matches := e.searcher.FindBestMatches(text, 1, guidance)
	if len(matches) == 0 {
		return e.noMatch(1, text)
	}
	return e.decide(1, text, matches[0], prev)
}

// iterPhrases scores detected phrase patterns, falling back to the two
// halves of the filtered word list when no pattern fires.
func (e *Engine) iterPhrases(text string, prev *float64, guidance *matching.Guidance) IterationResult {
	pre := e.pre.Process(text)
	phrases := pre.Phrases
	if len(phrases) == 0 && len(pre.Filtered) >= 2 {
		mid := len(pre.Filtered) / 2
		phrases = []Phrase{
			{Text: strings.Join(pre.Filtered[:mid], " "), Kind: "first_half"},
			{Text: strings.Join(pre.Filtered[mid:], " "), Kind: "second_half"},
		}
	}
	if len(phrases) > phraseLimit {
		phrases = phrases[:phraseLimit]
	}

	best, bestChunk := matching.Candidate{}, ""
	for _, ph := range phrases {
		if m := e.searcher.FindBestMatches(ph.Text, 1, guidance); len(m) > 0 && m[0].Score > best.Score {
			best, bestChunk = m[0], ph.Text
		}
	}
	if bestChunk == "" {
		return e.noMatch(2, text)
	}
	return e.decide(2, bestChunk, best, prev)
}

// iterPairs scores verb–object pair variants.
func (e *Engine) iterPairs(text string, prev *float64, guidance *matching.Guidance) IterationResult {
	pre := e.pre.Process(text)
	pairs := pre.Pairs
	if len(pairs) == 0 && len(pre.Filtered) >= 2 {
		pairs = []WordPair{{Verb: pre.Filtered[0], Object: pre.Filtered[len(pre.Filtered)-1]}}
	}
	if len(pairs) > pairLimit {
		pairs = pairs[:pairLimit]
	}

	best, bestChunk := matching.Candidate{}, ""
	for _, pair := range pairs {
		for _, variant := range e.transformer.PairVariants(pair.Verb, pair.Object) {
			if m := e.searcher.FindBestMatches(variant, 1, guidance); len(m) > 0 && m[0].Score > best.Score {
				best, bestChunk = m[0], variant
			}
		}
	}
	if bestChunk == "" {
		return e.noMatch(3, text)
	}
	return e.decide(3, bestChunk, best, prev)
}

// iterWords scores the remaining words individually, each with its synonym
// substitutes.
func (e *Engine) iterWords(text string, prev *float64, guidance *matching.Guidance) IterationResult {
	words := e.pre.Process(text).Filtered
	if len(words) > wordLimit {
		words = words[:wordLimit]
	}

	best, bestChunk := matching.Candidate{}, ""
	for _, word := range words {
		variants := append([]string{word}, e.transformer.WordVariants(word)...)
		for _, v := range variants {
			if m := e.searcher.FindBestMatches(v, 1, guidance); len(m) > 0 && m[0].Score > best.Score {
				best, bestChunk = m[0], v
			}
		}
	}
	if bestChunk == "" {
		return e.noMatch(4, text)
	}
	return e.decide(4, bestChunk, best, prev)
}

// iterFinal is the last-resort resolution: ambiguity-resolver overlap first,
// the semantic neighbors of the top general matches when that stays weak,
// and finally the single best available match regardless of score.
func (e *Engine) iterFinal(text string, prev *float64, guidance *matching.Guidance) IterationResult {
	words := e.pre.Process(text).Filtered
	wordSet := make(map[string]struct{}, len(words))
	for _, w := range words {
		wordSet[w] = struct{}{}
	}

	var best matching.Candidate
	for _, tok := range e.dict.Tokens() {
		entry, _ := e.dict.Lookup(tok)
		overlap := 0
		for _, r := range entry.ResolverSegments() {
			if _, ok := wordSet[r]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		c := e.scorer.Score(text, entry, guidance)
		c.Score += resolverOverlapBoost * float64(overlap)
		if c.Score > 1.0 {
			c.Score = 1.0
		}
		if c.Score > best.Score || best.Token == "" {
			best = c
		}
	}

	if best.Token == "" || best.Score < neighborFallbackThreshold {
		for _, general := range e.searcher.FindBestMatches(text, 10, guidance) {
			entry, ok := e.dict.Lookup(general.Token)
			if !ok {
				continue
			}
			neighbors := entry.Neighbors()
			if len(neighbors) > neighborLimit {
				neighbors = neighbors[:neighborLimit]
			}
			for _, n := range neighbors {
				ne, ok := e.dict.Lookup(n)
				if !ok {
					continue
				}
				if c := e.scorer.Score(text, ne, guidance); c.Score > best.Score {
					best = c
				}
			}
		}
	}

	if best.Token == "" {
		if m := e.searcher.FindBestMatches(text, 1, guidance); len(m) > 0 {
			best = m[0]
		}
	}

	if best.Token == "" {
		return e.noMatch(e.cfg.Decision.MaxIterations, text)
	}
	return e.decide(e.cfg.Decision.MaxIterations, text, best, prev)
}

func (e *Engine) decide(iteration int, chunk string, c matching.Candidate, prev *float64) IterationResult {
	decision, reason := e.decider.Decide(c.Score, prev, iteration)
	return IterationResult{
		Iteration: iteration,
		Chunk:     chunk,
		Token:     c.Token,
		Score:     c.Score,
		Breakdown: c.Breakdown,
		Decision:  decision,
		Reason:    reason,
	}
}

func (e *Engine) noMatch(iteration int, chunk string) IterationResult {
	return IterationResult{
		Iteration: iteration,
		Chunk:     chunk,
		Decision:  matching.DecisionReject,
		Reason:    "no matches found",
	}
}
