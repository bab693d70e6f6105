package encoder

import (
	"strings"

	"github.com/kosha-labs/kosha/internal/domain/lexicon"
	"github.com/kosha-labs/kosha/internal/domain/matching"
	"github.com/kosha-labs/kosha/internal/infrastructure/monitoring/logging"
)

// part is one unit of assembled output: an emitted token or a verbatim word.
type part struct {
	text    string
	isToken bool
}

// ProcessText runs the greedy longest-phrase-first segmentation over text.
// Every input word is consumed exactly once, into a token or verbatim; stop
// words always pass through unchanged.  guidance may be nil.
func (e *Engine) ProcessText(text string, guidance *matching.Guidance) Result {
	words := strings.Fields(e.pre.Normalize(text))
	result := Result{TotalWords: len(words)}
	if len(words) == 0 {
		return result
	}

	processed := make([]bool, len(words))
	parts := make([]part, 0, len(words))
	totalScore := 0.0

	consume := func(from, to int) {
		for i := from; i < to; i++ {
			processed[i] = true
		}
	}

	for i := 0; i < len(words); i++ {
		if processed[i] {
			continue
		}
		clean := CleanWord(words[i])

		if clean == "" || IsStopWord(clean) {
			parts = append(parts, part{text: words[i]})
			processed[i] = true
			e.metrics.ObserveWindow("verbatim")
			continue
		}

		// Phrase windows, longest preferred: the best-scoring window above
		// its length-dependent threshold wins, longer windows breaking ties.
		if win, res, ok := e.bestWindow(words, i, guidance); ok {
			parts = append(parts, part{text: res.Best.Token, isToken: true})
			result.WindowResults = append(result.WindowResults, res.Best)
			totalScore += res.Best.Score
			result.MatchedCount += win - i
			consume(i, win)
			i = win - 1
			e.metrics.ObserveWindow("token")
			continue
		}

		// Single-word fallback at the lower floor.
		res := e.processChunk(clean, guidance)
		if res.Best.Token != "" && res.Best.Score >= e.cfg.Segmenter.WordFloor {
			parts = append(parts, part{text: res.Best.Token, isToken: true})
			result.WindowResults = append(result.WindowResults, res.Best)
			totalScore += res.Best.Score
			result.MatchedCount++
			processed[i] = true
			e.metrics.ObserveWindow("token")
			continue
		}

		parts = append(parts, part{text: words[i]})
		processed[i] = true
		e.metrics.ObserveWindow("verbatim")
	}

	// Full-coverage sweep: anything the walk above left unassigned is
	// preserved verbatim so no word is ever dropped.
	for i, done := range processed {
		if !done {
			e.log.Warn("segmentation left a word unassigned", logging.String("word", words[i]))
			parts = append(parts, part{text: words[i]})
			e.metrics.ObserveWindow("verbatim")
		}
	}

	result.Output = render(parts)
	if len(result.WindowResults) > 0 {
		result.Confidence = totalScore / float64(len(result.WindowResults))
	}
	e.metrics.ObserveConfidence(result.Confidence)
	e.log.Info("text processed",
		logging.Int("total_words", result.TotalWords),
		logging.Int("matched_words", result.MatchedCount),
		logging.Float64("confidence", result.Confidence))
	return result
}

// bestWindow searches windows starting at position start, from the longest
// allowed down to two words.  A window qualifies as a phrase attempt when it
// holds at least two non-stop words and its cascade score clears the
// length-dependent threshold.  Returns the exclusive end of the winning
// window and its cascade result.
func (e *Engine) bestWindow(words []string, start int, guidance *matching.Guidance) (int, ChunkResult, bool) {
	maxEnd := start + e.cfg.Segmenter.Lookahead
	if maxEnd > len(words) {
		maxEnd = len(words)
	}

	bestEnd, bestRes, found := 0, ChunkResult{}, false
	for end := maxEnd; end > start+1; end-- {
		cleaned := make([]string, 0, end-start)
		nonStop := 0
		for _, w := range words[start:end] {
			c := CleanWord(w)
			if c == "" {
				continue
			}
			cleaned = append(cleaned, c)
			if !IsStopWord(c) {
				nonStop++
			}
		}
		if nonStop < 2 {
			continue
		}

		res := e.processChunk(strings.Join(cleaned, " "), guidance)
		if res.Best.Token == "" || res.Best.Score < e.windowThreshold(end-start) {
			continue
		}
		// Strictly greater keeps the longer window on equal scores, since
		// longer windows are tried first.
		if !found || res.Best.Score > bestRes.Best.Score {
			bestEnd, bestRes, found = end, res, true
		}
	}
	return bestEnd, bestRes, found
}

// windowThreshold relaxes the phrase acceptance threshold for longer
// windows, biasing toward compression, bounded by the floor.
func (e *Engine) windowThreshold(windowLen int) float64 {
	t := e.cfg.Segmenter.PhraseThreshold - e.cfg.Segmenter.PhraseRelief*float64(windowLen-2)
	if t < e.cfg.Segmenter.PhraseFloor {
		t = e.cfg.Segmenter.PhraseFloor
	}
	return t
}

// render assembles the output: verbatim words separated by spaces, each run
// of consecutive tokens collapsed into one surface-encoded field.
func render(parts []part) string {
	var fields []string
	var run []string
	flush := func() {
		if len(run) > 0 {
			fields = append(fields, lexicon.EncodeTokenRun(run))
			run = nil
		}
	}
	for _, p := range parts {
		if p.isToken {
			run = append(run, p.text)
			continue
		}
		flush()
		fields = append(fields, p.text)
	}
	flush()
	return strings.Join(fields, " ")
}
