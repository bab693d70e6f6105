package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosha-labs/kosha/internal/config"
	"github.com/kosha-labs/kosha/internal/domain/lexicon"
)

func searchEntries() []lexicon.Entry {
	return []lexicon.Entry{
		{
			Token:               "CAKE_DIVIDE",
			Definition:          "divide a cake",
			SemanticFrame:       "divide|portion",
			ContextualTriggers:  "cake|share",
			UsageFrequencyIndex: "food:0.50",
		},
		{
			Token:         "SPLIT",
			SemanticFrame: "divide",
		},
		{
			Token:      "UNRELATED",
			Definition: "quantum chromodynamics",
		},
	}
}

func newTestSearcher(t *testing.T, entries []lexicon.Entry, cfg config.ScanConfig) *Searcher {
	t.Helper()
	dict, err := lexicon.NewDictionary(entries)
	require.NoError(t, err)
	expander := scorerExpander()
	detector := scorerDetector()
	return NewSearcher(dict, NewScorer(dict, expander, detector), detector, cfg, nil)
}

func scanCfg() config.ScanConfig {
	return config.Default().Engine.Scan
}

func mustLookup(t *testing.T, d *lexicon.Dictionary, token string) *lexicon.Entry {
	t.Helper()
	e, ok := d.Lookup(token)
	require.True(t, ok)
	return e
}

func TestFindBestMatches(t *testing.T) {
	s := newTestSearcher(t, searchEntries(), scanCfg())
	text := "divide the cake into portions"

	t.Run("best candidate first", func(t *testing.T) {
		got := s.FindBestMatches(text, 3, nil)
		require.NotEmpty(t, got)
		assert.Equal(t, "CAKE_DIVIDE", got[0].Token)
	})

	t.Run("zero-score entries are omitted", func(t *testing.T) {
		got := s.FindBestMatches(text, 3, nil)
		for _, c := range got {
			assert.Greater(t, c.Score, 0.0)
			assert.NotEqual(t, "UNRELATED", c.Token)
		}
	})

	t.Run("truncates to topN", func(t *testing.T) {
		got := s.FindBestMatches(text, 1, nil)
		assert.Len(t, got, 1)
	})

	t.Run("no match yields empty, not error", func(t *testing.T) {
		got := s.FindBestMatches("zzz qqq", 3, nil)
		assert.Empty(t, got)
	})
}

func TestFindBestMatchesDeterministic(t *testing.T) {
	s := newTestSearcher(t, searchEntries(), scanCfg())
	text := "divide the cake into portions"

	first := s.FindBestMatches(text, 3, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.FindBestMatches(text, 3, nil))
	}
}

func TestFindBestMatchesParallelMatchesSequential(t *testing.T) {
	// The parallel exhaustive scan must rank the same candidates as the
	// sequential scan when the early-exit heuristics do not fire.
	seqCfg := scanCfg()
	seqCfg.Workers = 1
	parCfg := scanCfg()
	parCfg.Workers = 4

	seq := newTestSearcher(t, searchEntries(), seqCfg)
	par := newTestSearcher(t, searchEntries(), parCfg)

	for _, text := range []string{"divide the cake into portions", "divide", "cake"} {
		assert.Equal(t, seq.FindBestMatches(text, 3, nil), par.FindBestMatches(text, 3, nil), "text=%q", text)
	}
}

func TestFindBestMatchesExpectedTokens(t *testing.T) {
	s := newTestSearcher(t, searchEntries(), scanCfg())

	// Both entries share the "divide" frame; the expected-token multiplier
	// plus the exact-match boost must pull SPLIT ahead.
	got := s.FindBestMatches("divide", 2, &Guidance{ExpectedTokens: []string{"SPLIT"}})
	require.NotEmpty(t, got)
	assert.Equal(t, "SPLIT", got[0].Token)

	// Unknown expected tokens are ignored.
	got = s.FindBestMatches("divide", 2, &Guidance{ExpectedTokens: []string{"NO_SUCH"}})
	assert.NotEmpty(t, got)
}

func TestContextAwareFilterReordersByPriority(t *testing.T) {
	// Two entries with near-equal raw scores; the one whose frequency index
	// names the detected context must be preferred, without its reported
	// score changing.
	entries := []lexicon.Entry{
		{Token: "A_GENERIC", SemanticFrame: "cake", Definition: "cake"},
		{Token: "B_FOODWISE", SemanticFrame: "cake", UsageFrequencyIndex: "food:0.9"},
	}
	s := newTestSearcher(t, entries, scanCfg())

	// Raw scores put A_GENERIC marginally ahead; the context filter flips
	// the order because B_FOODWISE carries a high weight for "food".
	a := s.scorer.Score("cake", mustLookup(t, s.dict, "A_GENERIC"), nil)
	b := s.scorer.Score("cake", mustLookup(t, s.dict, "B_FOODWISE"), nil)
	require.Greater(t, a.Score, b.Score)

	got := s.FindBestMatches("cake", 2, nil)
	require.Len(t, got, 2)
	assert.Equal(t, "B_FOODWISE", got[0].Token)

	// Reported scores are the raw scores, not the filter's sort keys.
	for _, c := range got {
		entry, ok := s.dict.Lookup(c.Token)
		require.True(t, ok)
		raw := s.scorer.Score("cake", entry, nil)
		assert.Equal(t, raw.Score, c.Score)
	}
}
