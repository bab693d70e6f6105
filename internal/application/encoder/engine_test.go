package encoder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosha-labs/kosha/internal/config"
	"github.com/kosha-labs/kosha/internal/domain/lexicon"
	"github.com/kosha-labs/kosha/internal/domain/matching"
	"github.com/kosha-labs/kosha/internal/infrastructure/monitoring/logging"
	"github.com/kosha-labs/kosha/internal/testutil"
)

func testEntries() []lexicon.Entry {
	return []lexicon.Entry{
		{
			Token:               "saMpraBinna",
			Definition:          "divide property",
			SemanticFrame:       "divide|property",
			ContextualTriggers:  "divide|property",
			UsageFrequencyIndex: "legal:0.9",
			SemanticNeighbors:   "viBAga",
		},
		{
			Token:         "viBAga",
			Definition:    "division; a share",
			SemanticFrame: "divide|share",
		},
		{
			Token:               "KaNqa",
			Definition:          "piece of cake",
			SemanticFrame:       "cake|dessert",
			UsageFrequencyIndex: "food:0.8",
		},
	}
}

func newTestEngine(t *testing.T, mutate func(*config.EngineConfig)) *Engine {
	t.Helper()
	dict, err := lexicon.NewDictionary(testEntries())
	require.NoError(t, err)

	cfg := config.Default().Engine
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := New(dict, cfg, logging.NewNop(), nil)
	require.NoError(t, err)
	return e
}

func TestNewRejectsEmptyDictionary(t *testing.T) {
	_, err := New(nil, config.Default().Engine, logging.NewNop(), nil)
	require.Error(t, err)
}

func TestNewLogsEngineReady(t *testing.T) {
	dict, err := lexicon.NewDictionary(testEntries())
	require.NoError(t, err)

	log := testutil.NewMockLogger()
	_, err = New(dict, config.Default().Engine, log, nil)
	require.NoError(t, err)
	assert.True(t, log.Has("info", "encoder engine ready"))
}

func TestProcessChunkStrongMatch(t *testing.T) {
	e := newTestEngine(t, nil)

	res := e.ProcessChunk("divide property", nil)
	assert.Equal(t, "saMpraBinna", res.Best.Token)
	assert.Equal(t, matching.DecisionAccept, res.Best.Decision)
	assert.Equal(t, 1, res.Best.Iteration)
	assert.Greater(t, res.Best.Score, 0.8)
	assert.Len(t, res.Trace, 1)
}

func TestProcessChunkCascades(t *testing.T) {
	e := newTestEngine(t, nil)

	// A noisy span still resolves to the dominant entry, and the trace
	// iterations are strictly increasing.
	res := e.ProcessChunk("we should probably divide the family property somehow", nil)
	assert.Equal(t, "saMpraBinna", res.Best.Token)
	require.NotEmpty(t, res.Trace)
	for i := 1; i < len(res.Trace); i++ {
		assert.Greater(t, res.Trace[i].Iteration, res.Trace[i-1].Iteration)
	}
}

func TestProcessChunkNoMatch(t *testing.T) {
	e := newTestEngine(t, nil)

	res := e.ProcessChunk("xylophone", nil)
	assert.Empty(t, res.Best.Token)
	assert.Equal(t, matching.DecisionReject, res.Best.Decision)
	assert.Zero(t, res.Best.Score)
	// The reject at iteration 1 skips straight to final resolution.
	require.Len(t, res.Trace, 2)
	assert.Equal(t, e.cfg.Decision.MaxIterations, res.Trace[1].Iteration)
}

func TestProcessChunkGuidanceBoostsScore(t *testing.T) {
	e := newTestEngine(t, nil)

	plain := e.ProcessChunk("divide property", nil)
	guided := e.ProcessChunk("divide property", &matching.Guidance{
		ExpectedTokens: []string{"saMpraBinna"},
	})

	assert.Equal(t, plain.Best.Token, guided.Best.Token)
	assert.Greater(t, guided.Best.Score, plain.Best.Score)
}

func TestProcessChunkForcedResolution(t *testing.T) {
	// With a weak but non-zero affinity, final resolution must still force
	// some match rather than give up.
	e := newTestEngine(t, nil)

	res := e.ProcessChunk("share", nil)
	if res.Best.Token == "" {
		t.Fatalf("expected a forced match, got none (trace %v)", res.Trace)
	}
}

func TestProcessTextStopWordsPassThrough(t *testing.T) {
	e := newTestEngine(t, nil)

	res := e.ProcessText("the divide property", nil)
	fields := strings.Fields(res.Output)
	require.NotEmpty(t, fields)
	assert.Equal(t, "the", fields[0])
	assert.Contains(t, res.Output, "__saMpraBinna__")
}

func TestProcessTextUnknownWordsVerbatim(t *testing.T) {
	e := newTestEngine(t, nil)

	res := e.ProcessText("xylophone qqq", nil)
	assert.Equal(t, "xylophone qqq", res.Output)
	assert.Zero(t, res.MatchedCount)
	assert.Zero(t, res.Confidence)
	assert.Equal(t, 2, res.TotalWords)
}

func TestProcessTextFullCoverage(t *testing.T) {
	// Every input word is consumed exactly once: into a token window or
	// emitted verbatim.  Verbatim fields plus matched words must equal the
	// input word count.
	e := newTestEngine(t, nil)

	inputs := []string{
		"divide property",
		"the divide property now",
		"xylophone qqq zzz",
		"how to divide a cake into portions",
		"divide",
		"",
		"the the the",
	}
	for _, in := range inputs {
		res := e.ProcessText(in, nil)
		verbatim := 0
		for _, f := range strings.Fields(res.Output) {
			if !lexicon.IsTokenRun(f) {
				verbatim++
			}
		}
		assert.Equal(t, res.TotalWords, verbatim+res.MatchedCount, "input=%q output=%q", in, res.Output)
	}
}

func TestProcessTextIdempotent(t *testing.T) {
	e := newTestEngine(t, nil)

	for _, in := range []string{"divide property", "how to divide a cake into portions", "xylophone"} {
		first := e.ProcessText(in, nil)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first.Output, e.ProcessText(in, nil).Output, "input=%q", in)
		}
	}
}

func TestProcessTextConsecutiveTokensShareRun(t *testing.T) {
	e := newTestEngine(t, func(cfg *config.EngineConfig) {
		cfg.Segmenter.Lookahead = 2
	})

	res := e.ProcessText("divide property divide property", nil)
	assert.Equal(t, "__saMpraBinna__saMpraBinna__", res.Output)
	assert.Equal(t, 4, res.MatchedCount)
	assert.Len(t, res.WindowResults, 2)
}

func TestProcessTextLongWindowCompression(t *testing.T) {
	// With the full lookahead, surrounding words inside a qualifying window
	// are absorbed into the token: segmentation prefers the longest window
	// that crosses the threshold.
	e := newTestEngine(t, nil)

	res := e.ProcessText("please divide property now", nil)
	require.NotEmpty(t, res.WindowResults)
	assert.Equal(t, "saMpraBinna", res.WindowResults[0].Token)
	assert.Equal(t, res.TotalWords, res.MatchedCount)
}

func TestProcessTextGuidanceOnlyBiasesRanking(t *testing.T) {
	e := newTestEngine(t, nil)

	plain := e.ProcessText("divide property", nil)
	guided := e.ProcessText("divide property", &matching.Guidance{ExpectedTokens: []string{"saMpraBinna"}, ExpectedContext: "legal"})
	assert.Equal(t, plain.Output, guided.Output)
	assert.GreaterOrEqual(t, guided.Confidence, plain.Confidence)
}
