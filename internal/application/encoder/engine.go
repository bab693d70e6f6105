// Package encoder drives the iterative matching cascade and the greedy
// segmentation that together map free text onto dictionary tokens.
package encoder

import (
	"github.com/kosha-labs/kosha/internal/config"
	"github.com/kosha-labs/kosha/internal/domain/lexicon"
	"github.com/kosha-labs/kosha/internal/domain/matching"
	"github.com/kosha-labs/kosha/internal/domain/semantics"
	"github.com/kosha-labs/kosha/internal/infrastructure/monitoring/logging"
	"github.com/kosha-labs/kosha/internal/infrastructure/monitoring/prometheus"
	"github.com/kosha-labs/kosha/pkg/errors"
)

// Engine orchestrates the matching cascade over a fixed dictionary.  An
// Engine is immutable after construction and safe for concurrent use; all
// per-call state lives on the stack of ProcessText/ProcessChunk.
type Engine struct {
	dict        *lexicon.Dictionary
	cfg         config.EngineConfig
	pre         *Preprocessor
	transformer *Transformer
	expander    *semantics.Expander
	detector    *semantics.Detector
	scorer      *matching.Scorer
	searcher    *matching.Searcher
	decider     *matching.DecisionEngine
	log         logging.Logger
	metrics     *prometheus.Metrics
}

// New builds an Engine over a validated dictionary.  metrics may be nil.
func New(dict *lexicon.Dictionary, cfg config.EngineConfig, log logging.Logger, metrics *prometheus.Metrics) (*Engine, error) {
	if dict == nil || dict.Len() == 0 {
		return nil, errors.New(errors.ErrCodeDictionaryEmpty, "engine requires a non-empty dictionary")
	}
	if log == nil {
		log = logging.NewNop()
	}

	expander := semantics.NewExpander()
	detector := semantics.NewDetector()
	scorer := matching.NewScorer(dict, expander, detector)

	e := &Engine{
		dict:        dict,
		cfg:         cfg,
		pre:         NewPreprocessor(),
		transformer: NewTransformer(expander),
		expander:    expander,
		detector:    detector,
		scorer:      scorer,
		searcher:    matching.NewSearcher(dict, scorer, detector, cfg.Scan, log.Named("search")),
		decider:     matching.NewDecisionEngine(cfg.Decision),
		log:         log,
		metrics:     metrics,
	}
	e.log.Info("encoder engine ready",
		logging.Int("dictionary_entries", dict.Len()),
		logging.Int("scan_workers", cfg.Scan.Workers))
	return e, nil
}

// Dictionary exposes the engine's read-only dictionary.
func (e *Engine) Dictionary() *lexicon.Dictionary { return e.dict }
