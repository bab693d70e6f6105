// Package config defines all configuration structures for kosha.  No I/O or
// parsing logic lives here — only plain data types, defaults, and validation.
package config

import (
	"fmt"

	"github.com/kosha-labs/kosha/internal/infrastructure/monitoring/logging"
)

// DecisionConfig holds the accept/continue/reject policy thresholds.  The
// defaults mirror the converged behaviour of the matching engine; they are
// exposed as configuration because the acceptance thresholds are tunables,
// not contracts.
type DecisionConfig struct {
	// AcceptThreshold is the minimum score for an immediate accept.
	AcceptThreshold float64 `mapstructure:"accept_threshold"`

	// ContinueThreshold is the lower bound of the continue band
	// [ContinueThreshold, AcceptThreshold).
	ContinueThreshold float64 `mapstructure:"continue_threshold"`

	// ContextLossThreshold is the relative score drop between successive
	// iterations that counts as context degradation.
	ContextLossThreshold float64 `mapstructure:"context_loss_threshold"`

	// MaxIterations caps the narrowing cascade per chunk.
	MaxIterations int `mapstructure:"max_iterations"`

	// GraceIterations is the number of early iterations during which a
	// low score still yields a continue instead of a reject.
	GraceIterations int `mapstructure:"grace_iterations"`
}

// ScanConfig holds candidate-search tunables.  The early-exit settings are a
// performance optimisation only; they bound how many low-scoring entries are
// explored once sufficient good candidates exist and never change which
// entries are eligible.
type ScanConfig struct {
	// TopN is the default number of candidates returned per search.
	TopN int `mapstructure:"top_n"`

	// Workers > 1 enables the parallel exhaustive scan; the sequential scan
	// with early-exit heuristics is used otherwise.
	Workers int `mapstructure:"workers"`

	// MaxEntries is the hard cap on entries examined per sequential scan.
	MaxEntries int `mapstructure:"max_entries"`

	// QuickExitAfter bails out of a sequential scan when this many entries
	// have been examined without any promising match.
	QuickExitAfter int `mapstructure:"quick_exit_after"`

	// HighScoreThreshold is the score at which a match counts toward the
	// "enough high-score matches" cutoff.
	HighScoreThreshold float64 `mapstructure:"high_score_threshold"`

	// CollectFactor bounds the total matches collected at TopN*CollectFactor.
	CollectFactor int `mapstructure:"collect_factor"`
}

// SegmenterConfig holds greedy-segmentation tunables.
type SegmenterConfig struct {
	// Lookahead is the maximum window length, in words, considered at each
	// unconsumed position.
	Lookahead int `mapstructure:"lookahead"`

	// PhraseThreshold is the acceptance threshold for a two-word window.
	PhraseThreshold float64 `mapstructure:"phrase_threshold"`

	// PhraseRelief lowers the threshold per word beyond two, biasing the
	// segmentation toward longer, more compressive matches.
	PhraseRelief float64 `mapstructure:"phrase_relief"`

	// PhraseFloor bounds how far PhraseRelief can lower the threshold.
	PhraseFloor float64 `mapstructure:"phrase_floor"`

	// WordFloor is the acceptance floor for single-word fallback attempts.
	WordFloor float64 `mapstructure:"word_floor"`
}

// EngineConfig groups the matching-engine tunables.
type EngineConfig struct {
	Decision  DecisionConfig  `mapstructure:"decision"`
	Scan      ScanConfig      `mapstructure:"scan"`
	Segmenter SegmenterConfig `mapstructure:"segmenter"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	// Enabled switches metric collection on; a disabled collector is a no-op.
	Enabled bool `mapstructure:"enabled"`

	// Namespace prefixes every metric name.
	Namespace string `mapstructure:"namespace"`

	// ListenAddr, when non-empty, is the address the repl serves /metrics on.
	ListenAddr string `mapstructure:"listen_addr"`
}

// Config is the root configuration object.
type Config struct {
	Dictionary string         `mapstructure:"dictionary"`
	Engine     EngineConfig   `mapstructure:"engine"`
	Log        logging.Config `mapstructure:"log"`
	Metrics    MetricsConfig  `mapstructure:"metrics"`
}

// Validate checks cross-field invariants.  It is called after defaults have
// been applied, so zero values indicate deliberate misconfiguration.
func (c *Config) Validate() error {
	d := c.Engine.Decision
	if d.AcceptThreshold <= 0 || d.AcceptThreshold > 1 {
		return fmt.Errorf("engine.decision.accept_threshold must be in (0,1], got %v", d.AcceptThreshold)
	}
	if d.ContinueThreshold <= 0 || d.ContinueThreshold >= d.AcceptThreshold {
		return fmt.Errorf("engine.decision.continue_threshold must be in (0, accept_threshold), got %v", d.ContinueThreshold)
	}
	if d.ContextLossThreshold <= 0 || d.ContextLossThreshold > 1 {
		return fmt.Errorf("engine.decision.context_loss_threshold must be in (0,1], got %v", d.ContextLossThreshold)
	}
	if d.MaxIterations < 1 {
		return fmt.Errorf("engine.decision.max_iterations must be >= 1, got %d", d.MaxIterations)
	}
	if d.GraceIterations < 0 || d.GraceIterations > d.MaxIterations {
		return fmt.Errorf("engine.decision.grace_iterations must be in [0, max_iterations], got %d", d.GraceIterations)
	}

	s := c.Engine.Scan
	if s.TopN < 1 {
		return fmt.Errorf("engine.scan.top_n must be >= 1, got %d", s.TopN)
	}
	if s.Workers < 1 {
		return fmt.Errorf("engine.scan.workers must be >= 1, got %d", s.Workers)
	}
	if s.CollectFactor < 1 {
		return fmt.Errorf("engine.scan.collect_factor must be >= 1, got %d", s.CollectFactor)
	}

	g := c.Engine.Segmenter
	if g.Lookahead < 1 {
		return fmt.Errorf("engine.segmenter.lookahead must be >= 1, got %d", g.Lookahead)
	}
	if g.PhraseFloor > g.PhraseThreshold {
		return fmt.Errorf("engine.segmenter.phrase_floor %v exceeds phrase_threshold %v", g.PhraseFloor, g.PhraseThreshold)
	}
	if g.WordFloor <= 0 || g.WordFloor > 1 {
		return fmt.Errorf("engine.segmenter.word_floor must be in (0,1], got %v", g.WordFloor)
	}
	return nil
}
