package config

// Default tunable values.  The decision thresholds come from the converged
// matching policy; the segmentation thresholds are the documented choice
// among the historical range of 0.10–0.40 floors.
const (
	DefaultAcceptThreshold      = 0.80
	DefaultContinueThreshold    = 0.60
	DefaultContextLossThreshold = 0.40
	DefaultMaxIterations        = 5
	DefaultGraceIterations      = 3

	DefaultTopN               = 10
	DefaultScanWorkers        = 1
	DefaultMaxEntries         = 500
	DefaultQuickExitAfter     = 100
	DefaultHighScoreThreshold = 0.25
	DefaultCollectFactor      = 3

	DefaultLookahead       = 6
	DefaultPhraseThreshold = 0.60
	DefaultPhraseRelief    = 0.05
	DefaultPhraseFloor     = 0.40
	DefaultWordFloor       = 0.30
)

// ApplyDefaults fills any unset (zero) field of cfg with its default value.
// Booleans are left alone: false is a valid setting.
//
// Numeric zero means "unset" here: an explicit 0 in the file or environment
// is replaced by the default, so thresholds and counts cannot be configured
// to zero.  Validate rejects zero for every threshold regardless, so the
// only field where this is observable is grace_iterations, whose minimum
// effective value is therefore 1.
func ApplyDefaults(cfg *Config) {
	d := &cfg.Engine.Decision
	if d.AcceptThreshold == 0 {
		d.AcceptThreshold = DefaultAcceptThreshold
	}
	if d.ContinueThreshold == 0 {
		d.ContinueThreshold = DefaultContinueThreshold
	}
	if d.ContextLossThreshold == 0 {
		d.ContextLossThreshold = DefaultContextLossThreshold
	}
	if d.MaxIterations == 0 {
		d.MaxIterations = DefaultMaxIterations
	}
	if d.GraceIterations == 0 {
		d.GraceIterations = DefaultGraceIterations
	}

	s := &cfg.Engine.Scan
	if s.TopN == 0 {
		s.TopN = DefaultTopN
	}
	if s.Workers == 0 {
		s.Workers = DefaultScanWorkers
	}
	if s.MaxEntries == 0 {
		s.MaxEntries = DefaultMaxEntries
	}
	if s.QuickExitAfter == 0 {
		s.QuickExitAfter = DefaultQuickExitAfter
	}
	if s.HighScoreThreshold == 0 {
		s.HighScoreThreshold = DefaultHighScoreThreshold
	}
	if s.CollectFactor == 0 {
		s.CollectFactor = DefaultCollectFactor
	}

	g := &cfg.Engine.Segmenter
	if g.Lookahead == 0 {
		g.Lookahead = DefaultLookahead
	}
	if g.PhraseThreshold == 0 {
		g.PhraseThreshold = DefaultPhraseThreshold
	}
	if g.PhraseRelief == 0 {
		g.PhraseRelief = DefaultPhraseRelief
	}
	if g.PhraseFloor == 0 {
		g.PhraseFloor = DefaultPhraseFloor
	}
	if g.WordFloor == 0 {
		g.WordFloor = DefaultWordFloor
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "kosha"
	}
}

// Default returns a fully-populated Config with every field at its default.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
