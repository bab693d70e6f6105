// Package config provides configuration loading, defaults, and validation.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "KOSHA"

// newViper builds a pre-configured Viper instance: YAML file type, KOSHA_
// env prefix, automatic env binding, and a key replacer mapping "." → "_"
// so that nested keys like "engine.scan.top_n" resolve to
// "KOSHA_ENGINE_SCAN_TOP_N".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerKeys(v)
	return v
}

// registerKeys declares every configuration key to viper with its default
// value.  Without this, AutomaticEnv-bound variables for keys absent from
// the config file would be invisible to Unmarshal.
func registerKeys(v *viper.Viper) {
	v.SetDefault("dictionary", "")

	v.SetDefault("engine.decision.accept_threshold", DefaultAcceptThreshold)
	v.SetDefault("engine.decision.continue_threshold", DefaultContinueThreshold)
	v.SetDefault("engine.decision.context_loss_threshold", DefaultContextLossThreshold)
	v.SetDefault("engine.decision.max_iterations", DefaultMaxIterations)
	v.SetDefault("engine.decision.grace_iterations", DefaultGraceIterations)

	v.SetDefault("engine.scan.top_n", DefaultTopN)
	v.SetDefault("engine.scan.workers", DefaultScanWorkers)
	v.SetDefault("engine.scan.max_entries", DefaultMaxEntries)
	v.SetDefault("engine.scan.quick_exit_after", DefaultQuickExitAfter)
	v.SetDefault("engine.scan.high_score_threshold", DefaultHighScoreThreshold)
	v.SetDefault("engine.scan.collect_factor", DefaultCollectFactor)

	v.SetDefault("engine.segmenter.lookahead", DefaultLookahead)
	v.SetDefault("engine.segmenter.phrase_threshold", DefaultPhraseThreshold)
	v.SetDefault("engine.segmenter.phrase_relief", DefaultPhraseRelief)
	v.SetDefault("engine.segmenter.phrase_floor", DefaultPhraseFloor)
	v.SetDefault("engine.segmenter.word_floor", DefaultWordFloor)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", "kosha")
	v.SetDefault("metrics.listen_addr", "")
}

// Load reads the YAML file at configPath, merges any KOSHA_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from KOSHA_* environment variables,
// with no config file required.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  It is intended for
// hot-reloading the tunable thresholds during long repl sessions.  Watch is
// non-blocking; the watcher goroutine is managed by viper.  A changed file
// that fails to parse or validate does not trigger onChange.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}
