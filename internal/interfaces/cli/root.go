// Package cli implements the kosha command-line interface: the root command
// with global flags and configuration loading, plus the encode, decode, and
// repl subcommands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kosha-labs/kosha/internal/application/decoder"
	"github.com/kosha-labs/kosha/internal/application/encoder"
	"github.com/kosha-labs/kosha/internal/config"
	"github.com/kosha-labs/kosha/internal/infrastructure/loader"
	"github.com/kosha-labs/kosha/internal/infrastructure/monitoring/logging"
	"github.com/kosha-labs/kosha/internal/infrastructure/monitoring/prometheus"
	"github.com/kosha-labs/kosha/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// cliContextKey is the context key under which CLIContext is stored.
type cliContextKey struct{}

// RootOptions holds the global flag values shared by every subcommand.
type RootOptions struct {
	ConfigPath   string
	Dictionary   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
	NoColor      bool
}

// CLIContext carries the initialized dependencies through the command tree.
// It is built once in the root command's PersistentPreRunE and retrieved by
// subcommands via GetCLIContext.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	OutputFormat string
	Verbose      bool
}

// NewRootCommand creates the root cobra command with global flags and all
// subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "kosha",
		Short:   "kosha — semantic dictionary tokenizer",
		Long:    "kosha maps natural-language text onto symbolic dictionary tokens using\nmulti-factor semantic similarity scoring, and expands token sequences back\ninto their primary definitions.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./kosha.yaml)")
	pf.StringVarP(&opts.Dictionary, "dictionary", "d", "", "dictionary CSV path (overrides config)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format (text, json)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose output (implies --log-level debug)")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		NewEncodeCmd(),
		NewDecodeCmd(),
		NewReplCmd(),
	)

	return cmd
}

// persistentPreRun loads configuration, applies flag overrides, builds the
// logger, and stores the resulting CLIContext on the command's context.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := initConfig(opts)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "configuration initialization failed")
	}

	if opts.Dictionary != "" {
		cfg.Dictionary = opts.Dictionary
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}
	if opts.NoColor {
		color.NoColor = true
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "logger initialization failed")
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		OutputFormat: opts.OutputFormat,
		Verbose:      opts.Verbose,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))

	return nil
}

// initConfig resolves configuration with priority: --config flag, then the
// default search paths, then KOSHA_* environment variables over built-in
// defaults.
func initConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}

	searchPaths := []string{"./kosha.yaml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDir, ".kosha", "config.yaml"))
	}
	searchPaths = append(searchPaths, "/etc/kosha/config.yaml")

	for _, p := range searchPaths {
		if _, statErr := os.Stat(p); statErr == nil {
			return config.Load(p)
		}
	}

	return config.LoadFromEnv()
}

// GetCLIContext extracts the CLIContext stored by persistentPreRun.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New(errors.ErrCodeInternal, "command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.New(errors.ErrCodeInternal, "CLIContext not found in command context")
	}
	return cliCtx, nil
}

// buildEngine loads the dictionary named by the configuration and constructs
// the encoder engine plus its metrics collector (nil when metrics are
// disabled).
func buildEngine(cliCtx *CLIContext) (*encoder.Engine, *prometheus.Metrics, error) {
	if cliCtx.Config.Dictionary == "" {
		return nil, nil, errors.New(errors.ErrCodeDictionaryLoad,
			"no dictionary configured; set --dictionary or the dictionary key in kosha.yaml")
	}

	dict, err := loader.LoadCSV(cliCtx.Config.Dictionary, cliCtx.Logger.Named("loader"))
	if err != nil {
		return nil, nil, err
	}

	var metrics *prometheus.Metrics
	if cliCtx.Config.Metrics.Enabled {
		metrics = prometheus.New(cliCtx.Config.Metrics.Namespace)
	}

	eng, err := encoder.New(dict, cliCtx.Config.Engine, cliCtx.Logger.Named("engine"), metrics)
	if err != nil {
		return nil, nil, err
	}
	return eng, metrics, nil
}

// buildDecoder loads the dictionary and constructs the decoder.
func buildDecoder(cliCtx *CLIContext) (*decoder.Decoder, error) {
	if cliCtx.Config.Dictionary == "" {
		return nil, errors.New(errors.ErrCodeDictionaryLoad,
			"no dictionary configured; set --dictionary or the dictionary key in kosha.yaml")
	}
	dict, err := loader.LoadCSV(cliCtx.Config.Dictionary, cliCtx.Logger.Named("loader"))
	if err != nil {
		return nil, err
	}
	return decoder.New(dict, cliCtx.Logger.Named("decoder"))
}

// inputFromArgsOrStdin joins the positional arguments into a single input
// string, or reads all of stdin when no arguments were given.
func inputFromArgsOrStdin(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeEmptyInput, "failed to read input from stdin")
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.New(errors.ErrCodeEmptyInput, "no input text given")
	}
	return text, nil
}

// printJSON writes data as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Execute runs the root command and reports failures on stderr.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %s\n", err.Error())
		return err
	}
	return nil
}
