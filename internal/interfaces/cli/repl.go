package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kosha-labs/kosha/internal/application/decoder"
	"github.com/kosha-labs/kosha/internal/infrastructure/monitoring/logging"
	"github.com/kosha-labs/kosha/internal/infrastructure/monitoring/prometheus"
)

const replHelp = `Commands:
  :decode <text>   expand tokens in <text> into definitions
  :trace on|off    toggle the cascade trace for subsequent inputs
  :help            show this help
  :quit            leave the repl (also :q, :exit)
Any other input is encoded against the dictionary.`

type replOptions struct {
	MetricsAddr string
	Trace       bool
}

// NewReplCmd creates the repl command: an interactive encode/decode loop
// that keeps the dictionary and engine warm between inputs, optionally
// serving Prometheus metrics while it runs.
func NewReplCmd() *cobra.Command {
	opts := &replOptions{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive encode/decode session",
		Long:  "Repl loads the dictionary once and then encodes each input line,\nprinting the token sequence and its confidence.  Lines starting with a\ncolon are commands; see :help.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.MetricsAddr, "metrics-addr", "", "address to serve /metrics on (overrides config)")
	f.BoolVar(&opts.Trace, "trace", false, "start with the cascade trace enabled")

	return cmd
}

func runRepl(cmd *cobra.Command, opts *replOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}

	eng, metrics, err := buildEngine(cliCtx)
	if err != nil {
		return err
	}
	dec, err := decoder.New(eng.Dictionary(), cliCtx.Logger.Named("decoder"))
	if err != nil {
		return err
	}

	stopMetrics := startMetricsServer(cliCtx, opts, metrics)
	defer stopMetrics()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "kosha %s — %d entries loaded.  Type :help for commands.\n",
		Version, eng.Dictionary().Len())

	trace := opts.Trace
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			if done := replCommand(cmd, dec, line, &trace); done {
				break
			}
			continue
		}

		result := eng.ProcessText(line, nil)
		fmt.Fprintln(out, result.Output)
		fmt.Fprintf(out, "  confidence %.3f, matched %d/%d words\n",
			result.Confidence, result.MatchedCount, result.TotalWords)
		if trace {
			fmt.Fprint(out, formatTrace(result.WindowResults))
		}
	}

	fmt.Fprintln(out, "bye")
	return scanner.Err()
}

// replCommand handles a colon-prefixed line; it returns true when the
// session should end.
func replCommand(cmd *cobra.Command, dec *decoder.Decoder, line string, trace *bool) bool {
	out := cmd.OutOrStdout()
	verb, rest, _ := strings.Cut(line, " ")

	switch verb {
	case ":q", ":quit", ":exit":
		return true
	case ":help":
		fmt.Fprintln(out, replHelp)
	case ":decode":
		if strings.TrimSpace(rest) == "" {
			fmt.Fprintln(out, "usage: :decode <text>")
			return false
		}
		result := dec.Decode(strings.TrimSpace(rest))
		fmt.Fprintln(out, result.Output)
	case ":trace":
		switch strings.TrimSpace(rest) {
		case "on":
			*trace = true
			fmt.Fprintln(out, "trace on")
		case "off":
			*trace = false
			fmt.Fprintln(out, "trace off")
		default:
			fmt.Fprintln(out, "usage: :trace on|off")
		}
	default:
		fmt.Fprintf(out, "unknown command %s; type :help\n", verb)
	}
	return false
}

// startMetricsServer serves the Prometheus handler on the configured address
// and returns a function that shuts the server down.  It is a no-op when
// metrics are disabled or no address is configured.
func startMetricsServer(cliCtx *CLIContext, opts *replOptions, metrics *prometheus.Metrics) func() {
	addr := opts.MetricsAddr
	if addr == "" {
		addr = cliCtx.Config.Metrics.ListenAddr
	}
	if addr == "" || !cliCtx.Config.Metrics.Enabled {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	log := cliCtx.Logger.Named("metrics")
	go func() {
		log.Info("serving metrics", logging.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server stopped", logging.Err(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("metrics server shutdown failed", logging.Err(err))
		}
	}
}
