package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kosha-labs/kosha/internal/application/encoder"
	"github.com/kosha-labs/kosha/internal/domain/matching"
	"github.com/kosha-labs/kosha/internal/infrastructure/monitoring/logging"
)

// encodeOptions holds the encode command's flag values.  Kept on the command
// via closure so repeated Execute calls in tests do not share state.
type encodeOptions struct {
	Expect      []string
	Context     string
	Trace       bool
	SingleChunk bool
}

// NewEncodeCmd creates the encode command, which maps input text onto the
// dictionary's token space.
func NewEncodeCmd() *cobra.Command {
	opts := &encodeOptions{}

	cmd := &cobra.Command{
		Use:   "encode [text...]",
		Short: "Encode natural-language text into dictionary tokens",
		Long:  "Encode segments the input, matches each window against the dictionary\nthrough the iterative cascade, and prints the token sequence.  Words that\nnever cross the match thresholds pass through verbatim.\n\nWith no arguments the input is read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.Expect, "expect", nil, "expected tokens to bias matching toward (comma-separated)")
	f.StringVar(&opts.Context, "context", "", "expected semantic context to bias matching toward")
	f.BoolVar(&opts.Trace, "trace", false, "print the per-window cascade trace")
	f.BoolVar(&opts.SingleChunk, "single-chunk", false, "run the cascade on the whole input as one chunk, skipping segmentation")

	return cmd
}

func runEncode(cmd *cobra.Command, args []string, opts *encodeOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}

	text, err := inputFromArgsOrStdin(cmd, args)
	if err != nil {
		return err
	}

	eng, _, err := buildEngine(cliCtx)
	if err != nil {
		return err
	}

	var guidance *matching.Guidance
	if len(opts.Expect) > 0 || opts.Context != "" {
		guidance = &matching.Guidance{
			ExpectedTokens:  opts.Expect,
			ExpectedContext: opts.Context,
		}
	}

	cliCtx.Logger.Debug("encoding input",
		logging.String("text", text),
		logging.Bool("single_chunk", opts.SingleChunk))

	if opts.SingleChunk {
		return printChunkResult(cmd, cliCtx, eng.ProcessChunk(text, guidance), opts.Trace)
	}

	result := eng.ProcessText(text, guidance)
	return printEncodeResult(cmd, cliCtx, result, opts.Trace)
}

func printEncodeResult(cmd *cobra.Command, cliCtx *CLIContext, result encoder.Result, trace bool) error {
	if strings.EqualFold(cliCtx.OutputFormat, "json") {
		return printJSON(cmd, result)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Output)

	if cliCtx.Verbose || trace {
		fmt.Fprintf(cmd.OutOrStdout(), "\nConfidence: %.3f  Matched: %d/%d words\n",
			result.Confidence, result.MatchedCount, result.TotalWords)
	}
	if trace {
		fmt.Fprint(cmd.OutOrStdout(), formatTrace(result.WindowResults))
	}
	return nil
}

func printChunkResult(cmd *cobra.Command, cliCtx *CLIContext, result encoder.ChunkResult, trace bool) error {
	if strings.EqualFold(cliCtx.OutputFormat, "json") {
		return printJSON(cmd, result)
	}

	if result.Best.Token == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "no match")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%.3f, iteration %d)\n",
			result.Best.Token, result.Best.Score, result.Best.Iteration)
	}
	if trace {
		fmt.Fprint(cmd.OutOrStdout(), formatTrace(result.Trace))
	}
	return nil
}

// formatTrace renders iteration results as an aligned table with the decision
// column colorized.
func formatTrace(iterations []encoder.IterationResult) string {
	if len(iterations) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString("\n")

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Iter", "Chunk", "Token", "Score", "Decision", "Reason"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for _, it := range iterations {
		table.Append([]string{
			fmt.Sprintf("%d", it.Iteration),
			truncate(it.Chunk, 32),
			it.Token,
			fmt.Sprintf("%.3f", it.Score),
			colorizeDecision(it.Decision),
			truncate(it.Reason, 48),
		})
	}
	table.Render()

	return buf.String()
}

func colorizeDecision(d matching.Decision) string {
	switch d {
	case matching.DecisionAccept:
		return color.GreenString(d.String())
	case matching.DecisionContinue:
		return color.YellowString(d.String())
	case matching.DecisionReject:
		return color.RedString(d.String())
	default:
		return d.String()
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
