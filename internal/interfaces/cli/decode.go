package cli

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kosha-labs/kosha/internal/application/decoder"
)

type decodeOptions struct {
	Gloss bool
}

// NewDecodeCmd creates the decode command, which expands encoded token
// sequences back into their primary definitions.
func NewDecodeCmd() *cobra.Command {
	opts := &decodeOptions{}

	cmd := &cobra.Command{
		Use:   "decode [text...]",
		Short: "Expand encoded token sequences into definitions",
		Long:  "Decode replaces every dictionary token in the input with the primary\nclause of its definition.  Unknown tokens are reported in brackets and\nnon-token words pass through unchanged.\n\nWith no arguments the input is read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Gloss, "gloss", false, "print a per-word gloss table alongside the decoded text")

	return cmd
}

func runDecode(cmd *cobra.Command, args []string, opts *decodeOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}

	text, err := inputFromArgsOrStdin(cmd, args)
	if err != nil {
		return err
	}

	dec, err := buildDecoder(cliCtx)
	if err != nil {
		return err
	}

	result := dec.Decode(text)

	if strings.EqualFold(cliCtx.OutputFormat, "json") {
		return printJSON(cmd, result)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Output)

	if opts.Gloss {
		fmt.Fprint(cmd.OutOrStdout(), formatGloss(result.Words))
	}
	if cliCtx.Verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTokens: %d  Known: %d\n", result.TokenCount, result.KnownCount)
	}
	return nil
}

func formatGloss(words []decoder.WordResult) string {
	if len(words) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString("\n")

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Input", "Output", "Known"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for _, w := range words {
		known := ""
		if w.Known {
			known = "yes"
		}
		table.Append([]string{w.Input, truncate(w.Output, 60), known})
	}
	table.Render()

	return buf.String()
}
