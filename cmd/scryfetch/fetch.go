package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mtgcanvas/scryfetch/internal/jsonl"
	"github.com/mtgcanvas/scryfetch/internal/namelist"
	"github.com/mtgcanvas/scryfetch/pkg/logging"
	"github.com/mtgcanvas/scryfetch/pkg/resolver"
)

var (
	fetchInput string
	fetchOut   string
	fetchSort  string
)

// fetchCmd resolves a newline-separated list of card names.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch card records for a list of names",
	Long: `Fetch resolves each name in the input file against the collection
lookup endpoint in batches of up to 75 and writes one raw card object per
line. Names that cannot be matched exactly are retried by front face when
they contain " // "; anything still unmatched is reported on stderr and
the run exits 0 regardless.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		order := resolver.Order(fetchSort)
		if !order.Valid() {
			return fmt.Errorf("invalid --sort %q (want input or alpha)", fetchSort)
		}

		in, err := os.Open(fetchInput)
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}
		defer in.Close()

		names, err := namelist.Read(in)
		if err != nil {
			return fmt.Errorf("read input file %s: %w", fetchInput, err)
		}
		logger := logging.NewLogger("fetch")
		if len(names) == 0 {
			logger.Info().Msg("No card names found in input file")
			return nil
		}
		logger.Info().Int("count", len(names)).Msg("Read unique card names")

		cli, err := newClient(40 * time.Second)
		if err != nil {
			return err
		}
		res := resolver.New(cli, resolver.DefaultConfig(), logging.NewLogger("resolver"))
		result, err := res.Resolve(cmd.Context(), names)
		if err != nil {
			return err
		}

		cards, missing := result.Reassemble(names, order)

		out, closeOut, err := openOutput(fetchOut)
		if err != nil {
			return fmt.Errorf("open output: %w", err)
		}
		written, err := jsonl.WriteCards(out, cards)
		if cerr := closeOut(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		logger.Info().
			Int("written", written).
			Int("requested", len(names)).
			Int("missing", len(missing)).
			Str("out", fetchOut).
			Msg("Wrote cards")
		if len(missing) > 0 {
			colorize.New(colorize.FgYellow).Fprintf(os.Stderr,
				"Missing names (%d): %s\n", len(missing), strings.Join(missing, ", "))
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchInput, "input", "i", "", "path to newline-separated card names file")
	fetchCmd.Flags().StringVarP(&fetchOut, "out", "o", "cards.jsonl", "output file path or - for stdout")
	fetchCmd.Flags().StringVar(&fetchSort, "sort", "input", "order of cards in output (input or alpha)")
	fetchCmd.MarkFlagRequired("input")
}
