package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtgcanvas/scryfetch/pkg/logging"
	"github.com/mtgcanvas/scryfetch/pkg/scryfall"
	"github.com/mtgcanvas/scryfetch/pkg/search"
)

var (
	searchQuery     string
	searchQueryFile string
	searchOut       string
	searchUnique    string
)

// searchCmd streams /cards/search results as JSON Lines.
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Dump search results as JSON Lines",
	Long: `Search walks the paginated search endpoint for a query and writes one
raw card object per line, in provider order. Pages are fetched one at a
time; individual page failures are retried before the run aborts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := searchQuery
		if searchQueryFile != "" {
			q, err := readQueryFile(searchQueryFile)
			if err != nil {
				return err
			}
			if q != "" {
				query = q
			}
		}
		if query == "" {
			return fmt.Errorf("a search query is required (-q or -Q)")
		}

		mode := scryfall.UniqueMode(searchUnique)
		if !mode.Valid() {
			return fmt.Errorf("invalid --unique %q (want cards, prints or art)", searchUnique)
		}

		cli, err := newClient(0)
		if err != nil {
			return err
		}
		streamer := search.New(cli, logging.NewLogger("search"))

		out, closeOut, err := openOutput(searchOut)
		if err != nil {
			return fmt.Errorf("open output: %w", err)
		}
		bw := bufio.NewWriter(out)

		count := 0
		for card, serr := range streamer.Stream(cmd.Context(), query, mode) {
			if serr != nil {
				bw.Flush()
				closeOut()
				return serr
			}
			data, merr := json.Marshal(card)
			if merr != nil {
				bw.Flush()
				closeOut()
				return fmt.Errorf("encode card %q: %w", card.Name, merr)
			}
			bw.Write(data)
			bw.WriteByte('\n')
			count++
		}

		if err := bw.Flush(); err != nil {
			closeOut()
			return fmt.Errorf("write output: %w", err)
		}
		if err := closeOut(); err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		logger := logging.NewLogger("search")
		logger.Info().
			Int("rows", count).
			Str("out", searchOut).
			Msg("Wrote rows")
		return nil
	},
}

// readQueryFile joins the non-blank lines of a query file with spaces so
// complex multi-line queries stay usable.
func readQueryFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read query file %s: %w", path, err)
	}
	var parts []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " "), nil
}

func init() {
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "Scryfall search string")
	searchCmd.Flags().StringVarP(&searchQueryFile, "query-file", "Q", "", "read the search query text from a file (overrides -q)")
	searchCmd.Flags().StringVarP(&searchOut, "out", "o", "scryfall_results.jsonl", "output file path or - for stdout")
	searchCmd.Flags().StringVar(&searchUnique, "unique", "cards", "de-duplication mode (cards, prints or art)")
}
