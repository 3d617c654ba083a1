package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtgcanvas/scryfetch/internal/jsonl"
	"github.com/mtgcanvas/scryfetch/pkg/logging"
)

var (
	namesInput  string
	namesOut    string
	namesUnique bool
	namesSort   bool
)

// namesCmd extracts card names from a JSONL record file.
var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Dump card names from a JSONL results file",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := os.Open(namesInput)
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}
		defer in.Close()

		logger := logging.NewLogger("names")
		names, err := jsonl.ReadNames(in, logger)
		if err != nil {
			return fmt.Errorf("read input file %s: %w", namesInput, err)
		}

		if namesUnique {
			seen := make(map[string]struct{}, len(names))
			unique := names[:0]
			for _, n := range names {
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				unique = append(unique, n)
			}
			names = unique
		}
		if namesSort {
			sort.Slice(names, func(i, j int) bool {
				return strings.ToLower(names[i]) < strings.ToLower(names[j])
			})
		}

		out, closeOut, err := openOutput(namesOut)
		if err != nil {
			return fmt.Errorf("open output: %w", err)
		}
		bw := bufio.NewWriter(out)
		for _, n := range names {
			bw.WriteString(n)
			bw.WriteByte('\n')
		}
		if err := bw.Flush(); err != nil {
			closeOut()
			return fmt.Errorf("write output: %w", err)
		}
		if err := closeOut(); err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		logger.Info().Int("count", len(names)).Str("out", namesOut).Msg("Wrote names")
		return nil
	},
}

func init() {
	namesCmd.Flags().StringVarP(&namesInput, "input", "i", "", "input JSONL file")
	namesCmd.Flags().StringVarP(&namesOut, "out", "o", "-", "output file path or - for stdout")
	namesCmd.Flags().BoolVar(&namesUnique, "unique", false, "emit each distinct name once")
	namesCmd.Flags().BoolVar(&namesSort, "sort", false, "sort names alphabetically before output")
	namesCmd.MarkFlagRequired("input")
}
