package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mtgcanvas/scryfetch/internal/namelist"
	"github.com/mtgcanvas/scryfetch/pkg/logging"
)

var diffOut string

// diffCmd computes which wanted cards are not yet owned.
var diffCmd = &cobra.Command{
	Use:   "diff <want-file> <have-file>",
	Short: "List names from the first file missing from the second",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		want, err := readNameFile(args[0])
		if err != nil {
			return err
		}
		have, err := readNameFile(args[1])
		if err != nil {
			return err
		}

		missing := namelist.Diff(want, have)

		out, closeOut, err := openOutput(diffOut)
		if err != nil {
			return fmt.Errorf("open output: %w", err)
		}
		bw := bufio.NewWriter(out)
		for _, n := range missing {
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

		logger := logging.NewLogger("diff")
		logger.Info().
			Int("missing", len(missing)).
			Int("want", len(want)).
			Int("have", len(have)).
			Msg("Computed difference")
		return nil
	},
}

func readNameFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	defer f.Close()
	names, err := namelist.Read(f)
	if err != nil {
		return nil, fmt.Errorf("read input file %s: %w", path, err)
	}
	return names, nil
}

func init() {
	diffCmd.Flags().StringVarP(&diffOut, "out", "o", "-", "output file path or - for stdout")
}
