// Package jsonl reads and writes line-delimited JSON card records.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/mtgcanvas/scryfetch/pkg/scryfall"
)

// maxLineSize accommodates large card documents with full image URI and
// legality blocks.
const maxLineSize = 4 * 1024 * 1024

// WriteCards writes one raw JSON object per line and returns the number
// of lines written.
func WriteCards(w io.Writer, cards []scryfall.Card) (int, error) {
	bw := bufio.NewWriter(w)
	for i, card := range cards {
		data, err := json.Marshal(card)
		if err != nil {
			return i, fmt.Errorf("encode card %q: %w", card.Name, err)
		}
		if _, err := bw.Write(data); err != nil {
			return i, fmt.Errorf("write card %q: %w", card.Name, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return i, fmt.Errorf("write card %q: %w", card.Name, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return len(cards), err
	}
	return len(cards), nil
}

// ReadNames extracts the name field from each JSONL record. Malformed
// lines are logged with their line number and skipped; they never abort
// the read. Records without a string name are ignored.
func ReadNames(r io.Reader, logger zerolog.Logger) ([]string, error) {
	var names []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var record struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &record); err != nil {
			logger.Warn().Int("line", line).Err(err).Msg("Skipping malformed JSON line")
			continue
		}
		if record.Name != "" {
			names = append(names, record.Name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return names, nil
}
