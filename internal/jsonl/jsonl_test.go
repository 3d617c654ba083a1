package jsonl

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mtgcanvas/scryfetch/pkg/scryfall"
)

func cardFromJSON(t *testing.T, raw string) scryfall.Card {
	t.Helper()
	var card scryfall.Card
	if err := json.Unmarshal([]byte(raw), &card); err != nil {
		t.Fatalf("unmarshal card: %v", err)
	}
	return card
}

func TestWriteCards(t *testing.T) {
	cards := []scryfall.Card{
		cardFromJSON(t, `{"id":"1","name":"Island","type_line":"Basic Land — Island"}`),
		cardFromJSON(t, `{"id":"2","name":"Forest"}`),
	}

	var buf bytes.Buffer
	n, err := WriteCards(&buf, cards)
	if err != nil {
		t.Fatalf("WriteCards() error: %v", err)
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	// Documents are written verbatim, unknown fields intact.
	if lines[0] != `{"id":"1","name":"Island","type_line":"Basic Land — Island"}` {
		t.Errorf("line 1 = %s", lines[0])
	}
}

func TestWriteCards_Empty(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteCards(&buf, nil)
	if err != nil {
		t.Fatalf("WriteCards() error: %v", err)
	}
	if n != 0 || buf.Len() != 0 {
		t.Errorf("n = %d len = %d, want 0 and 0", n, buf.Len())
	}
}

func TestReadNames(t *testing.T) {
	input := `{"id":"1","name":"Island"}
{"id":"2","name":"Forest"}
{"id":"3"}
{"id":"4","name":"Island"}
`
	names, err := ReadNames(strings.NewReader(input), zerolog.Nop())
	if err != nil {
		t.Fatalf("ReadNames() error: %v", err)
	}
	want := []string{"Island", "Forest", "Island"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestReadNames_SkipsMalformedLines(t *testing.T) {
	input := `{"id":"1","name":"Island"}
this is not JSON
{"id":"2","name":"Forest"}
`
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	names, err := ReadNames(strings.NewReader(input), logger)
	if err != nil {
		t.Fatalf("ReadNames() error: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("names = %v, want the two valid records", names)
	}
	if !strings.Contains(buf.String(), `"line":2`) {
		t.Errorf("log missing line number: %s", buf.String())
	}
}

func TestReadNames_SkipsBlankLines(t *testing.T) {
	names, err := ReadNames(strings.NewReader("\n{\"name\":\"Island\"}\n\n"), zerolog.Nop())
	if err != nil {
		t.Fatalf("ReadNames() error: %v", err)
	}
	if len(names) != 1 {
		t.Errorf("names = %v, want one", names)
	}
}
