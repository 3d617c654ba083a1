package namelist

import (
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	input := `# deck list
Island
  Forest
Brainstorm

// sideboard ideas
Island
Delver of Secrets // Insectile Aberration
`
	names, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}

	want := []string{"Island", "Forest", "Brainstorm", "Delver of Secrets // Insectile Aberration"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestRead_Empty(t *testing.T) {
	names, err := Read(strings.NewReader("\n# only a comment\n"))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("names = %v, want empty", names)
	}
}

func TestRead_DedupeIsCaseSensitive(t *testing.T) {
	names, err := Read(strings.NewReader("Island\nisland\nIsland\n"))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("names = %v, want case-distinct pair", names)
	}
}

func TestDiff(t *testing.T) {
	want := []string{"Brainstorm", "Daze", "Island"}
	have := []string{"Island", "Forest"}

	missing := Diff(want, have)
	expected := []string{"Brainstorm", "Daze"}
	if len(missing) != len(expected) {
		t.Fatalf("Diff() = %v, want %v", missing, expected)
	}
	for i := range expected {
		if missing[i] != expected[i] {
			t.Errorf("missing[%d] = %q, want %q", i, missing[i], expected[i])
		}
	}
}

func TestDiff_NothingMissing(t *testing.T) {
	if got := Diff([]string{"Island"}, []string{"Island", "Forest"}); len(got) != 0 {
		t.Errorf("Diff() = %v, want empty", got)
	}
}

func TestDiff_OutputSorted(t *testing.T) {
	got := Diff([]string{"Zephyr", "Anger", "Mist"}, nil)
	want := []string{"Anger", "Mist", "Zephyr"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
