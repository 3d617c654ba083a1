package scryfall

import (
	"encoding/json"
	"testing"
)

func TestCard_PreservesRawDocument(t *testing.T) {
	raw := `{"id":"abc-123","name":"Brainstorm","mana_cost":"{U}","oracle_text":"Draw three cards..."}`

	var card Card
	if err := json.Unmarshal([]byte(raw), &card); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if card.ID != "abc-123" {
		t.Errorf("ID = %q", card.ID)
	}
	if card.Name != "Brainstorm" {
		t.Errorf("Name = %q", card.Name)
	}

	out, err := json.Marshal(card)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(out) != raw {
		t.Errorf("round trip altered document:\n got %s\nwant %s", out, raw)
	}
}

func TestNotFoundEntry_DecodesBothForms(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"object form", `{"name":"Fakename12345"}`, "Fakename12345"},
		{"bare string form", `"Fakename12345"`, "Fakename12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e NotFoundEntry
			if err := json.Unmarshal([]byte(tt.in), &e); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if e.Name != tt.want {
				t.Errorf("Name = %q, want %q", e.Name, tt.want)
			}
		})
	}
}

func TestCollectionResponse_NotFoundNames(t *testing.T) {
	body := `{"data":[],"not_found":[{"name":"A"},"B"]}`
	var resp CollectionResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	got := resp.NotFoundNames()
	want := []string{"A", "B"}
	if len(got) != len(want) {
		t.Fatalf("NotFoundNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NotFoundNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFrontFace(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		front string
		ok    bool
	}{
		{"composite", "Delver of Secrets // Insectile Aberration", "Delver of Secrets", true},
		{"plain name", "Brainstorm", "", false},
		{"separator only", " // ", "", false},
		{"empty front", " // Back", "", false},
		{"slashes without spaces are not a separator", "A//B", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			front, ok := FrontFace(tt.in)
			if ok != tt.ok || front != tt.front {
				t.Errorf("FrontFace(%q) = (%q, %v), want (%q, %v)", tt.in, front, ok, tt.front, tt.ok)
			}
		})
	}
}

func TestUniqueMode_Valid(t *testing.T) {
	for _, m := range []UniqueMode{UniqueCards, UniquePrints, UniqueArt} {
		if !m.Valid() {
			t.Errorf("%q should be valid", m)
		}
	}
	if UniqueMode("everything").Valid() {
		t.Error("unknown mode should be invalid")
	}
}

func TestNewCollectionRequest(t *testing.T) {
	req := NewCollectionRequest([]string{"Island", "Forest"})
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"identifiers":[{"name":"Island"},{"name":"Forest"}]}`
	if string(data) != want {
		t.Errorf("payload = %s, want %s", data, want)
	}
}
