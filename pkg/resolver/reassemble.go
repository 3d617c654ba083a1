package resolver

import (
	"sort"
	"strings"

	"github.com/mtgcanvas/scryfetch/pkg/scryfall"
)

// Order selects how reassembled output is sequenced.
type Order string

const (
	// OrderInput emits records in original input order.
	OrderInput Order = "input"

	// OrderAlpha emits records by resolved display name, sorted
	// case-insensitively.
	OrderAlpha Order = "alpha"
)

// Valid reports whether the order is recognized.
func (o Order) Valid() bool {
	return o == OrderInput || o == OrderAlpha
}

// Reassemble builds the final output sequence from a resolution result.
// Each input name is matched against the resolved records through a
// case-folded index: exact match first, then, for composite names, any
// record whose display name starts with "<front> // ". Records are
// emitted once per provider id, first match wins. The returned unresolved
// list is the union of the resolution-time unresolved set and the names
// that found no record here, deduplicated preserving order, so a name is
// reported missing rather than silently dropped.
func (res *Result) Reassemble(names []string, order Order) (cards []scryfall.Card, unresolved []string) {
	inputs := dedupe(names)

	folded := make(map[string]scryfall.Card, len(res.Cards))
	for name, card := range res.Cards {
		folded[strings.ToLower(name)] = card
	}

	find := func(input string) (scryfall.Card, bool) {
		key := strings.ToLower(input)
		if card, ok := folded[key]; ok {
			return card, true
		}
		if front, ok := scryfall.FrontFace(key); ok {
			prefix := front + scryfall.CompositeSeparator
			for name, card := range folded {
				if strings.HasPrefix(name, prefix) {
					return card, true
				}
			}
		}
		return scryfall.Card{}, false
	}

	sequence := inputs
	if order == OrderAlpha {
		sequence = make([]string, 0, len(res.Cards))
		for name := range res.Cards {
			sequence = append(sequence, name)
		}
		sort.Slice(sequence, func(i, j int) bool {
			return strings.ToLower(sequence[i]) < strings.ToLower(sequence[j])
		})
	}

	seenIDs := make(map[string]struct{})
	mapped := make(map[string]struct{})
	for _, name := range sequence {
		card, ok := find(name)
		if !ok {
			continue
		}
		mapped[name] = struct{}{}
		if card.ID != "" {
			if _, dup := seenIDs[card.ID]; dup {
				continue
			}
			seenIDs[card.ID] = struct{}{}
		}
		cards = append(cards, card)
	}

	var missing []string
	for _, name := range inputs {
		if _, ok := mapped[name]; !ok {
			missing = append(missing, name)
		}
	}
	unresolved = dedupe(append(append([]string{}, res.Unresolved...), missing...))
	return cards, unresolved
}
