// Package search streams paginated /cards/search results as a lazy
// sequence, following the provider's next_page cursor one request at a
// time.
package search

import (
	"context"
	"fmt"
	"iter"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/mtgcanvas/scryfetch/pkg/client"
	"github.com/mtgcanvas/scryfetch/pkg/scryfall"
)

// Streamer walks the search endpoint's cursor-based pagination.
type Streamer struct {
	client *client.Client
	logger zerolog.Logger
}

// New creates a new Streamer.
func New(c *client.Client, logger zerolog.Logger) *Streamer {
	return &Streamer{client: c, logger: logger}
}

// Stream returns a lazy, finite sequence of cards matching the query.
// Records are yielded in provider order as each page arrives; the next
// page is fetched only after the current one is consumed. A page fetch
// that fails after retries yields the error and ends the sequence; the
// stream never truncates silently. A fresh Stream call starts a new
// provider-side search; an exhausted sequence is not restartable.
func (s *Streamer) Stream(ctx context.Context, query string, unique scryfall.UniqueMode) iter.Seq2[scryfall.Card, error] {
	return func(yield func(scryfall.Card, error) bool) {
		if !unique.Valid() {
			yield(scryfall.Card{}, fmt.Errorf("invalid unique mode %q", unique))
			return
		}

		params := url.Values{}
		params.Set("q", query)
		params.Set("unique", string(unique))
		params.Set("order", "name")
		next := scryfall.SearchPath + "?" + params.Encode()

		pages := 0
		for next != "" {
			var page scryfall.SearchPage
			if err := s.client.GetJSON(ctx, next, &page); err != nil {
				yield(scryfall.Card{}, fmt.Errorf("search page %d: %w", pages+1, err))
				return
			}
			pages++
			s.logger.Debug().
				Int("page", pages).
				Int("cards", len(page.Data)).
				Bool("has_more", page.HasMore).
				Msg("Fetched search page")

			for _, card := range page.Data {
				if !yield(card, nil) {
					return
				}
			}

			if page.HasMore {
				next = page.NextPage
			} else {
				next = ""
			}
		}

		s.logger.Debug().Int("pages", pages).Msg("Search exhausted")
	}
}
