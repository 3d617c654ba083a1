// Package resolver turns lists of card names into Scryfall card records
// via bounded collection-lookup batches, compensating for the provider's
// exact-match-only lookup with a front-face retry pass for double-faced
// names.
package resolver

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mtgcanvas/scryfetch/pkg/client"
	"github.com/mtgcanvas/scryfetch/pkg/scryfall"
)

// Config holds resolver configuration.
type Config struct {
	// BatchLimit caps the identifiers per collection request. Defaults
	// to the provider's documented limit of 75.
	BatchLimit int

	// RequestTimeout is the per-request timeout for collection lookups.
	RequestTimeout time.Duration
}

// DefaultConfig returns the default resolver configuration.
func DefaultConfig() Config {
	return Config{
		BatchLimit:     scryfall.BatchLimit,
		RequestTimeout: 40 * time.Second,
	}
}

// Resolver resolves card names against the collection-lookup endpoint.
type Resolver struct {
	client *client.Client
	config Config
	logger zerolog.Logger
}

// New creates a new Resolver.
func New(c *client.Client, cfg Config, logger zerolog.Logger) *Resolver {
	if cfg.BatchLimit <= 0 {
		cfg.BatchLimit = scryfall.BatchLimit
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 40 * time.Second
	}
	return &Resolver{client: c, config: cfg, logger: logger}
}

// Result is the outcome of a resolution run. Cards is keyed by the
// display name the provider returned, which may differ in casing or
// composite form from the input name. Unresolved is sorted
// case-insensitively.
type Result struct {
	Cards      map[string]scryfall.Card
	Unresolved []string
}

// Resolve fetches records for the given names. Input is deduplicated
// preserving first-seen order, partitioned into batches, and merged into
// a single result. Names the provider reports as not found are retried by
// front face when composite; whatever remains is accumulated in the
// unresolved set. Not-found names never fail the run; transport
// exhaustion and provider errors abort it.
func (r *Resolver) Resolve(ctx context.Context, names []string) (*Result, error) {
	unique := dedupe(names)

	cards := make(map[string]scryfall.Card)
	unresolved := make(map[string]struct{})

	batches := chunk(unique, r.config.BatchLimit)
	for i, batch := range batches {
		r.logger.Info().
			Int("batch", i+1).
			Int("batches", len(batches)).
			Int("names", len(batch)).
			Msg("Fetching batch")

		resp, err := r.lookup(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", i+1, err)
		}
		mergeCards(cards, resp.Data)

		notFound := resp.NotFoundNames()
		if len(notFound) == 0 {
			continue
		}

		resolvedByRetry, err := r.retryFrontFaces(ctx, notFound, cards)
		if err != nil {
			return nil, err
		}

		var stillMissing []string
		for _, name := range notFound {
			if _, ok := resolvedByRetry[name]; !ok {
				stillMissing = append(stillMissing, name)
			}
		}

		if len(stillMissing) > 0 {
			var newly []string
			for _, name := range stillMissing {
				if _, seen := unresolved[name]; !seen {
					newly = append(newly, name)
				}
			}
			for _, name := range stillMissing {
				unresolved[name] = struct{}{}
			}
			if len(newly) > 0 {
				r.logger.Warn().Strs("names", newly).Msg("Newly unresolved")
			} else {
				r.logger.Warn().Strs("names", stillMissing).Msg("Still unresolved")
			}
		} else {
			r.logger.Debug().
				Strs("names", notFound).
				Msg("All not-found names resolved after front-face retry")
		}
	}

	remaining := sortedFold(unresolved)
	if len(remaining) > 0 {
		r.logger.Warn().
			Int("count", len(remaining)).
			Strs("names", remaining).
			Msg("Total unresolved")
	}

	return &Result{Cards: cards, Unresolved: remaining}, nil
}

// retryFrontFaces re-queries the front face of each composite not-found
// name and reports which of the originals that round resolved. A
// composite counts as resolved only when some resolved display name
// equals the full original case-insensitively: the provider returns the
// full composite name for a double-faced card matched by its front face.
// That is a documented provider-behavior assumption; the reassembly pass
// backstops it.
func (r *Resolver) retryFrontFaces(ctx context.Context, notFound []string, cards map[string]scryfall.Card) (map[string]struct{}, error) {
	var fronts []string
	for _, original := range notFound {
		if front, ok := scryfall.FrontFace(original); ok {
			fronts = append(fronts, front)
		}
	}

	resolved := make(map[string]struct{})
	if len(fronts) == 0 {
		return resolved, nil
	}

	retrySet := dedupeFold(fronts)
	sort.Slice(retrySet, func(i, j int) bool {
		return strings.ToLower(retrySet[i]) < strings.ToLower(retrySet[j])
	})

	r.logger.Debug().Int("count", len(retrySet)).Msg("Retrying front-face names")
	for _, sub := range chunk(retrySet, r.config.BatchLimit) {
		resp, err := r.lookup(ctx, sub)
		if err != nil {
			return nil, fmt.Errorf("front-face retry: %w", err)
		}
		mergeCards(cards, resp.Data)
	}

	folded := make(map[string]struct{}, len(cards))
	for name := range cards {
		folded[strings.ToLower(name)] = struct{}{}
	}
	for _, original := range notFound {
		if _, ok := folded[strings.ToLower(original)]; ok {
			resolved[original] = struct{}{}
		}
	}
	return resolved, nil
}

// lookup executes one collection request for a batch of names.
func (r *Resolver) lookup(ctx context.Context, batch []string) (*scryfall.CollectionResponse, error) {
	var resp scryfall.CollectionResponse
	err := r.client.Do(ctx, client.Request{
		Method:  http.MethodPost,
		URL:     scryfall.CollectionPath,
		Body:    scryfall.NewCollectionRequest(batch),
		Timeout: r.config.RequestTimeout,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// mergeCards merges records into the running map, keyed by the display
// name the provider returned.
func mergeCards(dst map[string]scryfall.Card, cards []scryfall.Card) {
	for _, card := range cards {
		if card.Name != "" {
			dst[card.Name] = card
		}
	}
}

// dedupe removes duplicates preserving first-seen order, comparing names
// case-sensitively.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// dedupeFold removes duplicates case-insensitively, keeping the first
// spelling seen.
func dedupeFold(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}

// chunk partitions names into contiguous slices of at most size elements.
func chunk(names []string, size int) [][]string {
	var out [][]string
	for len(names) > size {
		out = append(out, names[:size])
		names = names[size:]
	}
	if len(names) > 0 {
		out = append(out, names)
	}
	return out
}

// sortedFold returns the set's members sorted case-insensitively.
func sortedFold(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
