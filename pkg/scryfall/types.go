// Package scryfall defines the wire types and constants for the Scryfall
// REST API as consumed by this tool.
package scryfall

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultBaseURL is the public Scryfall API root.
const DefaultBaseURL = "https://api.scryfall.com"

// Endpoint paths relative to the API root.
const (
	CollectionPath = "/cards/collection"
	SearchPath     = "/cards/search"
)

// BatchLimit is the maximum number of identifiers accepted by a single
// /cards/collection request (documented Scryfall limit).
const BatchLimit = 75

// CompositeSeparator joins the two face names of a double-faced card.
const CompositeSeparator = " // "

// Card is one raw Scryfall card object. Only id and name are ever
// inspected; the full document is preserved byte-for-byte so that output
// stays faithful to what the provider returned.
type Card struct {
	ID   string
	Name string

	raw json.RawMessage
}

// UnmarshalJSON keeps the raw document and probes id and name.
func (c *Card) UnmarshalJSON(data []byte) error {
	var probe struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	c.ID = probe.ID
	c.Name = probe.Name
	c.raw = append(c.raw[:0], data...)
	return nil
}

// MarshalJSON re-emits the document exactly as received.
func (c Card) MarshalJSON() ([]byte, error) {
	if c.raw != nil {
		return c.raw, nil
	}
	return json.Marshal(struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	}{c.ID, c.Name})
}

// Identifier is one entry of a collection lookup request.
type Identifier struct {
	Name string `json:"name"`
}

// CollectionRequest is the body of a POST /cards/collection request.
// Identifiers must not exceed BatchLimit entries.
type CollectionRequest struct {
	Identifiers []Identifier `json:"identifiers"`
}

// NewCollectionRequest builds a collection request from a batch of names.
func NewCollectionRequest(names []string) CollectionRequest {
	ids := make([]Identifier, len(names))
	for i, n := range names {
		ids[i] = Identifier{Name: n}
	}
	return CollectionRequest{Identifiers: ids}
}

// NotFoundEntry echoes one identifier the provider could not match. The
// provider normally returns `{"name": "..."}` objects but bare strings
// have been observed; both forms decode.
type NotFoundEntry struct {
	Name string
}

// MarshalJSON emits the object form the provider documents.
func (e NotFoundEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name string `json:"name"`
	}{e.Name})
}

// UnmarshalJSON accepts either the object form or a bare string.
func (e *NotFoundEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("not_found entry: %w", err)
	}
	e.Name = obj.Name
	return nil
}

// CollectionResponse is the body of a collection lookup response.
type CollectionResponse struct {
	Data     []Card          `json:"data"`
	NotFound []NotFoundEntry `json:"not_found"`
}

// NotFoundNames returns the unmatched identifier names in response order.
func (r *CollectionResponse) NotFoundNames() []string {
	if len(r.NotFound) == 0 {
		return nil
	}
	names := make([]string, len(r.NotFound))
	for i, e := range r.NotFound {
		names[i] = e.Name
	}
	return names
}

// SearchPage is one page of a /cards/search response. NextPage is a full
// URL and is only present when HasMore is true.
type SearchPage struct {
	Data       []Card `json:"data"`
	HasMore    bool   `json:"has_more"`
	NextPage   string `json:"next_page"`
	TotalCards int    `json:"total_cards"`
}

// UniqueMode is the Scryfall `unique` search parameter.
type UniqueMode string

const (
	UniqueCards  UniqueMode = "cards"
	UniquePrints UniqueMode = "prints"
	UniqueArt    UniqueMode = "art"
)

// Valid reports whether the mode is one the provider accepts.
func (m UniqueMode) Valid() bool {
	switch m {
	case UniqueCards, UniquePrints, UniqueArt:
		return true
	}
	return false
}

// FrontFace returns the substring before the composite separator, trimmed.
// ok is false when the name is not composite or the front face is empty.
func FrontFace(name string) (front string, ok bool) {
	before, _, found := strings.Cut(name, CompositeSeparator)
	if !found {
		return "", false
	}
	front = strings.TrimSpace(before)
	return front, front != ""
}
