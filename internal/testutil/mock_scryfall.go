// Package testutil provides testing utilities for the Scryfall client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/mtgcanvas/scryfetch/pkg/scryfall"
)

// MockResponse defines one canned response in a scripted sequence.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
}

// MockScryfall is a configurable mock Scryfall server for testing.
type MockScryfall struct {
	server   *httptest.Server
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	counts   map[string]int

	// RequestCount is the total number of requests served.
	RequestCount int
}

// NewMockScryfall creates a new mock Scryfall server.
func NewMockScryfall() *MockScryfall {
	mock := &MockScryfall{
		handlers: make(map[string]http.HandlerFunc),
		counts:   make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.counts[r.URL.Path]++
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}
		http.NotFound(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockScryfall) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockScryfall) Close() {
	m.server.Close()
}

// Requests returns the number of requests served for a path.
func (m *MockScryfall) Requests(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[path]
}

// SetHandler sets a custom handler for a specific path.
func (m *MockScryfall) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// OnCollection registers a collection-lookup handler that receives the
// requested identifier names and returns the response to serve.
func (m *MockScryfall) OnCollection(fn func(names []string) scryfall.CollectionResponse) {
	m.SetHandler(scryfall.CollectionPath, func(w http.ResponseWriter, r *http.Request) {
		var req scryfall.CollectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		names := make([]string, len(req.Identifiers))
		for i, id := range req.Identifiers {
			names[i] = id.Name
		}
		WriteJSON(w, fn(names))
	})
}

// SetSearchPages wires up a chained pagination script: the search path
// serves the first group of cards, each subsequent group hangs off a
// generated next_page URL, and the final page reports has_more=false.
func (m *MockScryfall) SetSearchPages(pages [][]scryfall.Card) {
	for i, cards := range pages {
		path := scryfall.SearchPath
		if i > 0 {
			path = fmt.Sprintf("%s/page/%d", scryfall.SearchPath, i+1)
		}
		page := scryfall.SearchPage{Data: cards}
		if i < len(pages)-1 {
			page.HasMore = true
			page.NextPage = m.server.URL + fmt.Sprintf("%s/page/%d", scryfall.SearchPath, i+2)
		}
		body, _ := json.Marshal(page)
		m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
		})
	}
}

// SetScript serves the given responses in order for a path, repeating the
// last one once the script is exhausted.
func (m *MockScryfall) SetScript(path string, responses []MockResponse) {
	var mu sync.Mutex
	next := 0
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		resp := responses[next]
		if next < len(responses)-1 {
			next++
		}
		mu.Unlock()

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// WriteJSON encodes v as a JSON response body.
func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// CardJSON builds a Card carrying a raw document with the given id, name,
// and extra fields, the way the provider would return it.
func CardJSON(id, name string, extra map[string]any) scryfall.Card {
	doc := map[string]any{"id": id, "name": name}
	for k, v := range extra {
		doc[k] = v
	}
	data, _ := json.Marshal(doc)
	var card scryfall.Card
	_ = json.Unmarshal(data, &card)
	return card
}
