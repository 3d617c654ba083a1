// Package namelist handles newline-separated card name files.
package namelist

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Read parses names from r: one name per line, whitespace trimmed, blank
// lines skipped. Lines starting with "#" or "//" are comments (a card
// name never starts with the face separator, so the prefix is
// unambiguous). Duplicates collapse to the first occurrence.
func Read(r io.Reader) ([]string, error) {
	seen := make(map[string]struct{})
	var names []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || strings.HasPrefix(name, "#") || strings.HasPrefix(name, "//") {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}
	return names, nil
}

// Diff returns the names in want that are absent from have, sorted.
func Diff(want, have []string) []string {
	owned := make(map[string]struct{}, len(have))
	for _, n := range have {
		owned[n] = struct{}{}
	}

	missing := make(map[string]struct{})
	for _, n := range want {
		if _, ok := owned[n]; !ok {
			missing[n] = struct{}{}
		}
	}

	out := make([]string, 0, len(missing))
	for n := range missing {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
