package transit

import (
	"sort"
	"strings"
)

// Resolver maps free-text municipality names to candidate station IDs.
type Resolver struct {
	graph *Graph
	// municipality name (uppercased) -> station display-label fragments
	// known to lie within it.
	municipalities map[string][]string
}

// NewResolver creates a Resolver over an immutable graph and a
// municipality-to-station-label table. Keys are matched
// case-insensitively; callers should pass keys already uppercased.
func NewResolver(g *Graph, municipalities map[string][]string) *Resolver {
	return &Resolver{graph: g, municipalities: municipalities}
}

// Stations returns the IDs of all stations plausibly located in the given
// municipality, or nil when none are found. An empty result is a normal
// outcome, not an error.
//
// Matching is a case-insensitive substring scan of the graph's station
// names against the municipality's known label fragments. When no label
// matches any station name, the scan is repeated with the municipality
// name itself, which covers municipalities whose station is not
// distinctly labeled.
func (r *Resolver) Stations(city string) []string {
	key := strings.ToUpper(strings.TrimSpace(city))
	labels, ok := r.municipalities[key]
	if !ok {
		return nil
	}

	ids := r.scan(labels)
	if len(ids) == 0 {
		ids = r.scan([]string{city})
	}
	return ids
}

// scan collects stations whose display name contains any of the given
// fragments, ignoring case.
func (r *Resolver) scan(fragments []string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, fragment := range fragments {
		needle := strings.ToLower(strings.TrimSpace(fragment))
		if needle == "" {
			continue
		}
		for id, s := range r.graph.Stations {
			if seen[id] {
				continue
			}
			if strings.Contains(strings.ToLower(s.Name), needle) {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids
}
