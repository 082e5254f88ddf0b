package search

import "strings"

// Suggest returns every reachable item whose name contains query as a
// case-insensitive substring, in traversal order. Every container is
// descended into with no depth limit and no visibility filtering; a
// disabled or view-hidden object is still suggested. One entry is emitted
// per matching alias, so an object may appear under both its literal name
// and its display name, but never twice under the same alias.
func (ix *Index) Suggest(query string) []Item {
	return ix.SuggestLimit(query, 0)
}

// SuggestLimit is Suggest capped at limit entries. A limit of zero or less
// means unlimited.
func (ix *Index) SuggestLimit(query string, limit int) []Item {
	needle := strings.ToLower(query)
	w := newWalker()

	type aliasKey struct {
		target Searchable
		alias  Alias
	}
	seen := make(map[aliasKey]bool)
	visited := make(map[*Index]bool)
	results := make([]Item, 0)

	var visit func(node *Index) bool
	visit = func(node *Index) bool {
		if node == nil || visited[node] {
			return true
		}
		visited[node] = true

		for _, it := range node.items {
			if !strings.Contains(strings.ToLower(it.Name), needle) {
				continue
			}
			k := aliasKey{target: it.Target, alias: it.Alias}
			if seen[k] {
				continue
			}
			seen[k] = true
			results = append(results, it)
			if limit > 0 && len(results) >= limit {
				return false
			}
		}
		for _, c := range node.containers {
			if !visit(w.index(c)) {
				return false
			}
		}
		return true
	}
	visit(ix)

	return results
}
