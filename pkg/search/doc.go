// Package search implements name-based resolution and suggestion over a
// hierarchical workspace of containers and items.
//
// # Overview
//
// Every searchable object exposes a literal name, a display name and a
// navigable URL through the Searchable interface. Containers (folders, the
// workspace root) additionally expose a SearchIndex built fresh from their
// current children. The index never owns the object graph; it is a
// disposable, read-only view constructed per query.
//
// # Resolution
//
// Find performs exact-match resolution in two global passes: every literal
// name reachable from the root is checked before any display name is
// considered. Within a pass the tree is walked level by level, so a match
// in a shallower scope wins over a deeper one, and declaration order breaks
// ties within a level. No match at any depth yields a not-found result,
// never a partial match.
//
// # Suggestion
//
// Suggest collects every reachable item whose name contains the query as a
// case-insensitive substring, with no depth limit and no visibility
// filtering. One entry is emitted per matching alias, deduplicated by
// (target, alias), in traversal order.
//
// # Usage Example
//
//	idx := search.NewBuilder().
//		AddAliases(job).
//		AddRecursive(folder).
//		Build()
//
//	if target, ok := idx.Find("build-web"); ok {
//		http.Redirect(w, r, target.SearchURL(), http.StatusFound)
//	}
//
// # Related Packages
//
//   - pkg/model: the workspace object graph that feeds the index
//   - pkg/api: the HTTP gateway exposing exact search and suggestions
package search
