package search

import "strings"

// Find resolves query to a unique target by exact, case-sensitive match.
// All literal names reachable from this index are checked before any
// display name, so a literal-name match anywhere in the tree beats a
// display-name match even when the display-name owner is encountered
// first. Within a pass the tree is walked level by level and items in
// declaration order, so shallower scopes win and the first-declared object
// resolves a same-depth collision. The second return value is false when
// nothing matches at any depth.
func (ix *Index) Find(query string) (Searchable, bool) {
	return ix.FindFold(query, false)
}

// FindFold is Find with a selectable case policy. When foldCase is true
// both passes compare names case-insensitively.
func (ix *Index) FindFold(query string, foldCase bool) (Searchable, bool) {
	w := newWalker()
	for _, alias := range []Alias{AliasName, AliasDisplayName} {
		if target, ok := w.find(ix, query, alias, foldCase); ok {
			return target, true
		}
	}
	return nil, false
}

// walker memoizes child indexes for the duration of one query so that both
// resolution passes see the same point-in-time snapshot of the live tree,
// and so that container cycles map to stable Index pointers.
type walker struct {
	built map[Container]*Index
}

func newWalker() *walker {
	return &walker{built: make(map[Container]*Index)}
}

func (w *walker) index(c Container) *Index {
	if ix, ok := w.built[c]; ok {
		return ix
	}
	ix := c.SearchIndex()
	w.built[c] = ix
	return ix
}

// find runs one level-order pass over the tree, matching only items of the
// given alias kind. The visited set guards against container cycles.
func (w *walker) find(root *Index, query string, alias Alias, foldCase bool) (Searchable, bool) {
	level := []*Index{root}
	visited := map[*Index]bool{root: true}

	for len(level) > 0 {
		var next []*Index
		for _, node := range level {
			for _, it := range node.items {
				if it.Alias == alias && nameEqual(it.Name, query, foldCase) {
					return it.Target, true
				}
			}
			for _, c := range node.containers {
				child := w.index(c)
				if child == nil || visited[child] {
					continue
				}
				visited[child] = true
				next = append(next, child)
			}
		}
		level = next
	}
	return nil, false
}

func nameEqual(name, query string, foldCase bool) bool {
	if foldCase {
		return strings.EqualFold(name, query)
	}
	return name == query
}
