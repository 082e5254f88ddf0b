package search

// Index is the searchable surface of one container: direct items in
// declaration order plus the child containers that contribute transitively.
// Child containers are descended into at query time, not flattened at
// construction time, so the index mirrors the live containment tree.
//
// An Index is never mutated after Build; concurrent readers never race.
type Index struct {
	items      []Item
	containers []Container
}

// Items returns the direct entries of this index in declaration order.
func (ix *Index) Items() []Item {
	return ix.items
}

// Builder accumulates searchable names and child containers and produces
// an immutable Index. Building is total: duplicate names for distinct
// targets are legal and preserved.
type Builder struct {
	idx Index
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends an item. Items with an empty name are ignored.
func (b *Builder) Add(it Item) *Builder {
	if it.Name == "" {
		return b
	}
	b.idx.items = append(b.idx.items, it)
	return b
}

// AddName appends a literal-name item for target with its canonical URL.
func (b *Builder) AddName(name string, target Searchable) *Builder {
	return b.Add(Item{
		Name:   name,
		URL:    target.SearchURL(),
		Target: target,
		Alias:  AliasName,
	})
}

// AddAliases appends every alias of target: the literal name first, then
// the display name when it differs.
func (b *Builder) AddAliases(target Searchable) *Builder {
	name := target.SearchName()
	b.AddName(name, target)
	if display := target.DisplayName(); display != "" && display != name {
		b.Add(Item{
			Name:   display,
			URL:    target.SearchURL(),
			Target: target,
			Alias:  AliasDisplayName,
		})
	}
	return b
}

// AddRecursive registers a child container to be descended into during
// resolution and suggestion.
func (b *Builder) AddRecursive(c Container) *Builder {
	b.idx.containers = append(b.idx.containers, c)
	return b
}

// Build returns the accumulated index. The Builder must not be reused.
func (b *Builder) Build() *Index {
	return &b.idx
}
