package search

// Alias identifies which of an object's searchable strings an Item carries.
type Alias int

const (
	// AliasName marks an item derived from the object's literal name.
	AliasName Alias = iota
	// AliasDisplayName marks an item derived from the object's display name.
	AliasDisplayName
)

func (a Alias) String() string {
	if a == AliasDisplayName {
		return "display_name"
	}
	return "name"
}

// Searchable is the capability an object needs to participate in search.
// Implementations must be comparable (pointer receivers are fine); target
// identity is what deduplication and cycle detection key on.
type Searchable interface {
	// SearchName returns the literal name the object is registered under.
	SearchName() string
	// DisplayName returns the human-facing name, falling back to the
	// literal name when none is set.
	DisplayName() string
	// SearchURL returns the relative navigation path to the object.
	SearchURL() string
}

// Container owns zero or more searchable children and contributes a
// subtree to the index.
type Container interface {
	Searchable
	// SearchIndex builds the searchable surface of this container from its
	// current children.
	SearchIndex() *Index
}

// Item binds one searchable string to a navigable target. Items are
// immutable once added to an index.
type Item struct {
	Name   string
	URL    string
	Target Searchable
	Alias  Alias
}

// SameTarget reports whether two items reference the same underlying
// object, regardless of which alias matched.
func (it Item) SameTarget(other Item) bool {
	return it.Target == other.Target
}
