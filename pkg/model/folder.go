package model

import (
	"net/url"

	"github.com/swxiao/jenkins/pkg/search"
)

// Folder is a named container of jobs and nested folders. Children keep
// their declaration order; that order is the only tie-break the search
// index relies on.
type Folder struct {
	name        string
	displayName string
	url         string
	children    []Item
}

// NewFolder creates a folder rooted at parentURL. The name is one path
// segment and gets percent-escaped in the URL.
func NewFolder(parentURL, name string) *Folder {
	return &Folder{
		name: name,
		url:  parentURL + "job/" + url.PathEscape(name) + "/",
	}
}

// SearchName implements search.Searchable.
func (f *Folder) SearchName() string { return f.name }

// DisplayName returns the display name, falling back to the literal name.
func (f *Folder) DisplayName() string {
	if f.displayName == "" {
		return f.name
	}
	return f.displayName
}

// SearchURL implements search.Searchable.
func (f *Folder) SearchURL() string { return f.url }

// SetDisplayName sets the human-facing name.
func (f *Folder) SetDisplayName(name string) { f.displayName = name }

// CreateJob creates a job as an immediate child of this folder.
func (f *Folder) CreateJob(name string) *Job {
	j := NewJob(f.url, name)
	f.children = append(f.children, j)
	return j
}

// CreateFolder creates a nested folder.
func (f *Folder) CreateFolder(name string) *Folder {
	child := NewFolder(f.url, name)
	f.children = append(f.children, child)
	return child
}

// AddChild appends an existing item. Used by loaders and tests that need
// to wire arbitrary graphs, including cyclic ones.
func (f *Folder) AddChild(it Item) { f.children = append(f.children, it) }

// Children returns the immediate children in declaration order.
func (f *Folder) Children() []Item { return f.children }

// SearchIndex builds the searchable surface of this folder from its
// current children: both aliases of every immediate child, plus recursion
// into nested folders.
func (f *Folder) SearchIndex() *search.Index {
	b := search.NewBuilder()
	for _, child := range f.children {
		b.AddAliases(child)
		if c, ok := child.(search.Container); ok {
			b.AddRecursive(c)
		}
	}
	return b.Build()
}
