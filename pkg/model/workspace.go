package model

import "github.com/swxiao/jenkins/pkg/search"

// Workspace is the root container. Its search index covers every top-level
// item and view and recurses into folders; the primary view restricts what
// the landing page shows, never what search can reach.
type Workspace struct {
	items   []Item
	views   []*ListView
	primary *ListView
}

// NewWorkspace creates an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// SearchName implements search.Searchable. The root itself is not a search
// target, so it registers no alias.
func (w *Workspace) SearchName() string { return "" }

// DisplayName implements search.Searchable.
func (w *Workspace) DisplayName() string { return "" }

// SearchURL implements search.Searchable.
func (w *Workspace) SearchURL() string { return "" }

// CreateJob creates a top-level job.
func (w *Workspace) CreateJob(name string) *Job {
	j := NewJob("", name)
	w.items = append(w.items, j)
	return j
}

// CreateFolder creates a top-level folder.
func (w *Workspace) CreateFolder(name string) *Folder {
	f := NewFolder("", name)
	w.items = append(w.items, f)
	return f
}

// AddView registers a view.
func (w *Workspace) AddView(v *ListView) {
	w.views = append(w.views, v)
	if w.primary == nil {
		w.primary = v
	}
}

// SetPrimaryView sets the view rendered by default.
func (w *Workspace) SetPrimaryView(v *ListView) { w.primary = v }

// PrimaryView returns the default view, which may be nil.
func (w *Workspace) PrimaryView() *ListView { return w.primary }

// Items returns the top-level items in declaration order.
func (w *Workspace) Items() []Item { return w.items }

// Views returns the registered views in declaration order.
func (w *Workspace) Views() []*ListView { return w.views }

// SearchIndex builds the root index from the current state of the
// workspace: both aliases of every top-level item, recursion into folders,
// and every view by its own name.
func (w *Workspace) SearchIndex() *search.Index {
	b := search.NewBuilder()
	for _, it := range w.items {
		b.AddAliases(it)
		if c, ok := it.(search.Container); ok {
			b.AddRecursive(c)
		}
	}
	for _, v := range w.views {
		b.AddAliases(v)
	}
	return b.Build()
}
