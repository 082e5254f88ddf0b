package model

import "net/url"

// ListView is a named subset of top-level jobs. Membership drives what a
// dashboard renders; it never filters search.
type ListView struct {
	name string
	jobs []*Job
}

// NewListView creates an empty view.
func NewListView(name string) *ListView {
	return &ListView{name: name}
}

// SearchName implements search.Searchable.
func (v *ListView) SearchName() string { return v.name }

// DisplayName implements search.Searchable.
func (v *ListView) DisplayName() string { return v.name }

// SearchURL implements search.Searchable.
func (v *ListView) SearchURL() string { return "view/" + url.PathEscape(v.name) + "/" }

// AddJob adds a job to the view's membership.
func (v *ListView) AddJob(j *Job) { v.jobs = append(v.jobs, j) }

// Contains reports whether the job is a member of this view.
func (v *ListView) Contains(j *Job) bool {
	for _, member := range v.jobs {
		if member == j {
			return true
		}
	}
	return false
}
