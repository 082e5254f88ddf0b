package model

import (
	"net/url"

	"github.com/swxiao/jenkins/pkg/search"
)

// Item is anything that can live inside a container: a job or a folder.
type Item interface {
	search.Searchable
}

// Job is a buildable unit. Its disabled flag controls scheduling, not
// searchability.
type Job struct {
	name        string
	displayName string
	url         string
	disabled    bool
}

// NewJob creates a job rooted at parentURL. The name is one path segment
// and gets percent-escaped in the URL.
func NewJob(parentURL, name string) *Job {
	return &Job{
		name: name,
		url:  parentURL + "job/" + url.PathEscape(name) + "/",
	}
}

// SearchName implements search.Searchable.
func (j *Job) SearchName() string { return j.name }

// DisplayName returns the display name, falling back to the literal name.
func (j *Job) DisplayName() string {
	if j.displayName == "" {
		return j.name
	}
	return j.displayName
}

// SearchURL implements search.Searchable.
func (j *Job) SearchURL() string { return j.url }

// SetDisplayName sets the human-facing name shown in place of the literal
// name.
func (j *Job) SetDisplayName(name string) { j.displayName = name }

// Disable marks the job as not schedulable.
func (j *Job) Disable() { j.disabled = true }

// Enable marks the job as schedulable.
func (j *Job) Enable() { j.disabled = false }

// Disabled reports the scheduling state.
func (j *Job) Disabled() bool { return j.disabled }
