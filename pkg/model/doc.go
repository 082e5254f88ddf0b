// Package model holds the live workspace object graph: jobs, folders,
// list views and the workspace root. Objects implement the search
// capability interfaces so any of them participates in quick-search
// uniformly; operational state such as a job's disabled flag never affects
// searchability.
package model
