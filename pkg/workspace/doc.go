// Package workspace loads the live object graph from a YAML definition
// and keeps an immutable snapshot of it behind a Holder. A fsnotify
// watcher rebuilds the snapshot when the definition file changes, so every
// query reads a consistent point-in-time tree without any locking in the
// search core.
package workspace
