package workspace

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/swxiao/jenkins/pkg/observability"
)

// Watcher reloads the workspace definition when the file changes and swaps
// the holder's snapshot. A failed reload keeps the previous snapshot.
type Watcher struct {
	path     string
	holder   *Holder
	logger   *observability.Logger
	fw       *fsnotify.Watcher
	onReload func()
}

// NewWatcher creates a watcher for the workspace file at path. The parent
// directory is watched because editors typically replace the file rather
// than write it in place.
func NewWatcher(path string, holder *Holder, logger *observability.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	return &Watcher{
		path:   path,
		holder: holder,
		logger: logger.WithField("component", "workspace-watcher"),
		fw:     fw,
	}, nil
}

// OnReload registers a callback invoked after each successful reload.
func (w *Watcher) OnReload(fn func()) {
	w.onReload = fn
}

// Run processes file events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			w.reload()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("File watcher error")
		}
	}
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

func (w *Watcher) reload() {
	ws, err := Load(w.path)
	if err != nil {
		w.logger.WithError(err).Error("Workspace reload failed, keeping previous snapshot")
		return
	}
	w.holder.Swap(ws)
	if w.onReload != nil {
		w.onReload()
	}
	w.logger.WithField("items", len(ws.Items())).Info("Workspace reloaded")
}
