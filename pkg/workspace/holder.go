package workspace

import (
	"sync"

	"github.com/swxiao/jenkins/pkg/model"
	"github.com/swxiao/jenkins/pkg/search"
)

// Holder keeps the current workspace snapshot. Readers get whichever tree
// was current when they asked; swaps never mutate a snapshot in place.
type Holder struct {
	mu     sync.RWMutex
	ws     *model.Workspace
	onSwap []func(*model.Workspace)
}

// NewHolder creates a holder around an initial snapshot.
func NewHolder(ws *model.Workspace) *Holder {
	return &Holder{ws: ws}
}

// Get returns the current snapshot.
func (h *Holder) Get() *model.Workspace {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ws
}

// Swap replaces the snapshot and notifies subscribers.
func (h *Holder) Swap(ws *model.Workspace) {
	h.mu.Lock()
	h.ws = ws
	subs := h.onSwap
	h.mu.Unlock()

	for _, fn := range subs {
		fn(ws)
	}
}

// OnSwap registers a callback invoked after each snapshot swap. Used to
// invalidate caches and refresh gauges.
func (h *Holder) OnSwap(fn func(*model.Workspace)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSwap = append(h.onSwap, fn)
}

// SearchIndex builds the root index from the current snapshot. Satisfies
// the gateway's index provider without the gateway importing the model.
func (h *Holder) SearchIndex() *search.Index {
	return h.Get().SearchIndex()
}
