// Package modal maps clicked mesh names to portfolio modals and tracks
// which modal is open.
package modal

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ID names a modal, e.g. "projects".
type ID string

// Controller shows and hides modals.
type Controller interface {
	Show(id ID)
	Hide(id ID)
}

// Rule opens Modal when a clicked mesh name contains Marker.
type Rule struct {
	Marker string
	Modal  ID
}

// Table is an ordered list of rules. The first matching rule wins.
type Table []Rule

// Match returns the modal for a mesh name.
func (t Table) Match(name string) (ID, bool) {
	for _, r := range t {
		if strings.Contains(name, r.Marker) {
			return r.Modal, true
		}
	}
	return "", false
}

// Tracker is a Controller that keeps at most one modal open. Showing a
// modal closes the previous one. OnChange, if set, is called with the
// newly visible modal ("" when none) outside the lock.
type Tracker struct {
	log *zap.Logger

	OnChange func(visible ID)

	mu      sync.Mutex
	visible ID
	shown   map[ID]int
}

// NewTracker creates a tracker with no modal open.
func NewTracker(log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{log: log, shown: make(map[ID]int)}
}

// Show opens id. Showing the open modal again is a no-op apart from the count.
func (t *Tracker) Show(id ID) {
	t.mu.Lock()
	prev := t.visible
	t.visible = id
	t.shown[id]++
	t.mu.Unlock()

	if prev != "" && prev != id {
		t.log.Debug("modal hidden", zap.String("modal", string(prev)))
	}
	t.log.Info("modal shown", zap.String("modal", string(id)))
	t.notify(id)
}

// Hide closes id if it is the open modal.
func (t *Tracker) Hide(id ID) {
	t.mu.Lock()
	if t.visible != id {
		t.mu.Unlock()
		return
	}
	t.visible = ""
	t.mu.Unlock()

	t.log.Info("modal hidden", zap.String("modal", string(id)))
	t.notify("")
}

// HideVisible closes whichever modal is open.
func (t *Tracker) HideVisible() {
	if id := t.Visible(); id != "" {
		t.Hide(id)
	}
}

// Visible returns the open modal, or "" if none.
func (t *Tracker) Visible() ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

// Shown returns how many times id has been shown.
func (t *Tracker) Shown(id ID) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.shown[id]
}

func (t *Tracker) notify(id ID) {
	if t.OnChange != nil {
		t.OnChange(id)
	}
}
