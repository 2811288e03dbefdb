// Package snapshot keeps the single rollback snapshot taken before each
// optimistic mutation. Only one snapshot is live at a time: capturing a new
// one discards the previous, because a superseding operation makes the older
// state an obsolete rollback target.
package snapshot

import (
	"sync"
	"time"

	"github.com/jfarrand/syllabus/pkg/models"
)

// Snapshot is an immutable capture of the outline plus the operation that
// is about to mutate it.
type Snapshot struct {
	Outline models.Outline
	Kind    models.OperationKind
	TakenAt time.Time
}

// Manager holds at most one live snapshot.
type Manager struct {
	mu  sync.Mutex
	cur *Snapshot
}

// NewManager creates an empty snapshot manager.
func NewManager() *Manager {
	return &Manager{}
}

// Capture stores a deep copy of the outline and returns the snapshot.
// Any previously captured snapshot is discarded.
func (m *Manager) Capture(o models.Outline, kind models.OperationKind) Snapshot {
	s := Snapshot{
		Outline: o.Clone(),
		Kind:    kind,
		TakenAt: time.Now(),
	}
	m.mu.Lock()
	m.cur = &s
	m.mu.Unlock()
	return s
}

// Restore consumes the live snapshot and returns its outline. The second
// return is false when nothing was captured.
func (m *Manager) Restore() (models.Outline, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur == nil {
		return models.Outline{}, false
	}
	o := m.cur.Outline
	m.cur = nil
	return o, true
}

// Clear discards the live snapshot, if any. Called on confirmed success.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.cur = nil
	m.mu.Unlock()
}

// Live reports whether a snapshot is currently held.
func (m *Manager) Live() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur != nil
}
