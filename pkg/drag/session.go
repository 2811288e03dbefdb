// Package drag turns a stream of grab/move/drop/cancel events into at most
// one commit against the mutation controller. A cancelled or no-op gesture
// never reaches the controller, so it leaves the outline and the scope state
// untouched.
package drag

// Session tracks one in-progress gesture over a sibling list. Ids are the
// domain ids of the siblings; values <= 0 mean "no target".
type Session struct {
	// Position resolves a sibling id to its current display index, -1 when
	// the id is not part of the list.
	Position func(id int64) int
	// Commit performs the move through the mutation controller.
	Commit func(from, to int) error

	activeID int64
	overID   int64
}

// NewSession creates an idle session.
func NewSession(position func(id int64) int, commit func(from, to int) error) *Session {
	return &Session{Position: position, Commit: commit}
}

// Active returns the id being dragged, or 0.
func (s *Session) Active() int64 { return s.activeID }

// Over returns the id currently hovered, or 0.
func (s *Session) Over() int64 { return s.overID }

// Dragging reports whether a gesture is in progress.
func (s *Session) Dragging() bool { return s.activeID > 0 }

// Start begins a gesture on the given sibling.
func (s *Session) Start(id int64) {
	if id <= 0 {
		return
	}
	s.activeID = id
	s.overID = 0
}

// Move records the sibling currently hovered. id <= 0 clears the hover
// target (dragging outside the list).
func (s *Session) Move(id int64) {
	if s.activeID == 0 {
		return
	}
	if id <= 0 {
		s.overID = 0
		return
	}
	s.overID = id
}

// Drop ends the gesture over the given target and commits the move when the
// drop is meaningful. Dropping nowhere (overID <= 0) or onto the dragged
// sibling itself is a no-op. State is cleared regardless of the commit's
// outcome; the commit's error is returned for surfacing.
func (s *Session) Drop(overID int64) error {
	if s.activeID == 0 {
		return nil
	}
	active := s.activeID
	s.clear()

	if overID <= 0 || overID == active {
		return nil
	}
	from := s.Position(active)
	to := s.Position(overID)
	if from < 0 || to < 0 || from == to {
		return nil
	}
	return s.Commit(from, to)
}

// Cancel aborts the gesture unconditionally. No mutation is ever committed
// for a cancelled drag.
func (s *Session) Cancel() {
	s.clear()
}

func (s *Session) clear() {
	s.activeID = 0
	s.overID = 0
}
