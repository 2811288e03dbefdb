package drag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	order   []int64
	commits [][2]int
	err     error
}

func (r *recorder) position(id int64) int {
	for i, v := range r.order {
		if v == id {
			return i
		}
	}
	return -1
}

func (r *recorder) commit(from, to int) error {
	r.commits = append(r.commits, [2]int{from, to})
	return r.err
}

func newTestSession(err error) (*Session, *recorder) {
	r := &recorder{order: []int64{10, 20, 30}, err: err}
	return NewSession(r.position, r.commit), r
}

func TestDropCommitsMove(t *testing.T) {
	s, r := newTestSession(nil)

	s.Start(10)
	s.Move(20)
	s.Move(30)
	require.NoError(t, s.Drop(30))

	require.Len(t, r.commits, 1)
	assert.Equal(t, [2]int{0, 2}, r.commits[0])
	assert.False(t, s.Dragging())
	assert.Zero(t, s.Over())
}

func TestCancellationPurity(t *testing.T) {
	s, r := newTestSession(nil)

	s.Start(10)
	s.Move(20)
	s.Move(30)
	s.Move(20)
	s.Cancel()

	assert.Empty(t, r.commits, "cancelled gesture must never commit")
	assert.False(t, s.Dragging())
}

func TestNoOpDrop(t *testing.T) {
	tests := []struct {
		name string
		over int64
	}{
		{"onto itself", 10},
		{"nowhere", 0},
		{"negative id", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, r := newTestSession(nil)
			s.Start(10)
			require.NoError(t, s.Drop(tt.over))
			assert.Empty(t, r.commits)
			assert.False(t, s.Dragging())
		})
	}
}

func TestDropWithoutStart(t *testing.T) {
	s, r := newTestSession(nil)
	require.NoError(t, s.Drop(20))
	assert.Empty(t, r.commits)
}

func TestDropOnUnknownTarget(t *testing.T) {
	s, r := newTestSession(nil)
	s.Start(10)
	require.NoError(t, s.Drop(99))
	assert.Empty(t, r.commits)
}

func TestDropClearsStateEvenWhenCommitFails(t *testing.T) {
	boom := errors.New("reorder_failed")
	s, r := newTestSession(boom)

	s.Start(30)
	s.Move(10)
	err := s.Drop(10)
	assert.ErrorIs(t, err, boom)
	require.Len(t, r.commits, 1)
	assert.Equal(t, [2]int{2, 0}, r.commits[0])
	assert.False(t, s.Dragging())
}

func TestMoveWithoutStartIgnored(t *testing.T) {
	s, _ := newTestSession(nil)
	s.Move(20)
	assert.Zero(t, s.Over())
	assert.False(t, s.Dragging())
}

func TestMoveOutsideListClearsHover(t *testing.T) {
	s, _ := newTestSession(nil)
	s.Start(10)
	s.Move(20)
	assert.EqualValues(t, 20, s.Over())
	s.Move(0)
	assert.Zero(t, s.Over())
	assert.True(t, s.Dragging())
}
