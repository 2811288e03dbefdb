// Package service holds the mutation controller: the one writer of the
// outline. Every change goes through Commit, which snapshots the current
// state, applies the mutation optimistically, persists it remotely, and on
// failure restores the snapshot and surfaces a classified error. At most one
// operation per scope is in flight at a time; a second commit against a
// pending scope is rejected, not queued.
package service

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jfarrand/syllabus/pkg/faults"
	"github.com/jfarrand/syllabus/pkg/models"
	"github.com/jfarrand/syllabus/pkg/snapshot"
)

// ErrScopeBusy rejects a commit issued while the same scope is pending.
// It is not a classified error: the gesture is dropped, nothing about the
// outline or the scope's state changes.
var ErrScopeBusy = errors.New("an operation is already in flight for this scope")

// ErrClosed rejects operations on a disposed controller.
var ErrClosed = errors.New("controller is closed")

// ErrNothingToRetry rejects a retry on a scope that is not in the error state.
var ErrNothingToRetry = errors.New("no failed operation to retry")

// MutateFunc produces the prospective outline from the current one. It must
// be pure: no I/O, input treated as read-only.
type MutateFunc func(models.Outline) (models.Outline, error)

// PersistFunc stores the prospective outline remotely. It is the only
// suspension point of a commit.
type PersistFunc func(ctx context.Context, o models.Outline) error

// SettleFunc optionally reconciles the optimistic outline after a confirmed
// success, e.g. swapping placeholder ids for server-assigned ones.
type SettleFunc func(models.Outline) models.Outline

// Commit describes one optimistic mutation.
type Commit struct {
	Scope    Scope
	Kind     models.OperationKind
	Fallback faults.Code
	Mutate   MutateFunc
	Persist  PersistFunc
	Settle   SettleFunc
}

// Controller owns the outline and the per-scope operation states. Construct
// with New, dispose with Close; tests can run any number of independent
// instances.
type Controller struct {
	mu      sync.Mutex
	outline models.Outline
	scopes  map[Scope]*scopeState
	closed  bool

	onChange func(models.Outline)
	logger   *logrus.Logger
}

type scopeState struct {
	state OperationState
	snaps *snapshot.Manager
	// retry holds the commit to replay from the error state.
	retry *Commit
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for settle and rollback events.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithOnChange registers the publish hook. It receives a private copy of the
// outline after every visible change: optimistic apply, rollback, and reset.
func WithOnChange(fn func(models.Outline)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// New creates a controller owning a copy of the initial outline.
func New(initial models.Outline, opts ...Option) *Controller {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	c := &Controller{
		outline: initial.Clone(),
		scopes:  make(map[Scope]*scopeState),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Outline returns a copy of the currently published outline.
func (c *Controller) Outline() models.Outline {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outline.Clone()
}

// State returns the operation state for a scope. Unknown scopes are idle.
func (c *Controller) State(scope Scope) OperationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.scopes[scope]; ok {
		return st.state
	}
	return OperationState{Status: StatusIdle}
}

// Reset replaces the outline wholesale, e.g. after the initial load. All
// scope states are discarded.
func (c *Controller) Reset(o models.Outline) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.outline = o.Clone()
	c.scopes = make(map[Scope]*scopeState)
	published := c.outline.Clone()
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(published)
	}
}

// Apply publishes an already-confirmed local change outside the optimistic
// lifecycle, e.g. appending a section the remote has just created. No
// snapshot is taken and no scope state changes.
func (c *Controller) Apply(mutate MutateFunc) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	next, err := mutate(c.outline)
	if err != nil {
		c.mu.Unlock()
		return faults.Classify(err, faults.CodeValidationError)
	}
	c.outline = next
	published := c.outline.Clone()
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(published)
	}
	return nil
}

// Close disposes the controller. Pending persists still settle internally,
// but no new commits are accepted.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Do runs one commit to settlement: snapshot, optimistic apply and publish,
// persist, then either discard the snapshot or restore it and surface the
// classified failure.
//
// The returned error is ErrScopeBusy, ErrClosed, or a *faults.ClassifiedError;
// raw failures never escape.
func (c *Controller) Do(ctx context.Context, req Commit) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	st := c.scope(req.Scope)
	if st.state.Status == StatusPending {
		c.mu.Unlock()
		return ErrScopeBusy
	}

	snap := st.snaps.Capture(c.outline, req.Kind)
	next, err := req.Mutate(c.outline)
	if err != nil {
		// Precondition failed before any network call: nothing was applied,
		// nothing to roll back, scope stays idle.
		st.snaps.Clear()
		c.mu.Unlock()
		return faults.Classify(err, faults.CodeValidationError)
	}

	c.outline = next
	st.state = OperationState{Status: StatusPending}
	st.retry = nil
	prospective := c.outline.Clone()
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(prospective)
	}

	persistErr := req.Persist(ctx, prospective)

	c.mu.Lock()
	if persistErr == nil {
		st.snaps.Clear()
		if req.Settle != nil {
			c.outline = req.Settle(c.outline)
		}
		// Success is not a resting state: the scope goes straight back to
		// idle so the next gesture is accepted.
		st.state = OperationState{Status: StatusIdle}
		settled := c.outline.Clone()
		fn := c.onChange
		c.mu.Unlock()

		c.logger.WithField("kind", req.Kind).Debug("mutation persisted")
		if fn != nil && req.Settle != nil {
			fn(settled)
		}
		return nil
	}

	// Rollback: the snapshot taken above is restored verbatim.
	if restored, ok := st.snaps.Restore(); ok {
		c.outline = restored
	} else {
		c.outline = snap.Outline
	}
	ce := faults.Classify(persistErr, req.Fallback)
	st.state = OperationState{Status: StatusError, Err: ce}
	st.retry = &req
	restored := c.outline.Clone()
	fn = c.onChange
	c.mu.Unlock()

	c.logger.WithFields(logrus.Fields{
		"kind": req.Kind,
		"code": ce.Code,
	}).Warn("mutation rolled back")
	if fn != nil {
		fn(restored)
	}
	return ce
}

// Retry replays the failed commit of a scope with the exact same prospective
// mutation. The scope must be in the error state.
func (c *Controller) Retry(ctx context.Context, scope Scope) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	st := c.scope(scope)
	if st.state.Status != StatusError || st.retry == nil {
		c.mu.Unlock()
		return ErrNothingToRetry
	}
	req := *st.retry
	st.state = OperationState{Status: StatusIdle}
	st.retry = nil
	c.mu.Unlock()

	return c.Do(ctx, req)
}

// Dismiss clears a scope's error without retrying. The outline was already
// restored when the failure settled, so nothing else changes.
func (c *Controller) Dismiss(scope Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.scope(scope)
	if st.state.Status == StatusError {
		st.state = OperationState{Status: StatusIdle}
		st.retry = nil
	}
}

// scope returns the state holder for a scope, creating it lazily.
// Callers hold c.mu.
func (c *Controller) scope(s Scope) *scopeState {
	st, ok := c.scopes[s]
	if !ok {
		st = &scopeState{
			state: OperationState{Status: StatusIdle},
			snaps: snapshot.NewManager(),
		}
		c.scopes[s] = st
	}
	return st
}
