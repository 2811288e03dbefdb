// Package sync is the boundary to the remote outline service. It pins down
// the envelope discipline every transport must translate into: a uniform
// {success, message, data} wrapper, typed errors for the three failure
// layers (transport, envelope shape, remote refusal), and a single
// schema-validating decode path so the rest of the tool only ever sees a
// well-formed outline.
package sync

import (
	"context"
	"encoding/json"

	"github.com/jfarrand/syllabus/pkg/models"
)

// Provider is a source of outlines and a sink for order changes.
type Provider interface {
	// LoadOutline fetches the full outline for one course scope.
	LoadOutline(ctx context.Context, scopeID string) (models.Outline, error)
	// PersistOrder stores a new sibling order. The order slice carries either
	// section ids (section reorder) or item ids of one section (item reorder).
	PersistOrder(ctx context.Context, scopeID string, order []models.OrderedID) error
}

// Editor is the optional write surface for section-level mutations beyond
// reordering. Transports that support editing implement it alongside
// Provider.
type Editor interface {
	// CreateSection makes a new empty section at the end of the outline and
	// returns it as stored remotely.
	CreateSection(ctx context.Context, scopeID, title string) (models.Section, error)
	// UpdateSection stores a section's title and collapsed flag.
	UpdateSection(ctx context.Context, scopeID string, sec models.Section) error
	// DeleteSection removes a section and its items.
	DeleteSection(ctx context.Context, scopeID string, sectionID int64) error
	// DuplicateSection copies a section server-side and returns the copy with
	// its newly assigned ids.
	DuplicateSection(ctx context.Context, scopeID string, sectionID int64) (models.Section, error)
}

// Envelope is the uniform response wrapper the remote service speaks.
// success=false means the service refused the operation; data, when present
// on a refusal, is ignored.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}
