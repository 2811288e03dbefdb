package service

import (
	"fmt"

	"github.com/jfarrand/syllabus/pkg/faults"
)

// Scope identifies one independently mutable slice of the outline: the
// section order as a whole, or the item order within one section. Each scope
// carries its own operation state, so reordering items inside a section can
// be pending while a section reorder settles.
type Scope string

// SectionScope is the scope governing section order and section-level edits.
func SectionScope() Scope { return "sections" }

// ItemScope is the scope governing item order within one section.
func ItemScope(sectionID int64) Scope {
	return Scope(fmt.Sprintf("items/%d", sectionID))
}

// Status is the lifecycle position of a scope's current operation.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// OperationState is the per-scope state observable by the UI. Err is set
// only when Status is StatusError.
type OperationState struct {
	Status Status
	Err    *faults.ClassifiedError
}
