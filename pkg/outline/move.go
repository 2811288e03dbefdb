// Package outline holds the pure reorder operations over a course outline.
// All functions are total over valid indices, never mutate their input, and
// re-establish the contiguous zero-based order invariant by recomputing every
// order value from position rather than patching deltas.
package outline

import (
	"errors"
	"fmt"

	"github.com/jfarrand/syllabus/pkg/models"
)

// ErrInvalidIndex signals an out-of-range move. It is a programming error in
// the caller, not a user-facing failure, so it stays outside the classified
// error taxonomy.
var ErrInvalidIndex = errors.New("index out of range")

// ErrSectionNotFound signals an item move into a section id that does not
// exist in the outline.
var ErrSectionNotFound = errors.New("section not found")

// MoveSection returns a copy of o with the section at from relocated to to.
// A move onto the same position returns an unchanged (but distinct) copy.
func MoveSection(o models.Outline, from, to int) (models.Outline, error) {
	n := len(o.Sections)
	if from < 0 || from >= n || to < 0 || to >= n {
		return models.Outline{}, fmt.Errorf("move section %d -> %d of %d: %w", from, to, n, ErrInvalidIndex)
	}

	out := o.Clone()
	if from != to {
		moved := out.Sections[from]
		rest := append(out.Sections[:from:from], out.Sections[from+1:]...)
		sections := make([]models.Section, 0, n)
		sections = append(sections, rest[:to]...)
		sections = append(sections, moved)
		sections = append(sections, rest[to:]...)
		out.Sections = sections
	}
	reindexSections(&out)
	return out, nil
}

// MoveItem returns a copy of o with the item at from inside sectionID
// relocated to to within the same section.
func MoveItem(o models.Outline, sectionID int64, from, to int) (models.Outline, error) {
	out := o.Clone()
	sec := out.Section(sectionID)
	if sec == nil {
		return models.Outline{}, fmt.Errorf("move item in section %d: %w", sectionID, ErrSectionNotFound)
	}
	n := len(sec.Items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return models.Outline{}, fmt.Errorf("move item %d -> %d of %d in section %d: %w", from, to, n, sectionID, ErrInvalidIndex)
	}

	if from != to {
		moved := sec.Items[from]
		rest := append(sec.Items[:from:from], sec.Items[from+1:]...)
		items := make([]models.Item, 0, n)
		items = append(items, rest[:to]...)
		items = append(items, moved)
		items = append(items, rest[to:]...)
		sec.Items = items
	}
	reindexItems(sec)
	return out, nil
}

// reindexSections rewrites every section order from its slice position.
func reindexSections(o *models.Outline) {
	for i := range o.Sections {
		o.Sections[i].Order = i
	}
}

// reindexItems rewrites every item order from its slice position and repairs
// the owning section id.
func reindexItems(sec *models.Section) {
	for i := range sec.Items {
		sec.Items[i].Order = i
		sec.Items[i].SectionID = sec.ID
	}
}

// Normalize returns a copy of o with all order fields recomputed from
// position. Used after loading from a remote that is allowed to hand back
// sparse or drifted order values.
func Normalize(o models.Outline) models.Outline {
	out := o.Clone()
	reindexSections(&out)
	for i := range out.Sections {
		reindexItems(&out.Sections[i])
	}
	return out
}

// Validate checks the contiguity invariants: section orders form 0..N-1 in
// display order, and each section's item orders form 0..M-1.
func Validate(o models.Outline) error {
	for i, s := range o.Sections {
		if s.Order != i {
			return fmt.Errorf("section %d has order %d at position %d", s.ID, s.Order, i)
		}
		for j, it := range s.Items {
			if it.Order != j {
				return fmt.Errorf("item %d has order %d at position %d in section %d", it.ID, it.Order, j, s.ID)
			}
			if it.SectionID != s.ID {
				return fmt.Errorf("item %d claims section %d but lives in section %d", it.ID, it.SectionID, s.ID)
			}
		}
	}
	return nil
}

// SectionIndex returns the display position of a section id, or -1.
func SectionIndex(o models.Outline, id int64) int {
	for i, s := range o.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// ItemIndex returns the display position of an item id within its section,
// or -1 when the section or item is missing.
func ItemIndex(o models.Outline, sectionID, itemID int64) int {
	sec := o.Section(sectionID)
	if sec == nil {
		return -1
	}
	for i, it := range sec.Items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}
