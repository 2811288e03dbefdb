package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jfarrand/syllabus/pkg/faults"
	"github.com/jfarrand/syllabus/pkg/models"
	"github.com/jfarrand/syllabus/pkg/outline"
	syncapi "github.com/jfarrand/syllabus/pkg/sync"
)

// Course binds the mutation controller to one remote course scope. All
// user-facing operations (load, reorder, section edits) run through it.
type Course struct {
	ID       string
	Ctrl     *Controller
	provider syncapi.Provider
}

// NewCourse creates the course service around an empty controller. Call
// Load to populate it.
func NewCourse(id string, provider syncapi.Provider, opts ...Option) (*Course, error) {
	if strings.TrimSpace(id) == "" {
		return nil, faults.New(faults.CodeValidationError, "missing course id")
	}
	return &Course{
		ID:       id,
		Ctrl:     New(models.Outline{}, opts...),
		provider: provider,
	}, nil
}

// Load fetches the outline from the remote and resets the controller with
// it. Failures come back classified as fetch_failed (or the more specific
// boundary codes).
func (c *Course) Load(ctx context.Context) (models.Outline, error) {
	o, err := c.provider.LoadOutline(ctx, c.ID)
	if err != nil {
		return models.Outline{}, faults.Classify(err, faults.CodeFetchFailed)
	}
	c.Ctrl.Reset(o)
	return o, nil
}

// MoveSection reorders sections optimistically and persists the new order.
func (c *Course) MoveSection(ctx context.Context, from, to int) error {
	return c.Ctrl.Do(ctx, Commit{
		Scope:    SectionScope(),
		Kind:     models.OpReorderSections,
		Fallback: faults.CodeReorderFailed,
		Mutate: func(o models.Outline) (models.Outline, error) {
			return outline.MoveSection(o, from, to)
		},
		Persist: func(ctx context.Context, o models.Outline) error {
			return c.provider.PersistOrder(ctx, c.ID, o.SectionOrder())
		},
	})
}

// MoveItem reorders the items of one section optimistically and persists the
// new order.
func (c *Course) MoveItem(ctx context.Context, sectionID int64, from, to int) error {
	return c.Ctrl.Do(ctx, Commit{
		Scope:    ItemScope(sectionID),
		Kind:     models.OpReorderItems,
		Fallback: faults.CodeReorderFailed,
		Mutate: func(o models.Outline) (models.Outline, error) {
			return outline.MoveItem(o, sectionID, from, to)
		},
		Persist: func(ctx context.Context, o models.Outline) error {
			return c.provider.PersistOrder(ctx, c.ID, o.ItemOrder(sectionID))
		},
	})
}

// editor returns the provider's edit surface, or a classified validation
// failure when the transport cannot edit.
func (c *Course) editor() (syncapi.Editor, error) {
	ed, ok := c.provider.(syncapi.Editor)
	if !ok {
		return nil, faults.New(faults.CodeValidationError, "remote does not support editing")
	}
	return ed, nil
}

// AddSection creates a section remotely and appends it to the outline.
// Creation is not optimistic: the section's identity is server-assigned, so
// nothing is shown until the remote confirms it.
func (c *Course) AddSection(ctx context.Context, title string) (models.Section, error) {
	if strings.TrimSpace(title) == "" {
		return models.Section{}, faults.New(faults.CodeValidationError, "section title must not be empty")
	}
	ed, err := c.editor()
	if err != nil {
		return models.Section{}, err
	}

	sec, err := ed.CreateSection(ctx, c.ID, title)
	if err != nil {
		return models.Section{}, faults.Classify(err, faults.CodeCreationFailed)
	}

	if err := c.Ctrl.Apply(func(o models.Outline) (models.Outline, error) {
		out := o.Clone()
		sec.Order = len(out.Sections)
		out.Sections = append(out.Sections, sec)
		return outline.Normalize(out), nil
	}); err != nil {
		return models.Section{}, faults.Classify(err, faults.CodeCreationFailed)
	}
	return sec, nil
}

// RenameSection retitles a section optimistically.
func (c *Course) RenameSection(ctx context.Context, sectionID int64, title string) error {
	if strings.TrimSpace(title) == "" {
		return faults.New(faults.CodeValidationError, "section title must not be empty")
	}
	ed, err := c.editor()
	if err != nil {
		return err
	}

	return c.Ctrl.Do(ctx, Commit{
		Scope:    SectionScope(),
		Kind:     models.OpEdit,
		Fallback: faults.CodeUpdateFailed,
		Mutate: func(o models.Outline) (models.Outline, error) {
			out := o.Clone()
			sec := out.Section(sectionID)
			if sec == nil {
				return models.Outline{}, fmt.Errorf("rename section %d: %w", sectionID, outline.ErrSectionNotFound)
			}
			sec.Title = title
			return out, nil
		},
		Persist: func(ctx context.Context, o models.Outline) error {
			return ed.UpdateSection(ctx, c.ID, *o.Section(sectionID))
		},
	})
}

// RemoveSection deletes a section optimistically. The remaining sections are
// reindexed so the contiguous order invariant holds in the visible state.
func (c *Course) RemoveSection(ctx context.Context, sectionID int64) error {
	ed, err := c.editor()
	if err != nil {
		return err
	}

	return c.Ctrl.Do(ctx, Commit{
		Scope:    SectionScope(),
		Kind:     models.OpDelete,
		Fallback: faults.CodeDeleteFailed,
		Mutate: func(o models.Outline) (models.Outline, error) {
			out := o.Clone()
			idx := outline.SectionIndex(out, sectionID)
			if idx < 0 {
				return models.Outline{}, fmt.Errorf("remove section %d: %w", sectionID, outline.ErrSectionNotFound)
			}
			out.Sections = append(out.Sections[:idx], out.Sections[idx+1:]...)
			return outline.Normalize(out), nil
		},
		Persist: func(ctx context.Context, o models.Outline) error {
			return ed.DeleteSection(ctx, c.ID, sectionID)
		},
	})
}

// DuplicateSection copies a section optimistically: a placeholder copy with
// negated ids is shown right after the source, the remote performs the real
// copy, and on success the placeholder is settled with the server-assigned
// section.
func (c *Course) DuplicateSection(ctx context.Context, sectionID int64) error {
	ed, err := c.editor()
	if err != nil {
		return err
	}

	var created models.Section

	return c.Ctrl.Do(ctx, Commit{
		Scope:    SectionScope(),
		Kind:     models.OpDuplicate,
		Fallback: faults.CodeDuplicateFailed,
		Mutate: func(o models.Outline) (models.Outline, error) {
			out := o.Clone()
			idx := outline.SectionIndex(out, sectionID)
			if idx < 0 {
				return models.Outline{}, fmt.Errorf("duplicate section %d: %w", sectionID, outline.ErrSectionNotFound)
			}

			src := out.Sections[idx]
			copySec := src
			copySec.ID = -src.ID
			copySec.Title = src.Title + " (copy)"
			copySec.Items = make([]models.Item, len(src.Items))
			for i, it := range src.Items {
				it.ID = -it.ID
				it.SectionID = copySec.ID
				copySec.Items[i] = it
			}

			sections := make([]models.Section, 0, len(out.Sections)+1)
			sections = append(sections, out.Sections[:idx+1]...)
			sections = append(sections, copySec)
			sections = append(sections, out.Sections[idx+1:]...)
			out.Sections = sections
			return outline.Normalize(out), nil
		},
		Persist: func(ctx context.Context, o models.Outline) error {
			sec, err := ed.DuplicateSection(ctx, c.ID, sectionID)
			if err != nil {
				return err
			}
			created = sec
			return nil
		},
		Settle: func(o models.Outline) models.Outline {
			out := o.Clone()
			idx := outline.SectionIndex(out, -sectionID)
			if idx < 0 {
				return out
			}
			created.Order = idx
			out.Sections[idx] = created
			return outline.Normalize(out)
		},
	})
}

// Retry replays the last failed operation of a scope.
func (c *Course) Retry(ctx context.Context, scope Scope) error {
	return c.Ctrl.Retry(ctx, scope)
}

// Dismiss clears a scope's error banner without retrying.
func (c *Course) Dismiss(scope Scope) {
	c.Ctrl.Dismiss(scope)
}
