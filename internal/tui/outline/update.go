package outline

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jfarrand/syllabus/pkg/faults"
	"github.com/jfarrand/syllabus/pkg/service"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setBanner(msg.err, service.SectionScope())
			return m, nil
		}
		m.outline = msg.outline
		m.banner = nil
		m.rebuildRows()
		return m, nil

	case settledMsg:
		m.pending = false
		m.outline = m.course.Ctrl.Outline()
		m.rebuildRows()
		if msg.err != nil && !errors.Is(msg.err, service.ErrScopeBusy) {
			m.setBanner(msg.err, msg.scope)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.drag != nil {
			m.retargetDrag(-1)
		} else if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.drag != nil {
			m.retargetDrag(1)
		} else if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Grab):
		if m.drag != nil || m.pending {
			return m, nil
		}
		if r, ok := m.currentRow(); ok {
			m.beginDrag(r)
		}
		return m, nil

	case key.Matches(msg, m.keys.Drop):
		return m.drop()

	case key.Matches(msg, m.keys.Cancel):
		if m.drag != nil {
			m.drag.session.Cancel()
			m.drag = nil
			m.rebuildRows()
		}
		return m, nil

	case key.Matches(msg, m.keys.Collapse):
		if m.drag == nil {
			if r, ok := m.currentRow(); ok && r.isSection {
				m.folded[r.id] = !m.folded[r.id]
				m.rebuildRows()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		if m.banner == nil || m.pending {
			return m, nil
		}
		scope := m.bannerScope
		m.banner = nil
		m.pending = true
		course := m.course
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			return settledMsg{scope: scope, err: course.Retry(context.Background(), scope)}
		})

	case key.Matches(msg, m.keys.Dismiss):
		if m.banner != nil {
			m.course.Dismiss(m.bannerScope)
			m.banner = nil
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if m.drag == nil && !m.pending {
			m.loading = true
			return m, tea.Batch(m.loadCmd(), m.spin.Tick)
		}
		return m, nil
	}

	return m, nil
}

// drop settles the current gesture. A drop on the original position cancels
// locally without touching the controller.
func (m Model) drop() (tea.Model, tea.Cmd) {
	ds := m.drag
	if ds == nil {
		return m, nil
	}
	m.drag = nil

	sibs := m.siblingIDs(ds.isSection, ds.sectionID)
	if ds.targetIdx == ds.fromIdx || ds.targetIdx < 0 || ds.targetIdx >= len(sibs) {
		_ = ds.session.Drop(0)
		m.rebuildRows()
		return m, nil
	}
	overID := sibs[ds.targetIdx]
	scope := ds.scope()

	// The optimistic order is what the preview already shows; keep rendering
	// it while the persist is in flight.
	m.outline = ds.preview
	m.rebuildRows()
	m.cursorTo(ds.fromID)
	m.pending = true

	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		return settledMsg{scope: scope, err: ds.session.Drop(overID)}
	})
}

func (m *Model) setBanner(err error, scope service.Scope) {
	var ce *faults.ClassifiedError
	if errors.As(err, &ce) {
		m.banner = ce
	} else {
		m.banner = faults.New(faults.CodeReorderFailed, err.Error())
	}
	m.bannerScope = scope
}
