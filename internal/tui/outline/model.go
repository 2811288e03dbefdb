// Package outline is the interactive outline editor: an ordered view of
// sections and items where a grabbed row is moved with the cursor and
// dropped (or the gesture cancelled). Drops run through the drag session
// tracker and the mutation controller, so the view only ever renders
// published state plus the local drag preview.
package outline

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jfarrand/syllabus/pkg/drag"
	"github.com/jfarrand/syllabus/pkg/faults"
	"github.com/jfarrand/syllabus/pkg/models"
	"github.com/jfarrand/syllabus/pkg/outline"
	"github.com/jfarrand/syllabus/pkg/service"
)

// row is a single rendered line: a section header or an item.
type row struct {
	isSection bool
	id        int64
	sectionID int64 // owning section for items, same as id for sections
	title     string
	itemType  models.ItemType
}

// dragState is one in-progress grab gesture.
type dragState struct {
	session   *drag.Session
	isSection bool
	sectionID int64 // for item drags
	fromID    int64
	fromIdx   int
	targetIdx int
	preview   models.Outline
}

// Model is the bubbletea model for the outline editor.
type Model struct {
	course *service.Course
	keys   KeyMap
	help   help.Model
	spin   spinner.Model

	outline models.Outline
	rows    []row
	cursor  int
	folded  map[int64]bool

	drag        *dragState
	pending     bool
	banner      *faults.ClassifiedError
	bannerScope service.Scope

	loading bool
	width   int
	height  int
}

type loadedMsg struct {
	outline models.Outline
	err     error
}

type settledMsg struct {
	scope service.Scope
	err   error
}

// New creates the editor. cached, when non-empty, is shown immediately while
// the real outline loads.
func New(course *service.Course, cached models.Outline) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := Model{
		course:  course,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spin:    sp,
		outline: cached,
		folded:  make(map[int64]bool),
		loading: true,
	}
	m.rebuildRows()
	return m
}

// Init starts the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spin.Tick)
}

func (m Model) loadCmd() tea.Cmd {
	course := m.course
	return func() tea.Msg {
		o, err := course.Load(context.Background())
		return loadedMsg{outline: o, err: err}
	}
}

// visible returns the outline the view should render: the drag preview while
// a gesture is in progress, the published outline otherwise.
func (m *Model) visible() models.Outline {
	if m.drag != nil {
		return m.drag.preview
	}
	return m.outline
}

// rebuildRows flattens the visible outline into display rows, hiding items
// of folded sections.
func (m *Model) rebuildRows() {
	o := m.visible()
	rows := make([]row, 0, len(o.Sections)*4)
	for _, sec := range o.Sections {
		rows = append(rows, row{isSection: true, id: sec.ID, sectionID: sec.ID, title: sec.Title})
		if m.folded[sec.ID] || sec.Collapsed {
			continue
		}
		for _, it := range sec.Items {
			rows = append(rows, row{id: it.ID, sectionID: sec.ID, title: it.Title, itemType: it.Type})
		}
	}
	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// currentRow returns the row under the cursor.
func (m *Model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// cursorTo moves the cursor onto the row with the given id, if visible.
func (m *Model) cursorTo(id int64) {
	for i, r := range m.rows {
		if r.id == id {
			m.cursor = i
			return
		}
	}
}

// siblingIDs returns the sibling list a drag operates over, in committed
// order: all section ids, or the item ids of one section.
func (m *Model) siblingIDs(isSection bool, sectionID int64) []int64 {
	if isSection {
		ids := make([]int64, len(m.outline.Sections))
		for i, s := range m.outline.Sections {
			ids[i] = s.ID
		}
		return ids
	}
	sec := m.outline.Section(sectionID)
	if sec == nil {
		return nil
	}
	ids := make([]int64, len(sec.Items))
	for i, it := range sec.Items {
		ids[i] = it.ID
	}
	return ids
}

// beginDrag starts a gesture on the row under the cursor.
func (m *Model) beginDrag(r row) {
	sibs := m.siblingIDs(r.isSection, r.sectionID)
	fromIdx := -1
	for i, id := range sibs {
		if id == r.id {
			fromIdx = i
		}
	}
	if fromIdx < 0 || len(sibs) < 2 {
		return
	}

	course := m.course
	position := func(id int64) int {
		for i, sid := range sibs {
			if sid == id {
				return i
			}
		}
		return -1
	}
	var commit func(from, to int) error
	if r.isSection {
		commit = func(from, to int) error {
			return course.MoveSection(context.Background(), from, to)
		}
	} else {
		sectionID := r.sectionID
		commit = func(from, to int) error {
			return course.MoveItem(context.Background(), sectionID, from, to)
		}
	}

	ds := &dragState{
		session:   drag.NewSession(position, commit),
		isSection: r.isSection,
		sectionID: r.sectionID,
		fromID:    r.id,
		fromIdx:   fromIdx,
		targetIdx: fromIdx,
		preview:   m.outline.Clone(),
	}
	ds.session.Start(r.id)
	m.drag = ds
	m.rebuildRows()
	m.cursorTo(r.id)
}

// retargetDrag moves the grabbed row's prospective position by delta and
// recomputes the preview.
func (m *Model) retargetDrag(delta int) {
	ds := m.drag
	sibs := m.siblingIDs(ds.isSection, ds.sectionID)
	next := ds.targetIdx + delta
	if next < 0 || next >= len(sibs) {
		return
	}
	ds.targetIdx = next

	// The hover target is the sibling occupying the prospective position in
	// the committed order.
	if ds.targetIdx == ds.fromIdx {
		ds.session.Move(0)
	} else {
		ds.session.Move(sibs[ds.targetIdx])
	}

	var preview models.Outline
	var err error
	if ds.isSection {
		preview, err = outline.MoveSection(m.outline, ds.fromIdx, ds.targetIdx)
	} else {
		preview, err = outline.MoveItem(m.outline, ds.sectionID, ds.fromIdx, ds.targetIdx)
	}
	if err != nil {
		return
	}
	ds.preview = preview
	m.rebuildRows()
	m.cursorTo(ds.fromID)
}

// scopeOf returns the controller scope a drag settles against.
func (ds *dragState) scope() service.Scope {
	if ds.isSection {
		return service.SectionScope()
	}
	return service.ItemScope(ds.sectionID)
}
