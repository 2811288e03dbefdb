package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfarrand/syllabus/pkg/faults"
	"github.com/jfarrand/syllabus/pkg/models"
	"github.com/jfarrand/syllabus/pkg/outline"
	syncapi "github.com/jfarrand/syllabus/pkg/sync"
)

// fakeRemote implements sync.Provider and sync.Editor in memory.
type fakeRemote struct {
	outline models.Outline
	nextID  int64

	persisted [][]models.OrderedID
	failWith  error
}

func newFakeRemote(o models.Outline) *fakeRemote {
	return &fakeRemote{outline: o, nextID: 100}
}

func (f *fakeRemote) LoadOutline(_ context.Context, _ string) (models.Outline, error) {
	if f.failWith != nil {
		return models.Outline{}, f.failWith
	}
	return f.outline.Clone(), nil
}

func (f *fakeRemote) PersistOrder(_ context.Context, _ string, order []models.OrderedID) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.persisted = append(f.persisted, order)
	return nil
}

func (f *fakeRemote) CreateSection(_ context.Context, _ string, title string) (models.Section, error) {
	if f.failWith != nil {
		return models.Section{}, f.failWith
	}
	f.nextID++
	return models.Section{ID: f.nextID, Title: title}, nil
}

func (f *fakeRemote) UpdateSection(_ context.Context, _ string, _ models.Section) error {
	return f.failWith
}

func (f *fakeRemote) DeleteSection(_ context.Context, _ string, _ int64) error {
	return f.failWith
}

func (f *fakeRemote) DuplicateSection(_ context.Context, _ string, sectionID int64) (models.Section, error) {
	if f.failWith != nil {
		return models.Section{}, f.failWith
	}
	src := f.outline.Section(sectionID)
	if src == nil {
		return models.Section{}, &syncapi.RemoteError{Message: "no such section"}
	}
	f.nextID++
	dup := models.Section{ID: f.nextID, Title: src.Title + " (copy)"}
	for _, it := range src.Items {
		f.nextID++
		dup.Items = append(dup.Items, models.Item{
			ID: f.nextID, Title: it.Title, Type: it.Type, SectionID: dup.ID,
		})
	}
	return dup, nil
}

func newTestCourse(t *testing.T) (*Course, *fakeRemote) {
	t.Helper()
	remote := newFakeRemote(threeSections())
	course, err := NewCourse("course-7", remote)
	require.NoError(t, err)
	_, err = course.Load(context.Background())
	require.NoError(t, err)
	return course, remote
}

func TestNewCourseRequiresID(t *testing.T) {
	_, err := NewCourse("  ", newFakeRemote(models.Outline{}))
	var ce *faults.ClassifiedError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, faults.CodeValidationError, ce.Code)
}

func TestCourseLoadClassifiesFailure(t *testing.T) {
	remote := newFakeRemote(models.Outline{})
	remote.failWith = assertableErr("backend down")
	course, err := NewCourse("course-7", remote)
	require.NoError(t, err)

	_, err = course.Load(context.Background())
	var ce *faults.ClassifiedError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, faults.CodeFetchFailed, ce.Code)
}

type assertableErr string

func (e assertableErr) Error() string { return string(e) }

func TestCourseMoveSectionPersistsAndSettles(t *testing.T) {
	course, remote := newTestCourse(t)

	require.NoError(t, course.MoveSection(context.Background(), 2, 0))
	require.Len(t, remote.persisted, 1)
	assert.Equal(t, []models.OrderedID{{ID: 3, Order: 0}, {ID: 1, Order: 1}, {ID: 2, Order: 2}}, remote.persisted[0])
}

func TestCourseMoveItemScopedToSection(t *testing.T) {
	course, remote := newTestCourse(t)

	require.NoError(t, course.MoveItem(context.Background(), 1, 0, 1))
	require.Len(t, remote.persisted, 1)
	assert.Equal(t, []models.OrderedID{{ID: 12, Order: 0}, {ID: 11, Order: 1}}, remote.persisted[0])
	assert.Equal(t, StatusIdle, course.Ctrl.State(ItemScope(1)).Status)
}

func TestCourseAddSection(t *testing.T) {
	course, _ := newTestCourse(t)

	sec, err := course.AddSection(context.Background(), "Advanced Topics")
	require.NoError(t, err)
	assert.Equal(t, "Advanced Topics", sec.Title)

	o := course.Ctrl.Outline()
	require.Len(t, o.Sections, 4)
	assert.Equal(t, sec.ID, o.Sections[3].ID)
	require.NoError(t, outline.Validate(o))
}

func TestCourseAddSectionValidation(t *testing.T) {
	course, _ := newTestCourse(t)

	_, err := course.AddSection(context.Background(), "   ")
	var ce *faults.ClassifiedError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, faults.CodeValidationError, ce.Code)

	// Precondition failures never reach the remote.
	assert.Len(t, course.Ctrl.Outline().Sections, 3)
}

func TestCourseAddSectionCreationFailed(t *testing.T) {
	course, remote := newTestCourse(t)
	remote.failWith = assertableErr("insert refused")

	_, err := course.AddSection(context.Background(), "New")
	var ce *faults.ClassifiedError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, faults.CodeCreationFailed, ce.Code)
}

func TestCourseRenameSectionRollsBack(t *testing.T) {
	course, remote := newTestCourse(t)
	before := course.Ctrl.Outline()
	remote.failWith = &syncapi.RemoteError{Message: "title rejected"}

	err := course.RenameSection(context.Background(), 1, "Renamed")
	var ce *faults.ClassifiedError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, faults.CodeServerError, ce.Code)
	assert.Equal(t, before, course.Ctrl.Outline())
}

func TestCourseRemoveSectionReindexes(t *testing.T) {
	course, _ := newTestCourse(t)

	require.NoError(t, course.RemoveSection(context.Background(), 2))
	o := course.Ctrl.Outline()
	require.Len(t, o.Sections, 2)
	require.NoError(t, outline.Validate(o))
	assert.Nil(t, o.Section(2))
}

func TestCourseDuplicateSectionSettlesServerIDs(t *testing.T) {
	course, _ := newTestCourse(t)

	require.NoError(t, course.DuplicateSection(context.Background(), 1))

	o := course.Ctrl.Outline()
	require.Len(t, o.Sections, 4)
	dup := o.Sections[1]
	assert.Equal(t, "A (copy)", dup.Title)
	assert.Positive(t, dup.ID, "placeholder id must be settled with the server-assigned one")
	require.NoError(t, outline.Validate(o))
	for _, it := range dup.Items {
		assert.Positive(t, it.ID)
	}
}

func TestCourseDuplicateSectionRollsBack(t *testing.T) {
	course, remote := newTestCourse(t)
	before := course.Ctrl.Outline()
	remote.failWith = &syncapi.RemoteError{Message: "quota exceeded"}

	err := course.DuplicateSection(context.Background(), 1)
	var ce *faults.ClassifiedError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, faults.CodeServerError, ce.Code)
	assert.Equal(t, before, course.Ctrl.Outline())
}
