package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfarrand/syllabus/pkg/models"
)

func testOutline() models.Outline {
	return models.Outline{Sections: []models.Section{
		{ID: 1, Title: "A", Order: 0, Items: []models.Item{
			{ID: 11, Title: "a1", Type: models.ItemTypeLesson, SectionID: 1, Order: 0},
			{ID: 12, Title: "a2", Type: models.ItemTypeQuiz, SectionID: 1, Order: 1},
			{ID: 13, Title: "a3", Type: models.ItemTypeResource, SectionID: 1, Order: 2},
		}},
		{ID: 2, Title: "B", Order: 1, Collapsed: true},
		{ID: 3, Title: "C", Order: 2, Items: []models.Item{
			{ID: 31, Title: "c1", Type: models.ItemTypeAssignment, SectionID: 3, Order: 0},
		}},
	}}
}

func sectionIDs(o models.Outline) []int64 {
	ids := make([]int64, len(o.Sections))
	for i, s := range o.Sections {
		ids[i] = s.ID
	}
	return ids
}

func TestMoveSection(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []int64
	}{
		{"first to last", 0, 2, []int64{2, 3, 1}},
		{"last to first", 2, 0, []int64{3, 1, 2}},
		{"adjacent swap", 0, 1, []int64{2, 1, 3}},
		{"same position", 1, 1, []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := testOutline()
			moved, err := MoveSection(orig, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sectionIDs(moved))
			require.NoError(t, Validate(moved))

			// Input untouched.
			assert.Equal(t, testOutline(), orig)
		})
	}
}

func TestMoveSectionNoOpIsStructurallyEqual(t *testing.T) {
	orig := testOutline()
	moved, err := MoveSection(orig, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, orig, moved)
}

func TestMoveSectionInvalidIndex(t *testing.T) {
	for _, pair := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		_, err := MoveSection(testOutline(), pair[0], pair[1])
		assert.ErrorIs(t, err, ErrInvalidIndex)
	}
}

func TestMoveItem(t *testing.T) {
	moved, err := MoveItem(testOutline(), 1, 0, 2)
	require.NoError(t, err)

	sec := moved.Section(1)
	require.NotNil(t, sec)
	ids := []int64{sec.Items[0].ID, sec.Items[1].ID, sec.Items[2].ID}
	assert.Equal(t, []int64{12, 13, 11}, ids)
	require.NoError(t, Validate(moved))

	// Other sections untouched.
	assert.Equal(t, testOutline().Sections[1], moved.Sections[1])
	assert.Equal(t, testOutline().Sections[2], moved.Sections[2])
}

func TestMoveItemErrors(t *testing.T) {
	_, err := MoveItem(testOutline(), 99, 0, 1)
	assert.ErrorIs(t, err, ErrSectionNotFound)

	_, err = MoveItem(testOutline(), 1, 0, 3)
	assert.ErrorIs(t, err, ErrInvalidIndex)

	// Single-item section: only 0 -> 0 is valid.
	_, err = MoveItem(testOutline(), 3, 0, 0)
	assert.NoError(t, err)
	_, err = MoveItem(testOutline(), 3, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestNormalizeRepairsDriftedOrders(t *testing.T) {
	o := models.Outline{Sections: []models.Section{
		{ID: 1, Order: 4, Items: []models.Item{
			{ID: 11, SectionID: 9, Order: 7},
			{ID: 12, SectionID: 1, Order: 7},
		}},
		{ID: 2, Order: 0},
	}}

	require.Error(t, Validate(o))
	n := Normalize(o)
	require.NoError(t, Validate(n))
	assert.Equal(t, 0, n.Sections[0].Order)
	assert.EqualValues(t, 1, n.Sections[0].Items[0].SectionID)
}
