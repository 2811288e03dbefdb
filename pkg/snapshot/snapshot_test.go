package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfarrand/syllabus/pkg/models"
)

func sample() models.Outline {
	return models.Outline{Sections: []models.Section{
		{ID: 1, Title: "Intro", Order: 0, Items: []models.Item{
			{ID: 10, Title: "Welcome", SectionID: 1, Order: 0},
		}},
	}}
}

func TestCaptureRestoreRoundTrip(t *testing.T) {
	m := NewManager()
	o := sample()

	s := m.Capture(o, models.OpReorderSections)
	assert.Equal(t, models.OpReorderSections, s.Kind)
	assert.False(t, s.TakenAt.IsZero())
	assert.True(t, m.Live())

	// Mutating the source after capture must not leak into the snapshot.
	o.Sections[0].Title = "mutated"

	restored, ok := m.Restore()
	require.True(t, ok)
	assert.Equal(t, sample(), restored)
	assert.False(t, m.Live())
}

func TestRestoreWithoutCapture(t *testing.T) {
	m := NewManager()
	_, ok := m.Restore()
	assert.False(t, ok)
}

func TestCaptureSupersedes(t *testing.T) {
	m := NewManager()
	first := sample()
	m.Capture(first, models.OpReorderItems)

	second := sample()
	second.Sections[0].Title = "Renamed"
	m.Capture(second, models.OpEdit)

	restored, ok := m.Restore()
	require.True(t, ok)
	assert.Equal(t, "Renamed", restored.Sections[0].Title)

	// The superseded snapshot is gone for good.
	_, ok = m.Restore()
	assert.False(t, ok)
}

func TestClearDiscards(t *testing.T) {
	m := NewManager()
	m.Capture(sample(), models.OpDelete)
	m.Clear()
	_, ok := m.Restore()
	assert.False(t, ok)
}
