package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemTypeValidation(t *testing.T) {
	tests := []struct {
		itemType ItemType
		isValid  bool
	}{
		{"lesson", true},
		{"quiz", true},
		{"assignment", true},
		{"resource", true},
		{ItemType("invalid"), false},
		{ItemType(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.itemType), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.itemType.Valid())
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	o := Outline{Sections: []Section{
		{ID: 1, Title: "Intro", Order: 0, Items: []Item{
			{ID: 10, Title: "Welcome", Type: ItemTypeLesson, SectionID: 1, Order: 0},
		}},
		{ID: 2, Title: "Basics", Order: 1, Collapsed: true},
	}}

	c := o.Clone()
	require.Equal(t, o, c)

	c.Sections[0].Title = "changed"
	c.Sections[0].Items[0].Title = "changed"
	assert.Equal(t, "Intro", o.Sections[0].Title)
	assert.Equal(t, "Welcome", o.Sections[0].Items[0].Title)
}

func TestSectionLookup(t *testing.T) {
	o := Outline{Sections: []Section{{ID: 1}, {ID: 2}}}
	require.NotNil(t, o.Section(2))
	assert.EqualValues(t, 2, o.Section(2).ID)
	assert.Nil(t, o.Section(99))
}

func TestOrderProjections(t *testing.T) {
	o := Outline{Sections: []Section{
		{ID: 5, Order: 0, Items: []Item{{ID: 51}, {ID: 52}}},
		{ID: 7, Order: 1},
	}}

	assert.Equal(t, []OrderedID{{ID: 5, Order: 0}, {ID: 7, Order: 1}}, o.SectionOrder())
	assert.Equal(t, []OrderedID{{ID: 51, Order: 0}, {ID: 52, Order: 1}}, o.ItemOrder(5))
	assert.Nil(t, o.ItemOrder(99))
}
