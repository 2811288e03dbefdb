package models

// ItemType represents the kind of curriculum item
type ItemType string

const (
	ItemTypeLesson     ItemType = "lesson"
	ItemTypeQuiz       ItemType = "quiz"
	ItemTypeAssignment ItemType = "assignment"
	ItemTypeResource   ItemType = "resource"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeLesson, ItemTypeQuiz, ItemTypeAssignment, ItemTypeResource:
		return true
	}
	return false
}

// Item is a single entry inside a section.
type Item struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Type      ItemType `json:"type"`
	SectionID int64    `json:"section_id"`
	Order     int      `json:"order"`
}

// Section is an ordered group of items.
type Section struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Order     int    `json:"order"`
	Collapsed bool   `json:"collapsed"`
	Items     []Item `json:"items"`
}

// Outline is the full two-level hierarchy for one course.
// The mutation controller is its only writer; everything else reads copies.
type Outline struct {
	Sections []Section `json:"sections"`
}

// OrderedID is the wire shape the persistence service accepts for reorders.
type OrderedID struct {
	ID    int64 `json:"id"`
	Order int   `json:"order"`
}

// Clone returns a deep copy of the outline.
func (o Outline) Clone() Outline {
	out := Outline{Sections: make([]Section, len(o.Sections))}
	for i, s := range o.Sections {
		cs := s
		cs.Items = make([]Item, len(s.Items))
		copy(cs.Items, s.Items)
		out.Sections[i] = cs
	}
	return out
}

// Section returns the section with the given id, or nil.
func (o *Outline) Section(id int64) *Section {
	for i := range o.Sections {
		if o.Sections[i].ID == id {
			return &o.Sections[i]
		}
	}
	return nil
}

// SectionOrder returns the section ids paired with their positions,
// in display order.
func (o Outline) SectionOrder() []OrderedID {
	ids := make([]OrderedID, len(o.Sections))
	for i, s := range o.Sections {
		ids[i] = OrderedID{ID: s.ID, Order: i}
	}
	return ids
}

// ItemOrder returns the item ids of one section paired with their positions.
// Returns nil when the section does not exist.
func (o Outline) ItemOrder(sectionID int64) []OrderedID {
	sec := o.Section(sectionID)
	if sec == nil {
		return nil
	}
	ids := make([]OrderedID, len(sec.Items))
	for i, it := range sec.Items {
		ids[i] = OrderedID{ID: it.ID, Order: i}
	}
	return ids
}
