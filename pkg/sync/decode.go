package sync

import (
	"encoding/json"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/jfarrand/syllabus/pkg/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// outlinePayload is the wire shape of an outline inside the envelope's data
// field. Order fields are pointers so a missing order is distinguishable from
// a legitimate zero.
// Sections is checked for presence by hand: validator's required would also
// reject a legitimately empty outline.
type outlinePayload struct {
	Sections []sectionPayload `json:"sections" validate:"dive"`
}

type sectionPayload struct {
	ID        int64         `json:"id" validate:"required"`
	Title     string        `json:"title" validate:"required"`
	Order     *int          `json:"order" validate:"required"`
	Collapsed bool          `json:"collapsed"`
	Items     []itemPayload `json:"items" validate:"dive"`
}

type itemPayload struct {
	ID        int64  `json:"id" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=lesson quiz assignment resource"`
	SectionID int64  `json:"section_id"`
	Order     *int   `json:"order" validate:"required"`
}

// DecodeEnvelope reads one envelope from r. A body that is not valid JSON or
// not an object with a boolean success field comes back as an EnvelopeError;
// success=false comes back as a RemoteError carrying the server message.
func DecodeEnvelope(r io.Reader) (Envelope, error) {
	var env Envelope
	dec := json.NewDecoder(r)
	if err := dec.Decode(&env); err != nil {
		return Envelope{}, &EnvelopeError{Reason: "body is not a JSON envelope", Err: err}
	}
	if !env.Success {
		return env, &RemoteError{Message: env.Message}
	}
	return env, nil
}

// DecodeSection validates and converts an envelope data field holding a
// single section.
func DecodeSection(data json.RawMessage) (models.Section, error) {
	if len(data) == 0 {
		return models.Section{}, &EnvelopeError{Reason: "envelope has no data field"}
	}

	var sp sectionPayload
	if err := json.Unmarshal(data, &sp); err != nil {
		return models.Section{}, &EnvelopeError{Reason: "data is not a section", Err: err}
	}
	if err := validate.Struct(sp); err != nil {
		return models.Section{}, &EnvelopeError{Reason: "section schema violation", Err: err}
	}
	return sectionFromPayload(sp), nil
}

// DecodeOutline validates and converts an envelope data field into the
// domain outline. This is the only place remote outline bytes become typed
// values; a shape violation of any kind surfaces as an EnvelopeError.
func DecodeOutline(data json.RawMessage) (models.Outline, error) {
	if len(data) == 0 {
		return models.Outline{}, &EnvelopeError{Reason: "envelope has no data field"}
	}

	var payload outlinePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.Outline{}, &EnvelopeError{Reason: "data is not an outline", Err: err}
	}
	if payload.Sections == nil {
		return models.Outline{}, &EnvelopeError{Reason: "outline has no sections field"}
	}
	if err := validate.Struct(payload); err != nil {
		return models.Outline{}, &EnvelopeError{Reason: "outline schema violation", Err: err}
	}

	o := models.Outline{Sections: make([]models.Section, len(payload.Sections))}
	for i, sp := range payload.Sections {
		o.Sections[i] = sectionFromPayload(sp)
	}
	return o, nil
}

func sectionFromPayload(sp sectionPayload) models.Section {
	sec := models.Section{
		ID:        sp.ID,
		Title:     sp.Title,
		Order:     *sp.Order,
		Collapsed: sp.Collapsed,
		Items:     make([]models.Item, len(sp.Items)),
	}
	for j, ip := range sp.Items {
		sec.Items[j] = models.Item{
			ID:        ip.ID,
			Title:     ip.Title,
			Type:      models.ItemType(ip.Type),
			SectionID: ip.SectionID,
			Order:     *ip.Order,
		}
	}
	return sec
}
