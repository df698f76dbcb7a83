package templates

import "github.com/google/uuid"

// FieldType enumerates the closed set of field kinds a template may declare.
// The set is fixed at compile time; renderer, serializer, and preview all
// switch exhaustively on it so adding a kind forces every consumer to handle it.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldCheckbox FieldType = "checkbox"
	FieldImage    FieldType = "image"
	FieldGallery  FieldType = "gallery"
	FieldDate     FieldType = "date"
	FieldTags     FieldType = "tags"
	FieldRepeater FieldType = "repeater"
)

// Valid reports whether the field type belongs to the supported set.
func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldTextarea, FieldCheckbox, FieldImage,
		FieldGallery, FieldDate, FieldTags, FieldRepeater:
		return true
	}
	return false
}

// FieldDescriptor declares one typed field within a template schema.
type FieldDescriptor struct {
	// Name is the storage key inside a page document. Unique per template.
	Name string `json:"name"`
	// Type selects the widget and value shape.
	Type FieldType `json:"type"`
	// Label is the display string shown next to the control.
	Label string `json:"label"`
	// Required marks the field for the pre-save presence check.
	Required bool `json:"required,omitempty"`
	// Editor selects rich-text editing for textarea fields. Heading toggles
	// the reduced inline-only sanitizer policy for heading-like rich fields.
	Editor  bool `json:"editor,omitempty"`
	Heading bool `json:"heading,omitempty"`
	// Subfields carries the nested schema for repeater fields. One level
	// deep only; a subfield may not itself be a repeater.
	Subfields []FieldDescriptor `json:"subfields,omitempty"`
}

// Descriptor describes one page layout: identity, display metadata, and the
// ordered field schema. Field order is registration order and determines form
// layout; it must never be sorted.
type Descriptor struct {
	ID          string            `json:"id"`
	UUID        uuid.UUID         `json:"uuid"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Fields      []FieldDescriptor `json:"fields"`
}

// Field returns the descriptor for the named field, or false when the
// template does not declare it.
func (d *Descriptor) Field(name string) (FieldDescriptor, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDescriptor{}, false
}

// MainContentID is the reserved template bound to the homepage singleton.
// Its binding is fixed: the main content document can never change template.
const MainContentID = "main-content"
