package fields

import (
	"strings"

	"github.com/sitekit/go-admin/templates"
)

// Control is one rendered form input: the in-memory stand-in for a DOM
// widget. It records the declared field type so collection dispatches on the
// schema, never on the shape of the current value.
type Control struct {
	Name     string
	Type     templates.FieldType
	Label    string
	Required bool
	Editor   bool
	Heading  bool

	// Value holds the typed value for non-text controls (bool, Image,
	// []GalleryItem, []map[string]any repeater items).
	Value any
	// Text holds the editable string for text-backed controls: plain text,
	// rich HTML, ISO dates, and the comma-joined tags line.
	Text string

	// Subfields carries the nested schema for repeater controls so item
	// sub-forms can be rebuilt after add/remove.
	Subfields []templates.FieldDescriptor
}

// Form is the ordered set of controls for one template-bound document.
type Form struct {
	TemplateID string
	Controls   []*Control
}

// Control returns the named control, or nil when the template has no such field.
func (f *Form) Control(name string) *Control {
	for _, control := range f.Controls {
		if control.Name == name {
			return control
		}
	}
	return nil
}

// Render builds the form model for a document. Controls appear in schema
// order; every value is normalized first so legacy shapes are migrated and
// malformed payloads collapse to empties before the user sees them.
func Render(desc *templates.Descriptor, data map[string]any) *Form {
	form := &Form{TemplateID: desc.ID, Controls: make([]*Control, 0, len(desc.Fields))}
	for _, field := range desc.Fields {
		control := &Control{
			Name:      field.Name,
			Type:      field.Type,
			Label:     field.Label,
			Required:  field.Required,
			Editor:    field.Editor,
			Heading:   field.Heading,
			Subfields: field.Subfields,
		}
		value := Normalize(field, data[field.Name])
		switch field.Type {
		case templates.FieldText, templates.FieldTextarea, templates.FieldDate:
			control.Text = value.(string)
		case templates.FieldTags:
			control.Text = strings.Join(value.([]string), ", ")
		default:
			control.Value = value
		}
		form.Controls = append(form.Controls, control)
	}
	return form
}

// Collect reconstructs the data object from a form. It is the pure inverse of
// Render: dispatch runs on each control's declared type, rich text is
// sanitized, tags are split-trim-filtered, and any control whose value has
// drifted from its declared shape collapses to the type's empty value.
func Collect(desc *templates.Descriptor, form *Form) map[string]any {
	data := make(map[string]any, len(desc.Fields))
	for _, field := range desc.Fields {
		control := form.Control(field.Name)
		if control == nil {
			data[field.Name] = Empty(field.Type)
			continue
		}
		data[field.Name] = collectControl(field, control)
	}
	return data
}

func collectControl(field templates.FieldDescriptor, control *Control) any {
	switch field.Type {
	case templates.FieldText, templates.FieldDate:
		return control.Text
	case templates.FieldTextarea:
		if field.Editor {
			return SanitizeRichText(control.Text, field.Heading)
		}
		return control.Text
	case templates.FieldCheckbox:
		if b, ok := control.Value.(bool); ok {
			return b
		}
		return false
	case templates.FieldImage:
		return normalizeImage(control.Value)
	case templates.FieldGallery:
		return normalizeGallery(control.Value)
	case templates.FieldTags:
		return SplitTags(control.Text)
	case templates.FieldRepeater:
		return normalizeRepeater(field.Subfields, control.Value)
	}
	return Empty(field.Type)
}

// SplitTags parses the comma-separated tags line. Tags containing commas do
// not survive the round trip; the join/split channel is a documented
// limitation of the tags control.
func SplitTags(line string) []string {
	parts := strings.Split(line, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
