package schema

import (
	"fmt"

	"github.com/sitekit/go-admin/internal/fields"
	"github.com/sitekit/go-admin/templates"
)

// NoteKind classifies one migration decision.
type NoteKind string

const (
	NoteCarried     NoteKind = "carried"
	NoteTypeChanged NoteKind = "type_changed"
	NoteDropped     NoteKind = "dropped"
	NoteInitialized NoteKind = "initialized"
)

// MigrationNote records what happened to one field while re-keying a document
// from one template to another. Type mismatches are an explicit, logged
// decision here, never a silent cast.
type Note struct {
	Field   string
	Kind    NoteKind
	OldType templates.FieldType
	NewType templates.FieldType
}

func (n Note) String() string {
	switch n.Kind {
	case NoteTypeChanged:
		return fmt.Sprintf("%s: type changed %s -> %s, value discarded", n.Field, n.OldType, n.NewType)
	case NoteDropped:
		return fmt.Sprintf("%s: not present in target template, value dropped", n.Field)
	case NoteInitialized:
		return fmt.Sprintf("%s: new field, initialized empty", n.Field)
	default:
		return fmt.Sprintf("%s: carried over", n.Field)
	}
}

// MigrateData re-keys a data object for a template change. Values carry over
// when the field name AND type exist in both templates; a name collision with
// a different type discards the value with a type_changed note; every other
// target field starts from its type's empty value.
func MigrateData(oldDesc, newDesc *templates.Descriptor, data map[string]any) (map[string]any, []Note) {
	notes := make([]Note, 0, len(newDesc.Fields))
	out := make(map[string]any, len(newDesc.Fields))

	for _, field := range newDesc.Fields {
		oldField, existed := oldDesc.Field(field.Name)
		switch {
		case existed && oldField.Type == field.Type:
			out[field.Name] = fields.Normalize(field, data[field.Name])
			notes = append(notes, Note{Field: field.Name, Kind: NoteCarried, OldType: oldField.Type, NewType: field.Type})
		case existed:
			out[field.Name] = fields.Empty(field.Type)
			notes = append(notes, Note{Field: field.Name, Kind: NoteTypeChanged, OldType: oldField.Type, NewType: field.Type})
		default:
			out[field.Name] = fields.Empty(field.Type)
			notes = append(notes, Note{Field: field.Name, Kind: NoteInitialized, NewType: field.Type})
		}
	}

	for _, field := range oldDesc.Fields {
		if _, keeps := newDesc.Field(field.Name); !keeps {
			notes = append(notes, Note{Field: field.Name, Kind: NoteDropped, OldType: field.Type})
		}
	}

	return out, notes
}
