package templates

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/sitekit/go-admin/templates"
)

func TestBuiltinRegistryLoadsShippedLayouts(t *testing.T) {
	r := NewBuiltinRegistry()

	for _, id := range []string{"basic", "gallery", "landing", "portfolio", "contact", "blog", templates.MainContentID} {
		desc, err := r.Get(id)
		if err != nil {
			t.Fatalf("expected builtin %q, got %v", id, err)
		}
		if desc.UUID == uuid.Nil {
			t.Fatalf("expected builtin %q to carry a deterministic uuid", id)
		}
		if len(desc.Fields) == 0 {
			t.Fatalf("expected builtin %q to declare fields", id)
		}
	}

	if got := len(r.List()); got != 7 {
		t.Fatalf("expected 7 builtin templates, got %d", got)
	}
}

func TestRegistryAssignsDeterministicUUID(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	desc := Descriptor{
		ID:   "custom",
		Name: "Custom",
		Fields: []FieldDescriptor{
			{Name: "title", Type: templates.FieldText},
		},
	}
	if err := a.Register(desc); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := b.Register(desc); err != nil {
		t.Fatalf("register: %v", err)
	}

	first, _ := a.Get("custom")
	second, _ := b.Get("custom")
	if first.UUID != second.UUID {
		t.Fatalf("expected identical uuids, got %s and %s", first.UUID, second.UUID)
	}
}

func TestRegistryRejectsDuplicateTemplate(t *testing.T) {
	r := NewRegistry()
	desc := Descriptor{
		ID:     "once",
		Fields: []FieldDescriptor{{Name: "body", Type: templates.FieldTextarea}},
	}
	if err := r.Register(desc); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(desc); !errors.Is(err, ErrTemplateExists) {
		t.Fatalf("expected ErrTemplateExists, got %v", err)
	}
}

func TestRegistryValidatesFieldDefinitions(t *testing.T) {
	cases := []struct {
		name   string
		fields []FieldDescriptor
		want   error
	}{
		{
			name: "duplicate field names",
			fields: []FieldDescriptor{
				{Name: "body", Type: templates.FieldTextarea},
				{Name: "body", Type: templates.FieldText},
			},
			want: ErrFieldNameDuplicate,
		},
		{
			name:   "unknown field type",
			fields: []FieldDescriptor{{Name: "x", Type: templates.FieldType("video")}},
			want:   ErrFieldTypeInvalid,
		},
		{
			name:   "editor on non-textarea",
			fields: []FieldDescriptor{{Name: "x", Type: templates.FieldText, Editor: true}},
			want:   ErrEditorNotTextarea,
		},
		{
			name:   "repeater without subfields",
			fields: []FieldDescriptor{{Name: "items", Type: templates.FieldRepeater}},
			want:   ErrRepeaterNoFields,
		},
		{
			name: "nested repeater",
			fields: []FieldDescriptor{{Name: "items", Type: templates.FieldRepeater, Subfields: []FieldDescriptor{
				{Name: "inner", Type: templates.FieldRepeater, Subfields: []FieldDescriptor{
					{Name: "deep", Type: templates.FieldText},
				}},
			}}},
			want: ErrRepeaterTooDeep,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry()
			err := r.Register(Descriptor{ID: "bad", Fields: tc.fields})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRegistryUnknownTemplate(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get("missing"); !errors.Is(err, ErrTemplateUnknown) {
		t.Fatalf("expected ErrTemplateUnknown, got %v", err)
	}
	if _, err := r.Schema("missing"); !errors.Is(err, ErrTemplateUnknown) {
		t.Fatalf("expected ErrTemplateUnknown, got %v", err)
	}
}
