package templates

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/sitekit/go-admin/internal/identity"
	"github.com/sitekit/go-admin/templates"
)

type (
	Descriptor      = templates.Descriptor
	FieldDescriptor = templates.FieldDescriptor
	FieldType       = templates.FieldType
)

var (
	ErrTemplateUnknown    = errors.New("templates: template not found")
	ErrTemplateIDRequired = errors.New("templates: template id required")
	ErrTemplateExists     = errors.New("templates: template already registered")
	ErrFieldNameRequired  = errors.New("templates: field name required")
	ErrFieldNameDuplicate = errors.New("templates: duplicate field name")
	ErrFieldTypeInvalid   = errors.New("templates: unsupported field type")
	ErrEditorNotTextarea  = errors.New("templates: editor flag requires a textarea field")
	ErrRepeaterTooDeep    = errors.New("templates: repeater subfields may not nest repeaters")
	ErrRepeaterNoFields   = errors.New("templates: repeater requires at least one subfield")
)

// Registry is the static template table. It is populated at construction and
// immutable afterwards; every component resolving a template id consults it.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Descriptor
	order   []string
	schemas map[string]*jsonschema.Schema
}

// NewRegistry constructs an empty registry. Most callers want
// NewBuiltinRegistry instead.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Descriptor),
		schemas: make(map[string]*jsonschema.Schema),
	}
}

// NewBuiltinRegistry returns a registry preloaded with the shipped layouts.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, desc := range builtinDescriptors() {
		if err := r.Register(desc); err != nil {
			// Builtins are validated by tests; a failure here is a bug.
			panic(fmt.Sprintf("templates: builtin %q: %v", desc.ID, err))
		}
	}
	return r
}

// Register validates and records a template descriptor. Field names must be
// unique within the template, editor flags are restricted to textarea fields,
// and repeaters nest exactly one level.
func (r *Registry) Register(desc Descriptor) error {
	id := strings.TrimSpace(desc.ID)
	if id == "" {
		return ErrTemplateIDRequired
	}
	desc.ID = id
	if desc.UUID == uuid.Nil {
		desc.UUID = identity.TemplateUUID(id)
	}

	if err := validateFields(desc.Fields, false); err != nil {
		return fmt.Errorf("template %q: %w", id, err)
	}

	schema, err := compileDescriptorSchema(&desc)
	if err != nil {
		return fmt.Errorf("template %q: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; ok {
		return ErrTemplateExists
	}
	copied := desc
	r.entries[id] = &copied
	r.order = append(r.order, id)
	r.schemas[id] = schema
	return nil
}

// Get resolves a template descriptor by id.
func (r *Registry) Get(id string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, ok := r.entries[strings.TrimSpace(id)]
	if !ok {
		return nil, ErrTemplateUnknown
	}
	return desc, nil
}

// List returns descriptors in registration order.
func (r *Registry) List() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

// Schema returns the compiled JSON schema describing the data object shape
// for a template.
func (r *Registry) Schema(id string) (*jsonschema.Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, ok := r.schemas[strings.TrimSpace(id)]
	if !ok {
		return nil, ErrTemplateUnknown
	}
	return schema, nil
}

func validateFields(fields []FieldDescriptor, nested bool) error {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return ErrFieldNameRequired
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s", ErrFieldNameDuplicate, name)
		}
		seen[name] = struct{}{}

		if !field.Type.Valid() {
			return fmt.Errorf("%w: %s", ErrFieldTypeInvalid, field.Type)
		}
		if field.Editor && field.Type != templates.FieldTextarea {
			return fmt.Errorf("%w: %s", ErrEditorNotTextarea, name)
		}
		if field.Type == templates.FieldRepeater {
			if nested {
				return fmt.Errorf("%w: %s", ErrRepeaterTooDeep, name)
			}
			if len(field.Subfields) == 0 {
				return fmt.Errorf("%w: %s", ErrRepeaterNoFields, name)
			}
			if err := validateFields(field.Subfields, true); err != nil {
				return err
			}
		}
	}
	return nil
}
