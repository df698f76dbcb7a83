package preview

import (
	"fmt"
	htmltemplate "html/template"
	"strings"

	"github.com/sitekit/go-admin/internal/fields"
	admintemplates "github.com/sitekit/go-admin/internal/templates"
	"github.com/sitekit/go-admin/templates"
)

// Renderer produces a read-only HTML approximation of a page, one layout per
// template id. Render is pure: it never touches the store and is safe to call
// redundantly from the debounced refresh.
type Renderer struct {
	registry *admintemplates.Registry
	pages    *htmltemplate.Template
}

// New constructs a renderer bound to a template registry.
func New(registry *admintemplates.Registry) (*Renderer, error) {
	root := htmltemplate.New("preview").Funcs(htmltemplate.FuncMap{
		"placeholder": placeholder,
	})
	for id, body := range layouts {
		if _, err := root.New(id).Parse(body); err != nil {
			return nil, fmt.Errorf("preview: parse layout %q: %v", id, err)
		}
	}
	return &Renderer{registry: registry, pages: root}, nil
}

// Render builds the preview HTML for a document. Unknown template ids report
// the registry error; missing field values fall back to placeholders so a
// half-filled page never renders broken markup.
func (r *Renderer) Render(templateID string, data map[string]any) (string, error) {
	desc, err := r.registry.Get(templateID)
	if err != nil {
		return "", err
	}
	layout := r.pages.Lookup(desc.ID)
	if layout == nil {
		layout = r.pages.Lookup(defaultLayout)
	}

	var sb strings.Builder
	if err := layout.Execute(&sb, buildContext(desc, data)); err != nil {
		return "", fmt.Errorf("preview: render %q: %w", desc.ID, err)
	}
	return sb.String(), nil
}

// buildContext normalizes the document and converts rich text fields into
// trusted HTML after sanitization. Everything else stays typed and escapes
// through html/template as usual.
func buildContext(desc *templates.Descriptor, data map[string]any) map[string]any {
	ctx := make(map[string]any, len(desc.Fields)+1)
	ctx["Template"] = desc.Name
	for _, field := range desc.Fields {
		value := fields.Normalize(field, data[field.Name])
		if field.Type == templates.FieldTextarea && field.Editor {
			clean := fields.SanitizeRichText(value.(string), field.Heading)
			ctx[contextKey(field.Name)] = htmltemplate.HTML(clean)
			continue
		}
		if field.Type == templates.FieldRepeater {
			ctx[contextKey(field.Name)] = repeaterContext(field, value.([]map[string]any))
			continue
		}
		ctx[contextKey(field.Name)] = value
	}
	return ctx
}

func repeaterContext(field templates.FieldDescriptor, items []map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		entry := make(map[string]any, len(field.Subfields))
		for _, sub := range field.Subfields {
			entry[contextKey(sub.Name)] = item[sub.Name]
		}
		out = append(out, entry)
	}
	return out
}

// contextKey maps snake_case field names onto exported-looking template keys
// (hero_title -> HeroTitle) so layouts read naturally.
func contextKey(name string) string {
	parts := strings.Split(name, "_")
	var sb strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}
	return sb.String()
}

func placeholder(label string) string {
	return fmt.Sprintf("No %s defined", label)
}
