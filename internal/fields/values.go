package fields

import (
	"strings"

	"github.com/sitekit/go-admin/templates"
)

// Image is the canonical value of an image field. Legacy documents stored a
// bare URL string; Normalize migrates those to this shape so the next save
// persists the object form.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Alt      string `json:"alt"`
}

// IsZero reports whether the image carries no asset.
func (i Image) IsZero() bool {
	return i.URL == ""
}

// GalleryItem is one ordered entry of a gallery field.
type GalleryItem struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

// Empty returns the type-appropriate zero value for a field kind.
func Empty(t templates.FieldType) any {
	switch t {
	case templates.FieldText, templates.FieldTextarea, templates.FieldDate:
		return ""
	case templates.FieldCheckbox:
		return false
	case templates.FieldImage:
		return Image{}
	case templates.FieldGallery:
		return []GalleryItem{}
	case templates.FieldTags:
		return []string{}
	case templates.FieldRepeater:
		return []map[string]any{}
	}
	return nil
}

// EmptyDocument builds a data object with every field of the template set to
// its empty value, in schema order.
func EmptyDocument(desc *templates.Descriptor) map[string]any {
	data := make(map[string]any, len(desc.Fields))
	for _, field := range desc.Fields {
		data[field.Name] = Empty(field.Type)
	}
	return data
}

// Normalize coerces a stored value into the canonical typed form for its
// field. Malformed payloads never surface as errors; they collapse to the
// type's empty value so one corrupted field cannot block editing the rest of
// the document.
func Normalize(field templates.FieldDescriptor, raw any) any {
	switch field.Type {
	case templates.FieldText, templates.FieldTextarea, templates.FieldDate:
		if s, ok := raw.(string); ok {
			return s
		}
		return ""
	case templates.FieldCheckbox:
		if b, ok := raw.(bool); ok {
			return b
		}
		return false
	case templates.FieldImage:
		return normalizeImage(raw)
	case templates.FieldGallery:
		return normalizeGallery(raw)
	case templates.FieldTags:
		return normalizeTags(raw)
	case templates.FieldRepeater:
		return normalizeRepeater(field.Subfields, raw)
	}
	return nil
}

// NormalizeDocument applies Normalize to every declared field, dropping keys
// the template does not know about.
func NormalizeDocument(desc *templates.Descriptor, data map[string]any) map[string]any {
	out := make(map[string]any, len(desc.Fields))
	for _, field := range desc.Fields {
		out[field.Name] = Normalize(field, data[field.Name])
	}
	return out
}

func normalizeImage(raw any) Image {
	switch v := raw.(type) {
	case Image:
		return v
	case string:
		// Legacy shorthand: a bare URL.
		return Image{URL: v}
	case map[string]any:
		return Image{
			URL:      stringValue(v["url"]),
			PublicID: stringValue(v["public_id"]),
			Alt:      stringValue(v["alt"]),
		}
	}
	return Image{}
}

func normalizeGallery(raw any) []GalleryItem {
	switch v := raw.(type) {
	case []GalleryItem:
		out := make([]GalleryItem, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]GalleryItem, 0, len(v))
		for _, item := range v {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, GalleryItem{
				URL:     stringValue(entry["url"]),
				Alt:     stringValue(entry["alt"]),
				Caption: stringValue(entry["caption"]),
			})
		}
		return out
	}
	return []GalleryItem{}
}

func normalizeTags(raw any) []string {
	switch v := raw.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return []string{}
}

func normalizeRepeater(subfields []templates.FieldDescriptor, raw any) []map[string]any {
	items := anySlice(raw)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		normalized := make(map[string]any, len(subfields))
		for _, sub := range subfields {
			normalized[sub.Name] = Normalize(sub, entry[sub.Name])
		}
		out = append(out, normalized)
	}
	return out
}

// RemoveAt splices out the element at index i, shifting later elements down
// by one. Out-of-range indices return the slice unchanged.
func RemoveAt[T any](items []T, i int) []T {
	if i < 0 || i >= len(items) {
		return items
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func anySlice(raw any) []any {
	switch v := raw.(type) {
	case []any:
		return v
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out
	}
	return nil
}

func stringValue(raw any) string {
	if s, ok := raw.(string); ok {
		return s
	}
	return ""
}
