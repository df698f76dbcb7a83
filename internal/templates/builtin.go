package templates

import "github.com/sitekit/go-admin/templates"

// builtinDescriptors returns the shipped layout table. Order matters: the
// admin template picker lists templates in this order.
func builtinDescriptors() []Descriptor {
	return []Descriptor{
		{
			ID:          "basic",
			Name:        "Basic Page",
			Description: "A simple page with a heading and one rich text body.",
			Fields: []FieldDescriptor{
				{Name: "header", Type: templates.FieldTextarea, Label: "Header", Required: true, Editor: true, Heading: true},
				{Name: "content", Type: templates.FieldTextarea, Label: "Content", Editor: true},
				{Name: "image", Type: templates.FieldImage, Label: "Side Image"},
			},
		},
		{
			ID:          "gallery",
			Name:        "Gallery Page",
			Description: "An introduction followed by a captioned image gallery with lightbox.",
			Fields: []FieldDescriptor{
				{Name: "header", Type: templates.FieldTextarea, Label: "Header", Required: true, Editor: true, Heading: true},
				{Name: "intro", Type: templates.FieldTextarea, Label: "Introduction", Editor: true},
				{Name: "images", Type: templates.FieldGallery, Label: "Gallery Images"},
			},
		},
		{
			ID:          "landing",
			Name:        "Landing Page",
			Description: "Hero section, feature list, and a call to action.",
			Fields: []FieldDescriptor{
				{Name: "hero_title", Type: templates.FieldText, Label: "Hero Title", Required: true},
				{Name: "hero_subtitle", Type: templates.FieldText, Label: "Hero Subtitle"},
				{Name: "hero_image", Type: templates.FieldImage, Label: "Hero Image"},
				{Name: "features", Type: templates.FieldRepeater, Label: "Features", Subfields: []FieldDescriptor{
					{Name: "title", Type: templates.FieldText, Label: "Title"},
					{Name: "description", Type: templates.FieldTextarea, Label: "Description"},
					{Name: "icon", Type: templates.FieldImage, Label: "Icon"},
				}},
				{Name: "cta_text", Type: templates.FieldText, Label: "Call To Action"},
				{Name: "cta_link", Type: templates.FieldText, Label: "Call To Action Link"},
			},
		},
		{
			ID:          "portfolio",
			Name:        "Portfolio Page",
			Description: "A grid of projects with thumbnails and summaries.",
			Fields: []FieldDescriptor{
				{Name: "header", Type: templates.FieldTextarea, Label: "Header", Editor: true, Heading: true},
				{Name: "projects", Type: templates.FieldRepeater, Label: "Projects", Subfields: []FieldDescriptor{
					{Name: "title", Type: templates.FieldText, Label: "Project Title"},
					{Name: "summary", Type: templates.FieldTextarea, Label: "Summary"},
					{Name: "thumbnail", Type: templates.FieldImage, Label: "Thumbnail"},
					{Name: "link", Type: templates.FieldText, Label: "Project Link"},
				}},
			},
		},
		{
			ID:          "contact",
			Name:        "Contact Page",
			Description: "Contact details with an optional enquiry form.",
			Fields: []FieldDescriptor{
				{Name: "header", Type: templates.FieldTextarea, Label: "Header", Editor: true, Heading: true},
				{Name: "intro", Type: templates.FieldTextarea, Label: "Introduction", Editor: true},
				{Name: "email", Type: templates.FieldText, Label: "Email Address"},
				{Name: "phone", Type: templates.FieldText, Label: "Phone Number"},
				{Name: "address", Type: templates.FieldTextarea, Label: "Address"},
				{Name: "show_form", Type: templates.FieldCheckbox, Label: "Show Enquiry Form"},
			},
		},
		{
			ID:          "blog",
			Name:        "Blog Post",
			Description: "A dated article with tags, excerpt, and cover image.",
			Fields: []FieldDescriptor{
				{Name: "title", Type: templates.FieldText, Label: "Title", Required: true},
				{Name: "date", Type: templates.FieldDate, Label: "Publish Date"},
				{Name: "cover", Type: templates.FieldImage, Label: "Cover Image"},
				{Name: "excerpt", Type: templates.FieldTextarea, Label: "Excerpt"},
				{Name: "body", Type: templates.FieldTextarea, Label: "Body", Editor: true},
				{Name: "tags", Type: templates.FieldTags, Label: "Tags"},
			},
		},
		{
			ID:          templates.MainContentID,
			Name:        "Main Content",
			Description: "The homepage singleton. Template binding is fixed.",
			Fields: []FieldDescriptor{
				{Name: "headline", Type: templates.FieldTextarea, Label: "Headline", Required: true, Editor: true, Heading: true},
				{Name: "intro", Type: templates.FieldTextarea, Label: "Introduction", Editor: true},
				{Name: "hero_image", Type: templates.FieldImage, Label: "Hero Image"},
				{Name: "sections", Type: templates.FieldRepeater, Label: "Sections", Subfields: []FieldDescriptor{
					{Name: "heading", Type: templates.FieldText, Label: "Heading"},
					{Name: "body", Type: templates.FieldTextarea, Label: "Body"},
					{Name: "image", Type: templates.FieldImage, Label: "Image"},
				}},
				{Name: "highlights", Type: templates.FieldGallery, Label: "Highlights"},
			},
		},
	}
}
