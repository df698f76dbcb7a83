package fields

import "github.com/microcosm-cc/bluemonday"

// Rich text arrives as HTML from the editing widget. Body fields keep the
// full UGC surface (lists, links, images, blockquotes, code); heading fields
// are limited to inline formatting, mirroring the reduced toolbar they get
// in the admin UI.
var (
	bodyPolicy    = bluemonday.UGCPolicy()
	headingPolicy = newHeadingPolicy()
)

func newHeadingPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "span", "p", "br",
		"h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("style").OnElements("span", "p", "h1", "h2", "h3", "h4", "h5", "h6")
	return p
}

// SanitizeRichText scrubs editor HTML before it is persisted or previewed.
func SanitizeRichText(html string, heading bool) string {
	if heading {
		return headingPolicy.Sanitize(html)
	}
	return bodyPolicy.Sanitize(html)
}
