package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Parser converts markdown bodies into HTML. The instance is stateless so a
// single parser can be shared across imports without locking.
type Parser struct {
	engine goldmark.Markdown
}

// NewParser constructs a parser with GFM extensions enabled.
func NewParser() *Parser {
	return &Parser{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// ToHTML renders a markdown body into HTML.
func (p *Parser) ToHTML(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := p.engine.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("markdown parse: %w", err)
	}
	return buf.String(), nil
}
