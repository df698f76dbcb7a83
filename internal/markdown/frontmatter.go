package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter carries the page metadata a markdown document declares.
type FrontMatter struct {
	Slug     string         `yaml:"slug"`
	Title    string         `yaml:"title"`
	Template string         `yaml:"template"`
	Date     string         `yaml:"date"`
	Tags     []string       `yaml:"tags"`
	Fields   map[string]any `yaml:"fields"`
}

// ParseFrontMatter extracts the YAML frontmatter block and the markdown body
// from the provided source bytes.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}
