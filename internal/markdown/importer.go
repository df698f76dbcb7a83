package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sitekit/go-admin/internal/editor"
	"github.com/sitekit/go-admin/internal/logging"
	admintemplates "github.com/sitekit/go-admin/internal/templates"
	"github.com/sitekit/go-admin/pkg/interfaces"
	"github.com/sitekit/go-admin/templates"
)

var (
	ErrEditorRequired   = errors.New("markdown importer: editor service is required")
	ErrRegistryRequired = errors.New("markdown importer: template registry is required")
	ErrSlugMissing      = errors.New("markdown importer: frontmatter slug is required")
	ErrNoBodyField      = errors.New("markdown importer: template declares no rich text field for the body")
)

const defaultTemplate = "basic"

// ImportOptions controls import behaviour.
type ImportOptions struct {
	// DryRun previews decisions without persisting pages.
	DryRun bool
	// Pattern is the glob applied when walking a directory. Defaults to *.md.
	Pattern string
}

// Result summarizes one import run.
type Result struct {
	Created int
	Updated int
	Skipped int
	Errors  []error
}

// Importer converts markdown files into pages through the editor service, so
// imported documents pass the same validation and sanitization as interactive
// edits.
type Importer struct {
	editor   editor.Service
	registry *admintemplates.Registry
	parser   *Parser
	logger   interfaces.Logger
}

// ImporterConfig encapsulates importer dependencies.
type ImporterConfig struct {
	Editor   editor.Service
	Registry *admintemplates.Registry
	Logger   interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) (*Importer, error) {
	if cfg.Editor == nil {
		return nil, ErrEditorRequired
	}
	if cfg.Registry == nil {
		return nil, ErrRegistryRequired
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		editor:   cfg.Editor,
		registry: cfg.Registry,
		parser:   NewParser(),
		logger:   logger,
	}, nil
}

// ImportFS walks the filesystem for markdown files matching the pattern and
// imports each one. Individual file failures accumulate; the walk continues.
func (i *Importer) ImportFS(ctx context.Context, fsys fs.FS, opts ImportOptions) (*Result, error) {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = "*.md"
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		matched, matchErr := filepath.Match(pattern, filepath.Base(path))
		if matchErr != nil {
			return matchErr
		}
		if matched {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("markdown importer: walk: %w", err)
	}
	sort.Strings(paths)

	result := &Result{}
	for _, path := range paths {
		source, readErr := fs.ReadFile(fsys, path)
		if readErr != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", path, readErr))
			continue
		}
		if err := i.ImportDocument(ctx, source, opts, result); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", path, err))
		}
	}
	return result, nil
}

// ImportDocument imports a single markdown source: frontmatter supplies the
// slug, title, template, and field overrides; the body converts to HTML and
// lands in the template's first rich text field.
func (i *Importer) ImportDocument(ctx context.Context, source []byte, opts ImportOptions, result *Result) error {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return err
	}
	if meta.Slug == "" {
		return ErrSlugMissing
	}

	templateID := meta.Template
	if templateID == "" {
		templateID = defaultTemplate
	}
	desc, err := i.registry.Get(templateID)
	if err != nil {
		return err
	}
	bodyField, ok := richBodyField(desc)
	if !ok {
		return ErrNoBodyField
	}

	html, err := i.parser.ToHTML(body)
	if err != nil {
		return err
	}

	logger := logging.WithFields(i.logger, map[string]any{"slug": meta.Slug, "template": templateID})
	if opts.DryRun {
		logger.Info("dry run, skipping write")
		result.Skipped++
		return nil
	}

	sess := i.editor.NewSession()
	created := false
	_, err = i.editor.OpenEditor(ctx, sess, meta.Slug)
	if errors.Is(err, editor.ErrPageNotFound) {
		_, err = i.editor.CreatePage(ctx, sess, editor.CreatePageRequest{
			Slug:       meta.Slug,
			Title:      pageTitle(meta),
			TemplateID: templateID,
		})
		created = true
	}
	if err != nil {
		return err
	}

	if err := i.editor.UpdateField(sess, bodyField.Name, html); err != nil {
		return err
	}
	for name, value := range meta.Fields {
		if err := i.editor.UpdateField(sess, name, value); err != nil {
			logger.Warn("frontmatter field skipped", "field", name, "error", err)
		}
	}
	if err := applyWellKnownFields(i.editor, sess, desc, meta); err != nil {
		return err
	}
	if !created {
		if err := i.editor.SetTitle(sess, pageTitle(meta)); err != nil {
			return err
		}
	}

	if _, err := i.editor.Save(ctx, sess); err != nil {
		return err
	}
	if created {
		result.Created++
		logger.Info("page created from markdown")
	} else {
		result.Updated++
		logger.Info("page updated from markdown")
	}
	return nil
}

// richBodyField selects the first editor-enabled, non-heading textarea, then
// falls back to any textarea.
func richBodyField(desc *templates.Descriptor) (templates.FieldDescriptor, bool) {
	for _, field := range desc.Fields {
		if field.Type == templates.FieldTextarea && field.Editor && !field.Heading {
			return field, true
		}
	}
	for _, field := range desc.Fields {
		if field.Type == templates.FieldTextarea && !field.Heading {
			return field, true
		}
	}
	return templates.FieldDescriptor{}, false
}

func applyWellKnownFields(svc editor.Service, sess *editor.Session, desc *templates.Descriptor, meta FrontMatter) error {
	if meta.Date != "" {
		if field, ok := desc.Field("date"); ok && field.Type == templates.FieldDate {
			if err := svc.UpdateField(sess, "date", meta.Date); err != nil {
				return err
			}
		}
	}
	if len(meta.Tags) > 0 {
		if field, ok := desc.Field("tags"); ok && field.Type == templates.FieldTags {
			if err := svc.UpdateField(sess, "tags", joinTags(meta.Tags)); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

func pageTitle(meta FrontMatter) string {
	if meta.Title != "" {
		return meta.Title
	}
	return meta.Slug
}
