package admin

import (
	"context"
	"time"

	"github.com/sitekit/go-admin/documents"
	internaldocs "github.com/sitekit/go-admin/internal/documents"
	"github.com/sitekit/go-admin/internal/editor"
	"github.com/sitekit/go-admin/internal/logging"
	"github.com/sitekit/go-admin/internal/logging/gologger"
	"github.com/sitekit/go-admin/internal/markdown"
	"github.com/sitekit/go-admin/internal/preview"
	"github.com/sitekit/go-admin/internal/settings"
	admintemplates "github.com/sitekit/go-admin/internal/templates"
	"github.com/sitekit/go-admin/internal/wordcloud"
	"github.com/sitekit/go-admin/pkg/interfaces"
)

// EditorService exports the page editing contract for consumers of the admin package.
type EditorService = editor.Service

// Session exports the editor session handle.
type Session = editor.Session

// Page exports the editor page DTO.
type Page = editor.Page

// CreatePageRequest exports the page creation payload.
type CreatePageRequest = editor.CreatePageRequest

// WordCloudService exports the word cloud contract.
type WordCloudService = wordcloud.Service

// WordCloudEntry exports a single word cloud entry.
type WordCloudEntry = wordcloud.Entry

// SettingsService exports the site settings contract.
type SettingsService = settings.Service

// SiteSettings exports the global settings payload.
type SiteSettings = settings.Settings

// Store exports the document persistence contract.
type Store = documents.Store

// Document exports the stored document DTO.
type Document = documents.Document

// TemplateRegistry exports the template registry.
type TemplateRegistry = admintemplates.Registry

// MarkdownImporter exports the markdown import helper.
type MarkdownImporter = markdown.Importer

// Option overrides module construction.
type Option func(*Module)

// WithClock overrides the clock used for document timestamps.
func WithClock(clock func() time.Time) Option {
	return func(m *Module) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithAuthenticator attaches the host's authenticator so embedders can reach
// it through the module handle.
func WithAuthenticator(auth interfaces.Authenticator) Option {
	return func(m *Module) {
		m.auth = auth
	}
}

// WithUploader attaches the host's media uploader.
func WithUploader(uploader interfaces.Uploader) Option {
	return func(m *Module) {
		m.uploader = uploader
	}
}

// Module represents the top level admin runtime façade.
type Module struct {
	store     documents.Store
	registry  *TemplateRegistry
	renderer  *preview.Renderer
	editor    EditorService
	wordCloud WordCloudService
	settings  SettingsService
	importer  *MarkdownImporter
	provider  interfaces.LoggerProvider
	auth      interfaces.Authenticator
	uploader  interfaces.Uploader
	clock     func() time.Time
}

// New constructs an admin module using the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{clock: time.Now}
	for _, opt := range opts {
		opt(m)
	}

	provider := cfg.LoggerProvider
	if provider == nil {
		built, err := gologger.NewProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		provider = built
	}
	m.provider = provider

	switch {
	case cfg.Store != nil:
		m.store = cfg.Store
	case cfg.DB != nil:
		m.store = internaldocs.NewBunStore(cfg.DB, internaldocs.WithBunClock(m.clock))
	default:
		m.store = internaldocs.NewMemoryStore(internaldocs.WithClock(m.clock))
	}

	m.registry = admintemplates.NewBuiltinRegistry()

	renderer, err := preview.New(m.registry)
	if err != nil {
		return nil, err
	}
	m.renderer = renderer

	editorOpts := []editor.ServiceOption{
		editor.WithClock(m.clock),
		editor.WithLogger(logging.EditorLogger(provider)),
	}
	if cfg.PreviewDebounce > 0 {
		editorOpts = append(editorOpts, editor.WithPreviewDebounce(cfg.PreviewDebounce))
	} else if cfg.PreviewDebounce < 0 {
		editorOpts = append(editorOpts, editor.WithPreviewDebounce(0))
	}
	m.editor = editor.NewService(m.store, m.registry, m.renderer, editorOpts...)

	m.wordCloud = wordcloud.NewService(m.store,
		wordcloud.WithLogger(logging.WordCloudLogger(provider)))
	m.settings = settings.NewService(m.store,
		settings.WithLogger(logging.SettingsLogger(provider)))

	if cfg.Features.Markdown {
		importer, err := markdown.NewImporter(markdown.ImporterConfig{
			Editor:   m.editor,
			Registry: m.registry,
			Logger:   logging.MarkdownLogger(provider),
		})
		if err != nil {
			return nil, err
		}
		m.importer = importer
	}

	return m, nil
}

// InitStore provisions storage for bun-backed modules. It is a no-op for the
// in-memory store and for host-supplied stores, which manage their own schema.
func (m *Module) InitStore(ctx context.Context) error {
	if bunStore, ok := m.store.(*internaldocs.BunStore); ok {
		return bunStore.CreateTables(ctx)
	}
	return nil
}

// Editor returns the configured editor service.
func (m *Module) Editor() EditorService {
	return m.editor
}

// WordCloud returns the configured word cloud service.
func (m *Module) WordCloud() WordCloudService {
	return m.wordCloud
}

// Settings returns the configured settings service.
func (m *Module) Settings() SettingsService {
	return m.settings
}

// Templates returns the template registry.
func (m *Module) Templates() *TemplateRegistry {
	return m.registry
}

// Importer returns the markdown importer, nil unless Features.Markdown is set.
func (m *Module) Importer() *MarkdownImporter {
	return m.importer
}

// Store returns the document store backing all services.
func (m *Module) Store() Store {
	return m.store
}

// LoggerProvider returns the provider services log through.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// Auth returns the host authenticator, nil when not attached.
func (m *Module) Auth() interfaces.Authenticator {
	return m.auth
}

// Uploader returns the host media uploader, nil when not attached.
func (m *Module) Uploader() interfaces.Uploader {
	return m.uploader
}
