package admin

import (
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/sitekit/go-admin/documents"
	"github.com/sitekit/go-admin/internal/logging/gologger"
	"github.com/sitekit/go-admin/pkg/interfaces"
)

var (
	ErrStoreConflict          = errors.New("admin: configure either Store or DB, not both")
	ErrMarkdownFeatureMissing = errors.New("admin: markdown importer requires Features.Markdown")
)

// LoggingConfig configures the built-in go-logger provider.
type LoggingConfig = gologger.Config

// Features toggles optional module surfaces.
type Features struct {
	// Markdown enables the markdown importer and its command handlers.
	Markdown bool
}

// MarkdownConfig configures the markdown importer defaults.
type MarkdownConfig struct {
	// Pattern filters imported files by base name. Defaults to *.md.
	Pattern string
}

// Config assembles the admin module runtime.
type Config struct {
	// Store overrides document persistence. Defaults to the in-memory store.
	Store documents.Store
	// DB builds a bun-backed document store when set. Mutually exclusive with Store.
	DB *bun.DB
	// LoggerProvider overrides the built-in logging provider.
	LoggerProvider interfaces.LoggerProvider
	// Logging configures the built-in provider when LoggerProvider is nil.
	Logging LoggingConfig
	// Features toggles optional surfaces.
	Features Features
	// PreviewDebounce coalesces preview re-renders after field edits.
	// Zero keeps the default; negative renders synchronously.
	PreviewDebounce time.Duration
	// Markdown configures importer defaults when Features.Markdown is set.
	Markdown MarkdownConfig
}

// Validate reports configuration conflicts before any service is built.
func (c Config) Validate() error {
	if c.Store != nil && c.DB != nil {
		return ErrStoreConflict
	}
	return nil
}

// DefaultConfig returns a configuration suitable for embedding: in-memory
// documents, info-level console logging, markdown enabled.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Features: Features{
			Markdown: true,
		},
		Markdown: MarkdownConfig{
			Pattern: "*.md",
		},
	}
}
