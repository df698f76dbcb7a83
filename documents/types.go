package documents

import (
	"context"
	"fmt"
	"time"
)

// Collections and keys used by the admin core. The layout mirrors the hosted
// store paths the marketing site reads from.
const (
	ContentCollection  = "content"
	PagesCollection    = "pages"
	SettingsCollection = "settings"

	DraftKey     = "draft"
	MainKey      = "main"
	WordCloudKey = "wordCloud"
	GlobalKey    = "global"
)

// Document is one stored record: a free-form data object plus server-assigned
// timestamps. Data shape is owned by the caller (template schema for pages).
type Document struct {
	Collection string
	Key        string
	Data       map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SetOptions controls write behaviour.
type SetOptions struct {
	// Merge performs a shallow merge of top-level keys into the existing
	// document instead of a full overwrite.
	Merge bool
}

// Store is the narrow contract against the hosted document database. All
// operations are one-shot request/response; the store assigns created/updated
// timestamps on write.
type Store interface {
	Get(ctx context.Context, collection, key string) (*Document, error)
	Set(ctx context.Context, collection, key string, data map[string]any, opts SetOptions) error
	Delete(ctx context.Context, collection, key string) error
}

// NotFoundError reports a missing document.
type NotFoundError struct {
	Collection string
	Key        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document %s/%s not found", e.Collection, e.Key)
}
