package wordcloud

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/sitekit/go-admin/documents"
	"github.com/sitekit/go-admin/internal/logging"
	"github.com/sitekit/go-admin/pkg/interfaces"
)

var (
	ErrStoreRequired = errors.New("wordcloud: document store required")
	ErrIndexRange    = errors.New("wordcloud: index out of range")
)

// Entry is one weighted tag in the cloud. Order is display order; duplicate
// text is allowed.
type Entry struct {
	Text   string `json:"text"`
	Weight int    `json:"weight"`
	Link   string `json:"link"`
}

// Validate enforces the 1..9 weight range and a non-empty label.
func (e Entry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Text, validation.Required),
		validation.Field(&e.Weight, validation.Required, validation.Min(1), validation.Max(9)),
	)
}

// Service manages the singleton word-cloud document.
type Service interface {
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
	Add(ctx context.Context, entry Entry) ([]Entry, error)
	UpdateAt(ctx context.Context, index int, entry Entry) ([]Entry, error)
	RemoveAt(ctx context.Context, index int) ([]Entry, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	store  documents.Store
	logger interfaces.Logger
}

// NewService constructs a word-cloud service over the document store.
func NewService(store documents.Store, opts ...ServiceOption) Service {
	if store == nil {
		panic(ErrStoreRequired)
	}
	s := &service{store: store, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the stored entry list. A missing document is an empty cloud.
func (s *service) Load(ctx context.Context) ([]Entry, error) {
	doc, err := s.store.Get(ctx, documents.ContentCollection, documents.WordCloudKey)
	if err != nil {
		var notFound *documents.NotFoundError
		if errors.As(err, &notFound) {
			return []Entry{}, nil
		}
		return nil, err
	}
	return decodeEntries(doc.Data["words"]), nil
}

// Save overwrites the full ordered list after validating every entry.
func (s *service) Save(ctx context.Context, entries []Entry) error {
	for i, entry := range entries {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("wordcloud: entry %d: %w", i, err)
		}
	}
	words := make([]any, len(entries))
	for i, entry := range entries {
		words[i] = map[string]any{
			"text":   entry.Text,
			"weight": entry.Weight,
			"link":   entry.Link,
		}
	}
	err := s.store.Set(ctx, documents.ContentCollection, documents.WordCloudKey,
		map[string]any{"words": words}, documents.SetOptions{})
	if err != nil {
		s.logger.Error("wordcloud save failed", "error", err)
		return err
	}
	s.logger.Debug("wordcloud saved", "entries", len(entries))
	return nil
}

// Add appends an entry and persists the new list.
func (s *service) Add(ctx context.Context, entry Entry) ([]Entry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	entries, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	entries = append(entries, entry)
	if err := s.Save(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateAt replaces the entry at index, keeping its position.
func (s *service) UpdateAt(ctx context.Context, index int, entry Entry) ([]Entry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	entries, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(entries) {
		return nil, ErrIndexRange
	}
	entries[index] = entry
	if err := s.Save(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// RemoveAt splices out the entry at index; later entries shift down by one.
func (s *service) RemoveAt(ctx context.Context, index int) ([]Entry, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(entries) {
		return nil, ErrIndexRange
	}
	entries = append(entries[:index], entries[index+1:]...)
	if err := s.Save(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func decodeEntries(raw any) []Entry {
	items, ok := raw.([]any)
	if !ok {
		return []Entry{}
	}
	out := make([]Entry, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Entry{
			Text:   stringValue(entry["text"]),
			Weight: intValue(entry["weight"]),
			Link:   stringValue(entry["link"]),
		})
	}
	return out
}

func stringValue(raw any) string {
	if s, ok := raw.(string); ok {
		return s
	}
	return ""
}

func intValue(raw any) int {
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
