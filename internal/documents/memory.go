package documents

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sitekit/go-admin/documents"
)

// MemoryStore is an in-memory document store for scaffolding/tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*documents.Document
	now  func() time.Time
}

// MemoryStoreOption configures the memory store.
type MemoryStoreOption func(*MemoryStore)

// WithClock overrides the clock used to stamp writes.
func WithClock(clock func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewMemoryStore constructs the store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		docs: make(map[string]*documents.Document),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves a document by collection and key.
func (s *MemoryStore) Get(_ context.Context, collection, key string) (*documents.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[docKey(collection, key)]
	if !ok {
		return nil, &documents.NotFoundError{Collection: collection, Key: key}
	}
	return cloneDocument(doc), nil
}

// Set writes a document, stamping created/updated timestamps. A merge write
// folds top-level keys into the existing data object; otherwise the data
// object is replaced wholesale.
func (s *MemoryStore) Set(_ context.Context, collection, key string, data map[string]any, opts documents.SetOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id := docKey(collection, key)
	existing, ok := s.docs[id]
	if !ok {
		s.docs[id] = &documents.Document{
			Collection: collection,
			Key:        key,
			Data:       cloneData(data),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return nil
	}

	if opts.Merge {
		merged := cloneData(existing.Data)
		for k, v := range cloneData(data) {
			merged[k] = v
		}
		existing.Data = merged
	} else {
		existing.Data = cloneData(data)
	}
	existing.UpdatedAt = now
	return nil
}

// Delete removes a document. Deleting a missing document reports not found.
func (s *MemoryStore) Delete(_ context.Context, collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := docKey(collection, key)
	if _, ok := s.docs[id]; !ok {
		return &documents.NotFoundError{Collection: collection, Key: key}
	}
	delete(s.docs, id)
	return nil
}

func docKey(collection, key string) string {
	return strings.TrimSpace(collection) + "/" + strings.TrimSpace(key)
}

func cloneDocument(doc *documents.Document) *documents.Document {
	if doc == nil {
		return nil
	}
	copied := *doc
	copied.Data = cloneData(doc.Data)
	return &copied
}

func cloneData(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	copied := make(map[string]any, len(data))
	for k, v := range data {
		copied[k] = cloneValue(v)
	}
	return copied
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return cloneData(v)
	case []any:
		copied := make([]any, len(v))
		for i, item := range v {
			copied[i] = cloneValue(item)
		}
		return copied
	default:
		return v
	}
}
