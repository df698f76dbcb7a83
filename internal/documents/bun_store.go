package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/sitekit/go-admin/documents"
)

// DocumentRecord is the bun model backing the SQL document store. One row per
// document, data serialized as JSON.
type DocumentRecord struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	Collection string         `bun:"collection,pk,notnull" json:"collection"`
	Key        string         `bun:"key,pk,notnull" json:"key"`
	Data       map[string]any `bun:"data,type:jsonb,notnull" json:"data"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// BunStore implements documents.Store over a relational database.
type BunStore struct {
	db  *bun.DB
	now func() time.Time
}

// BunStoreOption configures the store.
type BunStoreOption func(*BunStore)

// WithBunClock overrides the clock used for updated stamps.
func WithBunClock(clock func() time.Time) BunStoreOption {
	return func(s *BunStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewBunStore constructs a document store backed by bun.
func NewBunStore(db *bun.DB, opts ...BunStoreOption) *BunStore {
	s := &BunStore{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTables provisions the documents table. Intended for sqlite bootstrap
// and tests; production deployments run real migrations.
func (s *BunStore) CreateTables(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*DocumentRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("documents: create tables: %w", err)
	}
	return nil
}

func (s *BunStore) Get(ctx context.Context, collection, key string) (*documents.Document, error) {
	record := new(DocumentRecord)
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.collection = ?", collection).
		Where("?TableAlias.key = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, mapStoreError(err, collection, key)
	}
	return &documents.Document{
		Collection: record.Collection,
		Key:        record.Key,
		Data:       cloneData(record.Data),
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}, nil
}

func (s *BunStore) Set(ctx context.Context, collection, key string, data map[string]any, opts documents.SetOptions) error {
	now := s.now()

	payload := cloneData(data)
	if opts.Merge {
		existing, err := s.Get(ctx, collection, key)
		if err == nil {
			merged := cloneData(existing.Data)
			for k, v := range payload {
				merged[k] = v
			}
			payload = merged
		} else {
			var notFound *documents.NotFoundError
			if !errors.As(err, &notFound) {
				return err
			}
		}
	}

	record := &DocumentRecord{
		Collection: collection,
		Key:        key,
		Data:       payload,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (collection, key) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return mapStoreError(err, collection, key)
	}
	return nil
}

func (s *BunStore) Delete(ctx context.Context, collection, key string) error {
	result, err := s.db.NewDelete().
		Model((*DocumentRecord)(nil)).
		Where("?TableAlias.collection = ?", collection).
		Where("?TableAlias.key = ?", key).
		Exec(ctx)
	if err != nil {
		return mapStoreError(err, collection, key)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return &documents.NotFoundError{Collection: collection, Key: key}
	}
	return nil
}

func mapStoreError(err error, collection, key string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &documents.NotFoundError{Collection: collection, Key: key}
	}
	return fmt.Errorf("document store error for %s/%s: %w", collection, key, err)
}

var _ documents.Store = (*BunStore)(nil)
var _ documents.Store = (*MemoryStore)(nil)
