package editor

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sitekit/go-admin/internal/fields"
)

// Subject identifies what a session is currently editing.
type Subject int

const (
	SubjectNone Subject = iota
	SubjectPage
	SubjectMainContent
)

// Page is the editor's view of one stored page document.
type Page struct {
	ID         uuid.UUID
	Slug       string
	Title      string
	TemplateID string
	Data       map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Session carries all mutable editing state: the page cache, the current
// subject, the rendered form, the dirty flag, and the load generation
// counter. It replaces the module-level singletons of a browser admin panel
// so every operation is testable against an explicit context object.
type Session struct {
	mu sync.Mutex

	cache      map[string]*Page
	subject    Subject
	current    *Page
	form       *fields.Form
	dirty      bool
	generation uint64

	preview   *debouncer
	previewed string
}

// NewSession constructs an idle session.
func NewSession() *Session {
	return &Session{cache: make(map[string]*Page)}
}

// Subject reports what the session is editing.
func (s *Session) Subject() Subject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subject
}

// Dirty reports whether unsaved edits exist. Hosts consult it before
// navigation or close to prompt the user.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Form returns the current form model, or nil when idle.
func (s *Session) Form() *fields.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Current returns the open page, or nil when idle.
func (s *Session) Current() *Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// PreviewHTML returns the most recent debounced preview rendering.
func (s *Session) PreviewHTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previewed
}

// Cached returns the cached copy of a page, when one exists.
func (s *Session) Cached(slug string) (*Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, ok := s.cache[slug]
	return page, ok
}

// beginLoad stamps a new load generation. The matching completeLoad discards
// results whose generation has been superseded by a newer open.
func (s *Session) beginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

func (s *Session) completeLoad(generation uint64, subject Subject, page *Page, form *fields.Form) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return false
	}
	s.subject = subject
	s.current = page
	s.form = form
	s.dirty = false
	s.previewed = ""
	if page != nil && page.Slug != "" {
		s.cache[page.Slug] = page
	}
	return true
}

func (s *Session) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subject = SubjectNone
	s.current = nil
	s.form = nil
	s.dirty = false
	s.previewed = ""
	if s.preview != nil {
		s.preview.stop()
	}
}

func clonePage(page *Page) *Page {
	if page == nil {
		return nil
	}
	copied := *page
	copied.Data = cloneData(page.Data)
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
	case []map[string]any:
		copied := make([]map[string]any, len(v))
		for i, item := range v {
			copied[i] = cloneData(item)
		}
		return copied
	case []fields.GalleryItem:
		copied := make([]fields.GalleryItem, len(v))
		copy(copied, v)
		return copied
	case []string:
		copied := make([]string, len(v))
		copy(copied, v)
		return copied
	default:
		return v
	}
}
