package editor

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/sitekit/go-admin/documents"
	"github.com/sitekit/go-admin/internal/fields"
	"github.com/sitekit/go-admin/internal/identity"
	"github.com/sitekit/go-admin/internal/logging"
	"github.com/sitekit/go-admin/internal/preview"
	"github.com/sitekit/go-admin/internal/schema"
	admintemplates "github.com/sitekit/go-admin/internal/templates"
	"github.com/sitekit/go-admin/pkg/interfaces"
	"github.com/sitekit/go-admin/templates"
)

const defaultPreviewDebounce = 500 * time.Millisecond

// CreatePageRequest captures the payload required to create a page.
type CreatePageRequest struct {
	Slug       string
	Title      string
	TemplateID string
}

// Validate enforces the required-field checks that run before any write.
func (r CreatePageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Slug, validation.Required.Error("slug is required")),
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.TemplateID, validation.Required.Error("template is required")),
	)
}

// Service drives editing sessions: open, edit, save, delete, publish.
type Service interface {
	NewSession() *Session

	OpenEditor(ctx context.Context, sess *Session, pageSlug string) (*Page, error)
	OpenMainContent(ctx context.Context, sess *Session) (*Page, error)
	CreatePage(ctx context.Context, sess *Session, req CreatePageRequest) (*Page, error)

	SetTitle(sess *Session, title string) error
	UpdateField(sess *Session, name string, value any) error
	SetImage(sess *Session, name string, upload *interfaces.Upload, alt string) error
	AddGalleryItem(sess *Session, name string, item fields.GalleryItem) error
	RemoveGalleryItem(sess *Session, name string, index int) error
	AddRepeaterItem(sess *Session, name string) error
	RemoveRepeaterItem(sess *Session, name string, index int) error

	ChangeTemplate(ctx context.Context, sess *Session, templateID string) ([]schema.Note, error)
	Save(ctx context.Context, sess *Session) (*Page, error)
	DeletePage(ctx context.Context, sess *Session) error
	Publish(ctx context.Context) error
	Preview(sess *Session) (string, error)
	Close(sess *Session, force bool) error
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp working copies.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// IDGenerator produces page identifiers.
type IDGenerator func() uuid.UUID

// WithIDGenerator overrides the default ID generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPreviewDebounce overrides the preview refresh delay. Zero renders
// synchronously, which tests rely on.
func WithPreviewDebounce(delay time.Duration) ServiceOption {
	return func(s *service) {
		s.previewDelay = delay
	}
}

type service struct {
	store        documents.Store
	registry     *admintemplates.Registry
	renderer     *preview.Renderer
	logger       interfaces.Logger
	now          func() time.Time
	id           IDGenerator
	previewDelay time.Duration
}

// NewService constructs the editor service.
func NewService(store documents.Store, registry *admintemplates.Registry, renderer *preview.Renderer, opts ...ServiceOption) Service {
	if store == nil {
		panic(ErrStoreRequired)
	}
	if registry == nil {
		panic(ErrRegistryRequired)
	}
	s := &service{
		store:        store,
		registry:     registry,
		renderer:     renderer,
		logger:       logging.NoOp(),
		now:          time.Now,
		id:           uuid.New,
		previewDelay: defaultPreviewDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) NewSession() *Session {
	sess := NewSession()
	sess.preview = newDebouncer(s.previewDelay)
	return sess
}

// OpenEditor loads a page into the session, preferring the session cache.
// Loads are stamped with a generation; a load superseded by a newer open
// discards its result and reports ErrSuperseded instead of clobbering the
// active form.
func (s *service) OpenEditor(ctx context.Context, sess *Session, pageSlug string) (*Page, error) {
	if sess == nil {
		return nil, ErrSessionRequired
	}
	generation := sess.beginLoad()

	page, ok := sess.Cached(pageSlug)
	if ok {
		page = clonePage(page)
	} else {
		doc, err := s.store.Get(ctx, documents.PagesCollection, pageSlug)
		if err != nil {
			var notFound *documents.NotFoundError
			if errors.As(err, &notFound) {
				sess.reset()
				return nil, ErrPageNotFound
			}
			s.logger.Error("page load failed", "slug", pageSlug, "error", err)
			return nil, &StoreError{Op: "get", Err: err}
		}
		page = decodePage(pageSlug, doc)
	}

	desc, err := s.registry.Get(page.TemplateID)
	if err != nil {
		return nil, err
	}
	form := fields.Render(desc, page.Data)

	if !sess.completeLoad(generation, SubjectPage, page, form) {
		return nil, ErrSuperseded
	}
	s.logger.Debug("page opened", "slug", pageSlug, "template", page.TemplateID)
	return page, nil
}

// OpenMainContent loads the homepage draft, creating an empty in-memory
// draft bound to the main-content template when none is stored yet.
func (s *service) OpenMainContent(ctx context.Context, sess *Session) (*Page, error) {
	if sess == nil {
		return nil, ErrSessionRequired
	}
	generation := sess.beginLoad()

	desc, err := s.registry.Get(templates.MainContentID)
	if err != nil {
		return nil, err
	}

	var page *Page
	doc, err := s.store.Get(ctx, documents.ContentCollection, documents.DraftKey)
	if err != nil {
		var notFound *documents.NotFoundError
		if !errors.As(err, &notFound) {
			s.logger.Error("draft load failed", "error", err)
			return nil, &StoreError{Op: "get", Err: err}
		}
		page = &Page{
			ID:         identity.PageUUID(templates.MainContentID),
			TemplateID: templates.MainContentID,
			Data:       fields.EmptyDocument(desc),
		}
	} else {
		page = decodeMainContent(doc)
	}

	form := fields.Render(desc, page.Data)
	if !sess.completeLoad(generation, SubjectMainContent, page, form) {
		return nil, ErrSuperseded
	}
	return page, nil
}

// CreatePage validates the request, checks for slug collisions with a
// read-before-write, persists an empty-typed document, and opens it. The
// collision check is not atomic; a concurrent create can race, an accepted
// limitation of a single-writer admin tool.
func (s *service) CreatePage(ctx context.Context, sess *Session, req CreatePageRequest) (*Page, error) {
	if sess == nil {
		return nil, ErrSessionRequired
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	normalized, err := slug.Normalize(req.Slug)
	if err != nil || !slug.IsValid(normalized) {
		return nil, ErrSlugInvalid
	}
	desc, err := s.registry.Get(req.TemplateID)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Get(ctx, documents.PagesCollection, normalized); err == nil {
		return nil, ErrPageExists
	} else {
		var notFound *documents.NotFoundError
		if !errors.As(err, &notFound) {
			s.logger.Error("page existence check failed", "slug", normalized, "error", err)
			return nil, &StoreError{Op: "get", Err: err}
		}
	}

	now := s.now()
	page := &Page{
		ID:         s.id(),
		Slug:       normalized,
		Title:      req.Title,
		TemplateID: desc.ID,
		Data:       fields.EmptyDocument(desc),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.writePage(ctx, page); err != nil {
		return nil, err
	}

	generation := sess.beginLoad()
	form := fields.Render(desc, page.Data)
	if !sess.completeLoad(generation, SubjectPage, page, form) {
		return nil, ErrSuperseded
	}
	s.logger.Info("page created", "slug", normalized, "template", desc.ID)
	return page, nil
}

// SetTitle updates the page title and marks the session dirty.
func (s *service) SetTitle(sess *Session, title string) error {
	if sess == nil {
		return ErrSessionRequired
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.subject != SubjectPage || sess.current == nil {
		return ErrNoSubject
	}
	sess.current.Title = title
	sess.dirty = true
	return nil
}

// UpdateField writes one edit into the form model, marks the session dirty,
// and schedules a debounced preview refresh.
func (s *service) UpdateField(sess *Session, name string, value any) error {
	if err := s.mutateControl(sess, name, func(field templates.FieldDescriptor, control *fields.Control) {
		switch field.Type {
		case templates.FieldText, templates.FieldTextarea, templates.FieldDate, templates.FieldTags:
			if text, ok := value.(string); ok {
				control.Text = text
			}
		default:
			control.Value = fields.Normalize(field, value)
		}
	}); err != nil {
		return err
	}
	s.schedulePreview(sess)
	return nil
}

// SetImage stores an upload result into an image field. The preview refresh
// for image changes is immediate, matching the synchronous <img> swap the
// admin UI performs after an upload.
func (s *service) SetImage(sess *Session, name string, upload *interfaces.Upload, alt string) error {
	image := fields.Image{Alt: alt}
	if upload != nil {
		image.URL = upload.URL
		image.PublicID = upload.PublicID
	}
	if err := s.mutateControl(sess, name, func(field templates.FieldDescriptor, control *fields.Control) {
		control.Value = image
	}); err != nil {
		return err
	}
	s.refreshPreview(sess)
	return nil
}

// AddGalleryItem appends an entry to a gallery field.
func (s *service) AddGalleryItem(sess *Session, name string, item fields.GalleryItem) error {
	if err := s.mutateControl(sess, name, func(field templates.FieldDescriptor, control *fields.Control) {
		items, _ := control.Value.([]fields.GalleryItem)
		control.Value = append(items, item)
	}); err != nil {
		return err
	}
	s.schedulePreview(sess)
	return nil
}

// RemoveGalleryItem splices out the entry at index and rebuilds the whole
// form so later indices stay aligned with the backing array.
func (s *service) RemoveGalleryItem(sess *Session, name string, index int) error {
	if err := s.spliceAndRerender(sess, name, func(field templates.FieldDescriptor, control *fields.Control) {
		items, _ := control.Value.([]fields.GalleryItem)
		control.Value = fields.RemoveAt(items, index)
	}); err != nil {
		return err
	}
	s.schedulePreview(sess)
	return nil
}

// AddRepeaterItem appends an empty-shaped item to a repeater field.
func (s *service) AddRepeaterItem(sess *Session, name string) error {
	if err := s.mutateControl(sess, name, func(field templates.FieldDescriptor, control *fields.Control) {
		if field.Type != templates.FieldRepeater {
			return
		}
		items, _ := control.Value.([]map[string]any)
		item := make(map[string]any, len(field.Subfields))
		for _, sub := range field.Subfields {
			item[sub.Name] = fields.Empty(sub.Type)
		}
		control.Value = append(items, item)
	}); err != nil {
		return err
	}
	s.schedulePreview(sess)
	return nil
}

// RemoveRepeaterItem splices out the item at index and rebuilds the form;
// incremental patching is not attempted, avoiding index drift.
func (s *service) RemoveRepeaterItem(sess *Session, name string, index int) error {
	if err := s.spliceAndRerender(sess, name, func(field templates.FieldDescriptor, control *fields.Control) {
		items, _ := control.Value.([]map[string]any)
		control.Value = fields.RemoveAt(items, index)
	}); err != nil {
		return err
	}
	s.schedulePreview(sess)
	return nil
}

// ChangeTemplate rebinds an ordinary page to a different template, migrating
// the current (uncollected) edits. Fields whose name and type match carry
// over; name collisions with a different type are discarded with a logged
// note; everything else initializes empty. Main content never changes
// template.
func (s *service) ChangeTemplate(ctx context.Context, sess *Session, templateID string) ([]schema.Note, error) {
	if sess == nil {
		return nil, ErrSessionRequired
	}
	newDesc, err := s.registry.Get(templateID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch sess.subject {
	case SubjectMainContent:
		return nil, ErrTemplateFixed
	case SubjectPage:
	default:
		return nil, ErrNoSubject
	}

	oldDesc, err := s.registry.Get(sess.current.TemplateID)
	if err != nil {
		return nil, err
	}

	data := fields.Collect(oldDesc, sess.form)
	migrated, notes := schema.MigrateData(oldDesc, newDesc, data)
	for _, note := range notes {
		if note.Kind == schema.NoteTypeChanged || note.Kind == schema.NoteDropped {
			s.logger.Warn("template migration discarded value",
				"slug", sess.current.Slug, "field", note.Field, "reason", string(note.Kind))
		}
	}

	sess.current.TemplateID = newDesc.ID
	sess.current.Data = migrated
	sess.form = fields.Render(newDesc, migrated)
	sess.dirty = true
	return notes, nil
}

// Save collects the form, runs the pre-write validations, and performs a
// full-document overwrite. A validation failure never reaches the store.
func (s *service) Save(ctx context.Context, sess *Session) (*Page, error) {
	if sess == nil {
		return nil, ErrSessionRequired
	}

	sess.mu.Lock()
	if sess.subject == SubjectNone || sess.current == nil {
		sess.mu.Unlock()
		return nil, ErrNoSubject
	}
	subject := sess.subject
	page := clonePage(sess.current)
	desc, err := s.registry.Get(page.TemplateID)
	if err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	page.Data = fields.Collect(desc, sess.form)
	sess.mu.Unlock()

	if subject == SubjectPage && page.Title == "" {
		return nil, ErrTitleRequired
	}
	if err := s.registry.ValidateDocument(page.TemplateID, page.Data); err != nil {
		return nil, err
	}

	page.UpdatedAt = s.now()
	if subject == SubjectPage {
		err = s.writePage(ctx, page)
	} else {
		err = s.writeMainContent(ctx, page)
	}
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	sess.current = clonePage(page)
	sess.dirty = false
	if page.Slug != "" {
		sess.cache[page.Slug] = clonePage(page)
	}
	sess.mu.Unlock()

	s.logger.Info("document saved", "slug", page.Slug, "template", page.TemplateID)
	return page, nil
}

// DeletePage irreversibly removes the open page. Main content cannot be
// deleted.
func (s *service) DeletePage(ctx context.Context, sess *Session) error {
	if sess == nil {
		return ErrSessionRequired
	}

	sess.mu.Lock()
	if sess.subject == SubjectMainContent {
		sess.mu.Unlock()
		return ErrPageOnly
	}
	if sess.subject != SubjectPage || sess.current == nil {
		sess.mu.Unlock()
		return ErrNoSubject
	}
	pageSlug := sess.current.Slug
	delete(sess.cache, pageSlug)
	sess.mu.Unlock()

	if err := s.store.Delete(ctx, documents.PagesCollection, pageSlug); err != nil {
		s.logger.Error("page delete failed", "slug", pageSlug, "error", err)
		return &StoreError{Op: "delete", Err: err}
	}
	sess.reset()
	s.logger.Info("page deleted", "slug", pageSlug)
	return nil
}

// Publish copies the homepage draft onto the published document verbatim.
// With no draft stored, the published copy is left untouched.
func (s *service) Publish(ctx context.Context) error {
	doc, err := s.store.Get(ctx, documents.ContentCollection, documents.DraftKey)
	if err != nil {
		var notFound *documents.NotFoundError
		if errors.As(err, &notFound) {
			return ErrNoDraft
		}
		s.logger.Error("draft read failed", "error", err)
		return &StoreError{Op: "get", Err: err}
	}
	if err := s.store.Set(ctx, documents.ContentCollection, documents.MainKey, doc.Data, documents.SetOptions{}); err != nil {
		s.logger.Error("publish failed", "error", err)
		return &StoreError{Op: "set", Err: err}
	}
	s.logger.Info("draft published")
	return nil
}

// Preview renders the current form synchronously.
func (s *service) Preview(sess *Session) (string, error) {
	if sess == nil {
		return "", ErrSessionRequired
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.renderPreviewLocked(sess)
}

// Close leaves the editing session. Unsaved edits require force, giving the
// host its confirmation hook.
func (s *service) Close(sess *Session, force bool) error {
	if sess == nil {
		return ErrSessionRequired
	}
	if sess.Dirty() && !force {
		return ErrUnsavedChanges
	}
	sess.reset()
	return nil
}

func (s *service) mutateControl(sess *Session, name string, apply func(templates.FieldDescriptor, *fields.Control)) error {
	if sess == nil {
		return ErrSessionRequired
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.subject == SubjectNone || sess.form == nil {
		return ErrNoSubject
	}
	desc, err := s.registry.Get(sess.current.TemplateID)
	if err != nil {
		return err
	}
	field, ok := desc.Field(name)
	if !ok {
		return ErrUnknownField
	}
	control := sess.form.Control(name)
	if control == nil {
		return ErrUnknownField
	}
	apply(field, control)
	sess.dirty = true
	return nil
}

// spliceAndRerender applies an index mutation and then rebuilds the entire
// form from collected data so control state and array indices stay in sync.
func (s *service) spliceAndRerender(sess *Session, name string, apply func(templates.FieldDescriptor, *fields.Control)) error {
	if err := s.mutateControl(sess, name, apply); err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	desc, err := s.registry.Get(sess.current.TemplateID)
	if err != nil {
		return err
	}
	data := fields.Collect(desc, sess.form)
	sess.current.Data = data
	sess.form = fields.Render(desc, data)
	return nil
}

func (s *service) schedulePreview(sess *Session) {
	if sess.preview == nil {
		s.refreshPreview(sess)
		return
	}
	sess.preview.trigger(func() { s.refreshPreview(sess) })
}

func (s *service) refreshPreview(sess *Session) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	html, err := s.renderPreviewLocked(sess)
	if err != nil {
		return
	}
	sess.previewed = html
}

func (s *service) renderPreviewLocked(sess *Session) (string, error) {
	if sess.subject == SubjectNone || sess.form == nil {
		return "", ErrNoSubject
	}
	if s.renderer == nil {
		return "", nil
	}
	desc, err := s.registry.Get(sess.current.TemplateID)
	if err != nil {
		return "", err
	}
	data := fields.Collect(desc, sess.form)
	return s.renderer.Render(desc.ID, data)
}

func (s *service) writePage(ctx context.Context, page *Page) error {
	data := map[string]any{
		"title":    page.Title,
		"template": page.TemplateID,
		"data":     page.Data,
	}
	if err := s.store.Set(ctx, documents.PagesCollection, page.Slug, data, documents.SetOptions{}); err != nil {
		s.logger.Error("page save failed", "slug", page.Slug, "error", err)
		return &StoreError{Op: "set", Err: err}
	}
	return nil
}

func (s *service) writeMainContent(ctx context.Context, page *Page) error {
	data := map[string]any{
		"template": templates.MainContentID,
		"data":     page.Data,
	}
	if err := s.store.Set(ctx, documents.ContentCollection, documents.DraftKey, data, documents.SetOptions{}); err != nil {
		s.logger.Error("draft save failed", "error", err)
		return &StoreError{Op: "set", Err: err}
	}
	return nil
}

func decodePage(pageSlug string, doc *documents.Document) *Page {
	templateID, _ := doc.Data["template"].(string)
	title, _ := doc.Data["title"].(string)
	data, _ := doc.Data["data"].(map[string]any)
	return &Page{
		ID:         identity.PageUUID(pageSlug),
		Slug:       pageSlug,
		Title:      title,
		TemplateID: templateID,
		Data:       data,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

func decodeMainContent(doc *documents.Document) *Page {
	data, _ := doc.Data["data"].(map[string]any)
	return &Page{
		ID:         identity.PageUUID(templates.MainContentID),
		TemplateID: templates.MainContentID,
		Data:       data,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}
