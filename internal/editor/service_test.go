package editor_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sitekit/go-admin/documents"
	internaldocs "github.com/sitekit/go-admin/internal/documents"
	"github.com/sitekit/go-admin/internal/editor"
	"github.com/sitekit/go-admin/internal/fields"
	"github.com/sitekit/go-admin/internal/preview"
	"github.com/sitekit/go-admin/internal/schema"
	admintemplates "github.com/sitekit/go-admin/internal/templates"
	"github.com/sitekit/go-admin/pkg/interfaces"
)

// hookStore wraps a real store to observe writes and interleave loads.
type hookStore struct {
	documents.Store
	onGet func(collection, key string)
	sets  int
}

func (h *hookStore) Get(ctx context.Context, collection, key string) (*documents.Document, error) {
	if h.onGet != nil {
		h.onGet(collection, key)
	}
	return h.Store.Get(ctx, collection, key)
}

func (h *hookStore) Set(ctx context.Context, collection, key string, data map[string]any, opts documents.SetOptions) error {
	h.sets++
	return h.Store.Set(ctx, collection, key, data, opts)
}

func newService(t *testing.T, opts ...editor.ServiceOption) (editor.Service, *hookStore) {
	t.Helper()
	store := &hookStore{Store: internaldocs.NewMemoryStore()}
	registry := admintemplates.NewBuiltinRegistry()
	renderer, err := preview.New(registry)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	opts = append([]editor.ServiceOption{editor.WithPreviewDebounce(0)}, opts...)
	return editor.NewService(store, registry, renderer, opts...), store
}

func mustCreate(t *testing.T, svc editor.Service, sess *editor.Session, pageSlug, title, templateID string) *editor.Page {
	t.Helper()
	page, err := svc.CreatePage(context.Background(), sess, editor.CreatePageRequest{
		Slug: pageSlug, Title: title, TemplateID: templateID,
	})
	if err != nil {
		t.Fatalf("create page %q: %v", pageSlug, err)
	}
	return page
}

func TestCreateEditSaveReload(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	sess := svc.NewSession()
	page := mustCreate(t, svc, sess, "about-us", "About Us", "basic")
	if page.Data["header"] != "" {
		t.Fatalf("expected empty-typed document, got %#v", page.Data)
	}

	if err := svc.UpdateField(sess, "header", "<h1>About</h1>"); err != nil {
		t.Fatalf("update header: %v", err)
	}
	if err := svc.UpdateField(sess, "content", "<p>We build things.</p>"); err != nil {
		t.Fatalf("update content: %v", err)
	}
	if !sess.Dirty() {
		t.Fatal("expected session dirty after edits")
	}

	saved, err := svc.Save(ctx, sess)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if sess.Dirty() {
		t.Fatal("expected dirty flag cleared after save")
	}
	if saved.Data["content"] != "<p>We build things.</p>" {
		t.Fatalf("expected collected content, got %#v", saved.Data["content"])
	}

	fresh := svc.NewSession()
	reloaded, err := svc.OpenEditor(ctx, fresh, "about-us")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Title != "About Us" || reloaded.Data["header"] != "<h1>About</h1>" {
		t.Fatalf("expected persisted page, got %+v", reloaded)
	}
}

func TestCreatePageValidation(t *testing.T) {
	svc, _ := newService(t)
	sess := svc.NewSession()
	ctx := context.Background()

	if _, err := svc.CreatePage(ctx, sess, editor.CreatePageRequest{Slug: "x", TemplateID: "basic"}); err == nil {
		t.Fatal("expected missing title to be rejected")
	}
	if _, err := svc.CreatePage(ctx, sess, editor.CreatePageRequest{Slug: "!!!", Title: "T", TemplateID: "basic"}); !errors.Is(err, editor.ErrSlugInvalid) {
		t.Fatalf("expected ErrSlugInvalid, got %v", err)
	}
	if _, err := svc.CreatePage(ctx, sess, editor.CreatePageRequest{Slug: "ok", Title: "T", TemplateID: "nope"}); !errors.Is(err, admintemplates.ErrTemplateUnknown) {
		t.Fatalf("expected ErrTemplateUnknown, got %v", err)
	}

	mustCreate(t, svc, sess, "taken", "Taken", "basic")
	if _, err := svc.CreatePage(ctx, sess, editor.CreatePageRequest{Slug: "taken", Title: "Again", TemplateID: "basic"}); !errors.Is(err, editor.ErrPageExists) {
		t.Fatalf("expected ErrPageExists, got %v", err)
	}
}

func TestOpenEditorMissingPageResetsSession(t *testing.T) {
	svc, _ := newService(t)
	sess := svc.NewSession()
	ctx := context.Background()

	mustCreate(t, svc, sess, "exists", "Exists", "basic")

	_, err := svc.OpenEditor(ctx, sess, "missing")
	if !errors.Is(err, editor.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
	if sess.Subject() != editor.SubjectNone {
		t.Fatal("expected session reset after failed open")
	}
}

func TestSupersededLoadIsDiscarded(t *testing.T) {
	svc, store := newService(t)
	sess := svc.NewSession()
	ctx := context.Background()

	mustCreate(t, svc, sess, "first", "First", "basic")
	mustCreate(t, svc, sess, "second", "Second", "basic")
	// Drop the cache so both opens hit the store.
	fresh := svc.NewSession()

	var reentered bool
	store.onGet = func(collection, key string) {
		if collection == documents.PagesCollection && key == "first" && !reentered {
			reentered = true
			store.onGet = nil
			if _, err := svc.OpenEditor(ctx, fresh, "second"); err != nil {
				t.Errorf("nested open: %v", err)
			}
		}
	}

	_, err := svc.OpenEditor(ctx, fresh, "first")
	if !errors.Is(err, editor.ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
	if got := fresh.Current(); got == nil || got.Slug != "second" {
		t.Fatalf("expected newest open to win, got %+v", got)
	}
}

func TestSaveRequiresTitleAndSkipsWrite(t *testing.T) {
	svc, store := newService(t)
	sess := svc.NewSession()
	ctx := context.Background()

	mustCreate(t, svc, sess, "untitled", "Working Title", "basic")
	if err := svc.SetTitle(sess, ""); err != nil {
		t.Fatalf("set title: %v", err)
	}

	setsBefore := store.sets
	if _, err := svc.Save(ctx, sess); !errors.Is(err, editor.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if store.sets != setsBefore {
		t.Fatal("expected failed save to never reach the store")
	}
}

func TestUpdateFieldUnknownField(t *testing.T) {
	svc, _ := newService(t)
	sess := svc.NewSession()

	mustCreate(t, svc, sess, "page", "Page", "basic")
	if err := svc.UpdateField(sess, "sidebar", "x"); !errors.Is(err, editor.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := svc.UpdateField(svc.NewSession(), "header", "x"); !errors.Is(err, editor.ErrNoSubject) {
		t.Fatalf("expected ErrNoSubject on idle session, got %v", err)
	}
}

func TestSetImageStoresUploadResult(t *testing.T) {
	svc, _ := newService(t)
	sess := svc.NewSession()
	ctx := context.Background()

	mustCreate(t, svc, sess, "with-image", "With Image", "basic")
	upload := &interfaces.Upload{
		URL:      "https://cdn.example.com/u/photo.jpg",
		PublicID: "u/photo",
		Filename: "photo.jpg",
	}
	if err := svc.SetImage(sess, "image", upload, "A photo"); err != nil {
		t.Fatalf("set image: %v", err)
	}

	saved, err := svc.Save(ctx, sess)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	image, ok := saved.Data["image"].(fields.Image)
	if !ok {
		t.Fatalf("expected Image value, got %T", saved.Data["image"])
	}
	if image.URL != upload.URL || image.PublicID != upload.PublicID || image.Alt != "A photo" {
		t.Fatalf("expected upload carried into field, got %+v", image)
	}
}

func TestGalleryAddRemoveShiftsIndices(t *testing.T) {
	svc, _ := newService(t)
	sess := svc.NewSession()

	mustCreate(t, svc, sess, "shots", "Shots", "gallery")
	for _, url := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		if err := svc.AddGalleryItem(sess, "images", fields.GalleryItem{URL: url}); err != nil {
			t.Fatalf("add gallery item: %v", err)
		}
	}
	if err := svc.RemoveGalleryItem(sess, "images", 1); err != nil {
		t.Fatalf("remove gallery item: %v", err)
	}

	control := sess.Form().Control("images")
	items, ok := control.Value.([]fields.GalleryItem)
	if !ok {
		t.Fatalf("expected gallery items, got %T", control.Value)
	}
	if len(items) != 2 || items[0].URL != "a.jpg" || items[1].URL != "c.jpg" {
		t.Fatalf("expected later items shifted down, got %v", items)
	}
}

func TestRepeaterAddRemove(t *testing.T) {
	svc, _ := newService(t)
	sess := svc.NewSession()

	mustCreate(t, svc, sess, "landing-page", "Landing", "landing")
	if err := svc.AddRepeaterItem(sess, "features"); err != nil {
		t.Fatalf("add repeater item: %v", err)
	}
	if err := svc.AddRepeaterItem(sess, "features"); err != nil {
		t.Fatalf("add repeater item: %v", err)
	}

	control := sess.Form().Control("features")
	items := control.Value.([]map[string]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0]["title"] != "" {
		t.Fatalf("expected empty-shaped item, got %#v", items[0])
	}

	if err := svc.RemoveRepeaterItem(sess, "features", 0); err != nil {
		t.Fatalf("remove repeater item: %v", err)
	}
	items = sess.Form().Control("features").Value.([]map[string]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 item after removal, got %d", len(items))
	}
}

func TestChangeTemplateMigratesData(t *testing.T) {
	svc, _ := newService(t)
	sess := svc.NewSession()

	// basic and gallery share the editor-backed header field.
	mustCreate(t, svc, sess, "migrating", "Migrating", "basic")
	if err := svc.UpdateField(sess, "header", "<h1>Kept</h1>"); err != nil {
		t.Fatalf("update header: %v", err)
	}

	notes, err := svc.ChangeTemplate(context.Background(), sess, "gallery")
	if err != nil {
		t.Fatalf("change template: %v", err)
	}

	page := sess.Current()
	if page.TemplateID != "gallery" {
		t.Fatalf("expected template rebound, got %q", page.TemplateID)
	}
	if page.Data["header"] != "<h1>Kept</h1>" {
		t.Fatalf("expected header carried over, got %#v", page.Data["header"])
	}
	if !sess.Dirty() {
		t.Fatal("expected template change to mark session dirty")
	}

	var sawDropped bool
	for _, note := range notes {
		if note.Field == "image" && note.Kind == schema.NoteDropped {
			sawDropped = true
		}
	}
	if !sawDropped {
		t.Fatalf("expected image field dropped note, got %v", notes)
	}
}

func TestChangeTemplateFixedForMainContent(t *testing.T) {
	svc, _ := newService(t)
	sess := svc.NewSession()
	ctx := context.Background()

	if _, err := svc.OpenMainContent(ctx, sess); err != nil {
		t.Fatalf("open main content: %v", err)
	}
	if _, err := svc.ChangeTemplate(ctx, sess, "basic"); !errors.Is(err, editor.ErrTemplateFixed) {
		t.Fatalf("expected ErrTemplateFixed, got %v", err)
	}
}

func TestMainContentDraftAndPublish(t *testing.T) {
	svc, store := newService(t)
	sess := svc.NewSession()
	ctx := context.Background()

	if err := svc.Publish(ctx); !errors.Is(err, editor.ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}

	if _, err := svc.OpenMainContent(ctx, sess); err != nil {
		t.Fatalf("open main content: %v", err)
	}
	if err := svc.UpdateField(sess, "headline", "<h1>Hello</h1>"); err != nil {
		t.Fatalf("update headline: %v", err)
	}
	if _, err := svc.Save(ctx, sess); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	// Saving main content touches only the draft.
	if _, err := store.Store.Get(ctx, documents.ContentCollection, documents.MainKey); err == nil {
		t.Fatal("expected published document untouched before publish")
	}

	if err := svc.Publish(ctx); err != nil {
		t.Fatalf("publish: %v", err)
	}

	draft, err := store.Store.Get(ctx, documents.ContentCollection, documents.DraftKey)
	if err != nil {
		t.Fatalf("read draft: %v", err)
	}
	published, err := store.Store.Get(ctx, documents.ContentCollection, documents.MainKey)
	if err != nil {
		t.Fatalf("read published: %v", err)
	}
	draftData := draft.Data["data"].(map[string]any)
	publishedData := published.Data["data"].(map[string]any)
	if publishedData["headline"] != draftData["headline"] {
		t.Fatalf("expected verbatim copy, draft %#v published %#v", draftData, publishedData)
	}
}

func TestDeletePage(t *testing.T) {
	svc, _ := newService(t)
	sess := svc.NewSession()
	ctx := context.Background()

	mustCreate(t, svc, sess, "doomed", "Doomed", "basic")
	if err := svc.DeletePage(ctx, sess); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if sess.Subject() != editor.SubjectNone {
		t.Fatal("expected session reset after delete")
	}
	if _, err := svc.OpenEditor(ctx, sess, "doomed"); !errors.Is(err, editor.ErrPageNotFound) {
		t.Fatalf("expected page gone, got %v", err)
	}

	if _, err := svc.OpenMainContent(ctx, sess); err != nil {
		t.Fatalf("open main content: %v", err)
	}
	if err := svc.DeletePage(ctx, sess); !errors.Is(err, editor.ErrPageOnly) {
		t.Fatalf("expected ErrPageOnly, got %v", err)
	}
}

func TestCloseGuardsUnsavedChanges(t *testing.T) {
	svc, _ := newService(t)
	sess := svc.NewSession()

	mustCreate(t, svc, sess, "open", "Open", "basic")
	if err := svc.UpdateField(sess, "content", "<p>edited</p>"); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := svc.Close(sess, false); !errors.Is(err, editor.ErrUnsavedChanges) {
		t.Fatalf("expected ErrUnsavedChanges, got %v", err)
	}
	if err := svc.Close(sess, true); err != nil {
		t.Fatalf("forced close: %v", err)
	}
	if sess.Subject() != editor.SubjectNone {
		t.Fatal("expected session idle after close")
	}
}

func TestPreviewRendersCurrentForm(t *testing.T) {
	svc, _ := newService(t)
	sess := svc.NewSession()

	mustCreate(t, svc, sess, "previewed", "Previewed", "basic")
	if err := svc.UpdateField(sess, "content", `<p>Draft body</p><script>x()</script>`); err != nil {
		t.Fatalf("update: %v", err)
	}

	html, err := svc.Preview(sess)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(html, "<p>Draft body</p>") {
		t.Fatalf("expected draft content in preview, got %q", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("expected script stripped, got %q", html)
	}

	// The synchronous debounce also refreshed the cached preview.
	if got := sess.PreviewHTML(); !strings.Contains(got, "<p>Draft body</p>") {
		t.Fatalf("expected cached preview refreshed, got %q", got)
	}
}

func TestPreviewDebounceCoalesces(t *testing.T) {
	svc, _ := newService(t, editor.WithPreviewDebounce(10*time.Millisecond))
	sess := svc.NewSession()

	mustCreate(t, svc, sess, "debounced", "Debounced", "basic")
	for _, text := range []string{"<p>one</p>", "<p>two</p>", "<p>three</p>"} {
		if err := svc.UpdateField(sess, "content", text); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if got := sess.PreviewHTML(); got != "" {
		t.Fatalf("expected no render before the delay, got %q", got)
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(sess.PreviewHTML(), "<p>three</p>") {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected debounced preview of final edit, got %q", sess.PreviewHTML())
}

func TestDeterministicPageIdentity(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	sess := svc.NewSession()
	created := mustCreate(t, svc, sess, "stable", "Stable", "basic")
	if _, err := svc.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	fresh := svc.NewSession()
	reloaded, err := svc.OpenEditor(ctx, fresh, "stable")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	// Reloads derive the id from the slug, so two loads agree.
	again, err := svc.OpenEditor(ctx, svc.NewSession(), "stable")
	if err != nil {
		t.Fatalf("second reload: %v", err)
	}
	if reloaded.ID != again.ID {
		t.Fatalf("expected stable identity across loads, got %s and %s", reloaded.ID, again.ID)
	}
	_ = created
}
