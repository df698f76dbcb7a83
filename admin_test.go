package admin_test

import (
	"context"
	"strings"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	admin "github.com/sitekit/go-admin"
	"github.com/sitekit/go-admin/documents"
	"github.com/sitekit/go-admin/pkg/testsupport"
)

func newModule(t *testing.T) *admin.Module {
	t.Helper()
	cfg := admin.DefaultConfig()
	cfg.PreviewDebounce = -1
	module, err := admin.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return module
}

func TestModuleEndToEnd(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	svc := module.Editor()

	// Create a page, edit it, save, and reload through a fresh session.
	sess := svc.NewSession()
	if _, err := svc.CreatePage(ctx, sess, admin.CreatePageRequest{
		Slug: "welcome", Title: "Welcome", TemplateID: "basic",
	}); err != nil {
		t.Fatalf("create page: %v", err)
	}
	if err := svc.UpdateField(sess, "content", "<p>First visit?</p>"); err != nil {
		t.Fatalf("update field: %v", err)
	}
	if _, err := svc.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	fresh := svc.NewSession()
	page, err := svc.OpenEditor(ctx, fresh, "welcome")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if page.Data["content"] != "<p>First visit?</p>" {
		t.Fatalf("expected persisted content, got %#v", page.Data["content"])
	}

	// Edit and publish the homepage draft.
	home := svc.NewSession()
	if _, err := svc.OpenMainContent(ctx, home); err != nil {
		t.Fatalf("open main content: %v", err)
	}
	if err := svc.UpdateField(home, "headline", "<h1>Hello World</h1>"); err != nil {
		t.Fatalf("update headline: %v", err)
	}
	if _, err := svc.Save(ctx, home); err != nil {
		t.Fatalf("save draft: %v", err)
	}
	if err := svc.Publish(ctx); err != nil {
		t.Fatalf("publish: %v", err)
	}
	published, err := module.Store().Get(ctx, documents.ContentCollection, documents.MainKey)
	if err != nil {
		t.Fatalf("read published: %v", err)
	}
	data := published.Data["data"].(map[string]any)
	if !strings.Contains(data["headline"].(string), "Hello World") {
		t.Fatalf("expected published headline, got %#v", data["headline"])
	}

	// The other services ride the same store.
	if _, err := module.WordCloud().Add(ctx, admin.WordCloudEntry{Text: "go", Weight: 5}); err != nil {
		t.Fatalf("word cloud add: %v", err)
	}
	if err := module.Settings().Save(ctx, admin.SiteSettings{SiteTitle: "Example"}); err != nil {
		t.Fatalf("settings save: %v", err)
	}

	// Markdown importer is enabled by default.
	if module.Importer() == nil {
		t.Fatal("expected importer configured by default")
	}
}

func TestModuleWithBunBackedStore(t *testing.T) {
	sqldb, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })

	cfg := admin.DefaultConfig()
	cfg.PreviewDebounce = -1
	cfg.DB = bun.NewDB(sqldb, sqlitedialect.New())

	module, err := admin.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	ctx := context.Background()
	if err := module.InitStore(ctx); err != nil {
		t.Fatalf("init store: %v", err)
	}

	svc := module.Editor()
	sess := svc.NewSession()
	if _, err := svc.CreatePage(ctx, sess, admin.CreatePageRequest{
		Slug: "persisted", Title: "Persisted", TemplateID: "basic",
	}); err != nil {
		t.Fatalf("create page: %v", err)
	}

	doc, err := module.Store().Get(ctx, documents.PagesCollection, "persisted")
	if err != nil {
		t.Fatalf("expected page row in sqlite, got %v", err)
	}
	if doc.Data["title"] != "Persisted" {
		t.Fatalf("expected title persisted, got %#v", doc.Data)
	}
}

func TestModuleConfigValidation(t *testing.T) {
	memModule, err := admin.New(admin.DefaultConfig())
	if err != nil {
		t.Fatalf("default config should build: %v", err)
	}

	both := admin.DefaultConfig()
	both.DB = &bun.DB{}
	both.Store = memModule.Store()
	if _, err := admin.New(both); err != admin.ErrStoreConflict {
		t.Fatalf("expected ErrStoreConflict, got %v", err)
	}
}
