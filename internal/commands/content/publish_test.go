package contentcmd_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	contentcmd "github.com/sitekit/go-admin/internal/commands/content"
	"github.com/sitekit/go-admin/internal/documents"
	"github.com/sitekit/go-admin/internal/editor"
	admintemplates "github.com/sitekit/go-admin/internal/templates"
	admindocs "github.com/sitekit/go-admin/documents"
)

func newTestEditor(t *testing.T) (editor.Service, *documents.MemoryStore) {
	t.Helper()
	store := documents.NewMemoryStore()
	registry := admintemplates.NewBuiltinRegistry()
	svc := editor.NewService(store, registry, nil, editor.WithPreviewDebounce(0))
	return svc, store
}

func TestPublishDraftHandlerPromotesDraft(t *testing.T) {
	svc, store := newTestEditor(t)
	ctx := context.Background()

	sess := svc.NewSession()
	if _, err := svc.OpenMainContent(ctx, sess); err != nil {
		t.Fatalf("OpenMainContent returned error: %v", err)
	}
	if err := svc.UpdateField(sess, "headline", "Launch Day"); err != nil {
		t.Fatalf("UpdateField returned error: %v", err)
	}
	if _, err := svc.Save(ctx, sess); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	handler := contentcmd.NewPublishDraftHandler(svc, nil)
	if err := handler.Execute(ctx, contentcmd.PublishDraftCommand{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	doc, err := store.Get(ctx, admindocs.ContentCollection, admindocs.MainKey)
	if err != nil {
		t.Fatalf("expected published document, got %v", err)
	}
	if doc.Data["template"] == nil {
		t.Fatal("expected published document to carry template id")
	}
}

func TestPublishDraftHandlerReportsMissingDraft(t *testing.T) {
	svc, _ := newTestEditor(t)

	handler := contentcmd.NewPublishDraftHandler(svc, nil)
	err := handler.Execute(context.Background(), contentcmd.PublishDraftCommand{})
	if err == nil {
		t.Fatal("expected error when no draft exists")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}
