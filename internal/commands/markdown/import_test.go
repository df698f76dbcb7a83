package markdowncmd_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	admindocs "github.com/sitekit/go-admin/documents"
	markdowncmd "github.com/sitekit/go-admin/internal/commands/markdown"
	"github.com/sitekit/go-admin/internal/documents"
	"github.com/sitekit/go-admin/internal/editor"
	"github.com/sitekit/go-admin/internal/markdown"
	admintemplates "github.com/sitekit/go-admin/internal/templates"
)

func newTestImporter(t *testing.T) (*markdown.Importer, *documents.MemoryStore) {
	t.Helper()
	store := documents.NewMemoryStore()
	registry := admintemplates.NewBuiltinRegistry()
	svc := editor.NewService(store, registry, nil, editor.WithPreviewDebounce(0))
	importer, err := markdown.NewImporter(markdown.ImporterConfig{
		Editor:   svc,
		Registry: registry,
	})
	if err != nil {
		t.Fatalf("NewImporter returned error: %v", err)
	}
	return importer, store
}

func TestImportDirectoryHandlerImportsFiles(t *testing.T) {
	importer, store := newTestImporter(t)

	dir := t.TempDir()
	doc := "---\nslug: welcome\ntitle: Welcome\n---\n\nHello **world**.\n"
	if err := os.WriteFile(filepath.Join(dir, "welcome.md"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	handler := markdowncmd.NewImportDirectoryHandler(importer, nil)
	err := handler.Execute(context.Background(), markdowncmd.ImportDirectoryCommand{Directory: dir})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if _, err := store.Get(context.Background(), admindocs.PagesCollection, "welcome"); err != nil {
		t.Fatalf("expected imported page, got %v", err)
	}
}

func TestImportDirectoryHandlerRequiresDirectory(t *testing.T) {
	importer, _ := newTestImporter(t)

	handler := markdowncmd.NewImportDirectoryHandler(importer, nil)
	err := handler.Execute(context.Background(), markdowncmd.ImportDirectoryCommand{Directory: "   "})
	if err == nil {
		t.Fatal("expected validation error for blank directory")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}
