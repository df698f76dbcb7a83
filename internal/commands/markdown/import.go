package markdowncmd

import (
	"context"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sitekit/go-admin/internal/commands"
	"github.com/sitekit/go-admin/internal/markdown"
	"github.com/sitekit/go-admin/pkg/interfaces"
)

const importDirectoryMessageType = "admin.markdown.import_directory"

// ImportDirectoryCommand triggers a filesystem walk for Markdown documents
// under the provided Directory and imports each one as a page draft.
type ImportDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load Markdown files from.
	Directory string `json:"directory"`
	// Pattern filters walked files by base name. Defaults to *.md when empty.
	Pattern string `json:"pattern,omitempty"`
	// DryRun toggles preview mode to log import decisions without persisting pages.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("admin.markdown.import_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// ImportDirectoryHandler walks a directory through the markdown importer.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]
}

// NewImportDirectoryHandler constructs a handler wired to the provided importer.
func NewImportDirectoryHandler(importer *markdown.Importer, logger interfaces.Logger, opts ...commands.HandlerOption[ImportDirectoryCommand]) *ImportDirectoryHandler {
	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		result, err := importer.ImportFS(ctx, os.DirFS(msg.Directory), markdown.ImportOptions{
			DryRun:  msg.DryRun,
			Pattern: msg.Pattern,
		})
		if err != nil {
			return err
		}
		if logger != nil {
			logger.Info("markdown import finished",
				"created", result.Created,
				"updated", result.Updated,
				"skipped", result.Skipped,
				"failed", len(result.Errors),
			)
		}
		if len(result.Errors) > 0 {
			return result.Errors[0]
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](logger),
		commands.WithOperation[ImportDirectoryCommand]("markdown.import_directory"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportDirectoryHandler{
		inner: commands.NewHandler[ImportDirectoryCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportDirectoryCommand].Execute.
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
