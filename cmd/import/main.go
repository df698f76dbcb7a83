package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	admin "github.com/sitekit/go-admin"
	markdowncmd "github.com/sitekit/go-admin/internal/commands/markdown"
	"github.com/sitekit/go-admin/internal/logging"
)

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("markdown import: %v", err)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("markdown-import", flag.ExitOnError)
	directory := fs.String("directory", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	dsn := fs.String("dsn", "", "SQLite DSN to persist documents (empty keeps documents in memory)")
	logLevel := fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "console", "Log format (console, json, pretty)")
	dryRun := fs.Bool("dry-run", false, "Preview changes without persisting pages")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := admin.DefaultConfig()
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat
	cfg.Markdown.Pattern = *pattern

	if *dsn != "" {
		sqldb, err := sql.Open("sqlite3", *dsn)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer sqldb.Close()
		cfg.DB = bun.NewDB(sqldb, sqlitedialect.New())
	}

	module, err := admin.New(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	ctx := context.Background()
	if err := module.InitStore(ctx); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	importer := module.Importer()
	if importer == nil {
		return fmt.Errorf("markdown importer not configured; ensure Features.Markdown is enabled")
	}

	logger := logging.MarkdownLogger(module.LoggerProvider())
	handler := markdowncmd.NewImportDirectoryHandler(importer, logger)
	cmd := markdowncmd.ImportDirectoryCommand{
		Directory: *directory,
		Pattern:   *pattern,
		DryRun:    *dryRun,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "markdown import command executed successfully")

	return nil
}
