package editor

import (
	"errors"
	"fmt"
)

var (
	ErrStoreRequired    = errors.New("editor: document store required")
	ErrRegistryRequired = errors.New("editor: template registry required")
	ErrSessionRequired  = errors.New("editor: session required")

	ErrNoSubject       = errors.New("editor: no document is open")
	ErrPageNotFound    = errors.New("editor: page not found")
	ErrPageExists      = errors.New("editor: page already exists")
	ErrSlugRequired    = errors.New("editor: slug is required")
	ErrSlugInvalid     = errors.New("editor: slug contains invalid characters")
	ErrTitleRequired   = errors.New("editor: title is required")
	ErrTemplateFixed   = errors.New("editor: main content template cannot change")
	ErrMainContentOnly = errors.New("editor: operation requires the main content document")
	ErrPageOnly        = errors.New("editor: operation not allowed for main content")
	ErrNoDraft         = errors.New("editor: no draft found")
	ErrUnsavedChanges  = errors.New("editor: unsaved changes")
	ErrUnknownField    = errors.New("editor: template does not declare field")
	ErrSuperseded      = errors.New("editor: load superseded by a newer request")
)

// StoreError wraps a document store failure. Store errors are transient from
// the editor's point of view: the session stays usable and the caller may
// retry the operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("editor: store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
