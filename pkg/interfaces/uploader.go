package interfaces

import (
	"context"
	"io"
)

// Upload captures the location of an asset after a successful upload.
type Upload struct {
	URL      string
	PublicID string
	Filename string
}

// Uploader abstracts the image hosting collaborator. Implementations wrap a
// hosted picker widget or a plain HTTP multipart endpoint; the editor core
// only consumes the resulting URL and provider identifier.
type Uploader interface {
	Upload(ctx context.Context, name string, body io.Reader) (*Upload, error)
}

// UploaderFunc adapts a function to the Uploader interface.
type UploaderFunc func(ctx context.Context, name string, body io.Reader) (*Upload, error)

// Upload satisfies Uploader.
func (f UploaderFunc) Upload(ctx context.Context, name string, body io.Reader) (*Upload, error) {
	return f(ctx, name, body)
}
