package contentcmd

import (
	"context"

	"github.com/sitekit/go-admin/internal/commands"
	"github.com/sitekit/go-admin/internal/editor"
	"github.com/sitekit/go-admin/pkg/interfaces"
)

const publishDraftMessageType = "admin.content.publish"

// PublishDraftCommand promotes the homepage draft to the public document.
// Publication is global, so the message carries no payload beyond optional
// audit metadata.
type PublishDraftCommand struct {
	// RequestedBy records who triggered publication, for logging only.
	RequestedBy string `json:"requested_by,omitempty"`
}

// Type implements command.Message.
func (PublishDraftCommand) Type() string { return publishDraftMessageType }

// PublishDraftHandler publishes the homepage draft via the editor service
// using the shared command handler foundation.
type PublishDraftHandler struct {
	inner *commands.Handler[PublishDraftCommand]
}

// NewPublishDraftHandler constructs a handler wired to the provided editor service.
func NewPublishDraftHandler(service editor.Service, logger interfaces.Logger, opts ...commands.HandlerOption[PublishDraftCommand]) *PublishDraftHandler {
	exec := func(ctx context.Context, msg PublishDraftCommand) error {
		return service.Publish(ctx)
	}

	handlerOpts := []commands.HandlerOption[PublishDraftCommand]{
		commands.WithLogger[PublishDraftCommand](logger),
		commands.WithOperation[PublishDraftCommand]("content.publish"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishDraftHandler{
		inner: commands.NewHandler[PublishDraftCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PublishDraftCommand].Execute.
func (h *PublishDraftHandler) Execute(ctx context.Context, msg PublishDraftCommand) error {
	return h.inner.Execute(ctx, msg)
}
