package journalcmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-planner/internal/commands"
	"github.com/goliatone/go-planner/internal/journal"
	"github.com/goliatone/go-planner/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	attachMediaMessageType = "planner.journal.media.attach"
	removeMediaMessageType = "planner.journal.media.remove"
)

// AttachMediaCommand attaches a media record to an existing entry.
type AttachMediaCommand struct {
	ID       *uuid.UUID        `json:"id,omitempty"`
	EntryID  uuid.UUID         `json:"entry_id"`
	Kind     journal.MediaKind `json:"kind"`
	URL      string            `json:"url"`
	Caption  *string           `json:"caption,omitempty"`
	Position int               `json:"position"`
}

// Type implements command.Message.
func (AttachMediaCommand) Type() string { return attachMediaMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m AttachMediaCommand) Validate() error {
	errs := validation.Errors{}
	if m.EntryID == uuid.Nil {
		errs["entry_id"] = validation.NewError("planner.journal.media.attach.entry_id_required", "entry_id is required")
	}
	if !m.Kind.Valid() {
		errs["kind"] = validation.NewError("planner.journal.media.attach.kind_invalid", "kind must be image, video, or link")
	}
	if strings.TrimSpace(m.URL) == "" {
		errs["url"] = validation.NewError("planner.journal.media.attach.url_required", "url is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AttachMediaHandler attaches media via the journal service.
type AttachMediaHandler struct {
	inner *commands.Handler[AttachMediaCommand]
}

// NewAttachMediaHandler constructs a handler wired to the provided journal service.
func NewAttachMediaHandler(service journal.Service, logger interfaces.Logger, opts ...commands.HandlerOption[AttachMediaCommand]) *AttachMediaHandler {
	exec := func(ctx context.Context, msg AttachMediaCommand) error {
		_, err := service.AttachMedia(ctx, journal.AttachMediaRequest{
			ID:       msg.ID,
			EntryID:  msg.EntryID,
			Kind:     msg.Kind,
			URL:      msg.URL,
			Caption:  msg.Caption,
			Position: msg.Position,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[AttachMediaCommand]{
		commands.WithLogger[AttachMediaCommand](logger),
		commands.WithOperation[AttachMediaCommand]("journal.media.attach"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &AttachMediaHandler{
		inner: commands.NewHandler[AttachMediaCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[AttachMediaCommand].Execute.
func (h *AttachMediaHandler) Execute(ctx context.Context, msg AttachMediaCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RemoveMediaCommand deletes a media attachment.
type RemoveMediaCommand struct {
	ID uuid.UUID `json:"id"`
}

// Type implements command.Message.
func (RemoveMediaCommand) Type() string { return removeMediaMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m RemoveMediaCommand) Validate() error {
	errs := validation.Errors{}
	if m.ID == uuid.Nil {
		errs["id"] = validation.NewError("planner.journal.media.remove.id_required", "id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RemoveMediaHandler removes media via the journal service.
type RemoveMediaHandler struct {
	inner *commands.Handler[RemoveMediaCommand]
}

// NewRemoveMediaHandler constructs a handler wired to the provided journal service.
func NewRemoveMediaHandler(service journal.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RemoveMediaCommand]) *RemoveMediaHandler {
	exec := func(ctx context.Context, msg RemoveMediaCommand) error {
		return service.RemoveMedia(ctx, msg.ID)
	}

	handlerOpts := []commands.HandlerOption[RemoveMediaCommand]{
		commands.WithLogger[RemoveMediaCommand](logger),
		commands.WithOperation[RemoveMediaCommand]("journal.media.remove"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RemoveMediaHandler{
		inner: commands.NewHandler[RemoveMediaCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RemoveMediaCommand].Execute.
func (h *RemoveMediaHandler) Execute(ctx context.Context, msg RemoveMediaCommand) error {
	return h.inner.Execute(ctx, msg)
}
