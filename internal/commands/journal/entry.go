package journalcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-planner/internal/commands"
	"github.com/goliatone/go-planner/internal/journal"
	"github.com/goliatone/go-planner/pkg/interfaces"
	"github.com/google/uuid"
	plannerjournal "github.com/goliatone/go-planner/journal"
)

const (
	createEntryMessageType = "planner.journal.entry.create"
	updateEntryMessageType = "planner.journal.entry.update"
	deleteEntryMessageType = "planner.journal.entry.delete"
)

// CreateEntryCommand requests creation of a journal entry for one calendar date.
type CreateEntryCommand struct {
	ID         *uuid.UUID         `json:"id,omitempty"`
	Date       string             `json:"date"`
	Title      *string            `json:"title,omitempty"`
	Body       *string            `json:"body,omitempty"`
	Visibility journal.Visibility `json:"visibility,omitempty"`
	Metadata   map[string]any     `json:"metadata,omitempty"`
}

// Type implements command.Message.
func (CreateEntryCommand) Type() string { return createEntryMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m CreateEntryCommand) Validate() error {
	errs := validation.Errors{}
	if _, err := plannerjournal.ParseDate(m.Date); err != nil {
		errs["date"] = validation.NewError("planner.journal.entry.create.date_invalid", "date must be an ISO calendar date")
	}
	if m.Visibility != "" && !m.Visibility.Valid() {
		errs["visibility"] = validation.NewError("planner.journal.entry.create.visibility_invalid", "visibility must be private, unlisted, or public")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateEntryHandler creates entries via the journal service using the shared command handler foundation.
type CreateEntryHandler struct {
	inner *commands.Handler[CreateEntryCommand]
}

// NewCreateEntryHandler constructs a handler wired to the provided journal service.
func NewCreateEntryHandler(service journal.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreateEntryCommand]) *CreateEntryHandler {
	exec := func(ctx context.Context, msg CreateEntryCommand) error {
		_, err := service.CreateEntry(ctx, journal.CreateEntryRequest{
			ID:         msg.ID,
			Date:       msg.Date,
			Title:      msg.Title,
			Body:       msg.Body,
			Visibility: msg.Visibility,
			Metadata:   msg.Metadata,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[CreateEntryCommand]{
		commands.WithLogger[CreateEntryCommand](logger),
		commands.WithOperation[CreateEntryCommand]("journal.entry.create"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CreateEntryHandler{
		inner: commands.NewHandler[CreateEntryCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CreateEntryCommand].Execute.
func (h *CreateEntryHandler) Execute(ctx context.Context, msg CreateEntryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UpdateEntryCommand applies partial changes to an existing entry.
type UpdateEntryCommand struct {
	ID         uuid.UUID           `json:"id"`
	Date       *string             `json:"date,omitempty"`
	Title      *string             `json:"title,omitempty"`
	Body       *string             `json:"body,omitempty"`
	Visibility *journal.Visibility `json:"visibility,omitempty"`
	Metadata   map[string]any      `json:"metadata,omitempty"`
}

// Type implements command.Message.
func (UpdateEntryCommand) Type() string { return updateEntryMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m UpdateEntryCommand) Validate() error {
	errs := validation.Errors{}
	if m.ID == uuid.Nil {
		errs["id"] = validation.NewError("planner.journal.entry.update.id_required", "id is required")
	}
	if m.Date != nil {
		if _, err := plannerjournal.ParseDate(*m.Date); err != nil {
			errs["date"] = validation.NewError("planner.journal.entry.update.date_invalid", "date must be an ISO calendar date")
		}
	}
	if m.Visibility != nil && !m.Visibility.Valid() {
		errs["visibility"] = validation.NewError("planner.journal.entry.update.visibility_invalid", "visibility must be private, unlisted, or public")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEntryHandler updates entries via the journal service.
type UpdateEntryHandler struct {
	inner *commands.Handler[UpdateEntryCommand]
}

// NewUpdateEntryHandler constructs a handler wired to the provided journal service.
func NewUpdateEntryHandler(service journal.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateEntryCommand]) *UpdateEntryHandler {
	exec := func(ctx context.Context, msg UpdateEntryCommand) error {
		_, err := service.UpdateEntry(ctx, journal.UpdateEntryRequest{
			ID:         msg.ID,
			Date:       msg.Date,
			Title:      msg.Title,
			Body:       msg.Body,
			Visibility: msg.Visibility,
			Metadata:   msg.Metadata,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[UpdateEntryCommand]{
		commands.WithLogger[UpdateEntryCommand](logger),
		commands.WithOperation[UpdateEntryCommand]("journal.entry.update"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UpdateEntryHandler{
		inner: commands.NewHandler[UpdateEntryCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UpdateEntryCommand].Execute.
func (h *UpdateEntryHandler) Execute(ctx context.Context, msg UpdateEntryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteEntryCommand removes an entry and its media attachments.
type DeleteEntryCommand struct {
	ID uuid.UUID `json:"id"`
}

// Type implements command.Message.
func (DeleteEntryCommand) Type() string { return deleteEntryMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m DeleteEntryCommand) Validate() error {
	errs := validation.Errors{}
	if m.ID == uuid.Nil {
		errs["id"] = validation.NewError("planner.journal.entry.delete.id_required", "id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteEntryHandler deletes entries via the journal service.
type DeleteEntryHandler struct {
	inner *commands.Handler[DeleteEntryCommand]
}

// NewDeleteEntryHandler constructs a handler wired to the provided journal service.
func NewDeleteEntryHandler(service journal.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteEntryCommand]) *DeleteEntryHandler {
	exec := func(ctx context.Context, msg DeleteEntryCommand) error {
		return service.DeleteEntry(ctx, msg.ID)
	}

	handlerOpts := []commands.HandlerOption[DeleteEntryCommand]{
		commands.WithLogger[DeleteEntryCommand](logger),
		commands.WithOperation[DeleteEntryCommand]("journal.entry.delete"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteEntryHandler{
		inner: commands.NewHandler[DeleteEntryCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteEntryCommand].Execute.
func (h *DeleteEntryHandler) Execute(ctx context.Context, msg DeleteEntryCommand) error {
	return h.inner.Execute(ctx, msg)
}
