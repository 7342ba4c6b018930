package decorcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-planner/internal/commands"
	"github.com/goliatone/go-planner/internal/decor"
	"github.com/goliatone/go-planner/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	placeDecorMessageType  = "planner.decor.place"
	removeDecorMessageType = "planner.decor.remove"
)

// PlaceDecorCommand places a decoration on one page of a month spread.
type PlaceDecorCommand struct {
	ID        *uuid.UUID `json:"id,omitempty"`
	Year      int        `json:"year"`
	Month     int        `json:"month"`
	Page      decor.Page `json:"page"`
	DecorType decor.Type `json:"type"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Rotation  float64    `json:"rotation"`
	Scale     float64    `json:"scale"`
	Z         int        `json:"z"`
	AssetURL  *string    `json:"assetUrl,omitempty"`
}

// Type implements command.Message.
func (PlaceDecorCommand) Type() string { return placeDecorMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m PlaceDecorCommand) Validate() error {
	errs := validation.Errors{}
	if m.Year <= 0 {
		errs["year"] = validation.NewError("planner.decor.place.year_required", "year is required")
	}
	if m.Month < 1 || m.Month > 12 {
		errs["month"] = validation.NewError("planner.decor.place.month_invalid", "month must be between 1 and 12")
	}
	if !m.Page.Valid() {
		errs["page"] = validation.NewError("planner.decor.place.page_invalid", "page must be left or right")
	}
	if !m.DecorType.Valid() {
		errs["type"] = validation.NewError("planner.decor.place.type_invalid", "type must be sticker, tape, paperclip, or pin")
	}
	if m.X < 0 || m.X > 1 {
		errs["x"] = validation.NewError("planner.decor.place.x_invalid", "x must be within [0, 1]")
	}
	if m.Y < 0 || m.Y > 1 {
		errs["y"] = validation.NewError("planner.decor.place.y_invalid", "y must be within [0, 1]")
	}
	if m.Scale < 0 {
		errs["scale"] = validation.NewError("planner.decor.place.scale_invalid", "scale must be greater than zero")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PlaceDecorHandler places decorations via the decor service using the shared command handler foundation.
type PlaceDecorHandler struct {
	inner *commands.Handler[PlaceDecorCommand]
}

// NewPlaceDecorHandler constructs a handler wired to the provided decor service.
func NewPlaceDecorHandler(service decor.Service, logger interfaces.Logger, opts ...commands.HandlerOption[PlaceDecorCommand]) *PlaceDecorHandler {
	exec := func(ctx context.Context, msg PlaceDecorCommand) error {
		_, err := service.Place(ctx, decor.PlaceDecorRequest{
			ID:       msg.ID,
			Year:     msg.Year,
			Month:    msg.Month,
			Page:     msg.Page,
			Type:     msg.DecorType,
			X:        msg.X,
			Y:        msg.Y,
			Rotation: msg.Rotation,
			Scale:    msg.Scale,
			Z:        msg.Z,
			AssetURL: msg.AssetURL,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[PlaceDecorCommand]{
		commands.WithLogger[PlaceDecorCommand](logger),
		commands.WithOperation[PlaceDecorCommand]("decor.place"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PlaceDecorHandler{
		inner: commands.NewHandler[PlaceDecorCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PlaceDecorCommand].Execute.
func (h *PlaceDecorHandler) Execute(ctx context.Context, msg PlaceDecorCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RemoveDecorCommand deletes a decoration.
type RemoveDecorCommand struct {
	ID uuid.UUID `json:"id"`
}

// Type implements command.Message.
func (RemoveDecorCommand) Type() string { return removeDecorMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m RemoveDecorCommand) Validate() error {
	errs := validation.Errors{}
	if m.ID == uuid.Nil {
		errs["id"] = validation.NewError("planner.decor.remove.id_required", "id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RemoveDecorHandler removes decorations via the decor service.
type RemoveDecorHandler struct {
	inner *commands.Handler[RemoveDecorCommand]
}

// NewRemoveDecorHandler constructs a handler wired to the provided decor service.
func NewRemoveDecorHandler(service decor.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RemoveDecorCommand]) *RemoveDecorHandler {
	exec := func(ctx context.Context, msg RemoveDecorCommand) error {
		return service.Remove(ctx, msg.ID)
	}

	handlerOpts := []commands.HandlerOption[RemoveDecorCommand]{
		commands.WithLogger[RemoveDecorCommand](logger),
		commands.WithOperation[RemoveDecorCommand]("decor.remove"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RemoveDecorHandler{
		inner: commands.NewHandler[RemoveDecorCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RemoveDecorCommand].Execute.
func (h *RemoveDecorHandler) Execute(ctx context.Context, msg RemoveDecorCommand) error {
	return h.inner.Execute(ctx, msg)
}
