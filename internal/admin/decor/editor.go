// Package decoradmin exposes the structured decoration placement form.
// Placement is create/delete only; repositioning a decoration is a remove
// followed by a fresh placement with the new coordinates.
package decoradmin

import (
	"context"
	"errors"

	"github.com/goliatone/go-planner/internal/decor"
	"github.com/goliatone/go-planner/internal/logging"
	"github.com/goliatone/go-planner/pkg/interfaces"
	"github.com/google/uuid"
)

// SubmitStatus categorizes a form submission outcome.
type SubmitStatus string

const (
	StatusSaved    SubmitStatus = "saved"
	StatusInvalid  SubmitStatus = "invalid"
	StatusNotFound SubmitStatus = "not_found"
	StatusFailed   SubmitStatus = "failed"
)

// SubmitResult is the typed outcome handed back to the calling form.
type SubmitResult struct {
	Status      SubmitStatus
	Decor       *decor.Decor
	FieldErrors map[string]string
	Message     string
}

// Saved reports whether the write committed.
func (r SubmitResult) Saved() bool { return r.Status == StatusSaved }

// DecorForm is the structured placement payload.
type DecorForm struct {
	ID       *uuid.UUID
	Year     int
	Month    int
	Page     decor.Page
	Type     decor.Type
	X        float64
	Y        float64
	Rotation float64
	Scale    float64
	Z        int
	AssetURL *string
}

// Editor drives the admin decoration form over the decor service.
type Editor struct {
	svc    decor.Service
	logger interfaces.Logger
}

// NewEditor constructs the editor.
func NewEditor(svc decor.Service, logger interfaces.Logger) *Editor {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Editor{svc: svc, logger: logger}
}

// Place validates and stores a decoration from the form payload.
func (e *Editor) Place(ctx context.Context, form DecorForm) SubmitResult {
	placed, err := e.svc.Place(ctx, decor.PlaceDecorRequest{
		ID:       form.ID,
		Year:     form.Year,
		Month:    form.Month,
		Page:     form.Page,
		Type:     form.Type,
		X:        form.X,
		Y:        form.Y,
		Rotation: form.Rotation,
		Scale:    form.Scale,
		Z:        form.Z,
		AssetURL: form.AssetURL,
	})
	if err != nil {
		return e.failure(err)
	}
	return SubmitResult{Status: StatusSaved, Decor: placed}
}

// Remove deletes a decoration.
func (e *Editor) Remove(ctx context.Context, id uuid.UUID) SubmitResult {
	if err := e.svc.Remove(ctx, id); err != nil {
		return e.failure(err)
	}
	return SubmitResult{Status: StatusSaved}
}

func (e *Editor) failure(err error) SubmitResult {
	var coord *decor.CoordinateError
	if errors.As(err, &coord) {
		return fieldFailure(coord.Field, err)
	}
	var scale *decor.ScaleError
	if errors.As(err, &scale) {
		return fieldFailure("scale", err)
	}
	var notFound *decor.NotFoundError
	if errors.As(err, &notFound) {
		return SubmitResult{Status: StatusNotFound, Message: err.Error()}
	}

	switch {
	case errors.Is(err, decor.ErrInvalidMonth):
		return fieldFailure("month", err)
	case errors.Is(err, decor.ErrYearInvalid):
		return fieldFailure("year", err)
	case errors.Is(err, decor.ErrInvalidPage):
		return fieldFailure("page", err)
	case errors.Is(err, decor.ErrInvalidType):
		return fieldFailure("type", err)
	case errors.Is(err, decor.ErrPageFull):
		return fieldFailure("page", err)
	case errors.Is(err, decor.ErrIDRequired):
		return fieldFailure("id", err)
	}

	e.logger.Error("decor form submit failed", "error", err)
	return SubmitResult{Status: StatusFailed, Message: err.Error()}
}

func fieldFailure(field string, err error) SubmitResult {
	return SubmitResult{
		Status:      StatusInvalid,
		FieldErrors: map[string]string{field: err.Error()},
		Message:     err.Error(),
	}
}
