// Package journaladmin exposes the structured entry and media forms used by
// the admin surface. Every submit returns a typed result instead of an error:
// validation failures map to per-field messages so the form can re-render
// populated, missing targets surface as dismissible not-found states, and
// anything else is a retryable failure message. A write never silently drops.
package journaladmin

import (
	"context"
	"errors"

	"github.com/goliatone/go-planner/internal/journal"
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
	Entry       *journal.Entry
	Media       *journal.Media
	FieldErrors map[string]string
	Message     string
}

// Saved reports whether the write committed.
func (r SubmitResult) Saved() bool { return r.Status == StatusSaved }

// EntryForm is the structured entry editor payload. A nil ID creates; a set ID
// updates.
type EntryForm struct {
	ID         *uuid.UUID
	Date       string
	Title      *string
	Body       *string
	Visibility journal.Visibility
	Metadata   map[string]any
}

// MediaForm is the structured media attachment payload.
type MediaForm struct {
	ID       *uuid.UUID
	EntryID  uuid.UUID
	Kind     journal.MediaKind
	URL      string
	Caption  *string
	Position int
}

// EntryEditor drives the admin entry and media forms over the journal service.
// Cache invalidation and day-modal refresh ride on the service's change
// listeners, so a saved result here means every read surface is already
// coherent.
type EntryEditor struct {
	svc    journal.Service
	logger interfaces.Logger
}

// NewEntryEditor constructs the editor.
func NewEntryEditor(svc journal.Service, logger interfaces.Logger) *EntryEditor {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &EntryEditor{svc: svc, logger: logger}
}

// SubmitEntry creates or updates an entry from the form payload.
func (e *EntryEditor) SubmitEntry(ctx context.Context, form EntryForm) SubmitResult {
	var (
		entry *journal.Entry
		err   error
	)
	if form.ID == nil || *form.ID == uuid.Nil {
		entry, err = e.svc.CreateEntry(ctx, journal.CreateEntryRequest{
			Date:       form.Date,
			Title:      form.Title,
			Body:       form.Body,
			Visibility: form.Visibility,
			Metadata:   form.Metadata,
		})
	} else {
		req := journal.UpdateEntryRequest{
			ID:       *form.ID,
			Title:    form.Title,
			Body:     form.Body,
			Metadata: form.Metadata,
		}
		if form.Date != "" {
			req.Date = &form.Date
		}
		if form.Visibility != "" {
			req.Visibility = &form.Visibility
		}
		entry, err = e.svc.UpdateEntry(ctx, req)
	}
	if err != nil {
		return e.entryFailure(err)
	}
	return SubmitResult{Status: StatusSaved, Entry: entry}
}

// DeleteEntry removes an entry and its attachments.
func (e *EntryEditor) DeleteEntry(ctx context.Context, id uuid.UUID) SubmitResult {
	if err := e.svc.DeleteEntry(ctx, id); err != nil {
		return e.entryFailure(err)
	}
	return SubmitResult{Status: StatusSaved}
}

// AttachMedia adds a media attachment from the form payload.
func (e *EntryEditor) AttachMedia(ctx context.Context, form MediaForm) SubmitResult {
	media, err := e.svc.AttachMedia(ctx, journal.AttachMediaRequest{
		ID:       form.ID,
		EntryID:  form.EntryID,
		Kind:     form.Kind,
		URL:      form.URL,
		Caption:  form.Caption,
		Position: form.Position,
	})
	if err != nil {
		return e.mediaFailure(err)
	}
	return SubmitResult{Status: StatusSaved, Media: media}
}

// RemoveMedia deletes a media attachment.
func (e *EntryEditor) RemoveMedia(ctx context.Context, id uuid.UUID) SubmitResult {
	if err := e.svc.RemoveMedia(ctx, id); err != nil {
		return e.mediaFailure(err)
	}
	return SubmitResult{Status: StatusSaved}
}

func (e *EntryEditor) entryFailure(err error) SubmitResult {
	var conflict *journal.DateConflictError
	if errors.As(err, &conflict) {
		return SubmitResult{
			Status: StatusInvalid,
			FieldErrors: map[string]string{
				"date": "an entry already exists for " + conflict.Date,
			},
			Message: err.Error(),
		}
	}

	var notFound *journal.NotFoundError
	if errors.As(err, &notFound) {
		return SubmitResult{Status: StatusNotFound, Message: err.Error()}
	}

	switch {
	case errors.Is(err, journal.ErrDateRequired), errors.Is(err, journal.ErrDateInvalid):
		return fieldFailure("date", err)
	case errors.Is(err, journal.ErrVisibilityInvalid):
		return fieldFailure("visibility", err)
	case errors.Is(err, journal.ErrMetadataInvalid):
		return fieldFailure("metadata", err)
	case errors.Is(err, journal.ErrEntryIDRequired):
		return fieldFailure("id", err)
	}

	e.logger.Error("entry form submit failed", "error", err)
	return SubmitResult{Status: StatusFailed, Message: err.Error()}
}

func (e *EntryEditor) mediaFailure(err error) SubmitResult {
	var notFound *journal.NotFoundError
	if errors.As(err, &notFound) {
		return SubmitResult{Status: StatusNotFound, Message: err.Error()}
	}

	switch {
	case errors.Is(err, journal.ErrMediaKindInvalid):
		return fieldFailure("kind", err)
	case errors.Is(err, journal.ErrMediaURLRequired):
		return fieldFailure("url", err)
	case errors.Is(err, journal.ErrEntryIDRequired):
		return fieldFailure("entry_id", err)
	case errors.Is(err, journal.ErrMediaIDRequired):
		return fieldFailure("id", err)
	}

	e.logger.Error("media form submit failed", "error", err)
	return SubmitResult{Status: StatusFailed, Message: err.Error()}
}

func fieldFailure(field string, err error) SubmitResult {
	return SubmitResult{
		Status:      StatusInvalid,
		FieldErrors: map[string]string{field: err.Error()},
		Message:     err.Error(),
	}
}
