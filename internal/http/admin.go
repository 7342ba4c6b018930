package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-planner/internal/decor"
	"github.com/goliatone/go-planner/internal/journal"
)

// AdminAPI registers the write endpoints for entries, media, and decorations.
// All writes accept an optional id and are idempotent when one is supplied.
type AdminAPI struct {
	basePath string
	journal  journal.Service
	decor    decor.Service
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: "/admin/api/planner",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithAdminBasePath overrides the base API path (defaults to "/admin/api/planner").
func WithAdminBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithAdminJournalService wires the journal write service.
func WithAdminJournalService(service journal.Service) AdminOption {
	return func(api *AdminAPI) {
		api.journal = service
	}
}

// WithAdminDecorService wires the decoration service.
func WithAdminDecorService(service decor.Service) AdminOption {
	return func(api *AdminAPI) {
		api.decor = service
	}
}

// Register attaches the admin endpoints to the provided mux.
func (api *AdminAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: admin api is nil")
	}

	base := joinPath(api.basePath, "")
	entries := joinPath(base, "entries")
	mux.HandleFunc("POST "+entries, api.handleEntryCreate)
	mux.HandleFunc("PUT "+entries+"/{id}", api.handleEntryUpdate)
	mux.HandleFunc("DELETE "+entries+"/{id}", api.handleEntryDelete)
	mux.HandleFunc("POST "+entries+"/{id}/media", api.handleMediaAttach)
	mux.HandleFunc("DELETE "+joinPath(base, "media")+"/{id}", api.handleMediaRemove)

	decorRoot := joinPath(base, "decor")
	mux.HandleFunc("POST "+decorRoot, api.handleDecorPlace)
	mux.HandleFunc("DELETE "+decorRoot+"/{id}", api.handleDecorRemove)

	return nil
}

type entryCreatePayload struct {
	ID         *uuid.UUID         `json:"id,omitempty"`
	Date       string             `json:"date"`
	Title      *string            `json:"title,omitempty"`
	Body       *string            `json:"body,omitempty"`
	Visibility journal.Visibility `json:"visibility,omitempty"`
	Metadata   map[string]any     `json:"metadata,omitempty"`
}

type entryUpdatePayload struct {
	Date       *string             `json:"date,omitempty"`
	Title      *string             `json:"title,omitempty"`
	Body       *string             `json:"body,omitempty"`
	Visibility *journal.Visibility `json:"visibility,omitempty"`
	Metadata   map[string]any      `json:"metadata,omitempty"`
}

type mediaAttachPayload struct {
	ID       *uuid.UUID        `json:"id,omitempty"`
	Kind     journal.MediaKind `json:"kind"`
	URL      string            `json:"url"`
	Caption  *string           `json:"caption,omitempty"`
	Position int               `json:"position,omitempty"`
}

type decorPlacePayload struct {
	ID       *uuid.UUID `json:"id,omitempty"`
	Year     int        `json:"year"`
	Month    int        `json:"month"`
	Page     decor.Page `json:"page"`
	Type     decor.Type `json:"type"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Rotation float64    `json:"rotation,omitempty"`
	Scale    float64    `json:"scale,omitempty"`
	Z        int        `json:"z,omitempty"`
	AssetURL *string    `json:"assetUrl,omitempty"`
}

func (api *AdminAPI) handleEntryCreate(w http.ResponseWriter, r *http.Request) {
	if api.journal == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload entryCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	created, err := api.journal.CreateEntry(r.Context(), journal.CreateEntryRequest{
		ID:         payload.ID,
		Date:       payload.Date,
		Title:      payload.Title,
		Body:       payload.Body,
		Visibility: payload.Visibility,
		Metadata:   payload.Metadata,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *AdminAPI) handleEntryUpdate(w http.ResponseWriter, r *http.Request) {
	if api.journal == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload entryUpdatePayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	updated, err := api.journal.UpdateEntry(r.Context(), journal.UpdateEntryRequest{
		ID:         id,
		Date:       payload.Date,
		Title:      payload.Title,
		Body:       payload.Body,
		Visibility: payload.Visibility,
		Metadata:   payload.Metadata,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *AdminAPI) handleEntryDelete(w http.ResponseWriter, r *http.Request) {
	if api.journal == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.journal.DeleteEntry(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleMediaAttach(w http.ResponseWriter, r *http.Request) {
	if api.journal == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	entryID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload mediaAttachPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	attached, err := api.journal.AttachMedia(r.Context(), journal.AttachMediaRequest{
		ID:       payload.ID,
		EntryID:  entryID,
		Kind:     payload.Kind,
		URL:      payload.URL,
		Caption:  payload.Caption,
		Position: payload.Position,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, attached)
}

func (api *AdminAPI) handleMediaRemove(w http.ResponseWriter, r *http.Request) {
	if api.journal == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.journal.RemoveMedia(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleDecorPlace(w http.ResponseWriter, r *http.Request) {
	if api.decor == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload decorPlacePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	placed, err := api.decor.Place(r.Context(), decor.PlaceDecorRequest{
		ID:       payload.ID,
		Year:     payload.Year,
		Month:    payload.Month,
		Page:     payload.Page,
		Type:     payload.Type,
		X:        payload.X,
		Y:        payload.Y,
		Rotation: payload.Rotation,
		Scale:    payload.Scale,
		Z:        payload.Z,
		AssetURL: payload.AssetURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, placed)
}

func (api *AdminAPI) handleDecorRemove(w http.ResponseWriter, r *http.Request) {
	if api.decor == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.decor.Remove(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
