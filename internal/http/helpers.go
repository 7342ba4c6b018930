package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-planner/internal/decor"
	"github.com/goliatone/go-planner/internal/journal"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var entryNotFound *journal.NotFoundError
	if errors.As(err, &entryNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: entryNotFound.Error(),
		}
	}

	var decorNotFound *decor.NotFoundError
	if errors.As(err, &decorNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: decorNotFound.Error(),
		}
	}

	var conflict *journal.DateConflictError
	if errors.As(err, &conflict) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: conflict.Error(),
			Field:   "date",
		}
	}

	var badDate *journal.InvalidDateError
	if errors.As(err, &badDate) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: badDate.Error(),
			Field:   "date",
		}
	}

	var coordinate *decor.CoordinateError
	if errors.As(err, &coordinate) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: coordinate.Error(),
			Field:   coordinate.Field,
		}
	}

	var scale *decor.ScaleError
	if errors.As(err, &scale) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: scale.Error(),
			Field:   "scale",
		}
	}

	if errors.Is(err, journal.ErrMetadataInvalid) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Field:   "metadata",
		}
	}

	if errors.Is(err, decor.ErrPageFull) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, journal.ErrDateRequired) ||
		errors.Is(err, journal.ErrVisibilityInvalid) ||
		errors.Is(err, journal.ErrEntryIDRequired) ||
		errors.Is(err, journal.ErrMediaIDRequired) ||
		errors.Is(err, journal.ErrMediaURLRequired) ||
		errors.Is(err, journal.ErrMediaKindInvalid) ||
		errors.Is(err, decor.ErrYearInvalid) ||
		errors.Is(err, decor.ErrInvalidMonth) ||
		errors.Is(err, decor.ErrInvalidPage) ||
		errors.Is(err, decor.ErrInvalidType) ||
		errors.Is(err, decor.ErrIDRequired) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	return uuid.Parse(trimmed)
}

// parseMonthQuery extracts the year and month query parameters shared by the
// summary and decor endpoints.
func parseMonthQuery(r *http.Request) (int, time.Month, error) {
	year, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("year")))
	if err != nil || year <= 0 {
		return 0, 0, errors.New("year query parameter required")
	}
	month, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("month")))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("month query parameter must be 1-12")
	}
	return year, time.Month(month), nil
}
