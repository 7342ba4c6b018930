package journal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrDateRequired       = errors.New("journal: date is required")
	ErrDateInvalid        = errors.New("journal: date is not a valid ISO calendar date")
	ErrEntryIDRequired    = errors.New("journal: entry id required")
	ErrEntryDateConflict  = errors.New("journal: an entry already exists for this date")
	ErrVisibilityInvalid  = errors.New("journal: visibility is invalid")
	ErrMediaIDRequired    = errors.New("journal: media id required")
	ErrMediaURLRequired   = errors.New("journal: media url is required")
	ErrMediaKindInvalid   = errors.New("journal: media kind is invalid")
	ErrMetadataInvalid    = errors.New("journal: entry metadata failed schema validation")
	ErrEntryBodyUnrenders = errors.New("journal: entry body could not be rendered")
)

// NotFoundError reports a missing entry or media record.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "journal: record not found"
	}
	resource := strings.TrimSpace(e.Resource)
	if resource == "" {
		resource = "record"
	}
	if strings.TrimSpace(e.Key) == "" {
		return fmt.Sprintf("journal: %s not found", resource)
	}
	return fmt.Sprintf("journal: %s %q not found", resource, e.Key)
}

// InvalidDateError captures a date that failed ISO parsing.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	if e == nil || strings.TrimSpace(e.Value) == "" {
		return ErrDateInvalid.Error()
	}
	return fmt.Sprintf("%s: %q", ErrDateInvalid.Error(), e.Value)
}

func (e *InvalidDateError) Unwrap() error {
	return ErrDateInvalid
}

// DateConflictError is returned when creating an entry for a date that already
// has one. The conflicting entry id lets callers offer an update instead.
type DateConflictError struct {
	Date       string
	ExistingID uuid.UUID
}

func (e *DateConflictError) Error() string {
	if e == nil {
		return ErrEntryDateConflict.Error()
	}
	return fmt.Sprintf("%s: date=%s existing=%s", ErrEntryDateConflict.Error(), e.Date, e.ExistingID)
}

func (e *DateConflictError) Unwrap() error {
	return ErrEntryDateConflict
}
