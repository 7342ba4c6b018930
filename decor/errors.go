package decor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCoordinate = errors.New("decor: coordinate outside the [0,1] page range")
	ErrInvalidScale      = errors.New("decor: scale must be greater than zero")
	ErrInvalidMonth      = errors.New("decor: month must be between 1 and 12")
	ErrInvalidPage       = errors.New("decor: page must be left or right")
	ErrInvalidType       = errors.New("decor: unknown decoration type")
	ErrIDRequired        = errors.New("decor: decoration id required")
	ErrPageFull          = errors.New("decor: page decoration limit reached")
	ErrYearInvalid       = errors.New("decor: year is required")
)

// CoordinateError reports which normalized coordinate fell out of range.
type CoordinateError struct {
	Field string
	Value float64
}

func (e *CoordinateError) Error() string {
	if e == nil {
		return ErrInvalidCoordinate.Error()
	}
	field := strings.TrimSpace(e.Field)
	if field == "" {
		field = "coordinate"
	}
	return fmt.Sprintf("%s: %s=%v", ErrInvalidCoordinate.Error(), field, e.Value)
}

func (e *CoordinateError) Unwrap() error {
	return ErrInvalidCoordinate
}

// ScaleError reports a non-positive scale multiplier.
type ScaleError struct {
	Value float64
}

func (e *ScaleError) Error() string {
	if e == nil {
		return ErrInvalidScale.Error()
	}
	return fmt.Sprintf("%s: scale=%v", ErrInvalidScale.Error(), e.Value)
}

func (e *ScaleError) Unwrap() error {
	return ErrInvalidScale
}

// NotFoundError reports a missing decoration.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	if e == nil || strings.TrimSpace(e.Key) == "" {
		return "decor: decoration not found"
	}
	return fmt.Sprintf("decor: decoration %q not found", e.Key)
}
