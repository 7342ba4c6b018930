package decor

import plannerdecor "github.com/goliatone/go-planner/decor"

type (
	Decor = plannerdecor.Decor
	Page  = plannerdecor.Page
	Type  = plannerdecor.Type

	CoordinateError = plannerdecor.CoordinateError
	ScaleError      = plannerdecor.ScaleError
	NotFoundError   = plannerdecor.NotFoundError
)

const (
	PageLeft  = plannerdecor.PageLeft
	PageRight = plannerdecor.PageRight

	TypeSticker   = plannerdecor.TypeSticker
	TypeTape      = plannerdecor.TypeTape
	TypePaperclip = plannerdecor.TypePaperclip
	TypePin       = plannerdecor.TypePin
)

var (
	ErrInvalidCoordinate = plannerdecor.ErrInvalidCoordinate
	ErrInvalidScale      = plannerdecor.ErrInvalidScale
	ErrInvalidMonth      = plannerdecor.ErrInvalidMonth
	ErrInvalidPage       = plannerdecor.ErrInvalidPage
	ErrInvalidType       = plannerdecor.ErrInvalidType
	ErrIDRequired        = plannerdecor.ErrIDRequired
	ErrPageFull          = plannerdecor.ErrPageFull
	ErrYearInvalid       = plannerdecor.ErrYearInvalid
)
