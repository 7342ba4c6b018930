package journal

import plannerjournal "github.com/goliatone/go-planner/journal"

type (
	Entry      = plannerjournal.Entry
	Media      = plannerjournal.Media
	DaySummary = plannerjournal.DaySummary
	Visibility = plannerjournal.Visibility
	MediaKind  = plannerjournal.MediaKind
)

const (
	VisibilityPrivate  = plannerjournal.VisibilityPrivate
	VisibilityUnlisted = plannerjournal.VisibilityUnlisted
	VisibilityPublic   = plannerjournal.VisibilityPublic

	MediaKindImage = plannerjournal.MediaKindImage
	MediaKindVideo = plannerjournal.MediaKindVideo
	MediaKindLink  = plannerjournal.MediaKindLink

	DateLayout = plannerjournal.DateLayout
)

type (
	NotFoundError     = plannerjournal.NotFoundError
	InvalidDateError  = plannerjournal.InvalidDateError
	DateConflictError = plannerjournal.DateConflictError
)

var (
	ParseDate = plannerjournal.ParseDate
	DateMonth = plannerjournal.DateMonth

	ErrDateRequired      = plannerjournal.ErrDateRequired
	ErrDateInvalid       = plannerjournal.ErrDateInvalid
	ErrEntryIDRequired   = plannerjournal.ErrEntryIDRequired
	ErrEntryDateConflict = plannerjournal.ErrEntryDateConflict
	ErrVisibilityInvalid = plannerjournal.ErrVisibilityInvalid
	ErrMediaIDRequired   = plannerjournal.ErrMediaIDRequired
	ErrMediaURLRequired  = plannerjournal.ErrMediaURLRequired
	ErrMediaKindInvalid  = plannerjournal.ErrMediaKindInvalid
	ErrMetadataInvalid   = plannerjournal.ErrMetadataInvalid
)
