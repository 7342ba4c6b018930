package journal

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DateLayout is the wire format for planner dates (ISO calendar date).
const DateLayout = "2006-01-02"

// Visibility controls which read surfaces may see an entry.
type Visibility string

const (
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPublic   Visibility = "public"
)

// Valid reports whether the visibility is one of the supported values.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityUnlisted, VisibilityPublic:
		return true
	}
	return false
}

// MediaKind identifies the shape of a media attachment.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
	MediaKindLink  MediaKind = "link"
)

// Valid reports whether the kind is one of the supported values.
func (k MediaKind) Valid() bool {
	switch k {
	case MediaKindImage, MediaKindVideo, MediaKindLink:
		return true
	}
	return false
}

// Entry is one journal entry for one calendar date. Dates are unique: the
// planner keeps at most one entry per date.
type Entry struct {
	bun.BaseModel `bun:"table:planner_entries,alias:pe"`

	ID         uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Date       string         `bun:"date,notnull,unique" json:"date"`
	Title      *string        `bun:"title" json:"title,omitempty"`
	Body       *string        `bun:"body" json:"body,omitempty"`
	Visibility Visibility     `bun:"visibility,notnull,default:'private'" json:"visibility"`
	Slug       *string        `bun:"slug" json:"slug,omitempty"`
	Metadata   map[string]any `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Media []*Media `bun:"rel:has-many,join:id=entry_id" json:"media,omitempty"`

	// BodyHTML carries the rendered body on the read path. It is never persisted.
	BodyHTML string `bun:"-" json:"body_html,omitempty"`
}

// Media is a single attachment owned by exactly one entry. Attachments are
// created and deleted independently of the parent entry's other fields, and
// are removed with the entry.
type Media struct {
	bun.BaseModel `bun:"table:planner_entry_media,alias:pem"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	EntryID   uuid.UUID `bun:"entry_id,notnull,type:uuid" json:"entry_id"`
	Kind      MediaKind `bun:"kind,notnull" json:"kind"`
	URL       string    `bun:"url,notnull" json:"url"`
	Caption   *string   `bun:"caption" json:"caption,omitempty"`
	Position  int       `bun:"position,notnull,default:0" json:"position"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`

	Entry *Entry `bun:"rel:belongs-to,join:entry_id=id" json:"entry,omitempty"`
}

// DaySummary is the read-side projection used by the calendar grid. It is
// derived from entries and media at fetch time and never persisted; a month
// refetch recomputes the whole set.
type DaySummary struct {
	Date               string `json:"date"`
	HasEntry           bool   `json:"hasEntry"`
	AttachedImageCount int    `json:"attachedImageCount"`
	HasAnyMedia        bool   `json:"hasAnyMedia"`
}

// ParseDate validates and normalizes an ISO calendar date.
func ParseDate(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ErrDateRequired
	}
	parsed, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return "", &InvalidDateError{Value: trimmed}
	}
	return parsed.Format(DateLayout), nil
}

// DateMonth extracts the (year, month) pair from a normalized ISO date.
func DateMonth(date string) (int, time.Month, error) {
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, 0, &InvalidDateError{Value: date}
	}
	return parsed.Year(), parsed.Month(), nil
}
