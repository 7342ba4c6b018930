package decor

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Page names the side of a notebook spread a decoration sits on.
type Page string

const (
	PageLeft  Page = "left"
	PageRight Page = "right"
)

// Valid reports whether the page is one of the supported values.
func (p Page) Valid() bool {
	return p == PageLeft || p == PageRight
}

// Type identifies the built-in visual used when no asset URL is set.
type Type string

const (
	TypeSticker   Type = "sticker"
	TypeTape      Type = "tape"
	TypePaperclip Type = "paperclip"
	TypePin       Type = "pin"
)

// Valid reports whether the type is one of the supported values.
func (t Type) Valid() bool {
	switch t {
	case TypeSticker, TypeTape, TypePaperclip, TypePin:
		return true
	}
	return false
}

// Decor is a decorative visual anchored to one (year, month, page) triple.
// Coordinates are normalized to the page: x and y live in [0, 1]. Decorations
// are never mutated in place; a reposition is a delete followed by a create.
type Decor struct {
	bun.BaseModel `bun:"table:planner_decorations,alias:pd"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Year      int       `bun:"year,notnull" json:"year"`
	Month     int       `bun:"month,notnull" json:"month"`
	Page      Page      `bun:"page,notnull" json:"page"`
	Type      Type      `bun:"type,notnull" json:"type"`
	X         float64   `bun:"x,notnull" json:"x"`
	Y         float64   `bun:"y,notnull" json:"y"`
	Rotation  float64   `bun:"rotation,notnull,default:0" json:"rotation"`
	Scale     float64   `bun:"scale,notnull,default:1" json:"scale"`
	Z         int       `bun:"z,notnull,default:0" json:"z"`
	AssetURL  *string   `bun:"asset_url" json:"assetUrl,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}
