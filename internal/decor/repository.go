package decor

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewDecorRepository(db *bun.DB) repository.Repository[*Decor] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Decor]{
		NewRecord: func() *Decor { return &Decor{} },
		GetID: func(d *Decor) uuid.UUID {
			return d.ID
		},
		SetID: func(d *Decor, id uuid.UUID) {
			d.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(d *Decor) string {
			if d == nil {
				return ""
			}
			return d.ID.String()
		},
	})
}
