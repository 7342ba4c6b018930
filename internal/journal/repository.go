package journal

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewEntryRepository(db *bun.DB) repository.Repository[*Entry] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Entry]{
		NewRecord: func() *Entry { return &Entry{} },
		GetID: func(e *Entry) uuid.UUID {
			return e.ID
		},
		SetID: func(e *Entry, id uuid.UUID) {
			e.ID = id
		},
		GetIdentifier: func() string {
			return "date"
		},
		GetIdentifierValue: func(e *Entry) string {
			return e.Date
		},
	})
}

func NewMediaRepository(db *bun.DB) repository.Repository[*Media] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Media]{
		NewRecord: func() *Media { return &Media{} },
		GetID: func(m *Media) uuid.UUID {
			return m.ID
		},
		SetID: func(m *Media, id uuid.UUID) {
			m.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(m *Media) string {
			if m == nil {
				return ""
			}
			return m.ID.String()
		},
	})
}
