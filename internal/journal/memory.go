package journal

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryEntryRepository is an in-memory implementation for scaffolding and tests.
type MemoryEntryRepository struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]*Entry
	dateIndex map[string]uuid.UUID
}

// NewMemoryEntryRepository creates an empty in-memory entry repository.
func NewMemoryEntryRepository() *MemoryEntryRepository {
	return &MemoryEntryRepository{
		entries:   make(map[uuid.UUID]*Entry),
		dateIndex: make(map[string]uuid.UUID),
	}
}

// Put inserts or replaces an entry, bypassing validation. Intended for test seeding.
func (m *MemoryEntryRepository) Put(record *Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := cloneEntry(record)
	m.entries[copied.ID] = copied
	m.dateIndex[copied.Date] = copied.ID
}

// Create inserts the supplied entry.
func (m *MemoryEntryRepository) Create(_ context.Context, record *Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneEntry(record)
	m.entries[copied.ID] = copied
	m.dateIndex[copied.Date] = copied.ID
	return cloneEntry(copied), nil
}

// Update replaces a stored entry.
func (m *MemoryEntryRepository) Update(_ context.Context, record *Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.entries[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "entry", Key: record.ID.String()}
	}
	if existing.Date != record.Date {
		delete(m.dateIndex, existing.Date)
	}

	copied := cloneEntry(record)
	m.entries[copied.ID] = copied
	m.dateIndex[copied.Date] = copied.ID
	return cloneEntry(copied), nil
}

// Delete removes an entry by identifier.
func (m *MemoryEntryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.entries[id]
	if !ok {
		return &NotFoundError{Resource: "entry", Key: id.String()}
	}
	delete(m.dateIndex, existing.Date)
	delete(m.entries, id)
	return nil
}

// GetByID retrieves an entry by identifier.
func (m *MemoryEntryRepository) GetByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.entries[id]
	if !ok {
		return nil, &NotFoundError{Resource: "entry", Key: id.String()}
	}
	return cloneEntry(rec), nil
}

// GetByDate retrieves an entry by its calendar date, returning NotFoundError when absent.
func (m *MemoryEntryRepository) GetByDate(_ context.Context, date string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.dateIndex[date]
	if !ok {
		return nil, &NotFoundError{Resource: "entry", Key: date}
	}
	return cloneEntry(m.entries[id]), nil
}

// ListMonth returns the entries that fall within the given month, ordered by date.
func (m *MemoryEntryRepository) ListMonth(_ context.Context, year int, month time.Month) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	from, to := monthBounds(year, month)
	out := make([]*Entry, 0)
	for _, rec := range m.entries {
		if rec.Date >= from && rec.Date < to {
			out = append(out, cloneEntry(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func cloneEntry(src *Entry) *Entry {
	if src == nil {
		return nil
	}

	copied := *src
	if src.Title != nil {
		title := *src.Title
		copied.Title = &title
	}
	if src.Body != nil {
		body := *src.Body
		copied.Body = &body
	}
	if src.Slug != nil {
		slug := *src.Slug
		copied.Slug = &slug
	}
	if src.Metadata != nil {
		copied.Metadata = make(map[string]any, len(src.Metadata))
		for k, v := range src.Metadata {
			copied.Metadata[k] = v
		}
	}
	if len(src.Media) > 0 {
		copied.Media = make([]*Media, len(src.Media))
		for i, media := range src.Media {
			copied.Media[i] = cloneMedia(media)
		}
	}
	return &copied
}

// MemoryMediaRepository stores media attachments in-memory.
type MemoryMediaRepository struct {
	mu    sync.RWMutex
	media map[uuid.UUID]*Media
}

// NewMemoryMediaRepository constructs the repository.
func NewMemoryMediaRepository() *MemoryMediaRepository {
	return &MemoryMediaRepository{
		media: make(map[uuid.UUID]*Media),
	}
}

// Put inserts or replaces a media record. Intended for test seeding.
func (m *MemoryMediaRepository) Put(record *Media) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.media[record.ID] = cloneMedia(record)
}

// Create inserts the supplied media record.
func (m *MemoryMediaRepository) Create(_ context.Context, record *Media) (*Media, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneMedia(record)
	m.media[copied.ID] = copied
	return cloneMedia(copied), nil
}

// Delete removes a media record by identifier.
func (m *MemoryMediaRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.media[id]; !ok {
		return &NotFoundError{Resource: "media", Key: id.String()}
	}
	delete(m.media, id)
	return nil
}

// GetByID retrieves a media record.
func (m *MemoryMediaRepository) GetByID(_ context.Context, id uuid.UUID) (*Media, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.media[id]
	if !ok {
		return nil, &NotFoundError{Resource: "media", Key: id.String()}
	}
	return cloneMedia(rec), nil
}

// ListByEntry returns the attachments for a single entry, ordered by position.
func (m *MemoryMediaRepository) ListByEntry(_ context.Context, entryID uuid.UUID) ([]*Media, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Media, 0)
	for _, rec := range m.media {
		if rec.EntryID == entryID {
			out = append(out, cloneMedia(rec))
		}
	}
	sortMedia(out)
	return out, nil
}

// ListByEntryIDs returns the attachments for any of the given entries.
func (m *MemoryMediaRepository) ListByEntryIDs(_ context.Context, entryIDs []uuid.UUID) ([]*Media, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}

	wanted := make(map[uuid.UUID]struct{}, len(entryIDs))
	for _, id := range entryIDs {
		wanted[id] = struct{}{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Media, 0)
	for _, rec := range m.media {
		if _, ok := wanted[rec.EntryID]; ok {
			out = append(out, cloneMedia(rec))
		}
	}
	sortMedia(out)
	return out, nil
}

// DeleteByEntry removes every attachment owned by the entry.
func (m *MemoryMediaRepository) DeleteByEntry(_ context.Context, entryID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, rec := range m.media {
		if rec.EntryID == entryID {
			delete(m.media, id)
		}
	}
	return nil
}

func sortMedia(records []*Media) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Position != records[j].Position {
			return records[i].Position < records[j].Position
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
}

func cloneMedia(src *Media) *Media {
	if src == nil {
		return nil
	}

	copied := *src
	if src.Caption != nil {
		caption := *src.Caption
		copied.Caption = &caption
	}
	copied.Entry = nil
	return &copied
}
