package decor

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
// Each insert records a sequence number so equal-z paint order stays insertion
// order even under a fixed clock.
type MemoryRepository struct {
	mu          sync.RWMutex
	decorations map[uuid.UUID]*Decor
	order       map[uuid.UUID]uint64
	seq         uint64
}

// NewMemoryRepository creates an empty in-memory decoration repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		decorations: make(map[uuid.UUID]*Decor),
		order:       make(map[uuid.UUID]uint64),
	}
}

// Put inserts or replaces a decoration, bypassing validation. Intended for test seeding.
func (m *MemoryRepository) Put(record *Decor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(record)
}

// Create inserts the supplied decoration.
func (m *MemoryRepository) Create(_ context.Context, record *Decor) (*Decor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := m.store(record)
	return cloneDecor(copied), nil
}

func (m *MemoryRepository) store(record *Decor) *Decor {
	copied := cloneDecor(record)
	if _, ok := m.order[copied.ID]; !ok {
		m.seq++
		m.order[copied.ID] = m.seq
	}
	m.decorations[copied.ID] = copied
	return copied
}

// Delete removes a decoration by identifier.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.decorations[id]; !ok {
		return &NotFoundError{Key: id.String()}
	}
	delete(m.decorations, id)
	delete(m.order, id)
	return nil
}

// GetByID retrieves a decoration.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Decor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.decorations[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return cloneDecor(rec), nil
}

// ListMonth returns the month's decorations in ascending z order.
func (m *MemoryRepository) ListMonth(_ context.Context, year int, month time.Month) ([]*Decor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Decor, 0)
	for _, rec := range m.decorations {
		if rec.Year == year && rec.Month == int(month) {
			out = append(out, cloneDecor(rec))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return m.order[out[i].ID] < m.order[out[j].ID]
	})
	return out, nil
}

func cloneDecor(src *Decor) *Decor {
	if src == nil {
		return nil
	}

	copied := *src
	if src.AssetURL != nil {
		url := *src.AssetURL
		copied.AssetURL = &url
	}
	return &copied
}
