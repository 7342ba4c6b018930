package journal

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	plannerjournal "github.com/goliatone/go-planner/journal"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EntryRepository abstracts storage operations for planner entries. Entries
// are returned without their media relation; callers compose attachments via
// MediaRepository.
type EntryRepository interface {
	Create(ctx context.Context, record *Entry) (*Entry, error)
	Update(ctx context.Context, record *Entry) (*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	GetByDate(ctx context.Context, date string) (*Entry, error)
	ListMonth(ctx context.Context, year int, month time.Month) ([]*Entry, error)
}

// MediaRepository abstracts storage operations for entry media attachments.
type MediaRepository interface {
	Create(ctx context.Context, record *Media) (*Media, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Media, error)
	ListByEntry(ctx context.Context, entryID uuid.UUID) ([]*Media, error)
	ListByEntryIDs(ctx context.Context, entryIDs []uuid.UUID) ([]*Media, error)
	DeleteByEntry(ctx context.Context, entryID uuid.UUID) error
}

type BunEntryRepository struct {
	repo repository.Repository[*Entry]
}

func NewBunEntryRepository(db *bun.DB) *BunEntryRepository {
	return NewBunEntryRepositoryWithCache(db, nil, nil)
}

func NewBunEntryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunEntryRepository {
	base := NewEntryRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunEntryRepository{repo: wrapped}
}

func (r *BunEntryRepository) Create(ctx context.Context, record *Entry) (*Entry, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunEntryRepository) Update(ctx context.Context, record *Entry) (*Entry, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "entry", record.ID.String())
	}
	return updated, nil
}

func (r *BunEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Entry{ID: id})
}

func (r *BunEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "entry", id.String())
	}
	return result, nil
}

func (r *BunEntryRepository) GetByDate(ctx context.Context, date string) (*Entry, error) {
	result, err := r.repo.GetByIdentifier(ctx, date)
	if err != nil {
		return nil, mapRepositoryError(err, "entry", date)
	}
	return result, nil
}

func (r *BunEntryRepository) ListMonth(ctx context.Context, year int, month time.Month) ([]*Entry, error) {
	from, to := monthBounds(year, month)
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.date >= ? AND ?TableAlias.date < ?", from, to).
			Order("date ASC")
	}))
	return records, err
}

type BunMediaRepository struct {
	repo repository.Repository[*Media]
}

func NewBunMediaRepository(db *bun.DB) *BunMediaRepository {
	return NewBunMediaRepositoryWithCache(db, nil, nil)
}

func NewBunMediaRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunMediaRepository {
	base := NewMediaRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunMediaRepository{repo: wrapped}
}

func (r *BunMediaRepository) Create(ctx context.Context, record *Media) (*Media, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunMediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Media{ID: id})
}

func (r *BunMediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*Media, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "media", id.String())
	}
	return result, nil
}

func (r *BunMediaRepository) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]*Media, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.entry_id = ?", entryID).
			Order("position ASC", "created_at ASC")
	}))
	return records, err
}

func (r *BunMediaRepository) ListByEntryIDs(ctx context.Context, entryIDs []uuid.UUID) ([]*Media, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.entry_id IN (?)", bun.In(entryIDs)).
			Order("position ASC", "created_at ASC")
	}))
	return records, err
}

func (r *BunMediaRepository) DeleteByEntry(ctx context.Context, entryID uuid.UUID) error {
	records, err := r.ListByEntry(ctx, entryID)
	if err != nil {
		return err
	}
	for _, record := range records {
		if err := r.Delete(ctx, record.ID); err != nil {
			return err
		}
	}
	return nil
}

func monthBounds(year int, month time.Month) (string, string) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from.Format(plannerjournal.DateLayout), from.AddDate(0, 1, 0).Format(plannerjournal.DateLayout)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &plannerjournal.NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
