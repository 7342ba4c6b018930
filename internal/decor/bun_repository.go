package decor

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	plannerdecor "github.com/goliatone/go-planner/decor"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository abstracts storage operations for decorations.
type Repository interface {
	Create(ctx context.Context, record *Decor) (*Decor, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Decor, error)
	ListMonth(ctx context.Context, year int, month time.Month) ([]*Decor, error)
}

type BunRepository struct {
	repo repository.Repository[*Decor]
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	var base repository.Repository[*Decor] = NewDecorRepository(db)
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunRepository{repo: base}
}

func (r *BunRepository) Create(ctx context.Context, record *Decor) (*Decor, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Decor{ID: id})
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Decor, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return result, nil
}

// ListMonth returns the month's decorations in stable paint order: ascending
// z, then creation time as the database approximation of insertion order, with
// id as the final tiebreak so equal timestamps still sort deterministically.
func (r *BunRepository) ListMonth(ctx context.Context, year int, month time.Month) ([]*Decor, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.year = ? AND ?TableAlias.month = ?", year, int(month)).
			Order("z ASC", "created_at ASC", "id ASC")
	}))
	return records, err
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &plannerdecor.NotFoundError{Key: key}
	}
	return fmt.Errorf("decor repository error: %w", err)
}
