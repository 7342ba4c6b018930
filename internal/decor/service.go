package decor

import (
	"context"
	"time"

	"github.com/goliatone/go-planner/internal/identity"
	"github.com/google/uuid"
)

// Service exposes decoration use-cases. Decorations are create/delete only;
// moving one is a remove followed by a fresh placement.
type Service interface {
	Place(ctx context.Context, req PlaceDecorRequest) (*Decor, error)
	Remove(ctx context.Context, id uuid.UUID) error
	MonthDecor(ctx context.Context, year int, month time.Month) ([]*Decor, error)
}

// PlaceDecorRequest captures a decoration placement. Supplying an ID makes the
// write idempotent: re-submitting an existing ID returns the stored record.
type PlaceDecorRequest struct {
	ID       *uuid.UUID
	Year     int
	Month    int
	Page     Page
	Type     Type
	X        float64
	Y        float64
	Rotation float64
	Scale    float64
	Z        int
	AssetURL *string
}

// ChangeListener receives the (year, month) affected by a decoration write.
type ChangeListener func(year int, month time.Month)

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = clock
	}
}

type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithMaxPerPage caps how many decorations one page of a spread may hold.
// Zero means unlimited.
func WithMaxPerPage(limit int) ServiceOption {
	return func(s *service) {
		if limit < 0 {
			limit = 0
		}
		s.maxPerPage = limit
	}
}

// WithDemoFallback serves a small deterministic decoration set for months that
// have none, so an empty planner still shows a dressed spread.
func WithDemoFallback(enabled bool) ServiceOption {
	return func(s *service) {
		s.demoFallback = enabled
	}
}

// WithChangeListener registers a callback invoked after every successful write.
func WithChangeListener(listener ChangeListener) ServiceOption {
	return func(s *service) {
		if listener != nil {
			s.listeners = append(s.listeners, listener)
		}
	}
}

// service implements Service.
type service struct {
	decorations  Repository
	now          func() time.Time
	id           IDGenerator
	maxPerPage   int
	demoFallback bool
	listeners    []ChangeListener
}

// NewService constructs a decoration service with the required dependencies.
func NewService(decorations Repository, opts ...ServiceOption) Service {
	s := &service{
		decorations: decorations,
		now:         time.Now,
		id:          uuid.New,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Place validates and stores a decoration.
func (s *service) Place(ctx context.Context, req PlaceDecorRequest) (*Decor, error) {
	if req.Year <= 0 {
		return nil, ErrYearInvalid
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, ErrInvalidMonth
	}
	if !req.Page.Valid() {
		return nil, ErrInvalidPage
	}
	if !req.Type.Valid() {
		return nil, ErrInvalidType
	}
	if req.X < 0 || req.X > 1 {
		return nil, &CoordinateError{Field: "x", Value: req.X}
	}
	if req.Y < 0 || req.Y > 1 {
		return nil, &CoordinateError{Field: "y", Value: req.Y}
	}

	scale := req.Scale
	if scale == 0 {
		scale = 1
	}
	if scale <= 0 {
		return nil, &ScaleError{Value: req.Scale}
	}

	if req.ID != nil && *req.ID != uuid.Nil {
		if existing, err := s.decorations.GetByID(ctx, *req.ID); err == nil && existing != nil {
			return existing, nil
		}
	}

	if s.maxPerPage > 0 {
		existing, err := s.decorations.ListMonth(ctx, req.Year, time.Month(req.Month))
		if err != nil {
			return nil, err
		}
		onPage := 0
		for _, rec := range existing {
			if rec.Page == req.Page {
				onPage++
			}
		}
		if onPage >= s.maxPerPage {
			return nil, ErrPageFull
		}
	}

	id := s.id()
	if req.ID != nil && *req.ID != uuid.Nil {
		id = *req.ID
	}

	record := &Decor{
		ID:        id,
		Year:      req.Year,
		Month:     req.Month,
		Page:      req.Page,
		Type:      req.Type,
		X:         req.X,
		Y:         req.Y,
		Rotation:  req.Rotation,
		Scale:     scale,
		Z:         req.Z,
		AssetURL:  req.AssetURL,
		CreatedAt: s.now(),
	}

	created, err := s.decorations.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.notify(created.Year, time.Month(created.Month))
	return created, nil
}

// Remove deletes a decoration.
func (s *service) Remove(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrIDRequired
	}

	record, err := s.decorations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.decorations.Delete(ctx, id); err != nil {
		return err
	}

	s.notify(record.Year, time.Month(record.Month))
	return nil
}

// MonthDecor returns the month's decorations in paint order. When the month is
// empty and the demo fallback is enabled, a deterministic starter set is
// returned instead; it is never persisted.
func (s *service) MonthDecor(ctx context.Context, year int, month time.Month) ([]*Decor, error) {
	records, err := s.decorations.ListMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 && s.demoFallback {
		return demoSet(year, month), nil
	}
	return records, nil
}

func (s *service) notify(year int, month time.Month) {
	for _, listener := range s.listeners {
		listener(year, month)
	}
}

func demoSet(year int, month time.Month) []*Decor {
	seeds := []struct {
		page     Page
		kind     Type
		x, y     float64
		rotation float64
	}{
		{PageLeft, TypeTape, 0.12, 0.06, -8},
		{PageLeft, TypePaperclip, 0.88, 0.10, 12},
		{PageRight, TypeSticker, 0.80, 0.82, 5},
	}

	out := make([]*Decor, 0, len(seeds))
	for i, seed := range seeds {
		out = append(out, &Decor{
			ID:       identity.DemoDecorUUID(year, int(month), string(seed.page), i),
			Year:     year,
			Month:    int(month),
			Page:     seed.page,
			Type:     seed.kind,
			X:        seed.x,
			Y:        seed.y,
			Rotation: seed.rotation,
			Scale:    1,
			Z:        i,
		})
	}
	return out
}
