package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	plannerjournal "github.com/goliatone/go-planner/journal"
	"github.com/goliatone/go-planner/internal/validation"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// Service exposes planner journal use-cases.
type Service interface {
	CreateEntry(ctx context.Context, req CreateEntryRequest) (*Entry, error)
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (*Entry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	GetEntryByDate(ctx context.Context, date string) (*Entry, error)
	AttachMedia(ctx context.Context, req AttachMediaRequest) (*Media, error)
	RemoveMedia(ctx context.Context, id uuid.UUID) error
	MonthSummaries(ctx context.Context, year int, month time.Month) ([]DaySummary, error)
}

// CreateEntryRequest captures the information required to create a planner entry.
// Supplying an ID makes the write idempotent: re-submitting the same ID for the
// same date updates the stored entry instead of failing.
type CreateEntryRequest struct {
	ID         *uuid.UUID
	Date       string
	Title      *string
	Body       *string
	Visibility Visibility
	Metadata   map[string]any
}

// UpdateEntryRequest applies partial changes to an existing entry. Nil fields
// are left untouched.
type UpdateEntryRequest struct {
	ID         uuid.UUID
	Date       *string
	Title      *string
	Body       *string
	Visibility *Visibility
	Metadata   map[string]any
}

// AttachMediaRequest captures a media attachment for an entry.
type AttachMediaRequest struct {
	ID       *uuid.UUID
	EntryID  uuid.UUID
	Kind     MediaKind
	URL      string
	Caption  *string
	Position int
}

// BodyRenderer converts entry body markdown into HTML.
type BodyRenderer interface {
	Render(markdown string) (string, error)
}

// ChangeListener receives the calendar date affected by a journal write.
// Listeners run synchronously after the write commits.
type ChangeListener func(date string)

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

// WithMetadataSchema validates entry metadata payloads against the given JSON
// schema on every write.
func WithMetadataSchema(schema map[string]any) ServiceOption {
	return func(s *service) {
		s.metadataSchema = schema
	}
}

// WithBodyRenderer enables markdown rendering of entry bodies on read.
func WithBodyRenderer(renderer BodyRenderer) ServiceOption {
	return func(s *service) {
		s.renderer = renderer
	}
}

// WithPublicSlugs derives a shareable slug for entries whose visibility is not
// private.
func WithPublicSlugs(enabled bool) ServiceOption {
	return func(s *service) {
		s.publicSlugs = enabled
	}
}

// WithChangeListener registers a callback invoked after every successful write
// with the affected date.
func WithChangeListener(listener ChangeListener) ServiceOption {
	return func(s *service) {
		if listener != nil {
			s.listeners = append(s.listeners, listener)
		}
	}
}

// service implements Service.
type service struct {
	entries        EntryRepository
	media          MediaRepository
	now            func() time.Time
	id             IDGenerator
	metadataSchema map[string]any
	renderer       BodyRenderer
	publicSlugs    bool
	listeners      []ChangeListener
}

// NewService constructs a journal service with the required dependencies.
func NewService(entries EntryRepository, media MediaRepository, opts ...ServiceOption) Service {
	s := &service{
		entries: entries,
		media:   media,
		now:     time.Now,
		id:      uuid.New,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateEntry records a new entry for a calendar date. Each date holds at most
// one entry; a second create for an occupied date fails with DateConflictError
// unless it re-submits the existing entry's ID.
func (s *service) CreateEntry(ctx context.Context, req CreateEntryRequest) (*Entry, error) {
	date, err := plannerjournal.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	visibility := chooseVisibility(req.Visibility)
	if !visibility.Valid() {
		return nil, ErrVisibilityInvalid
	}

	if err := s.validateMetadata(req.Metadata); err != nil {
		return nil, err
	}

	if existing, err := s.entries.GetByDate(ctx, date); err == nil && existing != nil {
		if req.ID != nil && *req.ID == existing.ID {
			return s.UpdateEntry(ctx, UpdateEntryRequest{
				ID:         existing.ID,
				Title:      req.Title,
				Body:       req.Body,
				Visibility: &visibility,
				Metadata:   req.Metadata,
			})
		}
		return nil, &DateConflictError{Date: date, ExistingID: existing.ID}
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	now := s.now()
	record := &Entry{
		ID:         s.entryID(req.ID),
		Date:       date,
		Title:      req.Title,
		Body:       req.Body,
		Visibility: visibility,
		Metadata:   cloneMetadata(req.Metadata),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	record.Slug = s.entrySlug(record)

	created, err := s.entries.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.notify(created.Date)
	return s.decorateEntry(created)
}

// UpdateEntry applies the non-nil fields of the request to a stored entry.
func (s *service) UpdateEntry(ctx context.Context, req UpdateEntryRequest) (*Entry, error) {
	if req.ID == uuid.Nil {
		return nil, ErrEntryIDRequired
	}

	record, err := s.entries.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	previousDate := record.Date
	if req.Date != nil {
		date, err := plannerjournal.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		if date != record.Date {
			if existing, err := s.entries.GetByDate(ctx, date); err == nil && existing != nil {
				return nil, &DateConflictError{Date: date, ExistingID: existing.ID}
			} else if err != nil {
				var notFound *NotFoundError
				if !errors.As(err, &notFound) {
					return nil, err
				}
			}
			record.Date = date
		}
	}

	if req.Title != nil {
		record.Title = req.Title
	}
	if req.Body != nil {
		record.Body = req.Body
	}
	if req.Visibility != nil {
		if !req.Visibility.Valid() {
			return nil, ErrVisibilityInvalid
		}
		record.Visibility = *req.Visibility
	}
	if req.Metadata != nil {
		if err := s.validateMetadata(req.Metadata); err != nil {
			return nil, err
		}
		record.Metadata = cloneMetadata(req.Metadata)
	}

	record.Slug = s.entrySlug(record)
	record.UpdatedAt = s.now()

	updated, err := s.entries.Update(ctx, record)
	if err != nil {
		return nil, err
	}

	if previousDate != updated.Date {
		s.notify(previousDate)
	}
	s.notify(updated.Date)
	return s.decorateEntry(updated)
}

// DeleteEntry removes an entry and every media attachment it owns.
func (s *service) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrEntryIDRequired
	}

	record, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.media.DeleteByEntry(ctx, id); err != nil {
		return err
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return err
	}

	s.notify(record.Date)
	return nil
}

// GetEntry fetches an entry by identifier with its media attached.
func (s *service) GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error) {
	record, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.hydrateEntry(ctx, record)
}

// GetEntryByDate fetches the entry for a calendar date with its media attached.
func (s *service) GetEntryByDate(ctx context.Context, date string) (*Entry, error) {
	normalized, err := plannerjournal.ParseDate(date)
	if err != nil {
		return nil, err
	}

	record, err := s.entries.GetByDate(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return s.hydrateEntry(ctx, record)
}

// AttachMedia records a media attachment against an existing entry.
func (s *service) AttachMedia(ctx context.Context, req AttachMediaRequest) (*Media, error) {
	if req.EntryID == uuid.Nil {
		return nil, ErrEntryIDRequired
	}
	if !req.Kind.Valid() {
		return nil, ErrMediaKindInvalid
	}
	if strings.TrimSpace(req.URL) == "" {
		return nil, ErrMediaURLRequired
	}

	entry, err := s.entries.GetByID(ctx, req.EntryID)
	if err != nil {
		return nil, err
	}

	id := s.id()
	if req.ID != nil && *req.ID != uuid.Nil {
		id = *req.ID
		if existing, err := s.media.GetByID(ctx, id); err == nil && existing != nil {
			return existing, nil
		}
	}

	record := &Media{
		ID:        id,
		EntryID:   entry.ID,
		Kind:      req.Kind,
		URL:       strings.TrimSpace(req.URL),
		Caption:   req.Caption,
		Position:  req.Position,
		CreatedAt: s.now(),
	}

	created, err := s.media.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.notify(entry.Date)
	return created, nil
}

// RemoveMedia deletes a media attachment.
func (s *service) RemoveMedia(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrMediaIDRequired
	}

	record, err := s.media.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.media.Delete(ctx, id); err != nil {
		return err
	}

	if entry, err := s.entries.GetByID(ctx, record.EntryID); err == nil {
		s.notify(entry.Date)
	}
	return nil
}

// MonthSummaries projects one DaySummary per calendar day of the month.
func (s *service) MonthSummaries(ctx context.Context, year int, month time.Month) ([]DaySummary, error) {
	entries, err := s.entries.ListMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(entries))
	byID := make(map[uuid.UUID]*Entry, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
		byID[entry.ID] = entry
	}

	imageCounts := make(map[string]int)
	mediaDates := make(map[string]bool)
	if len(ids) > 0 {
		attachments, err := s.media.ListByEntryIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, attachment := range attachments {
			owner, ok := byID[attachment.EntryID]
			if !ok {
				continue
			}
			mediaDates[owner.Date] = true
			if attachment.Kind == MediaKindImage {
				imageCounts[owner.Date]++
			}
		}
	}

	entryDates := make(map[string]bool, len(entries))
	for _, entry := range entries {
		entryDates[entry.Date] = true
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	summaries := make([]DaySummary, 0, days)
	for day := 1; day <= days; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
		summaries = append(summaries, DaySummary{
			Date:               date,
			HasEntry:           entryDates[date],
			AttachedImageCount: imageCounts[date],
			HasAnyMedia:        mediaDates[date],
		})
	}
	return summaries, nil
}

func (s *service) hydrateEntry(ctx context.Context, record *Entry) (*Entry, error) {
	attachments, err := s.media.ListByEntry(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.Media = attachments
	return s.decorateEntry(record)
}

func (s *service) decorateEntry(record *Entry) (*Entry, error) {
	if s.renderer == nil || record.Body == nil || *record.Body == "" {
		return record, nil
	}
	html, err := s.renderer.Render(*record.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", plannerjournal.ErrEntryBodyUnrenders, err)
	}
	record.BodyHTML = html
	return record, nil
}

func (s *service) validateMetadata(metadata map[string]any) error {
	if len(metadata) == 0 || s.metadataSchema == nil {
		return nil
	}
	if err := validation.ValidatePayload(s.metadataSchema, metadata); err != nil {
		return fmt.Errorf("%w: %v", ErrMetadataInvalid, err)
	}
	return nil
}

func (s *service) entryID(requested *uuid.UUID) uuid.UUID {
	if requested != nil && *requested != uuid.Nil {
		return *requested
	}
	return s.id()
}

// entrySlug derives a shareable slug for non-private entries when public slugs
// are enabled. Private entries never carry a slug.
func (s *service) entrySlug(record *Entry) *string {
	if !s.publicSlugs || record.Visibility == VisibilityPrivate {
		return nil
	}

	source := record.Date
	if record.Title != nil && strings.TrimSpace(*record.Title) != "" {
		source = *record.Title
	}
	normalized, err := slug.Normalize(source)
	if err != nil || normalized == "" {
		normalized = record.Date
	}
	return &normalized
}

func (s *service) notify(date string) {
	for _, listener := range s.listeners {
		listener(date)
	}
}

func chooseVisibility(v Visibility) Visibility {
	if v == "" {
		return VisibilityPrivate
	}
	return v
}

func cloneMetadata(metadata map[string]any) map[string]any {
	if metadata == nil {
		return nil
	}
	out := make(map[string]any, len(metadata))
	for k, v := range metadata {
		out[k] = v
	}
	return out
}
