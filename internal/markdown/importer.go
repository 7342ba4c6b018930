package markdown

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-planner/internal/identity"
	"github.com/goliatone/go-planner/internal/journal"
	"github.com/goliatone/go-planner/internal/logging"
	"github.com/goliatone/go-planner/pkg/interfaces"
)

var ErrJournalServiceRequired = errors.New("markdown importer: journal service is required")

// ImporterConfig encapsulates dependencies required to persist entry documents.
type ImporterConfig struct {
	Journal journal.Service
	Logger  interfaces.Logger
}

// ImportOptions tune a single import run.
type ImportOptions struct {
	// DryRun parses and diffs without writing.
	DryRun bool
	// PruneMedia removes previously imported attachments that no longer appear
	// in the document. Only attachments this importer created are candidates;
	// anything attached through the admin editor is left alone.
	PruneMedia bool
}

// ImportResult reports what an import run touched.
type ImportResult struct {
	CreatedEntryIDs []uuid.UUID
	UpdatedEntryIDs []uuid.UUID
	SkippedEntryIDs []uuid.UUID
	AttachedMedia   int
	PrunedMedia     int
	Errors          []error
}

// Importer persists parsed entry documents through the journal service.
// Entry ids derive from the calendar date and media ids from the entry id and
// URL, so re-running an import converges on the same records.
type Importer struct {
	journal journal.Service
	logger  interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		journal: cfg.Journal,
		logger:  logger,
	}
}

// ImportDocument imports a single entry document.
func (i *Importer) ImportDocument(ctx context.Context, doc *Document, opts ImportOptions) (*ImportResult, error) {
	return i.ImportDocuments(ctx, []*Document{doc}, opts)
}

// ImportDocuments imports a slice of entry documents. Documents sharing a date
// collapse onto the same entry, last writer wins.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*Document, opts ImportOptions) (*ImportResult, error) {
	if i.journal == nil {
		return nil, ErrJournalServiceRequired
	}

	result := &ImportResult{}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if err := i.applyDocument(ctx, doc, opts, result); err != nil {
			result.Errors = append(result.Errors, err)
			i.logger.Error("import entry failed", "path", doc.FilePath, "date", doc.Date, "error", err)
		}
	}

	if len(result.Errors) > 0 {
		return result, result.Errors[0]
	}
	return result, nil
}

func (i *Importer) applyDocument(ctx context.Context, doc *Document, opts ImportOptions, result *ImportResult) error {
	entryID := identity.EntryUUID(doc.Date)

	existing, err := i.journal.GetEntryByDate(ctx, doc.Date)
	if err != nil {
		var notFound *journal.NotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("markdown importer: lookup %s: %w", doc.Date, err)
		}
		existing = nil
	}
	if existing != nil && existing.ID != entryID {
		// The date is taken by a hand-authored entry; imports never clobber it.
		result.SkippedEntryIDs = append(result.SkippedEntryIDs, existing.ID)
		i.logger.Warn("import skipped, date owned by non-imported entry", "date", doc.Date, "entry_id", existing.ID)
		return nil
	}

	if opts.DryRun {
		if existing == nil || documentChanged(existing, doc) {
			i.logger.Info("dry run, entry would change", "date", doc.Date)
		}
		result.SkippedEntryIDs = append(result.SkippedEntryIDs, entryID)
		return nil
	}

	if existing != nil && !documentChanged(existing, doc) && !i.mediaChanged(existing, doc, opts) {
		result.SkippedEntryIDs = append(result.SkippedEntryIDs, entryID)
		return nil
	}

	body := string(doc.Body)
	entry, err := i.journal.CreateEntry(ctx, journal.CreateEntryRequest{
		ID:         &entryID,
		Date:       doc.Date,
		Title:      optionalString(doc.Title),
		Body:       optionalString(body),
		Visibility: doc.Visibility,
		Metadata:   doc.Metadata,
	})
	if err != nil {
		return fmt.Errorf("markdown importer: write %s: %w", doc.Date, err)
	}

	if existing == nil {
		result.CreatedEntryIDs = append(result.CreatedEntryIDs, entry.ID)
	} else {
		result.UpdatedEntryIDs = append(result.UpdatedEntryIDs, entry.ID)
	}

	if err := i.applyMedia(ctx, entry, doc, opts, result); err != nil {
		return err
	}

	i.logger.Info("imported entry", "date", doc.Date, "entry_id", entry.ID, "media", len(doc.Media))
	return nil
}

func (i *Importer) applyMedia(ctx context.Context, entry *journal.Entry, doc *Document, opts ImportOptions, result *ImportResult) error {
	wanted := make(map[uuid.UUID]struct{}, len(doc.Media))

	for position, spec := range doc.Media {
		mediaID := identity.MediaUUID(entry.ID, spec.URL)
		wanted[mediaID] = struct{}{}

		_, err := i.journal.AttachMedia(ctx, journal.AttachMediaRequest{
			ID:       &mediaID,
			EntryID:  entry.ID,
			Kind:     spec.Kind,
			URL:      spec.URL,
			Caption:  optionalString(spec.Caption),
			Position: position,
		})
		if err != nil {
			return fmt.Errorf("markdown importer: attach %s to %s: %w", spec.URL, doc.Date, err)
		}
		result.AttachedMedia++
	}

	if !opts.PruneMedia {
		return nil
	}

	fresh, err := i.journal.GetEntry(ctx, entry.ID)
	if err != nil {
		return fmt.Errorf("markdown importer: reload %s: %w", doc.Date, err)
	}
	for _, attachment := range fresh.Media {
		if _, keep := wanted[attachment.ID]; keep {
			continue
		}
		if attachment.ID != identity.MediaUUID(entry.ID, attachment.URL) {
			continue
		}
		if err := i.journal.RemoveMedia(ctx, attachment.ID); err != nil {
			return fmt.Errorf("markdown importer: prune %s from %s: %w", attachment.URL, doc.Date, err)
		}
		result.PrunedMedia++
	}
	return nil
}

// mediaChanged reports whether the document's attachment set differs from what
// is stored, either by addition or (when pruning) by removal.
func (i *Importer) mediaChanged(entry *journal.Entry, doc *Document, opts ImportOptions) bool {
	stored := make(map[uuid.UUID]struct{}, len(entry.Media))
	for _, attachment := range entry.Media {
		stored[attachment.ID] = struct{}{}
	}

	wanted := make(map[uuid.UUID]struct{}, len(doc.Media))
	for _, spec := range doc.Media {
		mediaID := identity.MediaUUID(entry.ID, spec.URL)
		wanted[mediaID] = struct{}{}
		if _, ok := stored[mediaID]; !ok {
			return true
		}
	}

	if opts.PruneMedia {
		for _, attachment := range entry.Media {
			if _, keep := wanted[attachment.ID]; keep {
				continue
			}
			if attachment.ID == identity.MediaUUID(entry.ID, attachment.URL) {
				return true
			}
		}
	}
	return false
}

func documentChanged(entry *journal.Entry, doc *Document) bool {
	if stringValue(entry.Title) != doc.Title {
		return true
	}
	if strings.TrimSpace(stringValue(entry.Body)) != strings.TrimSpace(string(doc.Body)) {
		return true
	}
	if entry.Visibility != doc.Visibility {
		return true
	}
	return false
}

func stringValue(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
