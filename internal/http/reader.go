package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-planner/internal/decor"
	"github.com/goliatone/go-planner/internal/journal"
)

// ReaderAPI registers the read-only endpoints the notebook front end consumes:
// month summaries, day entries, and decorations.
type ReaderAPI struct {
	basePath     string
	journal      journal.Service
	decor        decor.Service
	visibilities map[journal.Visibility]struct{}
}

// ReaderOption mutates the ReaderAPI configuration.
type ReaderOption func(*ReaderAPI)

// NewReaderAPI constructs a ReaderAPI instance. The reader is the anonymous
// surface, so by default only public and unlisted entries are served; owner
// dashboards opt in to private entries with WithReaderVisibilities.
func NewReaderAPI(opts ...ReaderOption) *ReaderAPI {
	api := &ReaderAPI{
		basePath: "/planner",
		visibilities: map[journal.Visibility]struct{}{
			journal.VisibilityPublic:   {},
			journal.VisibilityUnlisted: {},
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithReaderBasePath overrides the base API path (defaults to "/planner").
func WithReaderBasePath(path string) ReaderOption {
	return func(api *ReaderAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithReaderJournalService wires the journal read service.
func WithReaderJournalService(service journal.Service) ReaderOption {
	return func(api *ReaderAPI) {
		api.journal = service
	}
}

// WithReaderDecorService wires the decoration service.
func WithReaderDecorService(service decor.Service) ReaderOption {
	return func(api *ReaderAPI) {
		api.decor = service
	}
}

// WithReaderVisibilities replaces the set of entry visibilities the reader
// serves. Including VisibilityPrivate is how an authenticated owner surface
// opts in to its own private entries.
func WithReaderVisibilities(visibilities ...journal.Visibility) ReaderOption {
	return func(api *ReaderAPI) {
		if len(visibilities) == 0 {
			return
		}
		api.visibilities = make(map[journal.Visibility]struct{}, len(visibilities))
		for _, v := range visibilities {
			api.visibilities[v] = struct{}{}
		}
	}
}

// Register attaches the reader endpoints to the provided mux.
func (api *ReaderAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: reader api is nil")
	}

	base := joinPath(api.basePath, "")
	mux.HandleFunc("GET "+joinPath(base, "entries-summary"), api.handleEntriesSummary)
	mux.HandleFunc("GET "+joinPath(base, "entries-by-date")+"/{date}", api.handleEntriesByDate)
	mux.HandleFunc("GET "+joinPath(base, "decor"), api.handleDecor)

	return nil
}

func (api *ReaderAPI) handleEntriesSummary(w http.ResponseWriter, r *http.Request) {
	if api.journal == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	year, month, err := parseMonthQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	summaries, err := api.journal.MonthSummaries(r.Context(), year, month)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (api *ReaderAPI) handleEntriesByDate(w http.ResponseWriter, r *http.Request) {
	if api.journal == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	date, err := journal.ParseDate(r.PathValue("date"))
	if err != nil {
		writeError(w, err)
		return
	}

	entries := []*journal.Entry{}
	entry, err := api.journal.GetEntryByDate(r.Context(), date)
	if err != nil {
		var notFound *journal.NotFoundError
		if !errors.As(err, &notFound) {
			writeError(w, err)
			return
		}
	}
	if entry != nil && api.visible(entry.Visibility) {
		entries = append(entries, entry)
	}
	writeJSON(w, http.StatusOK, entries)
}

func (api *ReaderAPI) handleDecor(w http.ResponseWriter, r *http.Request) {
	if api.decor == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	year, month, err := parseMonthQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	decorations, err := api.decor.MonthDecor(r.Context(), year, month)
	if err != nil {
		writeError(w, err)
		return
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		page := decor.Page(raw)
		if !page.Valid() {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: decor.ErrInvalidPage.Error()})
			return
		}
		filtered := make([]*decor.Decor, 0, len(decorations))
		for _, d := range decorations {
			if d.Page == page {
				filtered = append(filtered, d)
			}
		}
		decorations = filtered
	}

	writeJSON(w, http.StatusOK, decorations)
}

func (api *ReaderAPI) visible(v journal.Visibility) bool {
	_, ok := api.visibilities[v]
	return ok
}
