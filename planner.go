// Package planner is a notebook-style journal module: date-indexed entries
// with media attachments, month-scoped day summaries, decorations in
// normalized page coordinates, and a flip-navigation session with audio cues.
package planner

import (
	"github.com/goliatone/go-planner/internal/decor"
	"github.com/goliatone/go-planner/internal/di"
	plannerhttp "github.com/goliatone/go-planner/internal/http"
	"github.com/goliatone/go-planner/internal/journal"
	"github.com/goliatone/go-planner/internal/markdown"
	"github.com/goliatone/go-planner/internal/notebook"
)

// JournalService exports the journal service contract for module consumers.
type JournalService = journal.Service

// DecorService exports the decoration service contract.
type DecorService = decor.Service

// Session exports the notebook session state machine.
type Session = notebook.Session

// ReaderAPI exports the read-only HTTP surface.
type ReaderAPI = plannerhttp.ReaderAPI

// AdminAPI exports the write HTTP surface.
type AdminAPI = plannerhttp.AdminAPI

// Importer exports the markdown entry importer.
type Importer = markdown.Importer

// CommandRegistry exports the handler registration contract for hosts wiring
// commands into a dispatcher, CLI, or cron integration.
type CommandRegistry = di.CommandRegistry

// CommandHandlers exports the constructed command handler sets.
type CommandHandlers = di.CommandHandlers

// Request DTOs re-exported for module consumers.
type (
	CreateEntryRequest = journal.CreateEntryRequest
	UpdateEntryRequest = journal.UpdateEntryRequest
	AttachMediaRequest = journal.AttachMediaRequest
	PlaceDecorRequest  = decor.PlaceDecorRequest
)

// Module is the top level planner runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a planner module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Module{container: di.NewContainer(cfg, opts...)}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Journal returns the configured journal service.
func (m *Module) Journal() JournalService {
	return m.container.JournalService()
}

// Decor returns the configured decoration service.
func (m *Module) Decor() DecorService {
	return m.container.DecorService()
}

// Session returns the notebook session wired to the module services.
func (m *Module) Session() *Session {
	return m.container.Session()
}

// Reader builds the read-only HTTP API over the module services.
func (m *Module) Reader(opts ...plannerhttp.ReaderOption) *ReaderAPI {
	return m.container.ReaderAPI(opts...)
}

// Admin builds the write HTTP API over the module services.
func (m *Module) Admin(opts ...plannerhttp.AdminOption) *AdminAPI {
	return m.container.AdminAPI(opts...)
}

// ShareLinks returns the share link builder; nil when links are unconfigured.
func (m *Module) ShareLinks() *plannerhttp.ShareLinks {
	return m.container.ShareLinks()
}

// Importer returns the markdown importer; nil unless the import feature is on.
func (m *Module) Importer() *Importer {
	return m.container.Importer()
}

// RegisterCommands builds the module's command handlers over the wired
// services and registers them with reg. A nil registry skips registration but
// still returns the handlers for direct execution.
func (m *Module) RegisterCommands(reg CommandRegistry) (*CommandHandlers, error) {
	return m.container.RegisterCommands(reg)
}
