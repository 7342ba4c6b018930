package journalcmd

import (
	"errors"

	"github.com/goliatone/go-planner/internal/commands"
	"github.com/goliatone/go-planner/internal/journal"
	"github.com/goliatone/go-planner/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the journal command handlers produced by RegisterJournalCommands.
type HandlerSet struct {
	CreateEntry *CreateEntryHandler
	UpdateEntry *UpdateEntryHandler
	DeleteEntry *DeleteEntryHandler
	AttachMedia *AttachMediaHandler
	RemoveMedia *RemoveMediaHandler
}

// RegisterJournalCommands builds the journal command handlers over the provided
// service and registers them with the registry. The HandlerSet is returned so
// callers can wire additional integrations (dispatcher, cron) as needed.
func RegisterJournalCommands(reg CommandRegistry, service journal.Service, provider interfaces.LoggerProvider) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("journal command registration: service is nil")
	}

	logger := commands.CommandLogger(provider, "journal")

	set := &HandlerSet{
		CreateEntry: NewCreateEntryHandler(service, logger),
		UpdateEntry: NewUpdateEntryHandler(service, logger),
		DeleteEntry: NewDeleteEntryHandler(service, logger),
		AttachMedia: NewAttachMediaHandler(service, logger),
		RemoveMedia: NewRemoveMediaHandler(service, logger),
	}

	if reg != nil {
		for _, handler := range []any{set.CreateEntry, set.UpdateEntry, set.DeleteEntry, set.AttachMedia, set.RemoveMedia} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}

	return set, nil
}
