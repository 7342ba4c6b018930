package decorcmd

import (
	"errors"

	"github.com/goliatone/go-planner/internal/commands"
	"github.com/goliatone/go-planner/internal/decor"
	"github.com/goliatone/go-planner/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the decor command handlers produced by RegisterDecorCommands.
type HandlerSet struct {
	Place  *PlaceDecorHandler
	Remove *RemoveDecorHandler
}

// RegisterDecorCommands builds the decor command handlers over the provided
// service and registers them with the registry.
func RegisterDecorCommands(reg CommandRegistry, service decor.Service, provider interfaces.LoggerProvider) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("decor command registration: service is nil")
	}

	logger := commands.CommandLogger(provider, "decor")

	set := &HandlerSet{
		Place:  NewPlaceDecorHandler(service, logger),
		Remove: NewRemoveDecorHandler(service, logger),
	}

	if reg != nil {
		for _, handler := range []any{set.Place, set.Remove} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}

	return set, nil
}
