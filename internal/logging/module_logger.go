package logging

import (
	"context"

	"github.com/goliatone/go-planner/pkg/interfaces"
)

const (
	rootModule     = "planner"
	journalModule  = "planner.journal"
	decorModule    = "planner.decor"
	notebookModule = "planner.notebook"
	adminModule    = "planner.admin"
	importModule   = "planner.import"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// JournalLogger returns the logger namespace reserved for journal services.
func JournalLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, journalModule)
}

// DecorLogger returns the logger namespace reserved for decoration services.
func DecorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, decorModule)
}

// NotebookLogger returns the logger namespace reserved for notebook sessions.
func NotebookLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, notebookModule)
}

// AdminLogger returns the logger namespace reserved for admin editors.
func AdminLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, adminModule)
}

// ImportLogger returns the logger namespace reserved for markdown imports.
func ImportLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, importModule)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
