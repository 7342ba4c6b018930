package notebookcmd

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-planner/internal/commands"
	"github.com/goliatone/go-planner/internal/logging"
	"github.com/goliatone/go-planner/pkg/interfaces"
)

const invalidateMonthCacheMessageType = "planner.notebook.cache.invalidate"

// ErrSessionRequired is returned when the handler is executed without a session.
var ErrSessionRequired = errors.New("notebook command: session is required")

// MonthInvalidator drops cached month state. *notebook.Session satisfies it.
type MonthInvalidator interface {
	InvalidateMonth(year int, month time.Month)
}

// InvalidateMonthCacheCommand drops the cached summaries and decorations for
// one month so the next navigation refetches them.
type InvalidateMonthCacheCommand struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Type implements command.Message.
func (InvalidateMonthCacheCommand) Type() string { return invalidateMonthCacheMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m InvalidateMonthCacheCommand) Validate() error {
	errs := validation.Errors{}
	if m.Year <= 0 {
		errs["year"] = validation.NewError("planner.notebook.cache.invalidate.year_required", "year is required")
	}
	if m.Month < 1 || m.Month > 12 {
		errs["month"] = validation.NewError("planner.notebook.cache.invalidate.month_invalid", "month must be between 1 and 12")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// InvalidateMonthCacheHandler drops month caches via the notebook session.
type InvalidateMonthCacheHandler struct {
	inner *commands.Handler[InvalidateMonthCacheCommand]
}

// NewInvalidateMonthCacheHandler constructs a handler wired to the provided session.
func NewInvalidateMonthCacheHandler(session MonthInvalidator, logger interfaces.Logger, opts ...commands.HandlerOption[InvalidateMonthCacheCommand]) *InvalidateMonthCacheHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(_ context.Context, msg InvalidateMonthCacheCommand) error {
		if session == nil {
			return ErrSessionRequired
		}
		session.InvalidateMonth(msg.Year, time.Month(msg.Month))
		logging.WithFields(baseLogger, map[string]any{
			"year":  msg.Year,
			"month": msg.Month,
		}).Info("notebook.command.cache.invalidated")
		return nil
	}

	handlerOpts := []commands.HandlerOption[InvalidateMonthCacheCommand]{
		commands.WithLogger[InvalidateMonthCacheCommand](baseLogger),
		commands.WithOperation[InvalidateMonthCacheCommand]("notebook.cache.invalidate"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &InvalidateMonthCacheHandler{
		inner: commands.NewHandler[InvalidateMonthCacheCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[InvalidateMonthCacheCommand].Execute.
func (h *InvalidateMonthCacheHandler) Execute(ctx context.Context, msg InvalidateMonthCacheCommand) error {
	return h.inner.Execute(ctx, msg)
}
