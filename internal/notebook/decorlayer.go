package notebook

import (
	"context"
	"time"

	"github.com/goliatone/go-planner/internal/decor"
	"github.com/goliatone/go-planner/internal/logging"
	"github.com/goliatone/go-planner/pkg/interfaces"
)

// DecorLayer is the session-scoped decoration cache. It mirrors Summaries:
// one fetch per (year, month) key, invalidated on admin writes, failures
// served as an empty set so the spread still renders.
type DecorLayer struct {
	loader *Loader[MonthKey, []*decor.Decor]
	logger interfaces.Logger
}

// NewDecorLayer builds the cache on top of the decor service.
func NewDecorLayer(svc decor.Service, logger interfaces.Logger) *DecorLayer {
	if logger == nil {
		logger = logging.NoOp()
	}
	layer := &DecorLayer{logger: logger}
	layer.loader = NewLoader(func(ctx context.Context, key MonthKey) ([]*decor.Decor, error) {
		return svc.MonthDecor(ctx, key.Year, key.Month)
	})
	return layer
}

// Month returns the month's decorations in paint order, or an empty set when
// the fetch fails.
func (d *DecorLayer) Month(ctx context.Context, year int, month time.Month) []*decor.Decor {
	decorations, err := d.loader.Get(ctx, MonthKey{Year: year, Month: month})
	if err != nil {
		d.logger.Warn("decor fetch failed", "year", year, "month", int(month), "error", err)
		return nil
	}
	return decorations
}

// Peek returns the cached decorations without triggering a fetch.
func (d *DecorLayer) Peek(year int, month time.Month) ([]*decor.Decor, bool) {
	return d.loader.Peek(MonthKey{Year: year, Month: month})
}

// Invalidate drops the cache entry for one month.
func (d *DecorLayer) Invalidate(year int, month time.Month) {
	d.loader.Invalidate(MonthKey{Year: year, Month: month})
}
