package http

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-planner/internal/journal"
	"github.com/goliatone/go-planner/internal/runtimeconfig"
)

// ShareLinks builds public URLs for planner days and entries from a go-urlkit
// route table. Entry links prefer the share slug when one exists, falling back
// to the day route.
type ShareLinks struct {
	manager    *urlkit.RouteManager
	group      string
	dayRoute   string
	entryRoute string
}

// NewShareLinks constructs a link builder from the runtime link configuration.
// Returns nil when no route table is configured; callers treat a nil builder
// as "no share links".
func NewShareLinks(cfg runtimeconfig.LinksConfig) *ShareLinks {
	if cfg.RouteConfig == nil {
		return nil
	}

	group := strings.TrimSpace(cfg.Group)
	if group == "" {
		group = "planner"
	}
	dayRoute := strings.TrimSpace(cfg.DayRoute)
	if dayRoute == "" {
		dayRoute = "day"
	}
	entryRoute := strings.TrimSpace(cfg.EntryRoute)
	if entryRoute == "" {
		entryRoute = "entry"
	}

	return &ShareLinks{
		manager:    urlkit.NewRouteManager(cfg.RouteConfig),
		group:      group,
		dayRoute:   dayRoute,
		entryRoute: entryRoute,
	}
}

// DayLink builds the public URL for a calendar date.
func (l *ShareLinks) DayLink(date string) (string, error) {
	if l == nil {
		return "", nil
	}
	normalized, err := journal.ParseDate(date)
	if err != nil {
		return "", err
	}
	builder, err := l.safeBuilder(l.dayRoute)
	if err != nil {
		return "", err
	}
	return builder.WithParam("date", normalized).Build()
}

// EntryLink builds the public URL for an entry. Public entries with a share
// slug get the entry route; everything else resolves through the day route.
func (l *ShareLinks) EntryLink(entry *journal.Entry) (string, error) {
	if l == nil || entry == nil {
		return "", nil
	}
	if entry.Slug != nil && strings.TrimSpace(*entry.Slug) != "" {
		builder, err := l.safeBuilder(l.entryRoute)
		if err != nil {
			return "", err
		}
		return builder.WithParam("slug", strings.TrimSpace(*entry.Slug)).Build()
	}
	return l.DayLink(entry.Date)
}

func (l *ShareLinks) safeBuilder(route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("http: share link route %q not found: %v", route, rec)
		}
	}()
	group := l.manager.Group(l.group)
	builder = group.Builder(route)
	return builder, err
}
