package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-planner/journal"
)

// Document is one parsed planner entry file: frontmatter plus markdown body.
// The date comes from frontmatter when present, otherwise from the file name
// (2026-03-14.md).
type Document struct {
	FilePath   string
	Date       string
	Title      string
	Visibility journal.Visibility
	Media      []MediaSpec
	Metadata   map[string]any
	Body       []byte
}

// MediaSpec describes one attachment declared in entry frontmatter.
type MediaSpec struct {
	Kind    journal.MediaKind `yaml:"kind"`
	URL     string            `yaml:"url"`
	Caption string            `yaml:"caption"`
}

// ParseDocument extracts frontmatter and body from an entry source file.
// fallbackDate is used when the frontmatter carries no date; callers pass the
// date derived from the file name.
func ParseDocument(path string, source []byte, fallbackDate string) (*Document, error) {
	var meta entryEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter %s: %w", path, err)
	}

	date := strings.TrimSpace(meta.Date)
	if date == "" {
		date = strings.TrimSpace(fallbackDate)
	}
	normalized, err := journal.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", path, err)
	}

	visibility := journal.Visibility(strings.TrimSpace(meta.Visibility))
	if visibility == "" {
		visibility = journal.VisibilityPrivate
	}
	if !visibility.Valid() {
		return nil, fmt.Errorf("document %s: %w", path, journal.ErrVisibilityInvalid)
	}

	return &Document{
		FilePath:   path,
		Date:       normalized,
		Title:      strings.TrimSpace(meta.Title),
		Visibility: visibility,
		Media:      append([]MediaSpec(nil), meta.Media...),
		Metadata:   cloneMap(meta.Custom),
		Body:       body,
	}, nil
}

type entryEnvelope struct {
	Date       string         `yaml:"date"`
	Title      string         `yaml:"title"`
	Visibility string         `yaml:"visibility"`
	Media      []MediaSpec    `yaml:"media"`
	Custom     map[string]any `yaml:",inline"`
}

func cloneMap(input map[string]any) map[string]any {
	if len(input) == 0 {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
