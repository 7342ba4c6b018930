package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Loader discovers planner entry files on a filesystem. File names double as
// the fallback date: content/2026-03-14.md imports as March 14th unless the
// frontmatter says otherwise.
type Loader struct {
	fs      fs.FS
	pattern string
}

// LoaderConfig configures entry file discovery.
type LoaderConfig struct {
	// Pattern limits discovered files (defaults to "*.md").
	Pattern string
}

// NewLoader constructs a Loader over the provided filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.md"
	}
	return &Loader{fs: filesystem, pattern: pattern}
}

// LoadFile reads and parses a single entry file.
func (l *Loader) LoadFile(ctx context.Context, filePath string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel := path.Clean(strings.TrimPrefix(filePath, "./"))
	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	return ParseDocument(rel, data, dateFromFileName(rel))
}

// LoadDirectory discovers entry files under dir, sorted by date.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*Document, error) {
	root := path.Clean(dir)
	if root == "" {
		root = "."
	}

	var docs []*Document

	walkErr := fs.WalkDir(l.fs, root, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		match, matchErr := path.Match(l.pattern, path.Base(filePath))
		if matchErr != nil || !match {
			return matchErr
		}
		doc, loadErr := l.LoadFile(ctx, filePath)
		if loadErr != nil {
			return loadErr
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Date != docs[j].Date {
			return docs[i].Date < docs[j].Date
		}
		return docs[i].FilePath < docs[j].FilePath
	})

	return docs, nil
}

func dateFromFileName(filePath string) string {
	base := path.Base(filePath)
	return strings.TrimSuffix(base, path.Ext(base))
}
