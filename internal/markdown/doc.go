// Package markdown renders planner entry bodies to HTML and imports
// entry files authored as markdown with YAML frontmatter. Imports are
// idempotent: a file's calendar date determines the entry id, so re-running
// an import rewrites the same records.
package markdown
