package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrAdvancedCacheRequiresEnabledCache ensures repository caching builds only when cache is enabled.
var ErrAdvancedCacheRequiresEnabledCache = errors.New("planner config: repository cache feature requires cache to be enabled")
var ErrImportFeatureRequired = errors.New("planner config: import feature must be enabled to configure markdown import")
var ErrImportContentDirRequired = errors.New("planner config: import content directory is required when import is enabled")
var ErrLoggingProviderRequired = errors.New("planner config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("planner config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("planner config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("planner config: logging format is invalid")
var ErrNotebookYearInvalid = errors.New("planner config: notebook year must be positive")
var ErrNotebookFlipDurationInvalid = errors.New("planner config: notebook flip duration must be positive")
var ErrNotebookPitchBandInvalid = errors.New("planner config: notebook pitch band is inverted")
var ErrNotebookDebounceInvalid = errors.New("planner config: notebook cue debounce must be zero or positive")

// Config aggregates feature flags and adapter bindings for the planner module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled    bool
	Storage    StorageConfig
	Cache      CacheConfig
	Notebook   NotebookConfig
	Journal    JournalConfig
	Decor      DecorConfig
	Links      LinksConfig
	Features   Features
	Import     ImportConfig
	Logging    LoggingConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures repository cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// NotebookConfig tunes the session state machine and its audio cue policy.
type NotebookConfig struct {
	Year             int
	FlipDuration     time.Duration
	CueDebounce      time.Duration
	PitchMin         float64
	PitchMax         float64
	PitchJitter      float64
	ClipCueDelay     time.Duration
	PrefetchMonths   bool
	DemoDecorOnEmpty bool
}

// JournalConfig captures behaviour of the journal write/read services.
type JournalConfig struct {
	// MetadataSchema validates Entry.Metadata payloads when non-nil.
	MetadataSchema map[string]any
	// RenderBodies enables goldmark rendering of entry bodies on the read path.
	RenderBodies bool
	// PublicSlugs derives share slugs from titles for public entries.
	PublicSlugs bool
}

// DecorConfig captures behaviour of the decoration service.
type DecorConfig struct {
	// MaxPerPage caps decorations per (year, month, page); zero means no cap.
	MaxPerPage int
}

// LinksConfig captures routing configuration for share-link resolution.
type LinksConfig struct {
	RouteConfig *urlkit.Config
	Group       string
	DayRoute    string
	EntryRoute  string
}

// Features toggles module functionality.
type Features struct {
	Decor           bool
	RepositoryCache bool
	Import          bool
	Logger          bool
}

// ImportConfig captures filesystem and parser behaviour for markdown ingestion.
type ImportConfig struct {
	Enabled    bool
	ContentDir string
	Pattern    string
	Recursive  bool
	Parser     MarkdownParserConfig
}

// MarkdownParserConfig mirrors the goldmark parse options for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a notebook-backed site.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Notebook: NotebookConfig{
			Year:             time.Now().Year(),
			FlipDuration:     900 * time.Millisecond,
			CueDebounce:      150 * time.Millisecond,
			PitchMin:         0.9,
			PitchMax:         1.1,
			PitchJitter:      0.02,
			ClipCueDelay:     300 * time.Millisecond,
			PrefetchMonths:   true,
			DemoDecorOnEmpty: true,
		},
		Journal: JournalConfig{
			RenderBodies: true,
			PublicSlugs:  true,
		},
		Decor: DecorConfig{},
		Features: Features{
			Decor: true,
		},
		Import: ImportConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Features.RepositoryCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if cfg.Import.Enabled {
		if !cfg.Features.Import {
			return ErrImportFeatureRequired
		}
		if strings.TrimSpace(cfg.Import.ContentDir) == "" {
			return ErrImportContentDirRequired
		}
	}
	if cfg.Notebook.Year < 0 {
		return ErrNotebookYearInvalid
	}
	if cfg.Notebook.FlipDuration < 0 {
		return ErrNotebookFlipDurationInvalid
	}
	if cfg.Notebook.CueDebounce < 0 {
		return ErrNotebookDebounceInvalid
	}
	if cfg.Notebook.PitchMin != 0 || cfg.Notebook.PitchMax != 0 {
		if cfg.Notebook.PitchMin > cfg.Notebook.PitchMax {
			return ErrNotebookPitchBandInvalid
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "noop", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
