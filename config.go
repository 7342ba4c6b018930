package planner

import "github.com/goliatone/go-planner/internal/runtimeconfig"

var (
	ErrAdvancedCacheRequiresEnabledCache = runtimeconfig.ErrAdvancedCacheRequiresEnabledCache
	ErrImportFeatureRequired             = runtimeconfig.ErrImportFeatureRequired
	ErrImportContentDirRequired          = runtimeconfig.ErrImportContentDirRequired
	ErrLoggingProviderRequired           = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown            = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid               = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid              = runtimeconfig.ErrLoggingFormatInvalid
	ErrNotebookYearInvalid               = runtimeconfig.ErrNotebookYearInvalid
	ErrNotebookFlipDurationInvalid       = runtimeconfig.ErrNotebookFlipDurationInvalid
	ErrNotebookPitchBandInvalid          = runtimeconfig.ErrNotebookPitchBandInvalid
	ErrNotebookDebounceInvalid           = runtimeconfig.ErrNotebookDebounceInvalid
)

type (
	Config               = runtimeconfig.Config
	StorageConfig        = runtimeconfig.StorageConfig
	CacheConfig          = runtimeconfig.CacheConfig
	NotebookConfig       = runtimeconfig.NotebookConfig
	JournalConfig        = runtimeconfig.JournalConfig
	DecorConfig          = runtimeconfig.DecorConfig
	LinksConfig          = runtimeconfig.LinksConfig
	Features             = runtimeconfig.Features
	ImportConfig         = runtimeconfig.ImportConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
