package planner_test

import (
	"errors"
	"testing"

	planner "github.com/goliatone/go-planner"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := planner.DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestRepositoryCacheRequiresEnabledCache(t *testing.T) {
	cfg := planner.DefaultConfig()
	cfg.Features.RepositoryCache = true
	cfg.Cache.Enabled = false

	if err := cfg.Validate(); !errors.Is(err, planner.ErrAdvancedCacheRequiresEnabledCache) {
		t.Fatalf("expected cache dependency error, got %v", err)
	}
}

func TestImportRequiresFeatureAndContentDir(t *testing.T) {
	cfg := planner.DefaultConfig()
	cfg.Import.Enabled = true

	if err := cfg.Validate(); !errors.Is(err, planner.ErrImportFeatureRequired) {
		t.Fatalf("expected import feature error, got %v", err)
	}

	cfg.Features.Import = true
	cfg.Import.ContentDir = "  "
	if err := cfg.Validate(); !errors.Is(err, planner.ErrImportContentDirRequired) {
		t.Fatalf("expected content dir error, got %v", err)
	}
}

func TestNotebookPitchBandValidation(t *testing.T) {
	cfg := planner.DefaultConfig()
	cfg.Notebook.PitchMin = 1.2
	cfg.Notebook.PitchMax = 0.8

	if err := cfg.Validate(); !errors.Is(err, planner.ErrNotebookPitchBandInvalid) {
		t.Fatalf("expected pitch band error, got %v", err)
	}
}

func TestLoggingValidation(t *testing.T) {
	cfg := planner.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "zap"

	if err := cfg.Validate(); !errors.Is(err, planner.ErrLoggingProviderUnknown) {
		t.Fatalf("expected provider error, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, planner.ErrLoggingLevelInvalid) {
		t.Fatalf("expected level error, got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, planner.ErrLoggingFormatInvalid) {
		t.Fatalf("expected format error, got %v", err)
	}

	cfg.Logging.Format = "console"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid logging config, got %v", err)
	}
}
