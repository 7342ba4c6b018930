package di

import (
	"context"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-planner/internal/commands"
	decorcmd "github.com/goliatone/go-planner/internal/commands/decor"
	journalcmd "github.com/goliatone/go-planner/internal/commands/journal"
	notebookcmd "github.com/goliatone/go-planner/internal/commands/notebook"
	"github.com/goliatone/go-planner/internal/decor"
	plannerhttp "github.com/goliatone/go-planner/internal/http"
	"github.com/goliatone/go-planner/internal/journal"
	"github.com/goliatone/go-planner/internal/logging"
	"github.com/goliatone/go-planner/internal/logging/gologger"
	"github.com/goliatone/go-planner/internal/markdown"
	"github.com/goliatone/go-planner/internal/notebook"
	"github.com/goliatone/go-planner/internal/runtimeconfig"
	"github.com/goliatone/go-planner/pkg/interfaces"
)

// Container wires module dependencies: in-memory repositories by default, bun
// repositories when a database is supplied, and a notebook session whose
// caches are invalidated by service writes.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	audioPlayer    interfaces.AudioPlayer

	entryRepo journal.EntryRepository
	mediaRepo journal.MediaRepository
	decorRepo decor.Repository

	journalSvc journal.Service
	decorSvc   decor.Service

	session  *notebook.Session
	renderer *markdown.Renderer
	links    *plannerhttp.ShareLinks
	importer *markdown.Importer
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB switches both journal and decor storage to bun repositories.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider resolved from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithAudioPlayer wires the audio backend for notebook cues. Without one the
// session plays cues into a no-op sink.
func WithAudioPlayer(player interfaces.AudioPlayer) Option {
	return func(c *Container) {
		c.audioPlayer = player
	}
}

// WithJournalService overrides the default journal service binding.
func WithJournalService(svc journal.Service) Option {
	return func(c *Container) {
		c.journalSvc = svc
	}
}

// WithDecorService overrides the default decor service binding.
func WithDecorService(svc decor.Service) Option {
	return func(c *Container) {
		c.decorSvc = svc
	}
}

// WithEntryRepository overrides the journal entry repository binding.
func WithEntryRepository(repo journal.EntryRepository) Option {
	return func(c *Container) {
		c.entryRepo = repo
	}
}

// WithMediaRepository overrides the journal media repository binding.
func WithMediaRepository(repo journal.MediaRepository) Option {
	return func(c *Container) {
		c.mediaRepo = repo
	}
}

// WithDecorRepository overrides the decoration repository binding.
func WithDecorRepository(repo decor.Repository) Option {
	return func(c *Container) {
		c.decorRepo = repo
	}
}

// NewContainer builds the dependency graph for the supplied configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) *Container {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:    cfg,
		cacheTTL:  cacheTTL,
		entryRepo: journal.NewMemoryEntryRepository(),
		mediaRepo: journal.NewMemoryMediaRepository(),
		decorRepo: decor.NewMemoryRepository(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	c.configureLogging()
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureServices()
	c.configureSession()
	c.configureLinks()
	c.configureImport()

	return c
}

func (c *Container) configureLogging() {
	if c.loggerProvider != nil {
		return
	}
	if !c.Config.Features.Logger {
		return
	}
	if c.Config.Logging.Provider != "gologger" {
		return
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return
	}
	c.loggerProvider = provider
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || !c.Config.Features.RepositoryCache {
		return
	}

	if c.cacheService == nil {
		cacheCfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cacheCfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cacheCfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	c.entryRepo = journal.NewBunEntryRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.mediaRepo = journal.NewBunMediaRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.decorRepo = decor.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureServices() {
	if c.journalSvc == nil {
		journalOpts := []journal.ServiceOption{
			journal.WithChangeListener(c.onJournalChange),
		}
		if schema := c.Config.Journal.MetadataSchema; schema != nil {
			journalOpts = append(journalOpts, journal.WithMetadataSchema(schema))
		}
		if c.Config.Journal.RenderBodies {
			journalOpts = append(journalOpts, journal.WithBodyRenderer(c.Renderer()))
		}
		if c.Config.Journal.PublicSlugs {
			journalOpts = append(journalOpts, journal.WithPublicSlugs(true))
		}
		c.journalSvc = journal.NewService(c.entryRepo, c.mediaRepo, journalOpts...)
	}

	if c.decorSvc == nil {
		decorOpts := []decor.ServiceOption{
			decor.WithChangeListener(c.onDecorChange),
		}
		if limit := c.Config.Decor.MaxPerPage; limit > 0 {
			decorOpts = append(decorOpts, decor.WithMaxPerPage(limit))
		}
		if c.Config.Notebook.DemoDecorOnEmpty {
			decorOpts = append(decorOpts, decor.WithDemoFallback(true))
		}
		c.decorSvc = decor.NewService(c.decorRepo, decorOpts...)
	}
}

func (c *Container) configureSession() {
	year := c.Config.Notebook.Year
	if year <= 0 {
		year = time.Now().Year()
	}

	player := c.audioPlayer
	if player == nil {
		player = silentPlayer{}
	}

	c.session = notebook.NewSession(
		c.journalSvc,
		c.decorSvc,
		player,
		logging.NotebookLogger(c.loggerProvider),
		notebook.SessionConfig{
			Year: year,
			Cue: notebook.CueConfig{
				NominalFlip: c.Config.Notebook.FlipDuration,
				PitchMin:    c.Config.Notebook.PitchMin,
				PitchMax:    c.Config.Notebook.PitchMax,
				Jitter:      c.Config.Notebook.PitchJitter,
				Debounce:    c.Config.Notebook.CueDebounce,
				ClipDelay:   c.Config.Notebook.ClipCueDelay,
			},
		},
	)

	if c.Config.Notebook.PrefetchMonths {
		c.session.Prefetch(context.Background())
	}
}

func (c *Container) configureLinks() {
	c.links = plannerhttp.NewShareLinks(c.Config.Links)
}

func (c *Container) configureImport() {
	if !c.Config.Features.Import || !c.Config.Import.Enabled {
		return
	}
	c.importer = markdown.NewImporter(markdown.ImporterConfig{
		Journal: c.journalSvc,
		Logger:  logging.ImportLogger(c.loggerProvider),
	})
}

// onJournalChange forwards entry writes into the session caches. Listeners are
// wired before the session exists, so the hop through the field is deliberate.
func (c *Container) onJournalChange(date string) {
	if c.session != nil {
		c.session.OnJournalChange(date)
	}
}

func (c *Container) onDecorChange(year int, month time.Month) {
	if c.session != nil {
		c.session.OnDecorChange(year, month)
	}
}

// JournalService exposes the wired journal service.
func (c *Container) JournalService() journal.Service {
	return c.journalSvc
}

// DecorService exposes the wired decoration service.
func (c *Container) DecorService() decor.Service {
	return c.decorSvc
}

// Session exposes the notebook session state machine.
func (c *Container) Session() *notebook.Session {
	return c.session
}

// Renderer lazily builds the goldmark body renderer.
func (c *Container) Renderer() *markdown.Renderer {
	if c.renderer == nil {
		c.renderer = markdown.NewRenderer(markdown.RendererConfig{
			HardWraps: c.Config.Import.Parser.HardWraps,
			Unsafe:    !c.Config.Import.Parser.SafeMode,
		})
	}
	return c.renderer
}

// ShareLinks exposes the go-urlkit share link builder; nil when unconfigured.
func (c *Container) ShareLinks() *plannerhttp.ShareLinks {
	return c.links
}

// Importer exposes the markdown importer; nil unless the import feature is on.
func (c *Container) Importer() *markdown.Importer {
	return c.importer
}

// ReaderAPI builds the read-only HTTP surface over the wired services.
func (c *Container) ReaderAPI(opts ...plannerhttp.ReaderOption) *plannerhttp.ReaderAPI {
	base := []plannerhttp.ReaderOption{
		plannerhttp.WithReaderJournalService(c.journalSvc),
		plannerhttp.WithReaderDecorService(c.decorSvc),
	}
	return plannerhttp.NewReaderAPI(append(base, opts...)...)
}

// AdminAPI builds the write HTTP surface over the wired services.
func (c *Container) AdminAPI(opts ...plannerhttp.AdminOption) *plannerhttp.AdminAPI {
	base := []plannerhttp.AdminOption{
		plannerhttp.WithAdminJournalService(c.journalSvc),
		plannerhttp.WithAdminDecorService(c.decorSvc),
	}
	return plannerhttp.NewAdminAPI(append(base, opts...)...)
}

// LoggerProvider exposes the resolved logger provider; nil means no-op logging.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// CommandRegistry records command handlers so hosts can expose them through a
// dispatcher, CLI, or cron integration.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandHandlers groups every command handler the container constructs.
type CommandHandlers struct {
	Journal              *journalcmd.HandlerSet
	Decor                *decorcmd.HandlerSet
	InvalidateMonthCache *notebookcmd.InvalidateMonthCacheHandler
}

// RegisterCommands builds the journal, decor, and notebook command handlers
// over the wired services and registers them with reg. A nil registry skips
// registration but still returns the constructed handlers.
func (c *Container) RegisterCommands(reg CommandRegistry) (*CommandHandlers, error) {
	journalSet, err := journalcmd.RegisterJournalCommands(reg, c.journalSvc, c.loggerProvider)
	if err != nil {
		return nil, err
	}

	decorSet, err := decorcmd.RegisterDecorCommands(reg, c.decorSvc, c.loggerProvider)
	if err != nil {
		return nil, err
	}

	invalidate := notebookcmd.NewInvalidateMonthCacheHandler(
		c.session,
		commands.CommandLogger(c.loggerProvider, "notebook"),
	)
	if reg != nil {
		if err := reg.RegisterCommand(invalidate); err != nil {
			return nil, err
		}
	}

	return &CommandHandlers{
		Journal:              journalSet,
		Decor:                decorSet,
		InvalidateMonthCache: invalidate,
	}, nil
}

type silentPlayer struct{}

func (silentPlayer) Play(interfaces.Cue, float64) {}
