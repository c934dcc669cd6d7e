package di

import (
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"

	"github.com/saltaireguide/directory/internal/commands"
	listingscmd "github.com/saltaireguide/directory/internal/commands/listings"
	"github.com/saltaireguide/directory/internal/content"
	"github.com/saltaireguide/directory/internal/directory"
	"github.com/saltaireguide/directory/internal/fetcher"
	guidehttp "github.com/saltaireguide/directory/internal/http"
	"github.com/saltaireguide/directory/internal/importer"
	"github.com/saltaireguide/directory/internal/logging"
	"github.com/saltaireguide/directory/internal/logging/console"
	"github.com/saltaireguide/directory/internal/logging/gologger"
	"github.com/saltaireguide/directory/internal/markdown"
	"github.com/saltaireguide/directory/internal/runtimeconfig"
	"github.com/saltaireguide/directory/internal/seo"
	"github.com/saltaireguide/directory/pkg/interfaces"
)

// Container wires the guide's dependencies. Without a bun DB it falls back to
// in-memory repositories.
type Container struct {
	Config runtimeconfig.Config

	bunDB          *bun.DB
	cacheService   repocache.CacheService
	keySerializer  repocache.KeySerializer
	loggerProvider interfaces.LoggerProvider
	registry       *prometheus.Registry
	renderer       interfaces.MarkdownRenderer
	rolePolicy     fetcher.RolePolicy

	records content.RecordRepository
	images  content.ImageRepository

	fetcher       fetcher.Fetcher
	directory     *directory.Service
	importer      *importer.Importer
	importHandler *listingscmd.ImportListingsHandler
	publicAPI     *guidehttp.PublicAPI
}

// Option mutates the container before it is finalised.
type Option func(*Container)

func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the record cache built from Config.Cache.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithRepositories binds explicit stores, bypassing the bun and in-memory
// defaults.
func WithRepositories(records content.RecordRepository, images content.ImageRepository) Option {
	return func(c *Container) {
		c.records = records
		c.images = images
	}
}

// WithRegistry sets the Prometheus registry for page and command metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

func WithMarkdownRenderer(renderer interfaces.MarkdownRenderer) Option {
	return func(c *Container) {
		c.renderer = renderer
	}
}

// WithRolePolicy chooses how images with unknown roles are handled.
func WithRolePolicy(policy fetcher.RolePolicy) Option {
	return func(c *Container) {
		c.rolePolicy = policy
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureCacheDefaults(); err != nil {
		return nil, err
	}
	c.configureRepositories()

	if c.registry == nil {
		c.registry = prometheus.NewRegistry()
	}
	if c.renderer == nil {
		c.renderer = markdown.NewGoldmarkRenderer(markdown.RenderOptions{})
	}

	c.fetcher = fetcher.New(c.records, c.images,
		fetcher.WithLogger(logging.FetcherLogger(c.loggerProvider)),
		fetcher.WithRolePolicy(c.rolePolicy),
	)
	c.directory = directory.NewService(c.fetcher, directory.Config{
		CanonicalBase: cfg.Site.CanonicalBase,
		StorageBase:   cfg.Site.StorageBase,
		Site: seo.SiteDefaults{
			Name:        cfg.Site.Name,
			Description: cfg.Site.Description,
			OGImage:     cfg.Site.OGImage,
			Locale:      cfg.Site.Locale,
		},
	},
		directory.WithLogger(logging.DirectoryLogger(c.loggerProvider)),
		directory.WithMarkdownRenderer(c.renderer),
	)
	c.importer = importer.New(c.records, c.images,
		importer.WithLogger(logging.ImporterLogger(c.loggerProvider)),
	)

	metrics := commands.NewMetrics(c.registry)
	c.importHandler = listingscmd.NewImportListingsHandler(c.importer,
		commands.CommandLogger(c.loggerProvider, "listings"),
		nil,
		commands.WithMetrics[listingscmd.ImportListingsCommand](metrics.Executions, metrics.Duration),
	)
	c.publicAPI = guidehttp.NewPublicAPI(c.directory,
		guidehttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
		guidehttp.WithRegistry(c.registry),
	)
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	case "none":
	default:
		level, _ := console.ParseLevel(cfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	}
	return nil
}

func (c *Container) configureCacheDefaults() error {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return nil
	}
	if c.cacheService == nil {
		cacheCfg := repocache.DefaultConfig()
		cacheCfg.TTL = c.Config.Cache.TTL
		service, err := repocache.NewCacheService(cacheCfg)
		if err != nil {
			return err
		}
		c.cacheService = service
	}
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
	return nil
}

func (c *Container) configureRepositories() {
	if c.records != nil && c.images != nil {
		return
	}
	if c.bunDB != nil {
		if c.records == nil {
			c.records = content.NewBunRecordRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		}
		if c.images == nil {
			c.images = content.NewBunImageRepository(c.bunDB)
		}
		return
	}
	if c.records == nil {
		c.records = content.NewMemoryRecordRepository()
	}
	if c.images == nil {
		c.images = content.NewMemoryImageRepository()
	}
}

// CommandSubscription releases a dispatcher subscription.
type CommandSubscription interface {
	Unsubscribe()
}

// SubscribeCommands registers the command handlers with the go-command
// dispatcher.
func (c *Container) SubscribeCommands() []CommandSubscription {
	return []CommandSubscription{
		dispatcher.SubscribeCommand(command.Commander[listingscmd.ImportListingsCommand](c.importHandler)),
	}
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

func (c *Container) Registry() *prometheus.Registry { return c.registry }

func (c *Container) BunDB() *bun.DB { return c.bunDB }

func (c *Container) RecordRepository() content.RecordRepository { return c.records }

func (c *Container) ImageRepository() content.ImageRepository { return c.images }

func (c *Container) Fetcher() fetcher.Fetcher { return c.fetcher }

func (c *Container) DirectoryService() *directory.Service { return c.directory }

func (c *Container) Importer() *importer.Importer { return c.importer }

func (c *Container) ImportListingsHandler() *listingscmd.ImportListingsHandler {
	return c.importHandler
}

func (c *Container) PublicAPI() *guidehttp.PublicAPI { return c.publicAPI }
