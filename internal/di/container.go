package di

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-mdsite/internal/articlesync"
	"github.com/goliatone/go-mdsite/internal/catalog"
	"github.com/goliatone/go-mdsite/internal/catalog/bunstore"
	"github.com/goliatone/go-mdsite/internal/catalog/scriptstore"
	"github.com/goliatone/go-mdsite/internal/catalog/yamlstore"
	articlescmd "github.com/goliatone/go-mdsite/internal/commands/articles"
	"github.com/goliatone/go-mdsite/internal/logging"
	"github.com/goliatone/go-mdsite/internal/logging/console"
	"github.com/goliatone/go-mdsite/internal/logging/gologger"
	"github.com/goliatone/go-mdsite/internal/markdown"
	"github.com/goliatone/go-mdsite/internal/page"
	"github.com/goliatone/go-mdsite/internal/runtimeconfig"
	"github.com/goliatone/go-mdsite/internal/slugs"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// Container wires the article pipeline from a validated configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	repo           interfaces.CatalogRepository
	bunDB          *bun.DB
	ownsDB         bool
	now            func() time.Time
	runID          func() string
	registry       articlescmd.CommandRegistry

	slugger  *slugs.Slugger
	markdown *markdown.Service
	composer *page.Composer
	syncSvc  *articlesync.Service
	handlers *articlescmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithRepository overrides the store selected from the store config.
func WithRepository(repo interfaces.CatalogRepository) Option {
	return func(c *Container) {
		if repo != nil {
			c.repo = repo
		}
	}
}

// WithBunDB supplies the database used by the sqlite driver instead of
// opening the configured DSN. The caller keeps ownership of db.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		if db != nil {
			c.bunDB = db
		}
	}
}

// WithClock sets the processing date source for article metadata.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRunIDGenerator overrides how sync run identifiers are minted.
func WithRunIDGenerator(fn func() string) Option {
	return func(c *Container) {
		if fn != nil {
			c.runID = fn
		}
	}
}

// WithCommandRegistry registers the article command handlers with reg.
func WithCommandRegistry(reg articlescmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// NewContainer validates cfg and builds every service of the pipeline.
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

	if c.loggerProvider == nil {
		provider, err := newLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	if c.repo == nil {
		repo, err := c.openRepository(context.Background())
		if err != nil {
			return nil, err
		}
		c.repo = repo
	}

	if err := c.configureServices(); err != nil {
		_ = c.Close()
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "mdsite").Debug("container.configured",
		"store_driver", runtimeconfig.NormalizeDriver(cfg.Store.Driver),
		"source", cfg.Source.Dir,
		"output", cfg.Output.Dir,
	)
	return c, nil
}

func (c *Container) configureServices() error {
	cfg := c.Config
	c.slugger = slugs.NewSlugger()

	md, err := markdown.NewService(markdown.Config{
		BasePath:  cfg.Source.Dir,
		Pattern:   cfg.Source.Pattern,
		Recursive: cfg.Source.Recursive,
		Parser:    cfg.Markdown,
		Defaults:  cfg.Article.Defaults,
		Now:       c.now,
	}, nil)
	if err != nil {
		return err
	}
	c.markdown = md

	composer, err := page.NewComposer(cfg.Article.Page, c.slugger)
	if err != nil {
		return err
	}
	c.composer = composer

	c.syncSvc = articlesync.NewService(articlesync.Config{
		OutputDir:  cfg.Output.Dir,
		LinkPrefix: cfg.Article.LinkPrefix,
		Icons:      cfg.Article.Icons,
	}, md, composer, c.repo,
		articlesync.WithLogger(logging.SyncLogger(c.loggerProvider)),
		articlesync.WithSlugger(c.slugger),
		articlesync.WithRunIDGenerator(c.runID),
	)

	handlers, err := articlescmd.RegisterArticleCommands(c.registry, c.syncSvc, c.loggerProvider)
	if err != nil {
		return err
	}
	c.handlers = handlers
	return nil
}

func (c *Container) openRepository(ctx context.Context) (interfaces.CatalogRepository, error) {
	store := c.Config.Store
	switch runtimeconfig.NormalizeDriver(store.Driver) {
	case runtimeconfig.StoreDriverScript:
		return scriptstore.New(scriptstore.Config{
			Path:         store.Path,
			ArticlesName: store.ArticlesName,
			CatalogName:  store.CatalogName,
			Logger:       logging.CatalogLogger(c.loggerProvider),
		}), nil
	case runtimeconfig.StoreDriverYAML:
		return yamlstore.New(store.Path), nil
	case runtimeconfig.StoreDriverSQLite:
		if c.bunDB == nil {
			db, err := bunstore.OpenSQLite(store.DSN)
			if err != nil {
				return nil, err
			}
			c.bunDB = db
			c.ownsDB = true
		}
		repo := bunstore.New(c.bunDB)
		if err := repo.CreateSchema(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
		return repo, nil
	case runtimeconfig.StoreDriverMemory:
		return catalog.NewMemoryRepository(nil), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStoreDriverUnknown, store.Driver)
	}
}

func newLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch runtimeconfig.NormalizeProvider(cfg.Provider) {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:  cfg.Level,
			Format: cfg.Format,
		})
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	}
}

// Close releases the database opened for the sqlite driver.
func (c *Container) Close() error {
	if c == nil || c.bunDB == nil || !c.ownsDB {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	if err != nil {
		return fmt.Errorf("di: close database: %w", err)
	}
	return nil
}

// LoggerProvider returns the provider every module logger is drawn from.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Repository returns the catalog store.
func (c *Container) Repository() interfaces.CatalogRepository {
	return c.repo
}

// MarkdownService returns the Markdown discovery and rendering service.
func (c *Container) MarkdownService() *markdown.Service {
	return c.markdown
}

// SyncService returns the synchronisation driver.
func (c *Container) SyncService() *articlesync.Service {
	return c.syncSvc
}

// Commands returns the article command handlers.
func (c *Container) Commands() *articlescmd.HandlerSet {
	return c.handlers
}
