package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-mdsite"
	articlescmd "github.com/goliatone/go-mdsite/internal/commands/articles"
	"github.com/goliatone/go-mdsite/internal/di"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// Options captures the CLI inputs that shape the module configuration.
// Empty strings leave the configured value alone.
type Options struct {
	ConfigPath     string
	SourceDir      string
	OutputDir      string
	StorePath      string
	StoreDriver    string
	LogProvider    string
	LogLevel       string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
}

// SyncExecutor runs sync commands and exposes the latest result.
type SyncExecutor interface {
	Execute(ctx context.Context, msg articlescmd.SyncArticlesCommand) error
	LastResult() *interfaces.SyncResult
}

// StripExecutor runs backlink stripping commands and exposes the latest result.
type StripExecutor interface {
	Execute(ctx context.Context, msg articlescmd.StripBacklinksCommand) error
	LastResult() *interfaces.StripResult
}

// Module bundles what the CLI needs from a configured module.
type Module struct {
	Config mdsite.Config
	Sync   SyncExecutor
	Strip  StripExecutor
	Close  func() error
}

// BuildConfig loads the configuration file, when given, and applies the
// CLI overrides on top.
func BuildConfig(opts Options) (mdsite.Config, error) {
	cfg := mdsite.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := mdsite.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	override(&cfg.Source.Dir, opts.SourceDir)
	override(&cfg.Output.Dir, opts.OutputDir)
	override(&cfg.Store.Driver, opts.StoreDriver)
	if path := strings.TrimSpace(opts.StorePath); path != "" {
		if strings.EqualFold(strings.TrimSpace(cfg.Store.Driver), mdsite.StoreDriverSQLite) {
			cfg.Store.DSN = path
		} else {
			cfg.Store.Path = path
		}
	}
	override(&cfg.Logging.Provider, opts.LogProvider)
	override(&cfg.Logging.Level, opts.LogLevel)
	override(&cfg.Logging.Format, opts.LogFormat)
	return cfg, nil
}

// BuildModule constructs a module configured from opts.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := BuildConfig(opts)
	if err != nil {
		return nil, err
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := mdsite.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise mdsite module: %w", err)
	}

	handlers := module.Container().Commands()
	return &Module{
		Config: cfg,
		Sync:   handlers.Sync,
		Strip:  handlers.Strip,
		Close:  module.Close,
	}, nil
}

func override(target *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*target = trimmed
	}
}
