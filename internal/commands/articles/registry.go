package articlescmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-mdsite/internal/commands"
	"github.com/goliatone/go-mdsite/internal/logging"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the article command handlers produced by RegisterArticleCommands.
type HandlerSet struct {
	Sync  *SyncArticlesHandler
	Strip *StripBacklinksHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	syncHandlerOpts  []commands.HandlerOption[SyncArticlesCommand]
	stripHandlerOpts []commands.HandlerOption[StripBacklinksCommand]
}

// WithSyncHandlerOptions forwards options to the SyncArticlesHandler constructor.
func WithSyncHandlerOptions(opts ...commands.HandlerOption[SyncArticlesCommand]) Option {
	return func(cfg *options) {
		cfg.syncHandlerOpts = append(cfg.syncHandlerOpts, opts...)
	}
}

// WithStripHandlerOptions forwards options to the StripBacklinksHandler constructor.
func WithStripHandlerOptions(opts ...commands.HandlerOption[StripBacklinksCommand]) Option {
	return func(cfg *options) {
		cfg.stripHandlerOpts = append(cfg.stripHandlerOpts, opts...)
	}
}

// RegisterArticleCommands builds the article command handlers and registers
// them with reg when it is non-nil.
func RegisterArticleCommands(reg CommandRegistry, service interfaces.ArticleSyncService, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("article command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := logging.CommandLogger(provider, "articles")
	set := &HandlerSet{
		Sync:  NewSyncArticlesHandler(service, logger, cfg.syncHandlerOpts...),
		Strip: NewStripBacklinksHandler(service, logger, cfg.stripHandlerOpts...),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Sync); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Strip); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// RegisterSyncCron schedules handler through reg with msg as the payload.
// The trigger is forced to cron. Runs use a background context.
func RegisterSyncCron(reg CronRegistrar, handler *SyncArticlesHandler, cfg command.HandlerConfig, msg SyncArticlesCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	msg.Trigger = TriggerCron
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
