package articlescmd

import (
	"context"
	"sync"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-mdsite/internal/commands"
	"github.com/goliatone/go-mdsite/internal/logging"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

const (
	syncOperation  = "articles.sync"
	stripOperation = "articles.strip_backlinks"
)

var (
	_ command.Commander[SyncArticlesCommand]   = (*SyncArticlesHandler)(nil)
	_ command.Commander[StripBacklinksCommand] = (*StripBacklinksHandler)(nil)
)

// SyncArticlesHandler runs article sync batches through the shared command
// handler. The result of the latest run is kept for callers that report it.
type SyncArticlesHandler struct {
	inner *commands.Handler[SyncArticlesCommand]

	mu   sync.Mutex
	last *interfaces.SyncResult
}

// NewSyncArticlesHandler creates a handler bound to service.
func NewSyncArticlesHandler(service interfaces.ArticleSyncService, logger interfaces.Logger, opts ...commands.HandlerOption[SyncArticlesCommand]) *SyncArticlesHandler {
	baseLogger := logging.Ensure(logger)
	h := &SyncArticlesHandler{}

	exec := func(ctx context.Context, msg SyncArticlesCommand) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := service.Sync(ctx, interfaces.SyncOptions{
			DryRun:         msg.DryRun,
			DeleteOrphaned: msg.DeleteOrphaned,
			SeedExample:    msg.SeedExample,
		})
		h.store(result)
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"run_id":        result.RunID,
				"created_count": result.Created,
				"updated_count": result.Updated,
				"skipped_count": result.Skipped,
				"failed_count":  len(result.Failed()),
				"deleted_count": result.Deleted,
				"removed_count": result.Removed,
				"dry_run":       msg.DryRun,
			}).Info("articles.command.sync.completed")
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[SyncArticlesCommand]{
		commands.WithLogger[SyncArticlesCommand](baseLogger),
		commands.WithOperation[SyncArticlesCommand](syncOperation),
		// a batch always runs to the end unless the caller cancels it
		commands.WithTimeout[SyncArticlesCommand](0),
		commands.WithMessageFields(func(msg SyncArticlesCommand) map[string]any {
			fields := map[string]any{
				"trigger": string(triggerOrDefault(msg.Trigger)),
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.DeleteOrphaned {
				fields["delete_orphaned"] = true
			}
			if msg.SeedExample {
				fields["seed_example"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncArticlesCommand](baseLogger)),
	}
	h.inner = commands.NewHandler(exec, append(handlerOpts, opts...)...)
	return h
}

// Execute satisfies command.Commander[SyncArticlesCommand].
func (h *SyncArticlesHandler) Execute(ctx context.Context, msg SyncArticlesCommand) error {
	return h.inner.Execute(ctx, msg)
}

// LastResult returns the result of the most recent run, or nil.
func (h *SyncArticlesHandler) LastResult() *interfaces.SyncResult {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func (h *SyncArticlesHandler) store(result *interfaces.SyncResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = result
}

// StripBacklinksHandler runs backlink stripping through the shared command handler.
type StripBacklinksHandler struct {
	inner *commands.Handler[StripBacklinksCommand]

	mu   sync.Mutex
	last *interfaces.StripResult
}

// NewStripBacklinksHandler creates a handler bound to service.
func NewStripBacklinksHandler(service interfaces.ArticleSyncService, logger interfaces.Logger, opts ...commands.HandlerOption[StripBacklinksCommand]) *StripBacklinksHandler {
	baseLogger := logging.Ensure(logger)
	h := &StripBacklinksHandler{}

	exec := func(ctx context.Context, msg StripBacklinksCommand) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, err := service.StripBacklinks(ctx, interfaces.StripOptions{DryRun: msg.DryRun})
		h.store(result)
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"processed_count": len(result.Processed),
				"changed_count":   len(result.Changed),
				"failed_count":    len(result.Failed),
				"dry_run":         msg.DryRun,
			}).Info("articles.command.strip_backlinks.completed")
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[StripBacklinksCommand]{
		commands.WithLogger[StripBacklinksCommand](baseLogger),
		commands.WithOperation[StripBacklinksCommand](stripOperation),
		commands.WithTimeout[StripBacklinksCommand](0),
		commands.WithMessageFields(func(msg StripBacklinksCommand) map[string]any {
			fields := map[string]any{
				"trigger": string(triggerOrDefault(msg.Trigger)),
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[StripBacklinksCommand](baseLogger)),
	}
	h.inner = commands.NewHandler(exec, append(handlerOpts, opts...)...)
	return h
}

// Execute satisfies command.Commander[StripBacklinksCommand].
func (h *StripBacklinksHandler) Execute(ctx context.Context, msg StripBacklinksCommand) error {
	return h.inner.Execute(ctx, msg)
}

// LastResult returns the result of the most recent run, or nil.
func (h *StripBacklinksHandler) LastResult() *interfaces.StripResult {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func (h *StripBacklinksHandler) store(result *interfaces.StripResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = result
}
