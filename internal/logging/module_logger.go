package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

const (
	rootModule     = "mdsite"
	markdownModule = "mdsite.markdown"
	syncModule     = "mdsite.sync"
	catalogModule  = "mdsite.catalog"
	commandModule  = "mdsite.commands"
)

const (
	fieldMarkdownPath = "markdown_path"
	fieldArticleTitle = "article_title"
	fieldSyncAction   = "sync_action"
	fieldRunID        = "run_id"
)

// ModuleLogger returns a logger scoped to module. Without a provider, or when
// the provider returns nil, entries are dropped. The module name is attached
// as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// MarkdownLogger returns the logger namespace reserved for Markdown parsing and rendering.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// SyncLogger returns the logger namespace reserved for the synchronisation driver.
func SyncLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, syncModule)
}

// CatalogLogger returns the logger namespace reserved for store backends.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// CommandLogger returns the logger for a command group such as "articles".
// Entries are tagged with the group so they read apart from the services the
// commands drive.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	group = strings.ToLower(strings.TrimSpace(group))
	if group == "" {
		group = "articles"
	}
	return WithFields(ModuleLogger(provider, commandModule+"."+group), map[string]any{
		"component":     "command",
		"command_group": group,
	})
}

// WithArticleContext enriches logger with the Markdown path, article title
// and sync action being processed. Empty values are ignored.
func WithArticleContext(logger interfaces.Logger, path, title, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldMarkdownPath] = trimmed
	}
	if trimmed := strings.TrimSpace(title); trimmed != "" {
		fields[fieldArticleTitle] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldSyncAction] = trimmed
	}
	return WithFields(logger, fields)
}

// WithRunID tags both the logger and the context with the identifier of a
// synchronisation run so every entry of the batch can be correlated.
func WithRunID(ctx context.Context, logger interfaces.Logger, runID string) (context.Context, interfaces.Logger) {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return ctx, logger
	}
	fields := map[string]any{fieldRunID: runID}
	return ContextWithFields(ctx, fields), WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
