package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

const (
	rootModule    = "folio"
	indexerModule = "folio.indexer"
	renderModule  = "folio.render"
	httpModule    = "folio.http"
	watcherModule = "folio.watcher"
	commandsRoot  = "folio.commands"
)

const (
	fieldBuildID = "build_id"
	fieldPath    = "path"
	fieldSlug    = "slug"
	fieldState   = "state"
)

// ModuleLogger returns a logger scoped to module. A nil provider yields a
// no-op logger. Every entry carries the module name as a field.
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

// IndexerLogger returns the logger used by index builds.
func IndexerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, indexerModule)
}

// RenderLogger returns the logger used by the list and document renderers.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// HTTPLogger returns the logger used by the HTTP front end.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WatcherLogger returns the logger used by watch mode.
func WatcherLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, watcherModule)
}

// CommandLogger returns the logger for the command group, named
// folio.commands.<group>. Entries carry the group as command_module.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	group = strings.TrimSpace(group)
	if group == "" {
		group = "core"
	}
	return WithFields(ModuleLogger(provider, commandsRoot+"."+group), map[string]any{
		"component":      "command",
		"command_module": group,
	})
}

// WithBuildContext tags logger with the build run id and the file path being
// processed. Empty values are skipped.
func WithBuildContext(logger interfaces.Logger, buildID, path string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(buildID); trimmed != "" {
		fields[fieldBuildID] = trimmed
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldPath] = trimmed
	}
	return WithFields(logger, fields)
}

// WithDocumentContext tags logger with the slug and renderer state.
func WithDocumentContext(logger interfaces.Logger, slug, state string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(state); trimmed != "" {
		fields[fieldState] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards everything.
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
