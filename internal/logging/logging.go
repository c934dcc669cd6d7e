package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/saltaireguide/directory/pkg/interfaces"
)

const (
	rootModule      = "guide"
	fetcherModule   = "guide.fetcher"
	directoryModule = "guide.directory"
	httpModule      = "guide.http"
	importerModule  = "guide.importer"
	commandsModule  = "guide.commands"
)

// ModuleLogger returns a logger scoped to module. A nil provider, or one that
// returns nil, yields a no-op logger so callers never need nil checks.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = rootModule
	}

	var logger interfaces.Logger = NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

func FetcherLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, fetcherModule)
}

func DirectoryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, directoryModule)
}

func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

func ImporterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, importerModule)
}

func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithFields attaches fields when the logger implements FieldsLogger and
// returns it unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(maps.Clone(fields))
	}
	return logger
}

// WithPath annotates a logger with the content path being served.
func WithPath(logger interfaces.Logger, path string) interfaces.Logger {
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		return WithFields(logger, map[string]any{"path": trimmed})
	}
	return logger
}

// NoOp returns a logger that discards every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }
func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
