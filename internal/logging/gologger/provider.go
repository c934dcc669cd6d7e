package gologger

import (
	"context"
	"fmt"
	"maps"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/saltaireguide/directory/internal/logging"
	"github.com/saltaireguide/directory/pkg/interfaces"
)

// Config selects level and output format for the go-logger root.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Provider hands out go-logger children adapted to interfaces.Logger.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds the go-logger root logger from cfg.
func NewProvider(cfg Config) (*Provider, error) {
	options := []glog.Option{}
	if level := levelFor(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := trimAll(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

// GetLogger implements interfaces.LoggerProvider.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return wrap(p.root)
	}
	return wrap(p.root.GetLogger(name))
}

func wrap(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner glog.Logger
}

func (a *adapter) Trace(msg string, args ...any) { a.inner.Trace(msg, args...) }
func (a *adapter) Debug(msg string, args ...any) { a.inner.Debug(msg, args...) }
func (a *adapter) Info(msg string, args ...any)  { a.inner.Info(msg, args...) }
func (a *adapter) Warn(msg string, args ...any)  { a.inner.Warn(msg, args...) }
func (a *adapter) Error(msg string, args ...any) { a.inner.Error(msg, args...) }
func (a *adapter) Fatal(msg string, args ...any) { a.inner.Fatal(msg, args...) }

func (a *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return a
	}
	if fl, ok := a.inner.(glog.FieldsLogger); ok {
		return wrap(fl.WithFields(maps.Clone(fields)))
	}
	return a
}

func (a *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return a
	}
	return wrap(a.inner.WithContext(ctx))
}

func levelFor(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	case "fatal":
		return glog.Fatal
	default:
		return ""
	}
}

func trimAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
