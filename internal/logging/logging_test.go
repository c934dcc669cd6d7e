package logging

import (
	"context"
	"testing"

	"github.com/saltaireguide/directory/pkg/interfaces"
)

type recordingLogger struct {
	fields []map[string]any
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	r.fields = append(r.fields, fields)
	return r
}

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, fetcherModule)
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger.WithContext(context.Background()).Info("noop")
}

func TestModuleLoggerAnnotatesModule(t *testing.T) {
	tests := []struct {
		name   string
		build  func(interfaces.LoggerProvider) interfaces.Logger
		module string
	}{
		{"fetcher", FetcherLogger, fetcherModule},
		{"directory", DirectoryLogger, directoryModule},
		{"http", HTTPLogger, httpModule},
		{"importer", ImporterLogger, importerModule},
		{"commands", CommandsLogger, commandsModule},
		{"root", func(p interfaces.LoggerProvider) interfaces.Logger { return ModuleLogger(p, "  ") }, rootModule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingLogger{}
			provider := &stubProvider{logger: rec}
			tt.build(provider)
			if len(provider.requested) != 1 || provider.requested[0] != tt.module {
				t.Fatalf("expected module %s requested, got %v", tt.module, provider.requested)
			}
			if len(rec.fields) != 1 || rec.fields[0]["module"] != tt.module {
				t.Fatalf("expected module field %s, got %v", tt.module, rec.fields)
			}
		})
	}
}

func TestWithPathSkipsBlank(t *testing.T) {
	rec := &recordingLogger{}
	WithPath(rec, "   ")
	if len(rec.fields) != 0 {
		t.Fatalf("expected no fields for blank path, got %v", rec.fields)
	}
	WithPath(rec, "/local-services/plumbers")
	if len(rec.fields) != 1 || rec.fields[0]["path"] != "/local-services/plumbers" {
		t.Fatalf("unexpected path fields %v", rec.fields)
	}
}

func TestContextFieldsMergeAndCopy(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"request_id": "r-1"})
	ctx = ContextWithFields(ctx, map[string]any{"path": "/pubs/the-fox"})

	fields := ContextFields(ctx)
	if fields["request_id"] != "r-1" || fields["path"] != "/pubs/the-fox" {
		t.Fatalf("unexpected fields %+v", fields)
	}
	fields["request_id"] = "mutated"
	if ContextFields(ctx)["request_id"] != "r-1" {
		t.Fatal("context fields must be copied on read")
	}
	if ContextFields(context.Background()) != nil {
		t.Fatal("expected nil fields on bare context")
	}
}
