package logging

import (
	"context"
	"maps"
	"testing"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	r.fields = append(r.fields, maps.Clone(fields))
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "folio.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerAnnotatesModuleField(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, indexerModule)

	if len(provider.requested) != 1 || provider.requested[0] != indexerModule {
		t.Fatalf("expected module %s, got %v", indexerModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != indexerModule {
		t.Fatalf("expected module field %s, got %v", indexerModule, rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestNamedModuleLoggers(t *testing.T) {
	cases := []struct {
		name   string
		build  func(interfaces.LoggerProvider) interfaces.Logger
		module string
	}{
		{"indexer", IndexerLogger, indexerModule},
		{"render", RenderLogger, renderModule},
		{"http", HTTPLogger, httpModule},
		{"watcher", WatcherLogger, watcherModule},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubProvider{logger: &recordingLogger{}}
			_ = tc.build(provider)
			if len(provider.requested) == 0 || provider.requested[0] != tc.module {
				t.Fatalf("expected %s, got %v", tc.module, provider.requested)
			}
		})
	}
}

func TestWithBuildContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithBuildContext(rec, "run-1", " ")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	if rec.fields[0][fieldBuildID] != "run-1" {
		t.Fatalf("expected build id field, got %v", rec.fields[0])
	}
	if _, ok := rec.fields[0][fieldPath]; ok {
		t.Fatalf("expected blank path to be skipped, got %v", rec.fields[0])
	}
}

func TestContextFieldsMerge(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"a": 1})
	ctx = ContextWithFields(ctx, map[string]any{"b": 2, "a": 3})

	fields := ContextFields(ctx)
	if fields["a"] != 3 || fields["b"] != 2 {
		t.Fatalf("unexpected merged fields %v", fields)
	}

	fields["c"] = 4
	if _, ok := ContextFields(ctx)["c"]; ok {
		t.Fatal("expected ContextFields to return a copy")
	}
}

func TestCommandLoggerNamesGroup(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = CommandLogger(provider, " index ")
	_ = CommandLogger(provider, "")

	want := []string{"folio.commands.index", "folio.commands.core"}
	if len(provider.requested) != 2 || provider.requested[0] != want[0] || provider.requested[1] != want[1] {
		t.Fatalf("expected loggers %v, got %v", want, provider.requested)
	}
	// module field, then the command fields, per call
	if len(rec.fields) != 4 || rec.fields[1]["command_module"] != "index" || rec.fields[1]["component"] != "command" {
		t.Fatalf("unexpected fields %v", rec.fields)
	}
}
