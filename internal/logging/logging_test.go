package logging

import (
	"context"
	"testing"
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

func (r *recordingLogger) WithFields(fields map[string]any) Logger {
	r.fields = append(r.fields, fields)
	return r
}

func (r *recordingLogger) WithContext(context.Context) Logger { return r }

type stubProvider struct {
	requested []string
	logger    Logger
}

func (s *stubProvider) GetLogger(name string) Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "livemd.editor")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger.WithContext(context.Background()).Debug("noop")
}

func TestModuleLoggerAnnotatesModule(t *testing.T) {
	rec := &recordingLogger{}
	p := &stubProvider{logger: rec}

	ModuleLogger(p, "livemd.editor")
	if len(p.requested) != 1 || p.requested[0] != "livemd.editor" {
		t.Fatalf("requested = %v", p.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != "livemd.editor" {
		t.Fatalf("fields = %v", rec.fields)
	}
}

func TestModuleLoggerDefaultsToRoot(t *testing.T) {
	p := &stubProvider{logger: &recordingLogger{}}
	ModuleLogger(p, "")
	if p.requested[0] != rootModule {
		t.Fatalf("requested = %v, want %s", p.requested, rootModule)
	}
}

func TestWithFieldsCopies(t *testing.T) {
	rec := &recordingLogger{}
	fields := map[string]any{"pass": "detector"}
	WithFields(rec, fields)
	fields["pass"] = "fixer"
	if rec.fields[0]["pass"] != "detector" {
		t.Errorf("fields not copied: %v", rec.fields[0])
	}
	if WithFields(rec, nil) != Logger(rec) {
		t.Errorf("empty fields should return the logger unchanged")
	}
}
