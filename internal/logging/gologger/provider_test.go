package gologger

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"
)

func TestNewProviderCreatesLogger(t *testing.T) {
	p, err := NewProvider(Config{
		Level:  "debug",
		Format: "console",
	})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}

	logger := p.GetLogger("mdsite.test")
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}

	child := logger.WithFields(map[string]any{"module": "mdsite.test"})
	if child == nil {
		t.Fatal("expected WithFields to return logger")
	}

	// Ensure chained operations do not panic.
	child.Debug("adapter.initialised")
}

func TestAdapterDelegatesToUnderlyingLogger(t *testing.T) {
	stub := &stubLogger{}
	adapted := wrap(stub)

	adapted.Trace("trace", "key", "value")
	adapted.Debug("debug")
	adapted.Info("info")
	adapted.Warn("warn")
	adapted.Error("error")
	adapted.Fatal("fatal")

	fields := map[string]any{"article_title": "Hello"}
	child := adapted.WithFields(fields)
	if child == nil {
		t.Fatal("expected WithFields to return logger")
	}

	fields["article_title"] = "Changed"
	if len(stub.fields) != 1 {
		t.Fatalf("expected fields to be recorded once, got %d", len(stub.fields))
	}
	if stub.fields[0]["article_title"] != "Hello" {
		t.Fatalf("expected fields to be cloned, got %v", stub.fields[0]["article_title"])
	}

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	adapted.WithContext(ctx)
	if len(stub.contexts) != 1 || stub.contexts[0] != ctx {
		t.Fatalf("expected context propagation, got %#v", stub.contexts)
	}

	wantCalls := []string{"trace", "debug", "info", "warn", "error", "fatal"}
	if len(stub.calls) != len(wantCalls) {
		t.Fatalf("expected %d calls, got %d", len(wantCalls), len(stub.calls))
	}
	for i, want := range wantCalls {
		if stub.calls[i] != want {
			t.Fatalf("call %d: expected %q, got %q", i, want, stub.calls[i])
		}
	}
}

type stubLogger struct {
	calls    []string
	fields   []map[string]any
	contexts []context.Context
}

var _ glog.Logger = (*stubLogger)(nil)
var _ glog.FieldsLogger = (*stubLogger)(nil)

func (s *stubLogger) Trace(string, ...any) { s.calls = append(s.calls, "trace") }
func (s *stubLogger) Debug(string, ...any) { s.calls = append(s.calls, "debug") }
func (s *stubLogger) Info(string, ...any)  { s.calls = append(s.calls, "info") }
func (s *stubLogger) Warn(string, ...any)  { s.calls = append(s.calls, "warn") }
func (s *stubLogger) Error(string, ...any) { s.calls = append(s.calls, "error") }
func (s *stubLogger) Fatal(string, ...any) { s.calls = append(s.calls, "fatal") }

func (s *stubLogger) WithContext(ctx context.Context) glog.Logger {
	s.contexts = append(s.contexts, ctx)
	return s
}

func (s *stubLogger) WithFields(fields map[string]any) glog.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	s.fields = append(s.fields, copied)
	return s
}

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestNormalizeLevel(t *testing.T) {
	if got := normalizeLevel(" Warning "); got != glog.Warn {
		t.Fatalf("expected warn level, got %q", got)
	}
	if got := normalizeLevel("verbose"); got != "" {
		t.Fatalf("expected unknown level to normalise to empty, got %q", got)
	}
}

type plainLogger struct {
	args [][]any
}

var _ glog.Logger = (*plainLogger)(nil)

func (p *plainLogger) record(args []any) { p.args = append(p.args, args) }

func (p *plainLogger) Trace(_ string, args ...any) { p.record(args) }
func (p *plainLogger) Debug(_ string, args ...any) { p.record(args) }
func (p *plainLogger) Info(_ string, args ...any)  { p.record(args) }
func (p *plainLogger) Warn(_ string, args ...any)  { p.record(args) }
func (p *plainLogger) Error(_ string, args ...any) { p.record(args) }
func (p *plainLogger) Fatal(_ string, args ...any) { p.record(args) }

func (p *plainLogger) WithContext(context.Context) glog.Logger { return p }

func TestAdapterCarriesFieldsWithoutNativeSupport(t *testing.T) {
	inner := &plainLogger{}
	logger := wrap(inner).
		WithFields(map[string]any{"run_id": "run-1", "module": "mdsite.sync"}).
		WithFields(map[string]any{"markdown_path": "hello.md"})

	logger.Info("articlesync.file.created", "sync_action", "created")

	if len(inner.args) != 1 {
		t.Fatalf("expected one entry, got %d", len(inner.args))
	}
	want := []any{"module", "mdsite.sync", "run_id", "run-1", "markdown_path", "hello.md", "sync_action", "created"}
	got := inner.args[0]
	if len(got) != len(want) {
		t.Fatalf("expected args %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("arg %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
