package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-mdsite/cmd/mdsite/internal/bootstrap"
	articlescmd "github.com/goliatone/go-mdsite/internal/commands/articles"
	"github.com/goliatone/go-mdsite/internal/runtimeconfig"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

type stubSync struct {
	calls  []articlescmd.SyncArticlesCommand
	result *interfaces.SyncResult
	err    error
}

func (s *stubSync) Execute(_ context.Context, msg articlescmd.SyncArticlesCommand) error {
	s.calls = append(s.calls, msg)
	return s.err
}

func (s *stubSync) LastResult() *interfaces.SyncResult { return s.result }

type stubStrip struct {
	calls  []articlescmd.StripBacklinksCommand
	result *interfaces.StripResult
}

func (s *stubStrip) Execute(_ context.Context, msg articlescmd.StripBacklinksCommand) error {
	s.calls = append(s.calls, msg)
	return nil
}

func (s *stubStrip) LastResult() *interfaces.StripResult { return s.result }

func withStubModule(t *testing.T, sync *stubSync, strip *stubStrip) *bootstrap.Options {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })

	captured := &bootstrap.Options{}
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		*captured = opts
		return &bootstrap.Module{
			Config: runtimeconfig.DefaultConfig(),
			Sync:   sync,
			Strip:  strip,
		}, nil
	}
	return captured
}

func TestRunSyncUsesCommandHandler(t *testing.T) {
	sync := &stubSync{result: &interfaces.SyncResult{Created: 1, Updated: 2, DeletedFiles: []string{"old.html"}, Deleted: 1}}
	opts := withStubModule(t, sync, &stubStrip{})

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-source", "docs", "-store-driver", "yaml", "-dry-run"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}
	if opts.SourceDir != "docs" || opts.StoreDriver != "yaml" {
		t.Fatalf("unexpected bootstrap options %#v", opts)
	}
	if len(sync.calls) != 1 {
		t.Fatalf("expected one sync command, got %d", len(sync.calls))
	}
	want := articlescmd.SyncArticlesCommand{Trigger: articlescmd.TriggerCLI, DryRun: true, DeleteOrphaned: true, SeedExample: true}
	if sync.calls[0] != want {
		t.Fatalf("expected %#v, got %#v", want, sync.calls[0])
	}
	if !strings.Contains(stdout.String(), "[dry-run] deleted page old.html") {
		t.Fatalf("expected deletion report, got %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "created=1 updated=2") {
		t.Fatalf("expected summary, got %q", stdout.String())
	}
}

func TestRunSyncKeepOrphansAndNoSeed(t *testing.T) {
	sync := &stubSync{result: &interfaces.SyncResult{}}
	withStubModule(t, sync, &stubStrip{})

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-keep-orphans", "-no-seed"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if sync.calls[0].DeleteOrphaned || sync.calls[0].SeedExample {
		t.Fatalf("unexpected command %#v", sync.calls[0])
	}
}

func TestRunSyncExitsNonZeroOnFailure(t *testing.T) {
	failed := errors.New("cannot read")
	sync := &stubSync{
		result: &interfaces.SyncResult{
			Files: []interfaces.FileResult{
				{Path: "broken.md", Status: interfaces.FileStatusFailed, Error: failed},
				{Path: "notes.md", Status: interfaces.FileStatusSkipped, Error: errors.New("missing title")},
			},
			Errors: []error{failed},
		},
		err: failed,
	}
	withStubModule(t, sync, &stubStrip{})

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), nil, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "failed broken.md: cannot read") {
		t.Fatalf("expected failure report, got %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "skipped notes.md") {
		t.Fatalf("expected skip report, got %q", stderr.String())
	}
}

func TestRunStripBacklinks(t *testing.T) {
	strip := &stubStrip{result: &interfaces.StripResult{
		Processed: []string{"a.html"},
		Changed:   []string{"a.html"},
		Failed:    map[string]error{"b.html": errors.New("denied")},
	}}
	withStubModule(t, &stubSync{}, strip)

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"strip-backlinks", "-dry-run"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if len(strip.calls) != 1 || !strip.calls[0].DryRun {
		t.Fatalf("unexpected strip calls %#v", strip.calls)
	}
	if !strings.Contains(stdout.String(), "processed=1 changed=1 failed=1") {
		t.Fatalf("unexpected summary %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "failed b.html: denied") {
		t.Fatalf("unexpected failures %q", stderr.String())
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	withStubModule(t, &stubSync{}, &stubStrip{})

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-bogus"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestRunEndToEnd(t *testing.T) {
	root := t.TempDir()
	source := filepath.Join(root, "md-articles")
	output := filepath.Join(root, "article")
	store := filepath.Join(root, "articles.yaml")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-source", source,
		"-output", output,
		"-store-driver", "yaml",
		"-store", store,
		"-log-level", "error",
	}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(source, "example.md")); err != nil {
		t.Fatalf("expected example source to be seeded: %v", err)
	}
	if !strings.Contains(stdout.String(), "created=1") {
		t.Fatalf("unexpected summary %q", stdout.String())
	}
	if _, err := os.Stat(store); err != nil {
		t.Fatalf("expected store to be written: %v", err)
	}
}
