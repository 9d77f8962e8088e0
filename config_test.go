package mdsite_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-mdsite"
)

func TestConfigValidateRejectsUnknownDriver(t *testing.T) {
	cfg := mdsite.DefaultConfig()
	cfg.Store.Driver = "mongo"
	if err := cfg.Validate(); !errors.Is(err, mdsite.ErrStoreDriverUnknown) {
		t.Fatalf("expected ErrStoreDriverUnknown, got %v", err)
	}
}

func TestModuleSyncWritesPagesAndStore(t *testing.T) {
	root := t.TempDir()
	cfg := mdsite.DefaultConfig()
	cfg.Source.Dir = filepath.Join(root, "md-articles")
	cfg.Output.Dir = filepath.Join(root, "article")
	cfg.Store.Driver = mdsite.StoreDriverYAML
	cfg.Store.Path = filepath.Join(root, "articles.yaml")

	if err := os.MkdirAll(cfg.Source.Dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	source := "---\ntitle: Go Tips\ncategory: 后端开发\n---\n# Go Tips\n\nUse small interfaces.\n\n## Errors\n\nWrap them."
	if err := os.WriteFile(filepath.Join(cfg.Source.Dir, "tips.md"), []byte(source), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	module, err := mdsite.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer module.Close()

	result, err := module.Sync(context.Background(), mdsite.SyncOptions{DeleteOrphaned: true})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Created != 1 || result.Files[0].FileName != "go-tips.html" {
		t.Fatalf("unexpected result %#v", result)
	}

	page, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "go-tips.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if !strings.Contains(string(page), `<a href="#heading-errors">Errors</a>`) {
		t.Fatalf("expected toc entry in page")
	}

	snapshot, err := module.Catalog().Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snapshot.Articles) != 1 || snapshot.Articles[0].Excerpt != "Use small interfaces." {
		t.Fatalf("unexpected records %#v", snapshot.Articles)
	}
	if len(snapshot.Catalog) != 1 || snapshot.Catalog[0].Category != "后端开发" {
		t.Fatalf("unexpected catalog %#v", snapshot.Catalog)
	}
}
