package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

func TestUpsertArticlePrependsNewRecords(t *testing.T) {
	existing := []interfaces.ArticleRecord{{Title: "Old", Link: "article/old.html"}}

	out, created := UpsertArticle(existing, interfaces.ArticleRecord{Title: "New", Link: "article/new.html"})
	if !created {
		t.Fatalf("expected record to be created")
	}
	if len(out) != 2 || out[0].Title != "New" || out[1].Title != "Old" {
		t.Fatalf("expected new record first, got %#v", out)
	}
	if len(existing) != 1 {
		t.Fatalf("expected input to be left untouched")
	}
}

func TestUpsertArticleReplacesInPlace(t *testing.T) {
	existing := []interfaces.ArticleRecord{
		{Title: "First"},
		{Title: "Hello  World", Excerpt: "old"},
		{Title: "Last"},
	}

	out, created := UpsertArticle(existing, interfaces.ArticleRecord{Title: "Hello World", Excerpt: "new"})
	if created {
		t.Fatalf("expected whitespace-normalised title to match")
	}
	if len(out) != 3 || out[1].Excerpt != "new" || out[1].Title != "Hello World" {
		t.Fatalf("expected in-place replacement, got %#v", out)
	}
	if existing[1].Excerpt != "old" {
		t.Fatalf("expected input to be left untouched")
	}
}

func TestEnsureNode(t *testing.T) {
	tree := []interfaces.Category{{
		Category: "Unity开发",
		Icon:     "🎮",
		Sections: []interfaces.Section{{Title: "核心系统", Articles: []interfaces.ArticleRef{{Title: "A"}}}},
	}}

	out, changed := EnsureNode(tree, "Unity开发", "核心系统", DefaultIcons())
	if changed || len(out) != 1 {
		t.Fatalf("expected existing node to be a no-op")
	}

	out, changed = EnsureNode(out, "Unity开发", "物理与检测", DefaultIcons())
	if !changed || len(out[0].Sections) != 2 || out[0].Sections[1].Title != "物理与检测" {
		t.Fatalf("expected section to be appended, got %#v", out)
	}
	if out[0].Sections[1].Articles == nil {
		t.Fatalf("expected empty article list, got nil")
	}

	out, changed = EnsureNode(out, "Rust", "入门", DefaultIcons())
	if !changed || len(out) != 2 || out[1].Icon != FallbackIcon {
		t.Fatalf("expected new category with fallback icon, got %#v", out)
	}
	if out[1].Sections[0].Title != "入门" {
		t.Fatalf("expected section inside new category")
	}

	out, _ = EnsureNode(out, "测试内容", "x", DefaultIcons())
	if out[2].Icon != "🧪" {
		t.Fatalf("expected known icon, got %q", out[2].Icon)
	}
	if len(tree[0].Sections) != 1 {
		t.Fatalf("expected input tree to be left untouched")
	}
}

func TestPruneArticles(t *testing.T) {
	records := []interfaces.ArticleRecord{
		{Title: "Keep", Link: "article/keep.html"},
		{Title: "Drop", Link: "article/drop.html"},
		{Title: "No link"},
	}
	kept, removed := PruneArticles(records, map[string]struct{}{"keep.html": {}})
	if len(kept) != 1 || kept[0].Title != "Keep" {
		t.Fatalf("unexpected kept %#v", kept)
	}
	if len(removed) != 2 {
		t.Fatalf("unexpected removed %#v", removed)
	}
}

func TestNewRecord(t *testing.T) {
	record := NewRecord(interfaces.ArticleMetadata{
		Title:    "Hello",
		Excerpt:  "World",
		Category: "前端开发",
		Section:  "技术文章",
		Date:     "2024-03-05",
		Gradient: "gradient-5",
	}, DefaultLinkPrefix, "hello.html")
	if record.Link != "article/hello.html" || record.Section != "技术文章" {
		t.Fatalf("unexpected record %#v", record)
	}
}

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository(nil)
	ctx := context.Background()

	if err := repo.SaveArticles(ctx, []interfaces.ArticleRecord{{Title: "A"}}); err != nil {
		t.Fatalf("SaveArticles: %v", err)
	}
	snapshot, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	snapshot.Articles[0].Title = "mutated"

	again, _ := repo.Load(ctx)
	if again.Articles[0].Title != "A" {
		t.Fatalf("expected Load to return a copy")
	}

	boom := StoreParseError("articlesDatabase", nil)
	repo.FailLoads(boom)
	if _, err := repo.Load(ctx); !errors.Is(err, interfaces.ErrStoreParse) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if repo.Saves() != 1 {
		t.Fatalf("expected one save, got %d", repo.Saves())
	}
}
