package markdown

import (
	"strings"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 5, 23, 30, 0, 0, time.FixedZone("UTC+8", 8*60*60))
}

func TestResolveWithoutFrontMatter(t *testing.T) {
	resolver := NewMetadataResolver(DefaultDefaults(), fixedNow)

	meta, body := resolver.Resolve([]byte("# Hello\n\nWorld"))

	if meta.Title != "Hello" {
		t.Fatalf("expected title Hello, got %q", meta.Title)
	}
	if string(body) != "World" {
		t.Fatalf("expected heading to be removed from body, got %q", body)
	}
	if meta.Excerpt != "World" {
		t.Fatalf("expected excerpt World, got %q", meta.Excerpt)
	}
	if meta.Category != "前端开发" || meta.Section != "技术文章" {
		t.Fatalf("unexpected category/section %q/%q", meta.Category, meta.Section)
	}
	if meta.Gradient != "gradient-5" || meta.Author != "Kingishu" {
		t.Fatalf("unexpected gradient/author %q/%q", meta.Gradient, meta.Author)
	}
	if meta.Date != "2024-03-05" {
		t.Fatalf("expected UTC processing date, got %q", meta.Date)
	}
	if meta.ReadTime != "1 minutes" {
		t.Fatalf("expected read time 1 minutes, got %q", meta.ReadTime)
	}
}

func TestResolveExplicitValuesWin(t *testing.T) {
	resolver := NewMetadataResolver(DefaultDefaults(), fixedNow)
	source := "---\n" +
		"title: Draft\n" +
		"category: 游戏开发\n" +
		"section: \"\"\n" +
		"date: 2023-12-31\n" +
		"description: Short summary\n" +
		"author: Someone\n" +
		"---\n" +
		"First paragraph.\n"

	meta, body := resolver.Resolve([]byte(source))

	if meta.Title != "Draft" || meta.Category != "游戏开发" {
		t.Fatalf("unexpected title/category %q/%q", meta.Title, meta.Category)
	}
	if meta.Section != "技术文章" {
		t.Fatalf("expected empty section to fall back to default, got %q", meta.Section)
	}
	if meta.Date != "2023-12-31" {
		t.Fatalf("expected explicit date, got %q", meta.Date)
	}
	if meta.Excerpt != "Short summary" {
		t.Fatalf("expected description to be used as excerpt, got %q", meta.Excerpt)
	}
	if meta.Author != "Someone" {
		t.Fatalf("expected explicit author, got %q", meta.Author)
	}
	if strings.TrimSpace(string(body)) != "First paragraph." {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestResolveWithoutTitle(t *testing.T) {
	resolver := NewMetadataResolver(DefaultDefaults(), fixedNow)

	meta, _ := resolver.Resolve([]byte("Just prose.\n\n## Not a title"))
	if meta.HasTitle() {
		t.Fatalf("expected no title, got %q", meta.Title)
	}
}

func TestExcerpt(t *testing.T) {
	body := []byte("## Intro\n\n**Bold** and `code` [link](url)\n\nSecond paragraph")
	if got := Excerpt(body, 100); got != "Bold and code link(url)" {
		t.Fatalf("unexpected excerpt %q", got)
	}

	long := strings.Repeat("文", 120)
	got := Excerpt([]byte(long), 100)
	if got != strings.Repeat("文", 100)+"..." {
		t.Fatalf("expected truncation at 100 runes, got %d runes", len([]rune(got)))
	}

	if got := Excerpt([]byte("# Only heading"), 100); got != "" {
		t.Fatalf("expected empty excerpt, got %q", got)
	}
}

func TestReadTime(t *testing.T) {
	if got := ReadTime(nil, 200, " minutes"); got != "1 minutes" {
		t.Fatalf("expected minimum of one minute, got %q", got)
	}
	words := strings.TrimSpace(strings.Repeat("word ", 401))
	if got := ReadTime([]byte(words), 200, "分钟"); got != "3分钟" {
		t.Fatalf("expected 3分钟, got %q", got)
	}
}

func TestResolveKeepsHashAndNullValues(t *testing.T) {
	resolver := NewMetadataResolver(DefaultDefaults(), fixedNow)

	meta, _ := resolver.Resolve([]byte("---\ntitle: Unity #1 tips\ndescription: Part #2 of the series\n---\nbody"))
	if meta.Title != "Unity #1 tips" {
		t.Fatalf("expected full title, got %q", meta.Title)
	}
	if meta.Excerpt != "Part #2 of the series" {
		t.Fatalf("expected full description as excerpt, got %q", meta.Excerpt)
	}

	meta, _ = resolver.Resolve([]byte("---\ntitle: null\n---\nbody"))
	if meta.Title != "null" {
		t.Fatalf("expected literal null title, got %q", meta.Title)
	}
}
