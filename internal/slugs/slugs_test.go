package slugs

import (
	"strings"
	"testing"
)

func TestFileName(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello", "hello"},
		{"Unity对象池技术详解", "unity对象池技术详解"},
		{"JavaScript 异步编程 (Part 2)", "javascript-异步编程-part-2"},
		{"  --Go & Rust--  ", "go-rust"},
		{"snake_case title", "snake-case-title"},
	}
	for _, tc := range cases {
		if got := FileName(tc.title); got != tc.want {
			t.Fatalf("FileName(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestFileNameFallsBackToDigest(t *testing.T) {
	first := FileName("!!!")
	second := FileName("???")

	if !strings.HasPrefix(first, "article-") || len(first) != len("article-")+8 {
		t.Fatalf("expected digest fallback, got %q", first)
	}
	if first == second {
		t.Fatalf("expected distinct fallbacks for distinct titles, got %q", first)
	}
	if FileName("!!!") != first {
		t.Fatal("expected fallback to be deterministic")
	}
}

func TestAnchor(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Getting Started", "heading-getting-started"},
		{"功能特点", "heading-功能特点"},
		{"What's new in v1.2?", "heading-whats-new-in-v12"},
		{"snake_case  and -- dashes", "heading-snake_case-and-dashes"},
		{"!!!", "heading-"},
	}
	for _, tc := range cases {
		if got := Anchor(tc.text); got != tc.want {
			t.Fatalf("Anchor(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestSluggerMemoisesPerTitle(t *testing.T) {
	slugger := NewSlugger()

	if got := slugger.HTMLName("Hello World"); got != "hello-world.html" {
		t.Fatalf("unexpected html name %q", got)
	}
	if len(slugger.cache) != 1 {
		t.Fatalf("expected one cached title, got %d", len(slugger.cache))
	}
	if slugger.FileName("Hello World") != "hello-world" {
		t.Fatal("expected cached slug to be reused")
	}

	var zero Slugger
	if zero.FileName("Draft") != "draft" {
		t.Fatal("expected zero value slugger to be usable")
	}
}
