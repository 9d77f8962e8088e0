package articlesync

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

const legacyPage = "<style>\n.back-to-blog {\n    color: red;\n}\n</style>\n" +
	"<a href=\"../index.html\" class=\"back-to-blog\">\n  <span>←</span>\n  <span>返回博客</span>\n</a>\n<h1>Post</h1>"

func TestStripBacklinks(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.output("b.html"), legacyPage)
	writeFile(t, env.output("a.html"), "<h1>Clean</h1>")
	writeFile(t, env.output("notes.txt"), legacyPage)

	result, err := env.service().StripBacklinks(context.Background(), interfaces.StripOptions{})
	if err != nil {
		t.Fatalf("StripBacklinks: %v", err)
	}
	if strings.Join(result.Processed, ",") != "a.html,b.html" {
		t.Fatalf("unexpected processed files %v", result.Processed)
	}
	if strings.Join(result.Changed, ",") != "b.html" {
		t.Fatalf("unexpected changed files %v", result.Changed)
	}
	if got := readFile(t, env.output("b.html")); strings.Contains(got, "back-to-blog") || !strings.Contains(got, "<h1>Post</h1>") {
		t.Fatalf("expected backlink to be stripped, got %q", got)
	}
	if readFile(t, env.output("notes.txt")) != legacyPage {
		t.Fatalf("expected non-html files to be ignored")
	}
}

func TestStripBacklinksDryRun(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.output("b.html"), legacyPage)

	result, err := env.service().StripBacklinks(context.Background(), interfaces.StripOptions{DryRun: true})
	if err != nil {
		t.Fatalf("StripBacklinks: %v", err)
	}
	if len(result.Changed) != 1 {
		t.Fatalf("expected change to be reported, got %v", result.Changed)
	}
	if readFile(t, env.output("b.html")) != legacyPage {
		t.Fatalf("expected dry run to leave the page untouched")
	}
}

func TestStripBacklinksMissingOutput(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service().StripBacklinks(context.Background(), interfaces.StripOptions{})
	if !errors.Is(err, interfaces.ErrFileSystem) {
		t.Fatalf("expected ErrFileSystem, got %v", err)
	}
}
