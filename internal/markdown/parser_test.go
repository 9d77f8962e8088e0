package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

func TestGoldmarkParserDefaults(t *testing.T) {
	parser := NewGoldmarkParser(DefaultParseOptions())

	out, err := parser.Parse([]byte("line one\nline two\n\n- [x] done\n\n<div class=\"raw\">kept</div>\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<br") {
		t.Fatalf("expected hard wraps, got %s", html)
	}
	if !strings.Contains(html, `type="checkbox"`) {
		t.Fatalf("expected task list rendering, got %s", html)
	}
	if !strings.Contains(html, `<div class="raw">kept</div>`) {
		t.Fatalf("expected raw html passthrough, got %s", html)
	}
}

func TestGoldmarkParserSafeMode(t *testing.T) {
	parser := NewGoldmarkParser(DefaultParseOptions())

	out, err := parser.ParseWithOptions([]byte("<script>alert(1)</script>\n"), interfaces.ParseOptions{SafeMode: true})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("expected raw html to be omitted, got %s", out)
	}
}

func TestGoldmarkParserHighlighting(t *testing.T) {
	opts := DefaultParseOptions()
	opts.HighlightStyle = "github"
	parser := NewGoldmarkParser(opts)

	out, err := parser.Parse([]byte("```go\npackage main\n```\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(string(out), `class="chroma"`) {
		t.Fatalf("expected chroma classes, got %s", out)
	}
}

func TestCollectExtensionsIgnoresUnknown(t *testing.T) {
	exts := collectExtensions([]string{"tables", "Tables", "bogus", ""})
	if len(exts) != 1 {
		t.Fatalf("expected a single table extension, got %d", len(exts))
	}
	if len(collectExtensions(nil)) != 3 {
		t.Fatalf("expected default extensions when none requested")
	}
}
