package page

import "testing"

func TestStripBacklinks(t *testing.T) {
	input := "<style>\n.back-to-blog {\n    color: red;\n}\n.keep { color: blue; }\n</style>\n" +
		"<div>\n<a href=\"../index.html\" class=\"back-to-blog\">\n  <span>←</span>\n  <span>返回博客</span>\n</a>\n<h1>Title</h1>\n</div>"
	want := "<style>\n.keep { color: blue; }\n</style>\n<div>\n<h1>Title</h1>\n</div>"

	out, changed := StripBacklinks([]byte(input))
	if !changed {
		t.Fatalf("expected document to change")
	}
	if string(out) != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, out)
	}

	again, changed := StripBacklinks(out)
	if changed || string(again) != want {
		t.Fatalf("expected second pass to be a no-op")
	}
}
