package page

import "regexp"

var (
	backlinkAnchor = regexp.MustCompile(`<a href="\.\./index\.html" class="back-to-blog">\s*<span>←</span>\s*<span>返回博客</span>\s*</a>\s*`)
	backlinkStyle  = regexp.MustCompile(`\.back-to-blog\s*{[^}]*}\s*`)
)

// StripBacklinks removes the legacy "back to blog" anchor and its CSS rule
// from a generated page. changed reports whether anything was removed.
func StripBacklinks(document []byte) (out []byte, changed bool) {
	out = backlinkAnchor.ReplaceAll(document, nil)
	out = backlinkStyle.ReplaceAll(out, nil)
	return out, len(out) != len(document)
}
