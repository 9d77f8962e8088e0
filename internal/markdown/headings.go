package markdown

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-mdsite/internal/slugs"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

var (
	headingElement = regexp.MustCompile(`(?s)<h([1-6])((?:\s[^>]*)?)>(.*?)</h[1-6]>`)
	idAttribute    = regexp.MustCompile(`\s+id="[^"]*"`)
	idValue        = regexp.MustCompile(`\bid="([^"]*)"`)
	htmlTag        = regexp.MustCompile(`<[^>]*>`)
)

// InjectHeadingIDs replaces the id of every h1-h6 element in rendered HTML
// with slugs.Anchor of the heading's visible text. Other attributes and the
// inner markup are kept. Identical headings share an id.
func InjectHeadingIDs(rendered []byte) []byte {
	return headingElement.ReplaceAllFunc(rendered, func(match []byte) []byte {
		parts := headingElement.FindSubmatch(match)
		level, attrs, inner := string(parts[1]), string(parts[2]), string(parts[3])

		attrs = idAttribute.ReplaceAllString(attrs, "")
		id := slugs.Anchor(HeadingText(inner))

		var b strings.Builder
		b.Grow(len(match) + len(id))
		b.WriteString("<h")
		b.WriteString(level)
		b.WriteString(` id="`)
		b.WriteString(html.EscapeString(id))
		b.WriteByte('"')
		b.WriteString(attrs)
		b.WriteByte('>')
		b.WriteString(inner)
		b.WriteString("</h")
		b.WriteString(level)
		b.WriteByte('>')
		return []byte(b.String())
	})
}

// HeadingText returns the visible text of a heading's inner HTML.
func HeadingText(inner string) string {
	return strings.TrimSpace(html.UnescapeString(htmlTag.ReplaceAllString(inner, "")))
}

// BuildTOC scans rendered HTML in document order and returns the h2-h4
// headings with their ids. Headings without an id are skipped.
func BuildTOC(rendered []byte) []interfaces.TOCEntry {
	entries := []interfaces.TOCEntry{}
	for _, parts := range headingElement.FindAllSubmatch(rendered, -1) {
		level, err := strconv.Atoi(string(parts[1]))
		if err != nil || level < 2 || level > 4 {
			continue
		}
		id := idValue.FindSubmatch(parts[2])
		if id == nil {
			continue
		}
		entries = append(entries, interfaces.TOCEntry{
			Level: level,
			ID:    html.UnescapeString(string(id[1])),
			Text:  HeadingText(string(parts[3])),
		})
	}
	return entries
}

// RenderTOC renders entries as a single list, indenting each item by four
// spaces per level below h2. It returns "" when there are no entries.
func RenderTOC(entries []interfaces.TOCEntry) string {
	if len(entries) == 0 {
		return ""
	}
	items := make([]string, 0, len(entries))
	for _, entry := range entries {
		depth := max(entry.Level-2, 0)
		items = append(items, strings.Repeat(" ", depth*4)+
			`<li><a href="#`+html.EscapeString(entry.ID)+`">`+html.EscapeString(entry.Text)+`</a></li>`)
	}
	return "<ul>" + strings.Join(items, "\n") + "</ul>"
}
