package markdown

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// Defaults holds the static fallbacks applied when neither the front matter
// nor a computed value supplies a field.
type Defaults struct {
	Category      string `yaml:"category"`
	Section       string `yaml:"section"`
	Gradient      string `yaml:"gradient"`
	Author        string `yaml:"author"`
	ReadTimeUnit  string `yaml:"read_time_unit"`
	WordsPerMin   int    `yaml:"words_per_minute"`
	ExcerptLength int    `yaml:"excerpt_length"`
}

// DefaultDefaults returns the fallbacks used by the site's existing articles.
func DefaultDefaults() Defaults {
	return Defaults{
		Category:      "前端开发",
		Section:       "技术文章",
		Gradient:      "gradient-5",
		Author:        "Kingishu",
		ReadTimeUnit:  " minutes",
		WordsPerMin:   200,
		ExcerptLength: 100,
	}
}

const excerptEllipsis = "..."

var (
	titleHeading     = regexp.MustCompile(`(?m)^#[ \t]+(.+)$`)
	excerptStripper  = regexp.MustCompile("[#*`\\[\\]]")
	paragraphBreak   = regexp.MustCompile(`\n[ \t]*\n`)
	atxHeadingPrefix = regexp.MustCompile(`^#{1,6}(\s|$)`)
)

// MetadataResolver builds ArticleMetadata from raw sources. Each field is
// resolved as explicit front matter value, then computed fallback, then the
// static default.
type MetadataResolver struct {
	defaults Defaults
	now      func() time.Time
}

// NewMetadataResolver returns a resolver using defaults. now supplies the
// processing date and defaults to time.Now.
func NewMetadataResolver(defaults Defaults, now func() time.Time) *MetadataResolver {
	base := DefaultDefaults()
	if defaults.WordsPerMin <= 0 {
		defaults.WordsPerMin = base.WordsPerMin
	}
	if defaults.ExcerptLength <= 0 {
		defaults.ExcerptLength = base.ExcerptLength
	}
	if now == nil {
		now = time.Now
	}
	return &MetadataResolver{defaults: defaults, now: now}
}

// Resolve parses source and returns the resolved metadata along with the
// Markdown body to render. Documents without front matter take their title
// from the first "# " heading, which is removed from the body. A document
// with neither yields an empty Title.
func (r *MetadataResolver) Resolve(source []byte) (interfaces.ArticleMetadata, []byte) {
	fields, body, found := ParseFrontMatter(source)
	if !found {
		fields = map[string]string{}
		if loc := titleHeading.FindSubmatchIndex(body); loc != nil {
			fields["title"] = string(body[loc[2]:loc[3]])
			stripped := append(append([]byte{}, body[:loc[0]]...), body[loc[1]:]...)
			body = []byte(strings.TrimSpace(string(stripped)))
		}
	}

	meta := interfaces.ArticleMetadata{
		Title:       strings.TrimSpace(fields["title"]),
		Category:    firstNonEmpty(fields["category"], r.defaults.Category),
		Section:     firstNonEmpty(fields["section"], r.defaults.Section),
		Date:        firstNonEmpty(fields["date"], r.now().UTC().Format("2006-01-02")),
		Gradient:    firstNonEmpty(fields["gradient"], r.defaults.Gradient),
		Description: strings.TrimSpace(fields["description"]),
		Author:      firstNonEmpty(fields["author"], r.defaults.Author),
		Extra:       extraFields(fields),
	}

	switch {
	case meta.Description != "":
		meta.Excerpt = meta.Description
	case strings.TrimSpace(fields["excerpt"]) != "":
		meta.Excerpt = strings.TrimSpace(fields["excerpt"])
	default:
		meta.Excerpt = Excerpt(body, r.defaults.ExcerptLength)
	}
	meta.ReadTime = ReadTime(body, r.defaults.WordsPerMin, r.defaults.ReadTimeUnit)

	return meta, body
}

// Excerpt returns the first prose paragraph of body with Markdown emphasis,
// heading and link bracket characters removed. Paragraphs longer than limit
// runes are cut and marked with an ellipsis.
func Excerpt(body []byte, limit int) string {
	for _, block := range paragraphBreak.Split(string(body), -1) {
		block = strings.TrimSpace(block)
		if block == "" || (atxHeadingPrefix.MatchString(block) && !strings.Contains(block, "\n")) {
			continue
		}
		text := strings.TrimSpace(excerptStripper.ReplaceAllString(block, ""))
		if text == "" {
			continue
		}
		if limit > 0 && utf8.RuneCountInString(text) > limit {
			return string([]rune(text)[:limit]) + excerptEllipsis
		}
		return text
	}
	return ""
}

// ReadTime estimates reading time from the whitespace separated token count
// of body, rounded up to whole minutes with a minimum of one.
func ReadTime(body []byte, wordsPerMinute int, unit string) string {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultDefaults().WordsPerMin
	}
	words := len(strings.Fields(string(body)))
	minutes := int(math.Ceil(float64(words) / float64(wordsPerMinute)))
	if minutes < 1 {
		minutes = 1
	}
	return strconv.Itoa(minutes) + unit
}

var recognisedKeys = map[string]struct{}{
	"title": {}, "category": {}, "section": {}, "date": {}, "gradient": {},
	"description": {}, "excerpt": {}, "author": {},
}

func extraFields(fields map[string]string) map[string]string {
	extra := map[string]string{}
	for key, value := range fields {
		if _, ok := recognisedKeys[key]; ok {
			continue
		}
		extra[key] = value
	}
	return extra
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
