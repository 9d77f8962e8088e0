// Package slugs derives the deterministic identifiers used by the article
// pipeline: output file names from titles and anchor ids from heading text.
package slugs

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"sync"
)

// HeadingPrefix namespaces every generated heading anchor.
const HeadingPrefix = "heading-"

// HTMLExtension is appended to file name slugs.
const HTMLExtension = ".html"

var (
	fileNameInvalid = regexp.MustCompile(`[^a-z0-9\x{4e00}-\x{9fa5}]`)
	anchorInvalid   = regexp.MustCompile(`[^\w\s\x{4e00}-\x{9fa5}-]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	hyphenRun       = regexp.MustCompile(`-+`)
)

// FileName converts an article title into the base name of its HTML page.
// Latin letters are lowercased, digits and CJK ideographs are kept and every
// other character becomes a hyphen. Titles that reduce to nothing fall back
// to "article-" plus a short digest of the title so distinct titles keep
// distinct files.
func FileName(title string) string {
	slug := strings.ToLower(title)
	slug = fileNameInvalid.ReplaceAllString(slug, "-")
	slug = collapseHyphens(slug)
	if slug != "" {
		return slug
	}
	sum := sha256.Sum256([]byte(title))
	return "article-" + hex.EncodeToString(sum[:])[:8]
}

// Anchor converts visible heading text into an anchor id, including the
// heading prefix. Text made only of symbols yields the bare prefix.
func Anchor(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = anchorInvalid.ReplaceAllString(slug, "")
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	return HeadingPrefix + collapseHyphens(slug)
}

func collapseHyphens(value string) string {
	value = hyphenRun.ReplaceAllString(value, "-")
	return strings.Trim(value, "-")
}

// Slugger memoises FileName per title so that every phase of a run derives
// the same file name for the same title.
type Slugger struct {
	mu    sync.Mutex
	cache map[string]string
}

// NewSlugger returns an empty Slugger.
func NewSlugger() *Slugger {
	return &Slugger{cache: map[string]string{}}
}

// FileName returns the memoised file name slug for title.
func (s *Slugger) FileName(title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache == nil {
		s.cache = map[string]string{}
	}
	if slug, ok := s.cache[title]; ok {
		return slug
	}
	slug := FileName(title)
	s.cache[title] = slug
	return slug
}

// HTMLName returns the output file name, slug plus extension, for title.
func (s *Slugger) HTMLName(title string) string {
	return s.FileName(title) + HTMLExtension
}
