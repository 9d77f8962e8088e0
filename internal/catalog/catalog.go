// Package catalog maintains the flat article database and the navigation
// catalog tree. The helpers here are pure; persistence lives behind
// interfaces.CatalogRepository implementations.
package catalog

import (
	"path"
	"regexp"
	"strings"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// DefaultLinkPrefix is prepended to generated page names in record links.
const DefaultLinkPrefix = "article/"

// FallbackIcon is used for categories missing from the icon table.
const FallbackIcon = "📝"

// DefaultIcons maps known category names to their catalog icon.
func DefaultIcons() map[string]string {
	return map[string]string{
		"Unity开发": "🎮",
		"前端开发":    "🌐",
		"测试内容":    "🧪",
		"游戏开发":    "🎯",
		"技术文章":    "💻",
		"算法与数据结构": "🧮",
	}
}

// IconFor returns the icon for category, falling back to FallbackIcon.
func IconFor(icons map[string]string, category string) string {
	if icon, ok := icons[category]; ok && icon != "" {
		return icon
	}
	return FallbackIcon
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeTitle collapses whitespace runs to a single space. Titles are
// compared in this form.
func NormalizeTitle(title string) string {
	return whitespaceRun.ReplaceAllString(title, " ")
}

// FindArticle returns the index of the record whose normalised title equals
// title, or -1.
func FindArticle(records []interfaces.ArticleRecord, title string) int {
	want := NormalizeTitle(title)
	for i, record := range records {
		if NormalizeTitle(record.Title) == want {
			return i
		}
	}
	return -1
}

// NewRecord flattens resolved metadata into a database record linking to fileName.
func NewRecord(meta interfaces.ArticleMetadata, linkPrefix, fileName string) interfaces.ArticleRecord {
	return interfaces.ArticleRecord{
		Title:    meta.Title,
		Excerpt:  meta.Excerpt,
		Category: meta.Category,
		Section:  meta.Section,
		Date:     meta.Date,
		Gradient: meta.Gradient,
		Link:     linkPrefix + fileName,
	}
}

// UpsertArticle replaces the record with the same title in place, or inserts
// record at the front when none exists. The input slice is not modified.
func UpsertArticle(records []interfaces.ArticleRecord, record interfaces.ArticleRecord) ([]interfaces.ArticleRecord, bool) {
	if idx := FindArticle(records, record.Title); idx >= 0 {
		out := CloneArticles(records)
		out[idx] = record
		return out, false
	}
	out := make([]interfaces.ArticleRecord, 0, len(records)+1)
	out = append(out, record)
	out = append(out, records...)
	return out, true
}

// EnsureNode appends the category and section when missing. Existing nodes
// keep their order and content. changed reports whether anything was added.
func EnsureNode(categories []interfaces.Category, category, section string, icons map[string]string) ([]interfaces.Category, bool) {
	out := CloneCatalog(categories)

	idx := -1
	for i := range out {
		if out[i].Category == category {
			idx = i
			break
		}
	}

	changed := false
	if idx < 0 {
		out = append(out, interfaces.Category{
			Category: category,
			Icon:     IconFor(icons, category),
			Sections: []interfaces.Section{},
		})
		idx = len(out) - 1
		changed = true
	}

	for _, existing := range out[idx].Sections {
		if existing.Title == section {
			return out, changed
		}
	}
	out[idx].Sections = append(out[idx].Sections, interfaces.Section{
		Title:    section,
		Articles: []interfaces.ArticleRef{},
	})
	return out, true
}

// LinkBase returns the page file name a record links to.
func LinkBase(link string) string {
	if strings.TrimSpace(link) == "" {
		return ""
	}
	return path.Base(strings.ReplaceAll(link, "\\", "/"))
}

// PruneArticles keeps the records whose link basename is in expected and
// returns the removed ones separately.
func PruneArticles(records []interfaces.ArticleRecord, expected map[string]struct{}) (kept, removed []interfaces.ArticleRecord) {
	kept = make([]interfaces.ArticleRecord, 0, len(records))
	removed = []interfaces.ArticleRecord{}
	for _, record := range records {
		if _, ok := expected[LinkBase(record.Link)]; ok {
			kept = append(kept, record)
			continue
		}
		removed = append(removed, record)
	}
	return kept, removed
}

// CloneArticles returns a copy of records that is never nil.
func CloneArticles(records []interfaces.ArticleRecord) []interfaces.ArticleRecord {
	out := make([]interfaces.ArticleRecord, len(records))
	copy(out, records)
	return out
}

// CloneCatalog deep copies the catalog tree, normalising nil slices to empty ones.
func CloneCatalog(categories []interfaces.Category) []interfaces.Category {
	out := make([]interfaces.Category, len(categories))
	for i, category := range categories {
		sections := make([]interfaces.Section, len(category.Sections))
		for j, section := range category.Sections {
			articles := make([]interfaces.ArticleRef, len(section.Articles))
			copy(articles, section.Articles)
			sections[j] = interfaces.Section{Title: section.Title, Articles: articles}
		}
		out[i] = interfaces.Category{
			Category: category.Category,
			Icon:     category.Icon,
			Sections: sections,
		}
	}
	return out
}

// CloneSnapshot deep copies snapshot; a nil snapshot yields an empty one.
func CloneSnapshot(snapshot *interfaces.Snapshot) *interfaces.Snapshot {
	if snapshot == nil {
		return &interfaces.Snapshot{
			Articles: []interfaces.ArticleRecord{},
			Catalog:  []interfaces.Category{},
		}
	}
	return &interfaces.Snapshot{
		Articles: CloneArticles(snapshot.Articles),
		Catalog:  CloneCatalog(snapshot.Catalog),
	}
}
