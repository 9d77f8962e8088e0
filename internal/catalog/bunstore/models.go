package bunstore

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

type articleModel struct {
	bun.BaseModel `bun:"table:articles"`

	Position  int       `bun:"position,pk"`
	ArticleID uuid.UUID `bun:"article_id,notnull"`
	Title     string    `bun:"title,notnull"`
	Excerpt   string    `bun:"excerpt"`
	Category  string    `bun:"category"`
	Section   string    `bun:"section"`
	Date      string    `bun:"date"`
	Gradient  string    `bun:"gradient"`
	Link      string    `bun:"link"`
}

// ArticleID derives the stable row identifier of the article titled title.
// Titles that differ only in surrounding whitespace share an identifier.
func ArticleID(title string) uuid.UUID {
	key := strings.Join(strings.Fields(title), " ")
	if key == "" {
		return uuid.Nil
	}
	key = "mdsite:article:" + key
	id, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || id == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
	}
	return id
}

type categoryModel struct {
	bun.BaseModel `bun:"table:catalog_categories"`

	Position int    `bun:"position,pk"`
	Name     string `bun:"category,notnull"`
	Icon     string `bun:"icon"`
}

type sectionModel struct {
	bun.BaseModel `bun:"table:catalog_sections"`

	CategoryPosition int    `bun:"category_position,pk"`
	Position         int    `bun:"position,pk"`
	Title            string `bun:"title,notnull"`
}

type catalogArticleModel struct {
	bun.BaseModel `bun:"table:catalog_articles"`

	CategoryPosition int    `bun:"category_position,pk"`
	SectionPosition  int    `bun:"section_position,pk"`
	Position         int    `bun:"position,pk"`
	Title            string `bun:"title,notnull"`
	Excerpt          string `bun:"excerpt"`
	Date             string `bun:"date"`
	Gradient         string `bun:"gradient"`
	Link             string `bun:"link"`
}

// Models lists every table the store uses, in creation order.
func Models() []any {
	return []any{
		(*articleModel)(nil),
		(*categoryModel)(nil),
		(*sectionModel)(nil),
		(*catalogArticleModel)(nil),
	}
}

func articleModelsFrom(records []interfaces.ArticleRecord) []articleModel {
	out := make([]articleModel, len(records))
	for i, record := range records {
		out[i] = articleModel{
			Position:  i + 1,
			ArticleID: ArticleID(record.Title),
			Title:     record.Title,
			Excerpt:   record.Excerpt,
			Category:  record.Category,
			Section:   record.Section,
			Date:      record.Date,
			Gradient:  record.Gradient,
			Link:      record.Link,
		}
	}
	return out
}

func articleRecordsFrom(models []articleModel) []interfaces.ArticleRecord {
	out := make([]interfaces.ArticleRecord, len(models))
	for i, model := range models {
		out[i] = interfaces.ArticleRecord{
			Title:    model.Title,
			Excerpt:  model.Excerpt,
			Category: model.Category,
			Section:  model.Section,
			Date:     model.Date,
			Gradient: model.Gradient,
			Link:     model.Link,
		}
	}
	return out
}

type catalogRows struct {
	categories []categoryModel
	sections   []sectionModel
	articles   []catalogArticleModel
}

func catalogRowsFrom(categories []interfaces.Category) catalogRows {
	var rows catalogRows
	for i, category := range categories {
		ci := i + 1
		rows.categories = append(rows.categories, categoryModel{
			Position: ci,
			Name:     category.Category,
			Icon:     category.Icon,
		})
		for j, section := range category.Sections {
			si := j + 1
			rows.sections = append(rows.sections, sectionModel{
				CategoryPosition: ci,
				Position:         si,
				Title:            section.Title,
			})
			for k, ref := range section.Articles {
				ai := k + 1
				rows.articles = append(rows.articles, catalogArticleModel{
					CategoryPosition: ci,
					SectionPosition:  si,
					Position:         ai,
					Title:            ref.Title,
					Excerpt:          ref.Excerpt,
					Date:             ref.Date,
					Gradient:         ref.Gradient,
					Link:             ref.Link,
				})
			}
		}
	}
	return rows
}

// tree rebuilds the catalog from rows sorted by their positions. Positions
// are one based.
func (rows catalogRows) tree() []interfaces.Category {
	out := make([]interfaces.Category, 0, len(rows.categories))
	index := make(map[int]int, len(rows.categories))
	for _, model := range rows.categories {
		index[model.Position] = len(out)
		out = append(out, interfaces.Category{
			Category: model.Name,
			Icon:     model.Icon,
			Sections: []interfaces.Section{},
		})
	}

	type sectionKey struct{ category, section int }
	sectionIndex := make(map[sectionKey]int, len(rows.sections))
	for _, model := range rows.sections {
		ci, ok := index[model.CategoryPosition]
		if !ok {
			continue
		}
		sectionIndex[sectionKey{model.CategoryPosition, model.Position}] = len(out[ci].Sections)
		out[ci].Sections = append(out[ci].Sections, interfaces.Section{
			Title:    model.Title,
			Articles: []interfaces.ArticleRef{},
		})
	}

	for _, model := range rows.articles {
		ci, ok := index[model.CategoryPosition]
		if !ok {
			continue
		}
		si, ok := sectionIndex[sectionKey{model.CategoryPosition, model.SectionPosition}]
		if !ok {
			continue
		}
		out[ci].Sections[si].Articles = append(out[ci].Sections[si].Articles, interfaces.ArticleRef{
			Title:    model.Title,
			Excerpt:  model.Excerpt,
			Date:     model.Date,
			Gradient: model.Gradient,
			Link:     model.Link,
		})
	}
	return out
}
