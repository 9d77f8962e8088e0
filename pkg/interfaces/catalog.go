package interfaces

import "context"

// ArticleRecord is an entry in the flat article database used for card
// listings. Title is the natural key.
type ArticleRecord struct {
	Title    string `json:"title" yaml:"title"`
	Excerpt  string `json:"excerpt" yaml:"excerpt"`
	Category string `json:"category" yaml:"category"`
	Section  string `json:"section,omitempty" yaml:"section,omitempty"`
	Date     string `json:"date" yaml:"date"`
	Gradient string `json:"gradient" yaml:"gradient"`
	Link     string `json:"link" yaml:"link"`
}

// Category is a top level node of the navigation catalog.
type Category struct {
	Category string    `json:"category" yaml:"category"`
	Icon     string    `json:"icon" yaml:"icon"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section groups hand-maintained article references inside a category.
type Section struct {
	Title    string       `json:"title" yaml:"title"`
	Articles []ArticleRef `json:"articles" yaml:"articles"`
}

// ArticleRef is a catalog leaf pointing at an article page.
type ArticleRef struct {
	Title    string `json:"title" yaml:"title"`
	Excerpt  string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	Date     string `json:"date,omitempty" yaml:"date,omitempty"`
	Gradient string `json:"gradient,omitempty" yaml:"gradient,omitempty"`
	Link     string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Snapshot is the full persisted state: the flat article list and the catalog tree.
type Snapshot struct {
	Articles []ArticleRecord `json:"articles" yaml:"articles"`
	Catalog  []Category      `json:"catalog" yaml:"catalog"`
}

// CatalogRepository persists the article database and catalog. Each save
// replaces the stored collection as a whole.
type CatalogRepository interface {
	Load(ctx context.Context) (*Snapshot, error)
	SaveArticles(ctx context.Context, articles []ArticleRecord) error
	SaveCatalog(ctx context.Context, catalog []Category) error
}
