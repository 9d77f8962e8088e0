// Package page composes complete article pages from resolved metadata,
// rendered Markdown and the table of contents.
package page

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/goliatone/go-mdsite/internal/slugs"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

//go:embed templates/article.html
var defaultTemplate string

// DefaultSiteName is shown in page titles and the navigation logo.
const DefaultSiteName = "Tech Blog"

// Config selects the page template and site wide labels.
type Config struct {
	// TemplatePath overrides the embedded template when set.
	TemplatePath string `yaml:"template_path"`
	SiteName     string `yaml:"site_name"`
}

// Composer renders article pages. It is safe for concurrent use.
type Composer struct {
	tmpl     *template.Template
	siteName string
	slugger  *slugs.Slugger
}

// NewComposer parses the configured template. A nil slugger gets a fresh one.
func NewComposer(cfg Config, slugger *slugs.Slugger) (*Composer, error) {
	source := defaultTemplate
	if path := strings.TrimSpace(cfg.TemplatePath); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("page: read template %s: %w", path, err)
		}
		source = string(data)
	}

	tmpl, err := template.New("article").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("page: parse template: %w", err)
	}

	siteName := strings.TrimSpace(cfg.SiteName)
	if siteName == "" {
		siteName = DefaultSiteName
	}
	if slugger == nil {
		slugger = slugs.NewSlugger()
	}

	return &Composer{
		tmpl:     tmpl,
		siteName: siteName,
		slugger:  slugger,
	}, nil
}

type pageData struct {
	interfaces.ArticleMetadata
	SiteName string
	Year     string
	Body     template.HTML
	TOC      template.HTML
}

// Compose returns the output file name for meta.Title and the full HTML
// document. body and toc are trusted renderer output; metadata values are
// escaped. An empty toc omits the sidebar.
func (c *Composer) Compose(meta interfaces.ArticleMetadata, body []byte, toc string) (string, []byte, error) {
	data := pageData{
		ArticleMetadata: meta,
		SiteName:        c.siteName,
		Year:            yearOf(meta.Date),
		Body:            template.HTML(body),
		TOC:             template.HTML(strings.TrimSpace(toc)),
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, data); err != nil {
		return "", nil, fmt.Errorf("page: render %q: %w", meta.Title, err)
	}
	return c.slugger.HTMLName(meta.Title), buf.Bytes(), nil
}

func yearOf(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return date
}
