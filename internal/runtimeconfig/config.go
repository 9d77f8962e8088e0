package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-mdsite/internal/catalog"
	"github.com/goliatone/go-mdsite/internal/markdown"
	"github.com/goliatone/go-mdsite/internal/page"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

var (
	ErrSourceDirRequired       = errors.New("mdsite config: source directory is required")
	ErrOutputDirRequired       = errors.New("mdsite config: output directory is required")
	ErrStoreDriverUnknown      = errors.New("mdsite config: store driver is invalid")
	ErrStorePathRequired       = errors.New("mdsite config: store path is required for file backed drivers")
	ErrStoreDSNRequired        = errors.New("mdsite config: store dsn is required for the sqlite driver")
	ErrArticleSettingsInvalid  = errors.New("mdsite config: article settings are invalid")
	ErrLoggingProviderRequired = errors.New("mdsite config: logging provider is required")
	ErrLoggingProviderUnknown  = errors.New("mdsite config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("mdsite config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("mdsite config: logging format is invalid")
)

// Store drivers.
const (
	StoreDriverScript = "script"
	StoreDriverYAML   = "yaml"
	StoreDriverSQLite = "sqlite"
	StoreDriverMemory = "memory"
)

// Config aggregates the settings of one article pipeline.
type Config struct {
	Source   SourceConfig            `yaml:"source"`
	Output   OutputConfig            `yaml:"output"`
	Store    StoreConfig             `yaml:"store"`
	Article  ArticleConfig           `yaml:"article"`
	Markdown interfaces.ParseOptions `yaml:"markdown"`
	Logging  LoggingConfig           `yaml:"logging"`
}

// SourceConfig locates the Markdown sources.
type SourceConfig struct {
	Dir       string `yaml:"dir"`
	Pattern   string `yaml:"pattern"`
	Recursive bool   `yaml:"recursive"`
	// SeedExample creates Dir with an example article when it is missing.
	SeedExample bool `yaml:"seed_example"`
}

// OutputConfig locates the generated pages.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	// KeepOrphans disables the reconcile phase.
	KeepOrphans bool `yaml:"keep_orphans"`
}

// StoreConfig selects the catalog backend.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	// Path is the script or YAML file for file backed drivers.
	Path string `yaml:"path"`
	// DSN is the SQLite data source for the sqlite driver.
	DSN          string `yaml:"dsn"`
	ArticlesName string `yaml:"articles_name"`
	CatalogName  string `yaml:"catalog_name"`
}

// ArticleConfig shapes metadata defaults, records and pages.
type ArticleConfig struct {
	Defaults   markdown.Defaults `yaml:"defaults"`
	Icons      map[string]string `yaml:"icons"`
	LinkPrefix string            `yaml:"link_prefix"`
	Page       page.Config       `yaml:"page"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider string `yaml:"provider"`
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
}

// DefaultConfig returns the layout of the original site: Markdown under
// md-articles, pages under article and both collections in script.js.
func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			Dir:         "md-articles",
			Pattern:     "*.md",
			SeedExample: true,
		},
		Output: OutputConfig{
			Dir: "article",
		},
		Store: StoreConfig{
			Driver:       StoreDriverScript,
			Path:         "script.js",
			ArticlesName: "articlesDatabase",
			CatalogName:  "articlesCatalog",
		},
		Article: ArticleConfig{
			Defaults:   markdown.DefaultDefaults(),
			Icons:      catalog.DefaultIcons(),
			LinkPrefix: catalog.DefaultLinkPrefix,
			Page: page.Config{
				SiteName: page.DefaultSiteName,
			},
		},
		Markdown: markdown.DefaultParseOptions(),
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// LoadFile decodes the YAML document at path over DefaultConfig. Keys absent
// from the document keep their default values.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("mdsite config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("mdsite config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Source.Dir) == "" {
		return ErrSourceDirRequired
	}
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		return ErrOutputDirRequired
	}

	driver := NormalizeDriver(cfg.Store.Driver)
	switch driver {
	case StoreDriverScript, StoreDriverYAML:
		if strings.TrimSpace(cfg.Store.Path) == "" {
			return fmt.Errorf("%w: %s", ErrStorePathRequired, driver)
		}
	case StoreDriverSQLite:
		if strings.TrimSpace(cfg.Store.DSN) == "" {
			return ErrStoreDSNRequired
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("%w: %s", ErrStoreDriverUnknown, cfg.Store.Driver)
	}

	if err := cfg.Article.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrArticleSettingsInvalid, err)
	}

	provider := NormalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func (a ArticleConfig) validate() error {
	defaults := a.Defaults
	return validation.Errors{
		"defaults": validation.ValidateStruct(&defaults,
			validation.Field(&defaults.Category, validation.Required),
			validation.Field(&defaults.Section, validation.Required),
			validation.Field(&defaults.Gradient, validation.Required),
			validation.Field(&defaults.WordsPerMin, validation.Min(0)),
			validation.Field(&defaults.ExcerptLength, validation.Min(0)),
		),
		"link_prefix": validation.Validate(a.LinkPrefix,
			validation.By(func(value any) error {
				prefix, _ := value.(string)
				if strings.HasPrefix(prefix, "/") || strings.Contains(prefix, "..") {
					return errors.New("must be a relative path")
				}
				return nil
			}),
		),
	}.Filter()
}

// NormalizeDriver lower-cases driver and maps an empty value to the script driver.
func NormalizeDriver(driver string) string {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == "" {
		return StoreDriverScript
	}
	return driver
}

// NormalizeProvider lower-cases and trims a logging provider name.
func NormalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
