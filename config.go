package mdsite

import "github.com/goliatone/go-mdsite/internal/runtimeconfig"

var (
	ErrSourceDirRequired       = runtimeconfig.ErrSourceDirRequired
	ErrOutputDirRequired       = runtimeconfig.ErrOutputDirRequired
	ErrStoreDriverUnknown      = runtimeconfig.ErrStoreDriverUnknown
	ErrStorePathRequired       = runtimeconfig.ErrStorePathRequired
	ErrStoreDSNRequired        = runtimeconfig.ErrStoreDSNRequired
	ErrArticleSettingsInvalid  = runtimeconfig.ErrArticleSettingsInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

const (
	StoreDriverScript = runtimeconfig.StoreDriverScript
	StoreDriverYAML   = runtimeconfig.StoreDriverYAML
	StoreDriverSQLite = runtimeconfig.StoreDriverSQLite
	StoreDriverMemory = runtimeconfig.StoreDriverMemory
)

type (
	Config        = runtimeconfig.Config
	SourceConfig  = runtimeconfig.SourceConfig
	OutputConfig  = runtimeconfig.OutputConfig
	StoreConfig   = runtimeconfig.StoreConfig
	ArticleConfig = runtimeconfig.ArticleConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig decodes a YAML configuration file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
