package folio

import "github.com/goliatone/go-folio/internal/runtimeconfig"

var (
	ErrSiteRootRequired       = runtimeconfig.ErrSiteRootRequired
	ErrSourceDirRequired      = runtimeconfig.ErrSourceDirRequired
	ErrOutputPathRequired     = runtimeconfig.ErrOutputPathRequired
	ErrExtensionInvalid       = runtimeconfig.ErrExtensionInvalid
	ErrSitePathEscapesRoot    = runtimeconfig.ErrSitePathEscapesRoot
	ErrDebounceInvalid        = runtimeconfig.ErrDebounceInvalid
	ErrTimeoutInvalid         = runtimeconfig.ErrTimeoutInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	SiteConfig           = runtimeconfig.SiteConfig
	BuildConfig          = runtimeconfig.BuildConfig
	WatchConfig          = runtimeconfig.WatchConfig
	RenderConfig         = runtimeconfig.RenderConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	ServerConfig         = runtimeconfig.ServerConfig
	CommandsConfig       = runtimeconfig.CommandsConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
	Duration             = runtimeconfig.Duration
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads path (optional), .env and FOLIO_* overrides.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadConfig(path)
}
