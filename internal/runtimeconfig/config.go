package runtimeconfig

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

var (
	ErrSiteRootRequired       = errors.New("folio config: site root is required")
	ErrSourceDirRequired      = errors.New("folio config: build source directory is required")
	ErrOutputPathRequired     = errors.New("folio config: build output path is required")
	ErrExtensionInvalid       = errors.New("folio config: build extension must start with a dot")
	ErrSitePathEscapesRoot    = errors.New("folio config: site paths must stay inside the site root")
	ErrDebounceInvalid        = errors.New("folio config: watch debounce must be zero or positive")
	ErrTimeoutInvalid         = errors.New("folio config: timeouts must be zero or positive")
	ErrLoggingProviderUnknown = errors.New("folio config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("folio config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("folio config: logging format is invalid")
)

// Config aggregates every setting of the folio pipeline. Paths under Build
// and Render are slash separated and relative to Site.Root.
type Config struct {
	Site     SiteConfig     `toml:"site"`
	Build    BuildConfig    `toml:"build"`
	Render   RenderConfig   `toml:"render"`
	Server   ServerConfig   `toml:"server"`
	Commands CommandsConfig `toml:"commands"`
	Logging  LoggingConfig  `toml:"logging"`
}

// SiteConfig locates the site tree.
type SiteConfig struct {
	Root string `toml:"root"`
	// Owner is appended to document page titles.
	Owner string `toml:"owner"`
	// BaseURL switches the renderers to fetch over HTTP instead of reading
	// Root directly.
	BaseURL string `toml:"base_url"`
}

// BuildConfig drives the index builder.
type BuildConfig struct {
	SourceDir       string      `toml:"source_dir"`
	OutputPath      string      `toml:"output_path"`
	MetaPath        string      `toml:"meta_path"`
	Extension       string      `toml:"extension"`
	DefaultAuthor   string      `toml:"default_author"`
	StrictIntegrity bool        `toml:"strict_integrity"`
	SkipErrors      bool        `toml:"skip_errors"`
	Watch           WatchConfig `toml:"watch"`
}

// WatchConfig controls rebuild-on-change.
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// RenderConfig drives the list and document renderers.
type RenderConfig struct {
	IndexPath     string               `toml:"index_path"`
	MetaPath      string               `toml:"meta_path"`
	ContentPrefix string               `toml:"content_prefix"`
	DocumentPage  string               `toml:"document_page"`
	FetchTimeout  Duration             `toml:"fetch_timeout"`
	Markdown      MarkdownParserConfig `toml:"markdown"`
}

// MarkdownParserConfig mirrors interfaces.ParseOptions.
type MarkdownParserConfig struct {
	Extensions     []string `toml:"extensions"`
	HardWraps      bool     `toml:"hard_wraps"`
	SafeMode       bool     `toml:"safe_mode"`
	Highlight      bool     `toml:"highlight"`
	HighlightStyle string   `toml:"highlight_style"`
}

// ServerConfig configures `folio serve`.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	SessionName   string `toml:"session_name"`
	SessionSecret string `toml:"session_secret"`
}

// CommandsConfig captures command-layer behaviour.
type CommandsConfig struct {
	Timeout Duration `toml:"timeout"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `toml:"provider"`
	Level     string   `toml:"level"`
	Format    string   `toml:"format"`
	AddSource bool     `toml:"add_source"`
	Focus     []string `toml:"focus"`
}

// Duration is a time.Duration written as a Go duration string in TOML and
// environment values.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// DefaultConfig returns the stock site layout: content/blogs in, public/data/blog-index.json out.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Root:  ".",
			Owner: "Vijay",
		},
		Build: BuildConfig{
			SourceDir:     "content/blogs",
			OutputPath:    "public/data/blog-index.json",
			MetaPath:      "data/blogs.json",
			Extension:     ".md",
			DefaultAuthor: "Vijay Saini",
			Watch: WatchConfig{
				Debounce: Duration(300 * time.Millisecond),
			},
		},
		Render: RenderConfig{
			IndexPath:     "public/data/blog-index.json",
			MetaPath:      "data/blogs.json",
			ContentPrefix: "content/blogs/",
			DocumentPage:  "blog-post.html",
			FetchTimeout:  Duration(10 * time.Second),
			Markdown: MarkdownParserConfig{
				HardWraps:      true,
				Highlight:      true,
				HighlightStyle: "github",
			},
		},
		Server: ServerConfig{
			Addr:        ":8080",
			SessionName: "folio",
		},
		Commands: CommandsConfig{
			Timeout: Duration(time.Minute),
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Site.Root) == "" {
		return ErrSiteRootRequired
	}
	if strings.TrimSpace(cfg.Build.SourceDir) == "" {
		return ErrSourceDirRequired
	}
	if strings.TrimSpace(cfg.Build.OutputPath) == "" {
		return ErrOutputPathRequired
	}
	if ext := strings.TrimSpace(cfg.Build.Extension); ext != "" && !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("%w: %s", ErrExtensionInvalid, ext)
	}
	for _, p := range []string{cfg.Build.SourceDir, cfg.Build.MetaPath, cfg.Render.IndexPath, cfg.Render.MetaPath, cfg.Render.ContentPrefix} {
		if escapesRoot(p) {
			return fmt.Errorf("%w: %s", ErrSitePathEscapesRoot, p)
		}
	}
	if cfg.Build.Watch.Debounce < 0 {
		return ErrDebounceInvalid
	}
	if cfg.Render.FetchTimeout < 0 || cfg.Commands.Timeout < 0 {
		return ErrTimeoutInvalid
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
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

// escapesRoot reports whether p leaves the site root once cleaned.
func escapesRoot(p string) bool {
	p = strings.TrimSpace(p)
	if p == "" {
		return false
	}
	cleaned := path.Clean(strings.TrimPrefix(p, "/"))
	return cleaned == ".." || strings.HasPrefix(cleaned, "../")
}

func normalizeProvider(provider string) string {
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
