package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-folio/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Build.SourceDir != "content/blogs" || cfg.Build.OutputPath != "public/data/blog-index.json" {
		t.Fatalf("unexpected build defaults %+v", cfg.Build)
	}
	if cfg.Build.Watch.Debounce.Std() != 300*time.Millisecond {
		t.Fatalf("unexpected debounce %v", cfg.Build.Watch.Debounce.Std())
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"source dir", func(c *runtimeconfig.Config) { c.Build.SourceDir = " " }, runtimeconfig.ErrSourceDirRequired},
		{"output path", func(c *runtimeconfig.Config) { c.Build.OutputPath = "" }, runtimeconfig.ErrOutputPathRequired},
		{"site root", func(c *runtimeconfig.Config) { c.Site.Root = "" }, runtimeconfig.ErrSiteRootRequired},
		{"extension", func(c *runtimeconfig.Config) { c.Build.Extension = "md" }, runtimeconfig.ErrExtensionInvalid},
		{"escaping path", func(c *runtimeconfig.Config) { c.Build.SourceDir = "../posts" }, runtimeconfig.ErrSitePathEscapesRoot},
		{"debounce", func(c *runtimeconfig.Config) { c.Build.Watch.Debounce = -1 }, runtimeconfig.ErrDebounceInvalid},
		{"timeout", func(c *runtimeconfig.Config) { c.Commands.Timeout = -1 }, runtimeconfig.ErrTimeoutInvalid},
		{"provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" }, runtimeconfig.ErrLoggingProviderUnknown},
		{"level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"format", func(c *runtimeconfig.Config) {
			c.Logging.Provider = "gologger"
			c.Logging.Format = "xml"
		}, runtimeconfig.ErrLoggingFormatInvalid},
	}
	for _, tc := range cases {
		cfg := runtimeconfig.DefaultConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestLoadConfigLayersFileDotenvAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "folio.toml")
	writeFile(t, configPath, `
[site]
root = "site"
owner = "Folio"

[build]
source_dir = "posts"
strict_integrity = true

[build.watch]
debounce = "1s"

[logging]
level = "debug"
`)
	envPath := filepath.Join(dir, ".env")
	writeFile(t, envPath, "FOLIO_BUILD_OUTPUT_PATH=out/index.json\nFOLIO_LOG_LEVEL=warn\n")

	env := map[string]string{"FOLIO_LOG_LEVEL": "error", "FOLIO_SERVER_ADDR": "127.0.0.1:9000"}
	cfg, err := runtimeconfig.LoadConfigWith(runtimeconfig.LoadOptions{
		Path:    configPath,
		EnvFile: envPath,
		LookupEnv: func(key string) (string, bool) {
			value, ok := env[key]
			return value, ok
		},
	})
	if err != nil {
		t.Fatalf("LoadConfigWith: %v", err)
	}

	if cfg.Site.Root != "site" || cfg.Site.Owner != "Folio" {
		t.Fatalf("expected file values, got %+v", cfg.Site)
	}
	if cfg.Build.SourceDir != "posts" || !cfg.Build.StrictIntegrity || cfg.Build.Watch.Debounce.Std() != time.Second {
		t.Fatalf("unexpected build config %+v", cfg.Build)
	}
	if cfg.Build.OutputPath != "out/index.json" {
		t.Fatalf("expected dotenv override, got %q", cfg.Build.OutputPath)
	}
	if cfg.Logging.Level != "error" {
		t.Fatalf("expected process env to win, got %q", cfg.Logging.Level)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
	if cfg.Build.MetaPath != "data/blogs.json" {
		t.Fatalf("expected untouched defaults, got %q", cfg.Build.MetaPath)
	}
}

func TestLoadConfigWithoutSourcesUsesDefaults(t *testing.T) {
	cfg, err := runtimeconfig.LoadConfigWith(runtimeconfig.LoadOptions{
		EnvFile: filepath.Join(t.TempDir(), "missing.env"),
	})
	if err != nil {
		t.Fatalf("LoadConfigWith: %v", err)
	}
	if cfg.Render.IndexPath != runtimeconfig.DefaultConfig().Render.IndexPath {
		t.Fatalf("expected defaults, got %+v", cfg.Render)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := runtimeconfig.LoadConfigWith(runtimeconfig.LoadOptions{Path: filepath.Join(dir, "absent.toml")}); err == nil {
		t.Fatal("expected error for missing config file")
	}

	unknown := filepath.Join(dir, "unknown.toml")
	writeFile(t, unknown, "[build]\nsource_directory = \"x\"\n")
	if _, err := runtimeconfig.LoadConfigWith(runtimeconfig.LoadOptions{Path: unknown}); err == nil {
		t.Fatal("expected error for unknown key")
	}

	_, err := runtimeconfig.LoadConfigWith(runtimeconfig.LoadOptions{
		LookupEnv: func(key string) (string, bool) {
			if key == "FOLIO_BUILD_STRICT" {
				return "sometimes", true
			}
			return "", false
		},
	})
	if err == nil {
		t.Fatal("expected error for invalid boolean override")
	}

	_, err = runtimeconfig.LoadConfigWith(runtimeconfig.LoadOptions{
		LookupEnv: func(key string) (string, bool) {
			if key == "FOLIO_BUILD_SOURCE_DIR" {
				return "../elsewhere", true
			}
			return "", false
		},
	})
	if !errors.Is(err, runtimeconfig.ErrSitePathEscapesRoot) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
