package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FOLIO_"

// DefaultEnvFile is read by LoadConfig when present.
const DefaultEnvFile = ".env"

// LoadOptions controls where LoadConfigWith reads settings from.
type LoadOptions struct {
	// Path is an optional TOML file. A named file that does not exist is an
	// error.
	Path string
	// EnvFile is an optional dotenv file; a missing file is ignored.
	EnvFile string
	// LookupEnv reads the process environment. Nil disables it.
	LookupEnv func(string) (string, bool)
}

// LoadConfig layers the TOML file at path, the .env file and FOLIO_*
// environment variables over DefaultConfig, then validates the result.
func LoadConfig(path string) (Config, error) {
	return LoadConfigWith(LoadOptions{
		Path:      path,
		EnvFile:   DefaultEnvFile,
		LookupEnv: os.LookupEnv,
	})
}

// LoadConfigWith is LoadConfig with explicit sources.
func LoadConfigWith(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	if path := strings.TrimSpace(opts.Path); path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("folio config: open %s: %w", path, err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("folio config: decode %s: %w", path, err)
		}
	}

	env := map[string]string{}
	if envFile := strings.TrimSpace(opts.EnvFile); envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			env = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("folio config: read %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if opts.LookupEnv != nil {
			if value, ok := opts.LookupEnv(key); ok {
				return value, true
			}
		}
		value, ok := env[key]
		return value, ok
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type envBinding struct {
	key   string
	apply func(*Config, string) error
}

func stringBinding(key string, field func(*Config) *string) envBinding {
	return envBinding{key: key, apply: func(cfg *Config, value string) error {
		*field(cfg) = value
		return nil
	}}
}

func boolBinding(key string, field func(*Config) *bool) envBinding {
	return envBinding{key: key, apply: func(cfg *Config, value string) error {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		*field(cfg) = parsed
		return nil
	}}
}

func durationBinding(key string, field func(*Config) *Duration) envBinding {
	return envBinding{key: key, apply: func(cfg *Config, value string) error {
		return field(cfg).UnmarshalText([]byte(value))
	}}
}

var envBindings = []envBinding{
	stringBinding("SITE_ROOT", func(c *Config) *string { return &c.Site.Root }),
	stringBinding("SITE_OWNER", func(c *Config) *string { return &c.Site.Owner }),
	stringBinding("SITE_BASE_URL", func(c *Config) *string { return &c.Site.BaseURL }),
	stringBinding("BUILD_SOURCE_DIR", func(c *Config) *string { return &c.Build.SourceDir }),
	stringBinding("BUILD_OUTPUT_PATH", func(c *Config) *string { return &c.Build.OutputPath }),
	stringBinding("BUILD_META_PATH", func(c *Config) *string { return &c.Build.MetaPath }),
	stringBinding("BUILD_DEFAULT_AUTHOR", func(c *Config) *string { return &c.Build.DefaultAuthor }),
	boolBinding("BUILD_STRICT", func(c *Config) *bool { return &c.Build.StrictIntegrity }),
	boolBinding("BUILD_SKIP_ERRORS", func(c *Config) *bool { return &c.Build.SkipErrors }),
	durationBinding("WATCH_DEBOUNCE", func(c *Config) *Duration { return &c.Build.Watch.Debounce }),
	durationBinding("FETCH_TIMEOUT", func(c *Config) *Duration { return &c.Render.FetchTimeout }),
	stringBinding("SERVER_ADDR", func(c *Config) *string { return &c.Server.Addr }),
	stringBinding("SESSION_SECRET", func(c *Config) *string { return &c.Server.SessionSecret }),
	stringBinding("LOG_PROVIDER", func(c *Config) *string { return &c.Logging.Provider }),
	stringBinding("LOG_LEVEL", func(c *Config) *string { return &c.Logging.Level }),
	stringBinding("LOG_FORMAT", func(c *Config) *string { return &c.Logging.Format }),
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for _, binding := range envBindings {
		key := EnvPrefix + binding.key
		value, ok := lookup(key)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if err := binding.apply(cfg, strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("folio config: %s: %w", key, err)
		}
	}
	return nil
}
