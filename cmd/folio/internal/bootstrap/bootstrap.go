package bootstrap

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-folio"
	"github.com/goliatone/go-folio/internal/di"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Options captures configuration for folio CLI bootstraps.
type Options struct {
	// ConfigPath points at an optional TOML file.
	ConfigPath string
	// SiteRoot overrides Site.Root when set.
	SiteRoot string
	// LogLevel overrides Logging.Level when set.
	LogLevel       string
	LogWriter      io.Writer
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the folio module and the CLI logger.
type Module struct {
	Module *folio.Module
	Logger interfaces.Logger
}

// BuildModule loads configuration and constructs a folio module.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := folio.LoadConfig(strings.TrimSpace(opts.ConfigPath))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if root := strings.TrimSpace(opts.SiteRoot); root != "" {
		cfg.Site.Root = root
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}
	if opts.LogWriter != nil {
		diOpts = append(diOpts, di.WithLogWriter(opts.LogWriter))
	}

	module, err := folio.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise folio module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: logging.ModuleLogger(module.Container().LoggerProvider(), "folio.cli"),
	}, nil
}
