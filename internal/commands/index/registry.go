package indexcmd

import (
	"errors"

	"github.com/goliatone/go-folio/internal/commands"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterIndexCommands.
type HandlerSet struct {
	Build  *BuildIndexHandler
	Verify *VerifyIndexHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	buildHandlerOpts  []commands.HandlerOption[BuildIndexCommand]
	verifyHandlerOpts []commands.HandlerOption[VerifyIndexCommand]
}

// WithBuildHandlerOptions forwards options to NewBuildIndexHandler.
func WithBuildHandlerOptions(opts ...commands.HandlerOption[BuildIndexCommand]) Option {
	return func(cfg *options) {
		cfg.buildHandlerOpts = append(cfg.buildHandlerOpts, opts...)
	}
}

// WithVerifyHandlerOptions forwards options to NewVerifyIndexHandler.
func WithVerifyHandlerOptions(opts ...commands.HandlerOption[VerifyIndexCommand]) Option {
	return func(cfg *options) {
		cfg.verifyHandlerOpts = append(cfg.verifyHandlerOpts, opts...)
	}
}

// RegisterIndexCommands builds the index handlers and registers them with
// reg when it is not nil.
func RegisterIndexCommands(reg CommandRegistry, builder Builder, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if builder == nil {
		return nil, errors.New("index command registration: builder is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := logging.CommandLogger(provider, "index")

	buildHandler := NewBuildIndexHandler(builder, logger, cfg.buildHandlerOpts...)
	verifyHandler := NewVerifyIndexHandler(builder, logger, cfg.verifyHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(buildHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(verifyHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{Build: buildHandler, Verify: verifyHandler}, nil
}
