package di

import (
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	indexcmd "github.com/goliatone/go-folio/internal/commands/index"
)

// CommandRegistry records command handlers so hosts can expose them via CLI.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures where container handlers are registered.
type RegistrationOptions struct {
	Registry   CommandRegistry
	Dispatcher CommandDispatcher
}

// RegistrationResult captures the registered handlers and any dispatcher
// subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// Close releases every dispatcher subscription.
func (r *RegistrationResult) Close() {
	if r == nil {
		return
	}
	for _, sub := range r.Subscriptions {
		sub.Unsubscribe()
	}
	r.Subscriptions = nil
}

// RegisterCommands registers the container handlers with the registry and
// dispatcher in opts. Errors from individual registrations are joined.
func (c *Container) RegisterCommands(opts RegistrationOptions) (*RegistrationResult, error) {
	result := &RegistrationResult{
		Handlers:      make([]any, 0, 2),
		Subscriptions: make([]CommandSubscription, 0, 2),
	}
	if c == nil || c.indexHandlers == nil {
		return result, errors.New("di: no command handlers configured")
	}

	var errs error
	register := func(handler any) {
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}
		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	register(c.indexHandlers.Build)
	register(c.indexHandlers.Verify)

	return result, errs
}

// Dispatcher subscribes folio handlers to the go-command process dispatcher.
type Dispatcher struct {
	// MaxRetries is forwarded to runner.WithMaxRetries when positive.
	MaxRetries int
}

var _ CommandDispatcher = Dispatcher{}

// RegisterCommand subscribes handler by its message type. Handlers for
// unknown messages are rejected.
func (d Dispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	switch h := handler.(type) {
	case command.Commander[indexcmd.BuildIndexCommand]:
		return subscribe(h, d.MaxRetries), nil
	case command.Commander[indexcmd.VerifyIndexCommand]:
		return subscribe(h, d.MaxRetries), nil
	}
	return nil, fmt.Errorf("di: cannot dispatch handler %T", handler)
}

func subscribe[T command.Message](handler command.Commander[T], retries int) CommandSubscription {
	if retries > 0 {
		return dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(retries))
	}
	return dispatcher.SubscribeCommand(handler)
}
