package indexcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-folio/internal/commands"
	"github.com/goliatone/go-folio/internal/indexer"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

const (
	buildOperation  = "index.build"
	verifyOperation = "index.verify"
)

var (
	// ErrBuilderRequired is returned when handlers run without a builder.
	ErrBuilderRequired = errors.New("index command: builder is required")
	// ErrMetaMissing is returned by verification when RequireMeta is set and
	// no metadata file exists.
	ErrMetaMissing = errors.New("index command: metadata file not found")
)

// Builder is the part of indexer.Builder the handlers use.
type Builder interface {
	Build(ctx context.Context, req indexer.BuildRequest) (*indexer.BuildResult, error)
}

var (
	_ command.Commander[BuildIndexCommand]  = (*BuildIndexHandler)(nil)
	_ command.Commander[VerifyIndexCommand] = (*VerifyIndexHandler)(nil)
	_ Builder                               = (*indexer.Builder)(nil)
)

// BuildIndexHandler runs index builds through the shared command handler.
type BuildIndexHandler struct {
	inner *commands.Handler[BuildIndexCommand]
}

// NewBuildIndexHandler creates a handler bound to builder.
func NewBuildIndexHandler(builder Builder, logger interfaces.Logger, opts ...commands.HandlerOption[BuildIndexCommand]) *BuildIndexHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg BuildIndexCommand) error {
		if builder == nil {
			return ErrBuilderRequired
		}
		result, err := builder.Build(ctx, indexer.BuildRequest{
			Policy: msg.Policy,
			Strict: msg.Strict,
			DryRun: msg.DryRun,
		})
		invokeCallback(msg.ResultCallback, result)
		return err
	}

	handlerOpts := []commands.HandlerOption[BuildIndexCommand]{
		commands.WithLogger[BuildIndexCommand](baseLogger),
		commands.WithOperation[BuildIndexCommand](buildOperation),
		commands.WithMessageFields(func(msg BuildIndexCommand) map[string]any {
			fields := map[string]any{}
			if msg.Policy != "" {
				fields["policy"] = string(msg.Policy)
			}
			if msg.Strict {
				fields["strict"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.Trigger != "" {
				fields["trigger"] = msg.Trigger
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildIndexCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildIndexHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[BuildIndexCommand].
func (h *BuildIndexHandler) Execute(ctx context.Context, msg BuildIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}

// VerifyIndexHandler checks the index against blogs.json.
type VerifyIndexHandler struct {
	inner *commands.Handler[VerifyIndexCommand]
}

// NewVerifyIndexHandler creates a handler bound to builder. Drift is
// returned as indexer.ErrIntegrity.
func NewVerifyIndexHandler(builder Builder, logger interfaces.Logger, opts ...commands.HandlerOption[VerifyIndexCommand]) *VerifyIndexHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg VerifyIndexCommand) error {
		if builder == nil {
			return ErrBuilderRequired
		}
		result, err := builder.Build(ctx, indexer.BuildRequest{
			Policy: indexer.SkipAndReport,
			DryRun: true,
		})
		invokeCallback(msg.ResultCallback, result)
		if err != nil {
			return err
		}

		if result.Integrity == nil {
			if msg.RequireMeta {
				return ErrMetaMissing
			}
			baseLogger.Info("index.verify.skipped", "reason", "no metadata file")
			return nil
		}
		if !result.Integrity.Clean() {
			logging.WithFields(baseLogger, map[string]any{
				"only_in_index": len(result.Integrity.OnlyInIndex),
				"only_in_meta":  len(result.Integrity.OnlyInMeta),
				"missing_files": len(result.Integrity.MissingFiles),
			}).Warn("index.verify.drift")
			return indexer.ErrIntegrity
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[VerifyIndexCommand]{
		commands.WithLogger[VerifyIndexCommand](baseLogger),
		commands.WithOperation[VerifyIndexCommand](verifyOperation),
		commands.WithTelemetry(commands.DefaultTelemetry[VerifyIndexCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &VerifyIndexHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[VerifyIndexCommand].
func (h *VerifyIndexHandler) Execute(ctx context.Context, msg VerifyIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}

func invokeCallback(cb ResultCallback, result *indexer.BuildResult) {
	if cb == nil || result == nil {
		return
	}
	cb(result)
}
