package folio

import (
	"context"

	"github.com/goliatone/go-folio/internal/blog"
	indexcmd "github.com/goliatone/go-folio/internal/commands/index"
	"github.com/goliatone/go-folio/internal/di"
	folhttp "github.com/goliatone/go-folio/internal/http"
	"github.com/goliatone/go-folio/internal/indexer"
	"github.com/goliatone/go-folio/internal/render"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// DocumentRecord exports the index record written by builds.
type DocumentRecord = blog.DocumentRecord

// Meta exports one blogs.json entry.
type Meta = blog.Meta

// MetaIndex exports the blogs.json envelope.
type MetaIndex = blog.MetaIndex

// BuildResult exports the outcome of an index build.
type BuildResult = indexer.BuildResult

// FailurePolicy exports the per-file failure policy of a build.
type FailurePolicy = indexer.FailurePolicy

// ListView exports the outcome of a list render.
type ListView = render.ListView

// DocumentView exports the outcome of a document render.
type DocumentView = render.DocumentView

// BuildIndexCommand exports the build command message.
type BuildIndexCommand = indexcmd.BuildIndexCommand

// VerifyIndexCommand exports the verify command message.
type VerifyIndexCommand = indexcmd.VerifyIndexCommand

// Failure policies.
const (
	FailFast      = indexer.FailFast
	SkipAndReport = indexer.SkipAndReport
)

// Error taxonomy shared by builds and renders.
var (
	ErrMissingInput = blog.ErrMissingInput
	ErrFetchFailure = blog.ErrFetchFailure
	ErrNotFound     = blog.ErrNotFound
	ErrParseFailure = blog.ErrParseFailure
	ErrBuildFatal   = blog.ErrBuildFatal
	ErrIntegrity    = indexer.ErrIntegrity
)

// Module represents the top level folio runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI
// overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Logger returns a logger from the configured provider.
func (m *Module) Logger(name string) interfaces.Logger {
	return m.container.LoggerProvider().GetLogger(name)
}

// BuildIndex runs one index build through the build command handler.
func (m *Module) BuildIndex(ctx context.Context, msg BuildIndexCommand) (*BuildResult, error) {
	var result *BuildResult
	msg.ResultCallback = chainCallback(msg.ResultCallback, &result)
	err := m.container.IndexHandlers().Build.Execute(ctx, msg)
	return result, err
}

// VerifyIndex compares a dry-run build with blogs.json.
func (m *Module) VerifyIndex(ctx context.Context, msg VerifyIndexCommand) (*BuildResult, error) {
	var result *BuildResult
	msg.ResultCallback = chainCallback(msg.ResultCallback, &result)
	err := m.container.IndexHandlers().Verify.Execute(ctx, msg)
	return result, err
}

// RenderList renders the summary cards from the JSON index.
func (m *Module) RenderList(ctx context.Context) ListView {
	return m.container.ListRenderer().Render(ctx)
}

// RenderDocument renders the document published under slug.
func (m *Module) RenderDocument(ctx context.Context, slug string) DocumentView {
	return m.container.DocumentRenderer().Render(ctx, slug)
}

// Templates returns the page templates.
func (m *Module) Templates() interfaces.TemplateRenderer {
	return m.container.Templates()
}

// HTTPServer returns the gin front end.
func (m *Module) HTTPServer(opts ...folhttp.Option) *folhttp.Server {
	return m.container.HTTPServer(opts...)
}

// Subscribe registers the command handlers with the go-command dispatcher.
// Callers release them with Close on the result.
func (m *Module) Subscribe() (*di.RegistrationResult, error) {
	return m.container.RegisterCommands(di.RegistrationOptions{Dispatcher: di.Dispatcher{}})
}

// Watch rebuilds the index on every document change until ctx is done.
// Each rebuild runs msg with the watch trigger.
func (m *Module) Watch(ctx context.Context, msg BuildIndexCommand) error {
	msg.Trigger = indexcmd.TriggerWatch
	rebuild := func(ctx context.Context) error {
		_, err := m.BuildIndex(ctx, msg)
		return err
	}
	return m.container.Watcher(rebuild).Run(ctx)
}

func chainCallback(next indexcmd.ResultCallback, out **BuildResult) indexcmd.ResultCallback {
	return func(r *indexer.BuildResult) {
		*out = r
		if next != nil {
			next(r)
		}
	}
}
