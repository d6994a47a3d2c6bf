package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-folio/internal/blog"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// FailurePolicy decides what a per-file error does to the build.
type FailurePolicy string

const (
	// FailFast aborts the build on the first failing file; nothing is written.
	FailFast FailurePolicy = "fail_fast"
	// SkipAndReport omits failing files and lists them in BuildResult.Skipped.
	SkipAndReport FailurePolicy = "skip_and_report"
)

// ErrIntegrity is wrapped into the build error when strict integrity checks
// find drift between the index and blogs.json.
var ErrIntegrity = errors.New("indexer: index and metadata disagree")

// Options locates build inputs and outputs.
type Options struct {
	// SourceDir is the document directory inside the loader filesystem.
	SourceDir string
	// OutputPath is the filesystem path of the JSON index.
	OutputPath string
	// MetaPath is the blogs.json path inside the meta source. Empty disables
	// integrity checks.
	MetaPath string
	// DefaultAuthor fills records without an author key.
	DefaultAuthor string
}

// BuildRequest carries per-run switches.
type BuildRequest struct {
	Policy FailurePolicy
	// Strict turns integrity drift into a build failure.
	Strict bool
	// DryRun runs every step except the final write.
	DryRun bool
}

// FileResult is the outcome for one discovered document.
type FileResult struct {
	Path   string
	Record *blog.DocumentRecord
	Err    error
}

// BuildResult summarises a completed build.
type BuildResult struct {
	BuildID      string
	OutputPath   string
	Records      []blog.DocumentRecord
	Files        []FileResult
	Skipped      []FileResult
	SlugWarnings []SlugWarning
	Integrity    *IntegrityReport
	Written      bool
	Duration     time.Duration
}

// Builder produces the JSON index from a directory of Markdown documents.
type Builder struct {
	opts   Options
	loader *markdown.Loader
	source fs.FS
	writer ArtifactWriter
	meta   interfaces.Source
	logger interfaces.Logger
	rules  []FieldRule
	now    func() time.Time
	newID  func() string
}

// BuilderOption customises a Builder.
type BuilderOption func(*Builder)

// WithWriter overrides the artifact writer.
func WithWriter(writer ArtifactWriter) BuilderOption {
	return func(b *Builder) {
		if writer != nil {
			b.writer = writer
		}
	}
}

// WithMetaSource enables integrity checks against blogs.json read from src.
func WithMetaSource(src interfaces.Source) BuilderOption {
	return func(b *Builder) {
		b.meta = src
	}
}

// WithLogger sets the builder logger.
func WithLogger(logger interfaces.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithFieldRules replaces the frontmatter mapping table.
func WithFieldRules(rules []FieldRule) BuilderOption {
	return func(b *Builder) {
		if len(rules) > 0 {
			b.rules = rules
		}
	}
}

// WithClock overrides the build clock.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithIDGenerator overrides build run id generation.
func WithIDGenerator(fn func() string) BuilderOption {
	return func(b *Builder) {
		if fn != nil {
			b.newID = fn
		}
	}
}

// NewBuilder returns a builder reading documents from filesystem.
func NewBuilder(filesystem fs.FS, loader *markdown.Loader, opts Options, options ...BuilderOption) *Builder {
	if strings.TrimSpace(opts.DefaultAuthor) == "" {
		opts.DefaultAuthor = blog.DefaultAuthor
	}
	if loader == nil {
		loader = markdown.NewLoader(filesystem, markdown.LoaderConfig{})
	}
	b := &Builder{
		opts:   opts,
		loader: loader,
		source: filesystem,
		writer: NewFileWriter(),
		logger: logging.NoOp(),
		rules:  DefaultFieldRules(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Build runs one full index build. Missing source directories, FailFast file
// errors and strict integrity drift return an error wrapping
// blog.ErrBuildFatal; in those cases the output file is left untouched.
// Strict drift also returns the unwritten result so callers can report it.
func (b *Builder) Build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	started := b.now()
	policy := req.Policy
	if policy == "" {
		policy = FailFast
	}

	result := &BuildResult{
		BuildID:    b.newID(),
		OutputPath: b.opts.OutputPath,
	}
	logger := logging.WithBuildContext(b.logger, result.BuildID, "")
	logger.Info("indexer.build.started",
		"source_dir", b.opts.SourceDir,
		"output", b.opts.OutputPath,
		"policy", string(policy),
	)

	sourceDir := cleanSlash(b.opts.SourceDir)
	if info, err := fs.Stat(b.source, sourceDir); err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("%s is not a directory", sourceDir)
		}
		logger.Error("indexer.source.missing", "source_dir", sourceDir, "error", err)
		return nil, blog.BuildFatal(blog.MissingInput(err, "source directory not found"), "index build aborted")
	}

	paths, err := b.loader.Discover(ctx, sourceDir)
	if err != nil {
		return nil, blog.BuildFatal(err, "index build aborted")
	}
	if len(paths) == 0 {
		logger.Warn("indexer.source.empty", "source_dir", sourceDir)
	}

	env := RuleEnv{
		BuildDate:     started.UTC().Format(blog.DateLayout),
		DefaultAuthor: b.opts.DefaultAuthor,
	}

	records := make([]blog.DocumentRecord, 0, len(paths))
	for _, name := range paths {
		file := b.processFile(ctx, env, name)
		result.Files = append(result.Files, file)

		fileLogger := logging.WithBuildContext(logger, "", name)
		if file.Err != nil {
			if policy == FailFast {
				fileLogger.Error("indexer.file.failed", "error", file.Err)
				return nil, blog.BuildFatal(file.Err, "index build aborted")
			}
			fileLogger.Warn("indexer.file.skipped", "error", file.Err)
			result.Skipped = append(result.Skipped, file)
			continue
		}
		fileLogger.Debug("indexer.file.indexed", "slug", file.Record.Slug, "title", file.Record.Title)
		records = append(records, *file.Record)
	}

	SortByDate(records, startOfDay(started))
	result.Records = records

	result.SlugWarnings = CheckSlugs(records)
	for _, warning := range result.SlugWarnings {
		logger.Warn("indexer.slug.not_url_safe", "slug", warning.Slug, "suggested", warning.Suggested)
	}

	if err := b.verify(ctx, logger, req.Strict, result); err != nil {
		return result, err
	}

	payload, err := EncodeIndex(records)
	if err != nil {
		return nil, blog.BuildFatal(err, "encode index")
	}

	writer := b.writer
	if req.DryRun {
		writer = noopWriter{}
	}
	if err := writer.WriteFile(ctx, WriteRequest{
		Path:        b.opts.OutputPath,
		Content:     payload,
		ContentType: "application/json",
	}); err != nil {
		return nil, blog.BuildFatal(err, "write index")
	}
	result.Written = !req.DryRun
	result.Duration = b.now().Sub(started)

	logger.Info("indexer.build.completed",
		"count", len(records),
		"skipped", len(result.Skipped),
		"output", b.opts.OutputPath,
		"dry_run", req.DryRun,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

func (b *Builder) processFile(ctx context.Context, env RuleEnv, name string) FileResult {
	file := FileResult{Path: name}

	doc, err := b.loader.LoadFile(ctx, name)
	if err != nil {
		file.Err = err
		return file
	}

	rec, err := mapRecord(b.rules, env, b.loader.Slug(doc), doc.Matter)
	if err != nil {
		file.Err = blog.ParseFailure(err, name)
		return file
	}
	file.Record = &rec
	return file
}

// verify runs the blogs.json correlation check. A missing metadata file is
// not drift; an unreadable one is reported and only fails strict builds.
func (b *Builder) verify(ctx context.Context, logger interfaces.Logger, strict bool, result *BuildResult) error {
	if b.meta == nil || strings.TrimSpace(b.opts.MetaPath) == "" {
		return nil
	}

	data, err := b.meta.Fetch(ctx, b.opts.MetaPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("indexer.integrity.skipped", "meta_path", b.opts.MetaPath)
			return nil
		}
		logger.Warn("indexer.integrity.meta_unreadable", "meta_path", b.opts.MetaPath, "error", err)
		if strict {
			return blog.BuildFatal(err, "read metadata")
		}
		return nil
	}

	var meta blog.MetaIndex
	if err := json.Unmarshal(data, &meta); err != nil {
		parseErr := blog.ParseFailure(err, "decode "+b.opts.MetaPath)
		logger.Warn("indexer.integrity.meta_invalid", "meta_path", b.opts.MetaPath, "error", parseErr)
		if strict {
			return blog.BuildFatal(parseErr, "read metadata")
		}
		return nil
	}

	report := b.Verify(result.Records, meta)
	result.Integrity = &report
	if report.Clean() {
		logger.Debug("indexer.integrity.clean")
		return nil
	}

	logger.Warn("indexer.integrity.drift",
		"only_in_index", report.OnlyInIndex,
		"only_in_meta", report.OnlyInMeta,
		"missing_files", report.MissingFiles,
	)
	if strict {
		return blog.BuildFatal(ErrIntegrity, "index and metadata disagree")
	}
	return nil
}

// Verify correlates records with meta, checking mdFile paths against the
// source directory.
func (b *Builder) Verify(records []blog.DocumentRecord, meta blog.MetaIndex) IntegrityReport {
	sourceDir := cleanSlash(b.opts.SourceDir)
	return VerifyMeta(records, meta, func(mdFile string) bool {
		info, err := fs.Stat(b.source, path.Join(sourceDir, cleanSlash(mdFile)))
		return err == nil && !info.IsDir()
	})
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func cleanSlash(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimPrefix(p, "./")
	if p == "" {
		return "."
	}
	return path.Clean(p)
}
