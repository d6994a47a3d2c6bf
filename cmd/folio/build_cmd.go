package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-folio"
	indexcmd "github.com/goliatone/go-folio/internal/commands/index"
)

type buildFlags struct {
	watch      bool
	strict     bool
	skipErrors bool
	dryRun     bool
}

func buildCmd(root *rootFlags) *cobra.Command {
	var flags buildFlags
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the JSON index from the Markdown documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.Context(), cmd.OutOrStdout(), root, flags)
		},
	}
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "Rebuild whenever a document changes")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Fail when the index and blogs.json disagree")
	cmd.Flags().BoolVar(&flags.skipErrors, "skip-errors", false, "Skip documents that fail to parse instead of aborting")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Build without writing the index")
	return cmd
}

func runBuild(ctx context.Context, out io.Writer, root *rootFlags, flags buildFlags) error {
	resources, err := moduleBuilder(root.options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.Module == nil {
		return errors.New("folio module not configured")
	}
	module := resources.Module
	cfg := module.Container().Config

	msg := folio.BuildIndexCommand{
		Policy:  folio.FailFast,
		Strict:  flags.strict || cfg.Build.StrictIntegrity,
		DryRun:  flags.dryRun,
		Trigger: indexcmd.TriggerCLI,
	}
	if flags.skipErrors || cfg.Build.SkipErrors {
		msg.Policy = folio.SkipAndReport
	}

	result, err := module.BuildIndex(ctx, msg)
	printBuildSummary(out, result)
	if err != nil {
		return err
	}
	if !flags.watch {
		return nil
	}

	msg.ResultCallback = func(r *folio.BuildResult) {
		printBuildSummary(out, r)
	}
	resources.Logger.Info("cli.watch.started", "dir", module.Container().SourceDir())
	if err := module.Watch(ctx, msg); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func printBuildSummary(out io.Writer, result *folio.BuildResult) {
	if result == nil {
		return
	}
	for _, skipped := range result.Skipped {
		fmt.Fprintf(out, "skipped %s: %v\n", skipped.Path, skipped.Err)
	}
	for _, warning := range result.SlugWarnings {
		if warning.Suggested != "" {
			fmt.Fprintf(out, "slug %q is not URL safe (suggested %q)\n", warning.Slug, warning.Suggested)
			continue
		}
		fmt.Fprintf(out, "slug %q is not URL safe\n", warning.Slug)
	}
	printIntegrity(out, result)

	switch {
	case result.Written:
		fmt.Fprintf(out, "indexed %d documents into %s in %s\n", len(result.Records), result.OutputPath, result.Duration)
	default:
		fmt.Fprintf(out, "indexed %d documents (not written)\n", len(result.Records))
	}
}

func printIntegrity(out io.Writer, result *folio.BuildResult) {
	report := result.Integrity
	if report == nil || report.Clean() {
		return
	}
	for _, slug := range report.OnlyInIndex {
		fmt.Fprintf(out, "drift: %s has a document but no blogs.json entry\n", slug)
	}
	for _, slug := range report.OnlyInMeta {
		fmt.Fprintf(out, "drift: %s is listed in blogs.json but has no document\n", slug)
	}
	for _, file := range report.MissingFiles {
		fmt.Fprintf(out, "drift: blogs.json references missing file %s\n", file)
	}
}
