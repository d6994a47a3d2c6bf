package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-folio"
)

func verifyCmd(root *rootFlags) *cobra.Command {
	var requireMeta bool
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that the documents and blogs.json agree without writing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd.Context(), cmd.OutOrStdout(), root, requireMeta)
		},
	}
	cmd.Flags().BoolVar(&requireMeta, "require-meta", false, "Fail when blogs.json does not exist")
	return cmd
}

func runVerify(ctx context.Context, out io.Writer, root *rootFlags, requireMeta bool) error {
	resources, err := moduleBuilder(root.options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.Module == nil {
		return errors.New("folio module not configured")
	}

	result, err := resources.Module.VerifyIndex(ctx, folio.VerifyIndexCommand{RequireMeta: requireMeta})
	if result != nil {
		for _, skipped := range result.Skipped {
			fmt.Fprintf(out, "skipped %s: %v\n", skipped.Path, skipped.Err)
		}
		printIntegrity(out, result)
	}
	if err != nil {
		return err
	}

	count := 0
	if result != nil {
		count = len(result.Records)
	}
	fmt.Fprintf(out, "ok: %d documents match blogs.json\n", count)
	return nil
}
