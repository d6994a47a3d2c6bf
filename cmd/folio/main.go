// Package main is the entrypoint for the folio CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-folio/cmd/folio/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	siteRoot   string
	logLevel   string
}

func (f *rootFlags) options() bootstrap.Options {
	return bootstrap.Options{
		ConfigPath: f.configPath,
		SiteRoot:   f.siteRoot,
		LogLevel:   f.logLevel,
		LogWriter:  os.Stderr,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "folio: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "folio",
		Short: "Build and serve a frontmatter-driven blog",
		Long:  "folio turns a directory of Markdown documents into a JSON index and renders the list and document pages from it.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a TOML config file")
	root.PersistentFlags().StringVar(&flags.siteRoot, "root", "", "Site root (overrides site.root)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (overrides logging.level)")

	root.AddCommand(buildCmd(flags))
	root.AddCommand(verifyCmd(flags))
	root.AddCommand(serveCmd(flags))
	return root
}
