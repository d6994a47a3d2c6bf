package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-folio"
	"github.com/goliatone/go-folio/cmd/folio/internal/bootstrap"
	folhttp "github.com/goliatone/go-folio/internal/http"
)

const shutdownTimeout = 10 * time.Second

type serveFlags struct {
	addr         string
	allowRebuild bool
	watch        bool
}

func serveCmd(root *rootFlags) *cobra.Command {
	var flags serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the list and document pages over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd.OutOrStdout(), root, flags)
		},
	}
	cmd.Flags().StringVar(&flags.addr, "addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&flags.allowRebuild, "allow-rebuild", false, "Enable POST /api/index/rebuild")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "Rebuild the index whenever a document changes")
	return cmd
}

func runServe(ctx context.Context, out io.Writer, root *rootFlags, flags serveFlags) error {
	gin.SetMode(gin.ReleaseMode)

	resources, err := moduleBuilder(root.options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	engine, err := serveEngine(resources, flags)
	if err != nil {
		return err
	}

	addr := strings.TrimSpace(flags.addr)
	if addr == "" {
		addr = resources.Module.Container().Config.Server.Addr
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if flags.watch {
		go func() {
			msg := folio.BuildIndexCommand{Policy: folio.SkipAndReport}
			if err := resources.Module.Watch(ctx, msg); err != nil && !errors.Is(err, context.Canceled) {
				resources.Logger.Error("cli.watch.failed", "error", err)
			}
		}()
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()
	fmt.Fprintf(out, "serving on %s\n", addr)
	resources.Logger.Info("cli.serve.started", "addr", addr, "rebuild", flags.allowRebuild, "watch", flags.watch)

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	resources.Logger.Info("cli.serve.stopped", "addr", addr)
	return nil
}

func serveEngine(resources *bootstrap.Module, flags serveFlags) (*gin.Engine, error) {
	if resources == nil || resources.Module == nil {
		return nil, errors.New("folio module not configured")
	}
	var opts []folhttp.Option
	if flags.allowRebuild {
		opts = append(opts, folhttp.WithRebuildHandler(resources.Module.Container().IndexHandlers().Build))
	}
	return resources.Module.HTTPServer(opts...).Engine()
}
