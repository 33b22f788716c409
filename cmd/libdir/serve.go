// ABOUTME: Serve command running the HTTP listing and submission server.
// ABOUTME: Shuts down gracefully on SIGINT or SIGTERM.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harper/libdir/internal/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Long:  `Serve the library listing, the submission form and the JSON API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.HTTPAddr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		srv, err := web.NewServer(adapter, logger)
		if err != nil {
			return err
		}
		httpSrv := &http.Server{
			Addr:              addr,
			Handler:           srv.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("listening",
				zap.String("addr", addr),
				zap.Bool("read_enabled", adapter.ReadEnabled()),
				zap.Bool("write_enabled", adapter.WriteEnabled()),
			)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			logger.Info("shutting down")
			return httpSrv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides LIBDIR_HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
