package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/asset_depreciation/internal/handlers"
	"github.com/SscSPs/asset_depreciation/internal/middleware"
	"github.com/SscSPs/asset_depreciation/internal/scheduler"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var noTicker bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and poll the depreciation schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			logger := slog.Default()

			if !noTicker {
				ticker, err := scheduler.New(a.services.Schedule, a.cfg.ScheduleName, a.cfg.TickSpec, 10*time.Minute, logger)
				if err != nil {
					return err
				}
				ticker.Start()
				defer ticker.Stop()
			}

			if a.cfg.IsProduction {
				gin.SetMode(gin.ReleaseMode)
			}
			r := gin.New()

			// Global middleware (logging, recovery)
			r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
			if err := r.SetTrustedProxies(nil); err != nil {
				return err
			}
			handlers.RegisterRoutes(r, a.cfg, a.services)

			srv := &http.Server{
				Addr:              ":" + a.cfg.Port,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				logger.Info("Server starting", slog.String("port", a.cfg.Port))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case <-ctx.Done():
				logger.Info("Shutting down server")
			case err := <-errCh:
				return err
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&noTicker, "no-ticker", false, "Serve the API without polling the schedule")
	return cmd
}
