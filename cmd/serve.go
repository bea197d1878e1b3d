package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/varsilias/crystal/internal/api"
	"github.com/varsilias/crystal/internal/buildinfo"
	"github.com/varsilias/crystal/internal/middleware"
	"github.com/varsilias/crystal/internal/render"
	"github.com/varsilias/crystal/internal/session"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(v)
		},
	}
}

func runServe(v *viper.Viper) error {
	a, err := newApp(v, os.Stderr)
	if err != nil {
		return err
	}
	logger := a.log
	logger.Info("build", "version", buildinfo.Version, "commit", buildinfo.Commit, "built_at", buildinfo.BuiltAt)

	janitor, err := session.NewJanitor(a.store, a.cfg.SessionSweep, a.cfg.SessionTTL, logger)
	if err != nil {
		return fmt.Errorf("session sweep schedule: %w", err)
	}
	janitor.Start()
	defer janitor.Stop()

	mux := chi.NewRouter()
	mux.Use(middleware.Metrics)
	api.RegisterRoutes(mux, api.NewHandlers(logger, a.chat, render.New()))

	var handler http.Handler = mux
	handler = middleware.Recoverer(logger)(handler)
	handler = middleware.AccessLog(logger)(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.VersionHeader()(handler)

	server := http.Server{
		Addr:              fmt.Sprintf(":%s", a.cfg.Addr),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		// A turn makes at most one upstream call.
		WriteTimeout: a.cfg.HTTPTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	go func() { errChan <- server.ListenAndServe() }()
	logger.Info("crystal is listening", "port", a.cfg.Addr, "model", a.cfg.Model, "timezone", a.cfg.Location.String())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case sig := <-sigChan:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}
