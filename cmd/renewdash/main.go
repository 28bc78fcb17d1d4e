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

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/coopco/renewdash/internal/config"
	"github.com/coopco/renewdash/internal/logbuf"
	"github.com/coopco/renewdash/internal/settings"
	"github.com/coopco/renewdash/internal/web"
)

func main() {
	root := &cobra.Command{
		Use:          "renewdash",
		Short:        "Web dashboard for the automated account renewal service",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			// Missing .env is fine; the environment may already
			// carry the overrides.
			_ = godotenv.Load()
			cfg := config.Load()
			if addr != "" {
				cfg.Addr = addr
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides RENEWDASH_ADDR)")
	return cmd
}

func run(cfg *config.Config) error {
	buf := logbuf.NewBuffer(2000)
	slog.SetDefault(slog.New(logbuf.Tee{
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		logbuf.NewHandler(buf, slog.LevelInfo),
	}))

	store := settings.NewStore(cfg.DataPath)
	if err := store.Load(); err != nil {
		return err
	}
	if cfg.Password == "" {
		slog.Warn("no dashboard password configured, login is disabled")
	}

	srv := web.NewServer(web.Options{
		Store:    store,
		Password: cfg.Password,
		Logs:     buf,
		LogPath:  cfg.LogPath,
	})
	httpServer := &http.Server{Addr: cfg.Addr, Handler: srv.Handler()}

	srv.StartLogFlush()
	defer srv.StopLogFlush()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("dashboard listening", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
