package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CoolBanHub/minghe/metrics"
	"github.com/CoolBanHub/minghe/server"
	"github.com/gookit/slog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	app, err := newAgent(ctx, cfg, m)
	if err != nil {
		return err
	}

	srv := server.Create(&server.AppState{Agent: app, Metrics: m, Config: cfg})
	errCh := make(chan error, 1)
	go func() {
		slog.Infof("Listening on: %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Infof("Shutting down Minghe Companion API...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
