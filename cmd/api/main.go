package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rhyn0/anime-rest-api/internal/app"
	"github.com/rhyn0/anime-rest-api/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := a.Migrate(); err != nil {
			a.Logger.Error("migration failed", "error", err)
			os.Exit(1)
		}
		a.Logger.Info("migration complete")
		return
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			a.Logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		a.Logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Shutdown(ctx); err != nil {
			a.Logger.Error("shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
