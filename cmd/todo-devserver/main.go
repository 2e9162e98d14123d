package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benjamonnguyen/todo/charmlog"
	"github.com/benjamonnguyen/todo/internal/fakeapi"
)

func main() {
	confFile := flag.String("config", ".env", "path to dotenv config file")
	flag.Parse()

	cfg, err := LoadConf(*confFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := charmlog.NewLogger(charmlog.Options{
		Writer:          os.Stdout,
		Level:           cfg.LogLevel,
		Prefix:          "devserver",
		ReportTimestamp: true,
	})

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: fakeapi.NewServer(fakeapi.Config{
			Secret:   cfg.Secret,
			TokenTTL: cfg.TokenTTL,
		}, fakeapi.NewStore(), logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed shutdown", "error", err)
		}
	}()

	logger.Info("starting dev server", "addr", srv.Addr, "tokenTTL", cfg.TokenTTL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", "error", err)
	}
	logger.Info("dev server stopped")
}
