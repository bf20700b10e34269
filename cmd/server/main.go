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

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/talhafarman98/SplitEase/internal/auth"
	"github.com/talhafarman98/SplitEase/internal/config"
	"github.com/talhafarman98/SplitEase/internal/server"
	"github.com/talhafarman98/SplitEase/internal/service"
	"github.com/talhafarman98/SplitEase/internal/storage/sqlite"
	"github.com/talhafarman98/SplitEase/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogFormat, cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), tokens)
	groupSvc := service.NewGroupService(store)

	handler := server.NewHandler(groupSvc, authSvc, tokens)

	// Wrap with h2c for HTTP/2 without TLS.
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h2c.NewHandler(handler.Router(), &http2.Server{}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		slog.Info("Server starting", "address", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
