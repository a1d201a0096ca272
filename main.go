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

	"github.com/gin-gonic/gin"

	"github.com/autoaidc6/school-planner/config"
	"github.com/autoaidc6/school-planner/internal/handlers"
	"github.com/autoaidc6/school-planner/internal/mail"
	"github.com/autoaidc6/school-planner/internal/notify"
	"github.com/autoaidc6/school-planner/internal/planner"
	"github.com/autoaidc6/school-planner/internal/routes"
	"github.com/autoaidc6/school-planner/internal/store"
	"github.com/autoaidc6/school-planner/internal/store/local"
	"github.com/autoaidc6/school-planner/internal/store/remote"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	config.ConnectDB(cfg.DatabaseURL)
	config.ConnectRedis(cfg.RedisAddr)
	config.InitGoogleServices(cfg)

	localStore, err := local.Open(cfg.LocalDBPath)
	if err != nil {
		slog.Error("Could not open local store", "path", cfg.LocalDBPath, "error", err)
		os.Exit(1)
	}
	defer localStore.Close()

	feed := store.NewFeed()

	// The remote track only exists when a database is configured; without
	// one the planner still serves guest sessions from the local store.
	var remoteStore *remote.Store
	if config.DB != nil {
		remoteStore, err = remote.New(config.DB, feed)
		if err != nil {
			slog.Error("Could not prepare remote store", "error", err)
			os.Exit(1)
		}
	}

	svc := planner.New(localStore, remoteStore, feed)

	var mailer mail.Sender
	if cfg.SendgridAPIKey != "" {
		mailer = mail.NewSendgridSender(cfg.SendgridAPIKey, cfg.FromEmail)
	} else {
		slog.Warn("SENDGRID_API_KEY not set, mail goes to the log")
		mailer = mail.NewConsoleSender()
	}

	h := handlers.New(svc, remoteStore, feed, mailer, cfg.BaseURL)

	r := gin.Default()
	routes.SetupRoutes(r, h, remoteStore)

	notifier := notify.New(svc, feed, localStore)
	if err := notifier.Start(); err != nil {
		slog.Error("Could not start reminder scheduler", "error", err)
		os.Exit(1)
	}
	defer notifier.Stop()

	srv := &http.Server{Addr: cfg.Addr, Handler: r}
	go func() {
		slog.Info("School planner listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server stopped with error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Shutdown complete")
}
