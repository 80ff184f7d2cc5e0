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

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/es"
	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/middleware/csrf"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/service/search"
	"github.com/Skotchmaster/storefront/internal/session"
)

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal("config_load_failed", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", "storefront")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DSN())
	cancel()
	if err != nil {
		fatal("db_open_failed", err)
	}
	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			fatal("db_migrate_failed", err)
		}
	}

	passwords, err := hash.ByName(cfg.PasswordScheme)
	if err != nil {
		fatal("password_scheme_invalid", err)
	}

	sessions, err := session.NewCookieStore([]byte(cfg.SecretKey), cfg.SessionCookieSecure)
	if err != nil {
		fatal("session_store_failed", err)
	}

	events := mykafka.New(cfg.KafkaBrokers)
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	var index search.Index = search.Nop{}
	searchEnabled := cfg.ESURL != ""
	if searchEnabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := es.NewClient(ctx, es.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
		cancel()
		if err != nil {
			fatal("elasticsearch_connect_failed", err)
		}
		index = &search.ESIndex{ES: client, Name: cfg.ESIndex}
	}

	gw := repo.NewGateway(gdb)
	users := &service.UserService{Gateway: gw, Passwords: passwords, Events: events}

	deps := &httpserver.Deps{
		DB:            gdb,
		Sessions:      sessions,
		Users:         &httpserver.UserHTTP{Svc: users},
		Auth:          &httpserver.AuthHTTP{Svc: users, Sessions: sessions},
		Products:      &httpserver.ProductHTTP{Svc: &service.ProductService{Gateway: gw, Events: events, Search: index}},
		Cart:          &httpserver.CartHTTP{Svc: &service.CartService{Gateway: gw, Events: events}},
		Vats:          &httpserver.VatHTTP{Svc: &service.VatService{Gateway: gw, Events: events}},
		SearchEnabled: searchEnabled,
	}
	if cfg.CSRFEnabled {
		csrfCfg := csrf.DefaultConfig()
		csrfCfg.Secure = cfg.SessionCookieSecure
		deps.CSRF = &csrfCfg
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           httpserver.New(logger, deps),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("http_server_failed", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db_close_failed", "error", err)
		}
	}

	if err := events.Close(); err != nil {
		logger.Error("kafka_close_failed", "error", err)
	}

	logger.Info("shutdown_complete")
}
