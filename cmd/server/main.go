package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/contactbook/backend/internal/config"
	"github.com/contactbook/backend/internal/handler"
	"github.com/contactbook/backend/internal/i18n"
	"github.com/contactbook/backend/internal/logging"
	"github.com/contactbook/backend/internal/migrate"
	"github.com/contactbook/backend/internal/repository"
	"github.com/contactbook/backend/internal/server"
	"github.com/contactbook/backend/internal/service"
	"github.com/contactbook/backend/internal/validation"
	"github.com/contactbook/backend/internal/view"
	"github.com/contactbook/backend/pkg/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logging.Fatal("failed to open contact store", "driver", cfg.StoreDriver, "error", err)
	}
	defer closeStore()

	tr, err := i18n.New(cfg.Locale)
	if err != nil {
		logging.Fatal("invalid locale", "error", err)
	}
	renderer, err := view.New()
	if err != nil {
		logging.Fatal("failed to parse templates", "error", err)
	}

	deps := server.Deps{
		Health:   handler.New(repo),
		Pages:    handler.NewPageHandler(renderer, tr),
		Contacts: handler.NewContactHandler(service.NewContactService(repo), renderer, validation.New(tr), tr),
		Sessions: session.NewStore(cfg.SessionSecret, session.Options{
			MaxAge: cfg.SessionMaxAge,
			Secure: cfg.CookieSecure,
		}),
		Metrics: handler.NewMetrics(),
	}
	// RATE_LIMIT_PER_MINUTE=0 で無効
	if cfg.RateLimitPerMinute > 0 {
		deps.RateLimiter = handler.NewRateLimiter(ctx, cfg.RateLimitPerMinute, 0)
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.New(deps),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Contact App | listening", "addr", srv.Addr, "store", cfg.StoreDriver, "locale", cfg.Locale)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// openStore connects the configured contact store. The returned func
// releases its connections.
func openStore(ctx context.Context, cfg config.Config) (repository.ContactRepository, func(), error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := repository.NewMongoClient(connectCtx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				slog.Warn("mongo disconnect", "error", err)
			}
		}
		return repository.NewMongoContactRepository(client, cfg.MongoDatabase), closeFn, nil

	case config.DriverPostgres:
		if cfg.AutoMigrate {
			if err := migrate.Up(connectCtx, cfg.DatabaseURL); err != nil {
				return nil, nil, fmt.Errorf("auto migrate: %w", err)
			}
		}
		pool, err := repository.NewPool(connectCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPgContactRepository(pool), pool.Close, nil

	case config.DriverMemory:
		slog.Warn("using in-memory contact store; data is lost on restart")
		return repository.NewMemoryContactRepository(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
