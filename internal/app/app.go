package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/VitaminP8/blogql/graph"
	"github.com/VitaminP8/blogql/graph/server"
	"github.com/VitaminP8/blogql/internal/auth"
	"github.com/VitaminP8/blogql/internal/config"
	"github.com/VitaminP8/blogql/internal/metrics"
	"github.com/VitaminP8/blogql/internal/storage/memory"
	"github.com/VitaminP8/blogql/internal/storage/postgres"
	"github.com/VitaminP8/blogql/internal/subscription"
	"github.com/jinzhu/gorm"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	handler http.Handler
}

// New собирает все зависимости: хранилище, сервисы токенов и паролей, резолверы, роутер
func New(cfg *config.Config, logger *zap.Logger, reg *prometheus.Registry) (*App, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	passwords, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	collector := metrics.NewCollector(reg)

	a := &App{cfg: cfg, logger: logger}

	resolver := &graph.Resolver{
		Tokens:              tokens,
		Passwords:           passwords,
		SubscriptionManager: subscription.NewSubscriptionManager(),
		Metrics:             collector,
	}

	switch cfg.Storage {
	case config.StorageMemory:
		logger.Info("using in-memory storage")
		users := memory.NewUserMemoryStorage()
		resolver.UserStore = users
		resolver.ProfileStore = users
		resolver.PostStore = memory.NewPostMemoryStorage()

	default:
		db, err := postgres.InitDB(cfg, logger)
		if err != nil {
			return nil, err
		}
		a.db = db
		users := postgres.NewUserPostgresStorage(db)
		resolver.UserStore = users
		resolver.ProfileStore = users
		resolver.PostStore = postgres.NewPostPostgresStorage(db)
	}

	schema, err := server.NewSchema(resolver)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.handler = NewRouter(RouterDeps{
		GraphQL:  server.NewHandler(schema),
		Tokens:   tokens,
		Logger:   logger,
		Metrics:  collector,
		Gatherer: reg,
	})

	return a, nil
}

func (a *App) Handler() http.Handler {
	return a.handler
}

// Run слушает cfg.Addr, пока не отменят ctx, затем корректно останавливает сервер
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server started", zap.String("addr", a.cfg.Addr), zap.String("storage", a.cfg.Storage))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			a.Close()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	a.Close()
	if err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	a.logger.Info("server stopped")
	return nil
}

func (a *App) Close() {
	if err := postgres.CloseDB(a.db, a.logger); err != nil {
		a.logger.Error("close database", zap.Error(err))
	}
}
