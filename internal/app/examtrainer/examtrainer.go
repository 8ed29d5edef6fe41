// Package examtrainer собирает приложение тренажёра: хранилище, кеш,
// сервисы и HTTP-сервер с маршрутным шлюзом.
package examtrainer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/exam-trainer/internal/access"
	"github.com/magabrotheeeer/exam-trainer/internal/cache"
	"github.com/magabrotheeeer/exam-trainer/internal/config"
	"github.com/magabrotheeeer/exam-trainer/internal/lib/jwt"
	"github.com/magabrotheeeer/exam-trainer/internal/migrations"
	authservice "github.com/magabrotheeeer/exam-trainer/internal/services/auth"
	contentservice "github.com/magabrotheeeer/exam-trainer/internal/services/content"
	resultsservice "github.com/magabrotheeeer/exam-trainer/internal/services/results"
	sessionguard "github.com/magabrotheeeer/exam-trainer/internal/services/sessionguard"
	subscriptionservice "github.com/magabrotheeeer/exam-trainer/internal/services/subscription"
	"github.com/magabrotheeeer/exam-trainer/internal/storage/repository"
)

// App агрегирует зависимости приложения и управляет жизненным циклом сервера.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

func waitForDB(db *repository.Storage) error {
	for range 10 {
		err := repository.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает приложение: подключает базу, прогоняет миграции, поднимает
// кеш и собирает сервисный слой поверх общего хранилища.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}
	if err = waitForDB(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	policy := access.Policy{HonorTrial: cfg.TrialEnabled}

	authService := authservice.NewAuthService(db, jwtMaker, cfg.TrialDays, cfg.TokenTTL)
	guard := sessionguard.NewGuard(db, logger)
	subscriptionService := subscriptionservice.NewSubscriptionService(db, policy, logger)
	contentService := contentservice.NewContentService(db, db, cacheRedis, policy, logger)
	resultsService := resultsservice.NewResultsService(db, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, cfg, authService, guard, subscriptionService, contentService, resultsService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
