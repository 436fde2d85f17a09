package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/vetrovdenis/ad-marketplace/internal/cache"
	"github.com/vetrovdenis/ad-marketplace/internal/config"
	"github.com/vetrovdenis/ad-marketplace/internal/imagegen"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/jwt"
	"github.com/vetrovdenis/ad-marketplace/internal/media"
	"github.com/vetrovdenis/ad-marketplace/internal/migrations"
	advertservice "github.com/vetrovdenis/ad-marketplace/internal/services/advert"
	authservice "github.com/vetrovdenis/ad-marketplace/internal/services/auth"
	"github.com/vetrovdenis/ad-marketplace/internal/storage/repository"
)

// App агрегирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New собирает приложение: база, миграции, кэш, медиахостинг,
// генератор картинок, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	mediaStorage, err := media.New(ctx, cfg.Media)
	if err != nil {
		return nil, err
	}

	imageGen := imagegen.NewClient(cfg.APIURLImageGen, cfg.APIKeyImageGen, cfg.TimeoutGen)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	advertService := advertservice.NewAdvertService(db, mediaStorage, imageGen, cacheRedis, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, authService, advertService)

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

// Run запускает HTTP-сервер и корректно останавливает его
// при отмене контекста.
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
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database connection", slog.String("error", closeErr.Error()))
		}
		return err
	}
}
