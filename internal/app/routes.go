// Package app собирает приложение маркетплейса: коллабораторы,
// маршруты и HTTP-сервер.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/vetrovdenis/ad-marketplace/internal/http/handlers/advert/create"
	"github.com/vetrovdenis/ad-marketplace/internal/http/handlers/advert/list"
	"github.com/vetrovdenis/ad-marketplace/internal/http/handlers/advert/patch"
	"github.com/vetrovdenis/ad-marketplace/internal/http/handlers/advert/read"
	"github.com/vetrovdenis/ad-marketplace/internal/http/handlers/advert/related"
	"github.com/vetrovdenis/ad-marketplace/internal/http/handlers/advert/remove"
	"github.com/vetrovdenis/ad-marketplace/internal/http/handlers/advert/replace"
	"github.com/vetrovdenis/ad-marketplace/internal/http/handlers/auth/login"
	"github.com/vetrovdenis/ad-marketplace/internal/http/handlers/auth/register"
	"github.com/vetrovdenis/ad-marketplace/internal/http/handlers/health"
	"github.com/vetrovdenis/ad-marketplace/internal/http/middlewarectx"
	"github.com/vetrovdenis/ad-marketplace/internal/http/response"
	"github.com/vetrovdenis/ad-marketplace/internal/models"
	advertservice "github.com/vetrovdenis/ad-marketplace/internal/services/advert"
	authservice "github.com/vetrovdenis/ad-marketplace/internal/services/auth"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Чтение объявлений открыто всем; создание, замена, частичное обновление
// и удаление доступны только аутентифицированным продавцам. Проверка
// владения конкретным объявлением выполняется в сервисе после загрузки.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, advertService *advertservice.AdvertService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.OKWithData(map[string]any{
			"message": "You are on home page",
		}))
	})

	// Открытые конечные точки
	r.Post("/users/register", register.New(logger, authService).ServeHTTP)
	r.Post("/users/login", login.New(logger, authService).ServeHTTP)
	r.Get("/advert", list.New(logger, advertService).ServeHTTP)
	r.Get("/advert/{id}", read.New(logger, advertService).ServeHTTP)
	r.Get("/advert/{id}/related", related.New(logger, advertService).ServeHTTP)

	// Группа мутаций: JWT, роль vendor и ограничение частоты запросов
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Use(middlewarectx.RequireRole(logger, models.RoleVendor))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/advert", create.New(logger, advertService).ServeHTTP)
		r.Put("/advert/{id}", replace.New(logger, advertService).ServeHTTP)
		r.Patch("/advert/{id}", patch.New(logger, advertService).ServeHTTP)
		r.Delete("/advert/{id}", remove.New(logger, advertService).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
