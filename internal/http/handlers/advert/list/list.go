// Package list реализует HTTP-обработчик поиска объявлений.
//
// Фильтры по title, description и category применяются только если
// переданы, каждый — как регистронезависимое вхождение подстроки,
// объединяются через AND. Дополнительно поддерживается включительный
// диапазон цены и пагинация limit/skip.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vetrovdenis/ad-marketplace/internal/http/response"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/sl"
	"github.com/vetrovdenis/ad-marketplace/internal/models"
)

// Handler обрабатывает запросы на поиск объявлений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска объявлений.
type Service interface {
	List(ctx context.Context, filter models.AdvertFilter) ([]*models.Advert, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Поиск объявлений
// @Description Возвращает объявления по фильтрам с пагинацией. Текстовые фильтры — регистронезависимое вхождение подстроки.
// @Tags Adverts
// @Produce  json
// @Param title query string false "Фильтр по заголовку"
// @Param description query string false "Фильтр по описанию"
// @Param category query string false "Фильтр по категории"
// @Param min_price query number false "Минимальная цена"
// @Param max_price query number false "Максимальная цена"
// @Param limit query int false "Размер страницы (по умолчанию 10)"
// @Param skip query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Список объявлений"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /advert [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.advert.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.AdvertFilter{
		Title:       r.URL.Query().Get("title"),
		Description: r.URL.Query().Get("description"),
		Category:    r.URL.Query().Get("category"),
	}

	if raw := r.URL.Query().Get("min_price"); raw != "" {
		minPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Error("failed to parse min_price", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid min_price"))
			return
		}
		filter.MinPrice = &minPrice
	}
	if raw := r.URL.Query().Get("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Error("failed to parse max_price", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid max_price"))
			return
		}
		filter.MaxPrice = &maxPrice
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 0 // сервис подставит значение по умолчанию
	}
	filter.Limit = limit

	skip, err := strconv.Atoi(r.URL.Query().Get("skip"))
	if err != nil || skip < 0 {
		skip = 0
	}
	filter.Skip = skip

	res, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list adverts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list adverts"))
		return
	}

	log.Info("adverts listed", slog.Int("count", len(res)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"count": len(res),
		"data":  res,
	}))
}
