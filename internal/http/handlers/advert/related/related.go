// Package related реализует HTTP-обработчик подборки похожих объявлений:
// записей той же категории, что и исходное объявление, без него самого.
package related

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vetrovdenis/ad-marketplace/internal/http/response"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/errlist"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/sl"
	"github.com/vetrovdenis/ad-marketplace/internal/models"
)

// Handler обрабатывает запросы на подборку похожих объявлений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подборки похожих объявлений.
type Service interface {
	Related(ctx context.Context, id string, limit, skip int) ([]*models.Advert, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.advert.related"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 0 // сервис подставит значение по умолчанию
	}
	skip, err := strconv.Atoi(r.URL.Query().Get("skip"))
	if err != nil || skip < 0 {
		skip = 0
	}

	res, err := h.service.Related(r.Context(), id, limit, skip)
	if err != nil {
		switch {
		case errors.Is(err, errlist.ErrInvalidID):
			log.Error("invalid advert id", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid advert id format"))
		case errors.Is(err, errlist.ErrAdvertNotFound):
			log.Error("advert not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("advert not found"))
		default:
			log.Error("failed to list related adverts", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list related adverts"))
		}
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"count": len(res),
		"data":  res,
	}))
}
