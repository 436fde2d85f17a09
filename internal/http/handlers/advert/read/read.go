// Package read реализует HTTP-обработчик получения объявления по ID.
//
// Синтаксически некорректный идентификатор даёт 400, корректный,
// но отсутствующий в хранилище — 404. Исходы различаются намеренно.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vetrovdenis/ad-marketplace/internal/http/response"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/errlist"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/sl"
	"github.com/vetrovdenis/ad-marketplace/internal/models"
)

// Handler обрабатывает запросы на получение объявления по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения объявления.
type Service interface {
	Read(ctx context.Context, id string) (*models.Advert, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.advert.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	res, err := h.service.Read(r.Context(), id)
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
			log.Error("failed to read advert", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not read advert"))
		}
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"advert": res,
	}))
}
