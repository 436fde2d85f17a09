// Package patch реализует HTTP-обработчик частичного обновления объявления.
//
// Меняются только переданные поля формы, остальные остаются как были.
// Флаер перезагружается на медиахостинг только если приложен новый файл.
package patch

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vetrovdenis/ad-marketplace/internal/http/middlewarectx"
	"github.com/vetrovdenis/ad-marketplace/internal/http/response"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/errlist"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/sl"
	"github.com/vetrovdenis/ad-marketplace/internal/models"
)

const maxFormMemory = 10 << 20

// Handler управляет HTTP-запросами на частичное обновление объявления.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики частичного обновления.
type Service interface {
	Update(ctx context.Context, userUID, id string, patch models.AdvertPatch, flyer *models.FlyerUpload) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.advert.patch"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	var fields models.AdvertPatch
	if v := r.FormValue("title"); v != "" {
		fields.Title = &v
	}
	if v := r.FormValue("description"); v != "" {
		fields.Description = &v
	}
	if v := r.FormValue("category"); v != "" {
		fields.Category = &v
	}
	if v := r.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			log.Error("failed to parse price")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid price"))
			return
		}
		fields.Price = &price
	}

	var flyer *models.FlyerUpload
	file, header, err := r.FormFile("flyer")
	if err == nil {
		defer func() {
			_ = file.Close()
		}()
		flyer = &models.FlyerUpload{
			Reader:      file,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		log.Error("failed to read flyer", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid flyer file"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Update(r.Context(), userUID, id, fields, flyer); err != nil {
		switch {
		case errors.Is(err, errlist.ErrInvalidID):
			log.Error("invalid advert id", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid advert id format"))
		case errors.Is(err, errlist.ErrAdvertNotFound):
			log.Error("advert not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("advert not found"))
		case errors.Is(err, errlist.ErrAccessDenied):
			log.Error("access denied", sl.Err(err))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("access denied"))
		default:
			log.Error("failed to update advert", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update advert"))
		}
		return
	}

	log.Info("advert patched", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "advert updated successfully",
	}))
}
