// Package replace реализует HTTP-обработчик полной замены объявления (PUT).
//
// Замена доступна только продавцу-владельцу. Все изменяемые поля задаются
// заново; URL флаера выводится повторно: приложенный файл перезагружается,
// без него картинка генерируется по новому заголовку.
package replace

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/vetrovdenis/ad-marketplace/internal/http/middlewarectx"
	"github.com/vetrovdenis/ad-marketplace/internal/http/response"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/errlist"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/sl"
	"github.com/vetrovdenis/ad-marketplace/internal/models"
)

const maxFormMemory = 10 << 20

// Handler управляет HTTP-запросами на полную замену объявления.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики замены объявления.
type Service interface {
	Replace(ctx context.Context, userUID, id string, req models.DummyAdvert, flyer *models.FlyerUpload) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.advert.replace"

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

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		log.Error("failed to parse price", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid price"))
		return
	}

	req := models.DummyAdvert{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       price,
		Category:    r.FormValue("category"),
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
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
	if err := h.service.Replace(r.Context(), userUID, id, req, flyer); err != nil {
		renderServiceError(w, r, log, err, "could not update advert")
		return
	}

	log.Info("advert replaced", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "advert updated successfully",
	}))
}

// renderServiceError переводит ошибки бизнес-логики мутаций в HTTP-статусы.
func renderServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, fallback string) {
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
		log.Error(fallback, sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(fallback))
	}
}
