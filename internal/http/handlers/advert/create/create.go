// Package create реализует HTTP-обработчик создания объявлений.
//
// Handler принимает multipart-форму с полями объявления и опциональным
// файлом флаера, валидирует данные, извлекает идентификатор продавца из
// контекста и вызывает бизнес-логику создания. Если флаер не приложен,
// сервис сгенерирует картинку-заглушку по заголовку объявления.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/vetrovdenis/ad-marketplace/internal/http/middlewarectx"
	"github.com/vetrovdenis/ad-marketplace/internal/http/response"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/errlist"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/sl"
	"github.com/vetrovdenis/ad-marketplace/internal/models"
)

// Ограничение на размер multipart-формы с флаером.
const maxFormMemory = 10 << 20

// Handler управляет HTTP-запросами на создание объявлений.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания объявления.
type Service interface {
	Create(ctx context.Context, ownerUID string, req models.DummyAdvert, flyer *models.FlyerUpload) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать новое объявление
// @Description Создает объявление текущего продавца. Флаер опционален: без него картинка генерируется автоматически. Возвращает ID созданной записи.
// @Tags Adverts
// @Accept  mpfd
// @Produce  json
// @Param title formData string true "Заголовок"
// @Param description formData string false "Описание"
// @Param price formData number true "Цена"
// @Param category formData string true "Категория"
// @Param flyer formData file false "Картинка объявления"
// @Success 200 {object} map[string]any "Успешное создание объявления"
// @Failure 400 {object} response.ErrorResponse "Некорректная форма"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Дубликат заголовка у продавца"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /advert [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.advert.create"

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

	ownerUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || ownerUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.Create(r.Context(), ownerUID, req, flyer)
	if err != nil {
		if errors.Is(err, errlist.ErrAdvertExists) {
			log.Error("duplicate advert title", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("advert with this title already exists"))
			return
		}
		log.Error("failed to create advert", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create advert"))
		return
	}

	log.Info("advert created", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":      id,
		"message": "advert added successfully",
	}))
}
