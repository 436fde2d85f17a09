// Package services содержит бизнес-логику работы с объявлениями:
// создание, чтение, поиск, замену, частичное обновление и удаление,
// включая проверку владения, кеширование и получение флаера.
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vetrovdenis/ad-marketplace/internal/lib/errlist"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/guard"
	"github.com/vetrovdenis/ad-marketplace/internal/models"
)

// Время жизни записи объявления в кеше.
const cacheTTL = time.Hour

// Значения пагинации по умолчанию.
const (
	DefaultListLimit    = 10
	DefaultRelatedLimit = 5
)

// AdvertRepository определяет методы для работы с объявлениями в хранилище.
type AdvertRepository interface {
	// CreateAdvert добавляет новое объявление и возвращает его идентификатор.
	CreateAdvert(ctx context.Context, ad models.Advert) (string, error)
	// ExistsAdvert проверяет наличие у владельца объявления с таким title.
	ExistsAdvert(ctx context.Context, ownerUID, title string) (bool, error)
	// ReadAdvert возвращает объявление или errlist.ErrAdvertNotFound.
	ReadAdvert(ctx context.Context, uid string) (*models.Advert, error)
	// ListAdverts возвращает объявления по фильтру с пагинацией.
	ListAdverts(ctx context.Context, filter models.AdvertFilter) ([]*models.Advert, error)
	// ListRelatedAdverts возвращает объявления той же категории, кроме исходного.
	ListRelatedAdverts(ctx context.Context, category, excludeUID string, limit, skip int) ([]*models.Advert, error)
	// ReplaceAdvert полностью заменяет изменяемые поля, возвращает число строк.
	ReplaceAdvert(ctx context.Context, ad models.Advert, uid string) (int, error)
	// UpdateAdvert применяет частичное обновление, возвращает число строк.
	UpdateAdvert(ctx context.Context, patch models.AdvertPatch, uid string) (int, error)
	// RemoveAdvert удаляет объявление, возвращает число удалённых строк.
	RemoveAdvert(ctx context.Context, uid string) (int, error)
}

// MediaUploader описывает загрузку картинки на медиахостинг.
type MediaUploader interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)
}

// ImageGenerator описывает генерацию картинки-заглушки по текстовому описанию.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// Cache описывает методы для кэширования объявлений.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// AdvertService реализует бизнес-логику работы с объявлениями.
type AdvertService struct {
	repo  AdvertRepository
	media MediaUploader
	gen   ImageGenerator
	cache Cache
	log   *slog.Logger
}

// NewAdvertService создает новый экземпляр AdvertService.
func NewAdvertService(repo AdvertRepository, media MediaUploader, gen ImageGenerator, cache Cache, log *slog.Logger) *AdvertService {
	return &AdvertService{
		repo:  repo,
		media: media,
		gen:   gen,
		cache: cache,
		log:   log,
	}
}

// resolveFlyerURL получает URL картинки объявления: приложенный файл
// загружается на медиахостинг, при его отсутствии картинка генерируется
// по заголовку объявления и загружается туда же.
func (s *AdvertService) resolveFlyerURL(ctx context.Context, title string, flyer *models.FlyerUpload) (string, error) {
	if flyer != nil {
		return s.media.Upload(ctx, flyer.Reader, flyer.Size, flyer.ContentType)
	}

	img, err := s.gen.Generate(ctx, title)
	if err != nil {
		return "", err
	}
	return s.media.Upload(ctx, bytes.NewReader(img), int64(len(img)), "image/png")
}

// Create создает новое объявление для продавца и возвращает его идентификатор.
// Повтор пары (владелец, title) — errlist.ErrAdvertExists.
func (s *AdvertService) Create(ctx context.Context, ownerUID string, req models.DummyAdvert, flyer *models.FlyerUpload) (string, error) {
	const op = "services.advert.Create"

	exists, err := s.repo.ExistsAdvert(ctx, ownerUID, req.Title)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return "", fmt.Errorf("%s: %w", op, errlist.ErrAdvertExists)
	}

	flyerURL, err := s.resolveFlyerURL(ctx, req.Title, flyer)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	ad := models.Advert{
		OwnerUID:    ownerUID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		FlyerURL:    flyerURL,
	}
	uid, err := s.repo.CreateAdvert(ctx, ad)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new advert", slog.String("id", uid))

	// Кеш заполняется первым чтением: собранная здесь структура не знает
	// created_at, который проставляет база.
	return uid, nil
}

// Read возвращает объявление по идентификатору, используя кеш или хранилище.
// Синтаксически некорректный идентификатор отклоняется до обращения
// к хранилищу с errlist.ErrInvalidID.
func (s *AdvertService) Read(ctx context.Context, id string) (*models.Advert, error) {
	const op = "services.advert.Read"

	if err := uuid.Validate(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, errlist.ErrInvalidID)
	}

	var result *models.Advert
	cacheKey := fmt.Sprintf("advert:%s", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ReadAdvert(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache advert", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает объявления по фильтру. Каждый вызов заново исполняет
// запрос к хранилищу, состояние между вызовами не хранится.
func (s *AdvertService) List(ctx context.Context, filter models.AdvertFilter) ([]*models.Advert, error) {
	const op = "services.advert.List"

	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	adverts, err := s.repo.ListAdverts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return adverts, nil
}

// Related возвращает объявления той же категории, что и исходное,
// исключая само исходное объявление.
func (s *AdvertService) Related(ctx context.Context, id string, limit, skip int) ([]*models.Advert, error) {
	const op = "services.advert.Related"

	if err := uuid.Validate(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, errlist.ErrInvalidID)
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	if skip < 0 {
		skip = 0
	}

	current, err := s.repo.ReadAdvert(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	adverts, err := s.repo.ListRelatedAdverts(ctx, current.Category, id, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return adverts, nil
}

// loadOwned загружает объявление и проверяет владение.
// Порядок фиксированный: сначала существование (404), потом владение (403).
func (s *AdvertService) loadOwned(ctx context.Context, op, userUID, id string) (*models.Advert, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, errlist.ErrInvalidID)
	}

	current, err := s.repo.ReadAdvert(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if decision := guard.Owner(userUID, current.OwnerUID); !decision.Allowed {
		s.log.Warn("advert mutation denied", slog.String("id", id), slog.String("reason", decision.Reason))
		return nil, fmt.Errorf("%s: %w", op, errlist.ErrAccessDenied)
	}
	return current, nil
}

// Replace полностью заменяет изменяемые поля объявления владельца.
// URL флаера выводится заново: приложенный файл перезагружается,
// при его отсутствии картинка генерируется по новому заголовку.
func (s *AdvertService) Replace(ctx context.Context, userUID, id string, req models.DummyAdvert, flyer *models.FlyerUpload) error {
	const op = "services.advert.Replace"

	if _, err := s.loadOwned(ctx, op, userUID, id); err != nil {
		return err
	}

	flyerURL, err := s.resolveFlyerURL(ctx, req.Title, flyer)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ad := models.Advert{
		OwnerUID:    userUID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		FlyerURL:    flyerURL,
	}
	count, err := s.repo.ReplaceAdvert(ctx, ad, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, errlist.ErrAdvertNotFound)
	}
	s.log.Info("replaced advert", slog.String("id", id))

	cacheKey := fmt.Sprintf("advert:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return nil
}

// Update применяет частичное обновление объявления владельца:
// меняются только переданные поля, флаер перезагружается только если
// приложен новый файл.
func (s *AdvertService) Update(ctx context.Context, userUID, id string, patch models.AdvertPatch, flyer *models.FlyerUpload) error {
	const op = "services.advert.Update"

	if _, err := s.loadOwned(ctx, op, userUID, id); err != nil {
		return err
	}

	if flyer != nil {
		flyerURL, err := s.media.Upload(ctx, flyer.Reader, flyer.Size, flyer.ContentType)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		patch.FlyerURL = &flyerURL
	}

	count, err := s.repo.UpdateAdvert(ctx, patch, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, errlist.ErrAdvertNotFound)
	}
	s.log.Info("updated advert", slog.String("id", id))

	cacheKey := fmt.Sprintf("advert:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return nil
}

// Remove удаляет объявление владельца.
// Удаление нуля строк трактуется как errlist.ErrAdvertNotFound.
func (s *AdvertService) Remove(ctx context.Context, userUID, id string) error {
	const op = "services.advert.Remove"

	if _, err := s.loadOwned(ctx, op, userUID, id); err != nil {
		return err
	}

	count, err := s.repo.RemoveAdvert(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, errlist.ErrAdvertNotFound)
	}
	s.log.Info("removed advert", slog.String("id", id))

	cacheKey := fmt.Sprintf("advert:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return nil
}
