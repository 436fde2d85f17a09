package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vetrovdenis/ad-marketplace/internal/lib/errlist"
	"github.com/vetrovdenis/ad-marketplace/internal/models"
)

// CreateAdvert вставляет новое объявление и возвращает его идентификатор.
func (s *Storage) CreateAdvert(ctx context.Context, ad models.Advert) (string, error) {
	const op = "storage.CreateAdvert"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO adverts (owner_uid, title, description, price, category, flyer_url)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid`
	var newUID string
	err := s.DB.QueryRowContext(ctx, query,
		ad.OwnerUID, ad.Title, ad.Description, ad.Price, ad.Category, ad.FlyerURL).Scan(&newUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// ExistsAdvert проверяет, есть ли у владельца объявление с таким title.
// Уникальность пары (owner, title) контролируется только при создании.
func (s *Storage) ExistsAdvert(ctx context.Context, ownerUID, title string) (bool, error) {
	const op = "storage.ExistsAdvert"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM adverts WHERE owner_uid = $1 AND title = $2)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, ownerUID, title).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ReadAdvert возвращает объявление по его идентификатору.
// Если записи нет, возвращает errlist.ErrAdvertNotFound.
func (s *Storage) ReadAdvert(ctx context.Context, uid string) (*models.Advert, error) {
	const op = "storage.ReadAdvert"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, owner_uid, title, description, price, category, flyer_url, created_at
			  FROM adverts WHERE uid = $1`
	row := s.DB.QueryRowContext(ctx, query, uid)

	var result models.Advert
	if err := row.Scan(&result.UID, &result.OwnerUID, &result.Title, &result.Description,
		&result.Price, &result.Category, &result.FlyerURL, &result.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errlist.ErrAdvertNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListAdverts возвращает объявления по фильтру с пагинацией.
// Текстовые условия применяются только для непустых полей, каждое —
// как регистронезависимое вхождение подстроки. Диапазон цен включительный.
func (s *Storage) ListAdverts(ctx context.Context, filter models.AdvertFilter) ([]*models.Advert, error) {
	const op = "storage.ListAdverts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, owner_uid, title, description, price, category, flyer_url, created_at
			  FROM adverts
			  WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
			    AND ($2 = '' OR description ILIKE '%' || $2 || '%')
			    AND ($3 = '' OR category ILIKE '%' || $3 || '%')
			    AND ($4::numeric IS NULL OR price >= $4)
			    AND ($5::numeric IS NULL OR price <= $5)
			  ORDER BY created_at
			  LIMIT $6 OFFSET $7`
	rows, err := s.DB.QueryContext(ctx, query,
		filter.Title, filter.Description, filter.Category,
		filter.MinPrice, filter.MaxPrice, filter.Limit, filter.Skip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Advert
	for rows.Next() {
		var item models.Advert
		if err := rows.Scan(&item.UID, &item.OwnerUID, &item.Title, &item.Description,
			&item.Price, &item.Category, &item.FlyerURL, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListRelatedAdverts возвращает объявления той же категории,
// исключая исходное, с пагинацией.
func (s *Storage) ListRelatedAdverts(ctx context.Context, category, excludeUID string, limit, skip int) ([]*models.Advert, error) {
	const op = "storage.ListRelatedAdverts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, owner_uid, title, description, price, category, flyer_url, created_at
			  FROM adverts
			  WHERE category = $1
			    AND uid <> $2
			  ORDER BY created_at
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, category, excludeUID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Advert
	for rows.Next() {
		var item models.Advert
		if err := rows.Scan(&item.UID, &item.OwnerUID, &item.Title, &item.Description,
			&item.Price, &item.Category, &item.FlyerURL, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReplaceAdvert полностью заменяет изменяемые поля объявления
// и возвращает количество изменённых строк.
func (s *Storage) ReplaceAdvert(ctx context.Context, ad models.Advert, uid string) (int, error) {
	const op = "storage.ReplaceAdvert"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE adverts
			  SET title = $1, description = $2, price = $3, category = $4, flyer_url = $5
			  WHERE uid = $6`
	result, err := s.DB.ExecContext(ctx, query,
		ad.Title, ad.Description, ad.Price, ad.Category, ad.FlyerURL, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateAdvert применяет частичное обновление: nil-поля не меняются.
// Возвращает количество изменённых строк.
func (s *Storage) UpdateAdvert(ctx context.Context, patch models.AdvertPatch, uid string) (int, error) {
	const op = "storage.UpdateAdvert"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE adverts
			  SET title = COALESCE($1, title),
			      description = COALESCE($2, description),
			      price = COALESCE($3, price),
			      category = COALESCE($4, category),
			      flyer_url = COALESCE($5, flyer_url)
			  WHERE uid = $6`
	result, err := s.DB.ExecContext(ctx, query,
		patch.Title, patch.Description, patch.Price, patch.Category, patch.FlyerURL, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveAdvert удаляет объявление и возвращает количество удалённых строк.
func (s *Storage) RemoveAdvert(ctx context.Context, uid string) (int, error) {
	const op = "storage.RemoveAdvert"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM adverts WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
