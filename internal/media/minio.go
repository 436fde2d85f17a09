// Package media реализует клиент медиахостинга на основе MinIO.
// Флаеры объявлений загружаются в бакет, наружу отдаётся постоянный
// публичный URL. Сам хостинг рассматривается как чёрный ящик:
// любая его ошибка всплывает как ошибка загрузки.
package media

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vetrovdenis/ad-marketplace/internal/config"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/errlist"
)

// Storage — клиент медиахостинга.
type Storage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// New подключается к MinIO и создаёт бакет для флаеров, если его ещё нет.
func New(ctx context.Context, cfg config.Media) (*Storage, error) {
	const op = "media.New"

	client, err := minio.New(cfg.EndpointMedia, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return &Storage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
	}, nil
}

// Upload загружает содержимое флаера и возвращает его постоянный URL.
// Имя объекта — новый uuid, расширение не сохраняется: тип содержимого
// хранится в метаданных объекта.
func (s *Storage) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	const op = "media.Upload"

	objectKey := uuid.New().String()
	_, err := s.client.PutObject(ctx, s.bucket, objectKey, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, errlist.ErrUpstream, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectKey), nil
}
