package repository

import (
	"context"
	"time"
)

// ObjectStorage интерфейс объектного хранилища (подписи и PDF-документы).
// Загрузка работает в режиме upsert-by-key: повтор по тому же ключу перезаписывает объект.
type ObjectStorage interface {
	// Upload записывает объект в бакет
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error

	// Download возвращает байты объекта (apperrors.ErrNotFound, если объекта нет)
	Download(ctx context.Context, bucket, key string) ([]byte, error)

	// SignedURL возвращает временную подписанную ссылку на объект
	SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}
