package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	apperrors "github.com/yourusername/waiver-api/internal/pkg/errors"
)

// ObjectStorage реализует repository.ObjectStorage поверх S3-совместимого хранилища
// (AWS S3, Supabase Storage, MinIO). Запись идемпотентна по ключу: повторная
// загрузка того же ключа перезаписывает объект, а не дублирует его.
type ObjectStorage struct {
	client    *awss3.Client
	presigner *awss3.PresignClient
}

// NewObjectStorage создает новое хранилище объектов
func NewObjectStorage(client *awss3.Client) *ObjectStorage {
	return &ObjectStorage{
		client:    client,
		presigner: awss3.NewPresignClient(client),
	}
}

// Upload записывает объект в бакет
func (s *ObjectStorage) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Download возвращает байты объекта
func (s *ObjectStorage) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to download %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// SignedURL возвращает временную подписанную ссылку на объект
func (s *ObjectStorage) SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, func(o *awss3.PresignOptions) { o.Expires = ttl })
	if err != nil {
		return "", fmt.Errorf("failed to presign %s/%s: %w", bucket, key, err)
	}
	return req.URL, nil
}
