package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/yourusername/waiver-api/internal/config"
)

// NewS3Client создает S3-клиент по конфигурации хранилища.
// Если задан Endpoint, клиент работает с S3-совместимым сервисом
// (Supabase Storage, MinIO, LocalStack) в path-style режиме.
func NewS3Client(ctx context.Context, cfg config.StorageConfig) (*awss3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return client, nil
}
