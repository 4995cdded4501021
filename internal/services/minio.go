package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"

	"lavka_back_end/internal/database"
)

// MinioBlobs implémente BlobStore au-dessus du bucket MinIO partagé.
type MinioBlobs struct{}

func (MinioBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := database.MinIO.GetObject(ctx, database.MinioBucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("minio get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectMissing
		}
		return nil, fmt.Errorf("minio read %s: %w", key, err)
	}
	return data, nil
}

func (MinioBlobs) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := database.MinIO.PutObject(
		ctx,
		database.MinioBucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return fmt.Errorf("minio put %s: %w", key, err)
	}
	return nil
}

func (MinioBlobs) Stat(ctx context.Context, key string) (string, error) {
	info, err := database.MinIO.StatObject(ctx, database.MinioBucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", ErrObjectMissing
		}
		return "", fmt.Errorf("minio stat %s: %w", key, err)
	}
	return info.ETag, nil
}

// PresignURL génère une URL signée GET avec expiration.
func (MinioBlobs) PresignURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	reqParams := make(url.Values)
	presigned, err := database.MinIO.PresignedGetObject(ctx, database.MinioBucket, key, expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("minio presign %s: %w", key, err)
	}
	return presigned.String(), nil
}
