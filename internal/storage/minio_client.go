package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"yatube/internal/config"
)

type Storage interface {
	UploadImage(ctx context.Context, fileName, contentType string, file io.Reader, size int64) (string, error)
	DeleteImage(ctx context.Context, objectName string) error
	ImageURL(objectName string) string
}

type MinIOClient struct {
	client *minio.Client
	cfg    config.MinIO
}

func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации MinIO: %w", err)
	}

	m := &MinIOClient{client: client, cfg: cfg}
	if err := m.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.cfg.BucketName)
	if err != nil {
		return fmt.Errorf("ошибка проверки bucket %s: %w", m.cfg.BucketName, err)
	}
	if exists {
		return nil
	}

	err = m.client.MakeBucket(ctx, m.cfg.BucketName, minio.MakeBucketOptions{Region: m.cfg.Region})
	if err != nil {
		return fmt.Errorf("ошибка создания bucket %s: %w", m.cfg.BucketName, err)
	}
	return nil
}

// ObjectName builds the key an uploaded image is stored under.
func ObjectName(fileName string, now time.Time) string {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	return fmt.Sprintf("posts/%d/%02d/%s%s", now.Year(), now.Month(), uuid.New().String(), fileExt)
}

func (m *MinIOClient) UploadImage(ctx context.Context, fileName, contentType string, file io.Reader, size int64) (string, error) {
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName)))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now()
	objectName := ObjectName(fileName, now)

	_, err := m.client.PutObject(ctx, m.cfg.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	return objectName, nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.cfg.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}
	return nil
}

func (m *MinIOClient) ImageURL(objectName string) string {
	if objectName == "" {
		return ""
	}
	scheme := "http"
	if m.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.cfg.Endpoint, m.cfg.BucketName, objectName)
}
