package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"mediafeed/internal/config"
)

type Storage interface {
	UploadMedia(ctx context.Context, ownerID, fileName string, file io.Reader, size int64) (string, string, error)
	DeleteMedia(ctx context.Context, objectName string) error
	EnsureBucket(ctx context.Context) error
}

type MinIOClient struct {
	client *minio.Client
	cfg    *config.Config
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации MinIO клиента: %w", err)
	}

	return &MinIOClient{client: client, cfg: cfg}, nil
}

func (m *MinIOClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.cfg.MinIO.BucketName)
	if err != nil {
		return fmt.Errorf("ошибка проверки bucket: %w", err)
	}
	if exists {
		return nil
	}

	err = m.client.MakeBucket(ctx, m.cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: m.cfg.MinIO.Region})
	if err != nil {
		return fmt.Errorf("ошибка создания bucket: %w", err)
	}

	return nil
}

// UploadMedia отправляет файл в MinIO и возвращает имя объекта и постоянный URL
func (m *MinIOClient) UploadMedia(ctx context.Context, ownerID, fileName string, file io.Reader, size int64) (string, string, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))

	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		// по расширению тип не определился - смотрим на первые байты файла
		header := make([]byte, 3072)
		n, _ := io.ReadFull(file, header)
		header = header[:n]
		contentType = mimetype.Detect(header).String()
		file = io.MultiReader(bytes.NewReader(header), file)
	}

	now := time.Now()
	objectName := fmt.Sprintf("media/%s/%d/%02d/%s%s",
		ownerID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		fileExt)

	_, err := m.client.PutObject(ctx, m.cfg.MinIO.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"owner-id":          ownerID,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	scheme := "http"
	if m.cfg.MinIO.UseSSL {
		scheme = "https"
	}

	mediaURL := fmt.Sprintf("%s://%s/%s/%s",
		scheme,
		m.cfg.MinIO.Endpoint,
		m.cfg.MinIO.BucketName,
		objectName)

	return objectName, mediaURL, nil
}

func (m *MinIOClient) DeleteMedia(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.cfg.MinIO.BucketName, objectName,
		minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}
	return nil
}
