package storage

import (
	"context"
	"fmt"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"myblog/internal/config"
	"myblog/internal/models"

	"github.com/google/uuid"
)

// Storage управляет жизненным циклом блобов: каждая запись владеет своим
// объектом единолично, image_url в БД пишется только через этот слой.
type Storage interface {
	Upload(ctx context.Context, prefix string, fileName string, file io.Reader, size int64) (string, string, error)
	Remove(ctx context.Context, objectName string) error
	PublicURL(objectName string) string
	ObjectNameFromURL(rawURL string) (string, error)
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
		return nil, fmt.Errorf("ошибка подключения к MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания bucket %s: %w", cfg.MinIO.BucketName, err)
		}
	}

	return &MinIOClient{client: client, cfg: cfg}, nil
}

// Upload кладёт блоб под устойчивым к коллизиям ключом <prefix>/<uuid><ext>.
// Имя файла пользователя даёт только расширение и метаданные, в ключ оно не попадает.
func (m *MinIOClient) Upload(ctx context.Context, prefix string, fileName string, file io.Reader, size int64) (string, string, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), fileExt)

	_, err := m.client.PutObject(ctx, m.cfg.MinIO.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"uploaded-at":       time.Now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("%w: ошибка загрузки в MinIO: %v", models.ErrUpload, err)
	}

	return objectName, m.PublicURL(objectName), nil
}

// Remove удаляет объект из bucket. Отсутствующий объект не ошибка:
// повторное удаление должно быть идемпотентным.
func (m *MinIOClient) Remove(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.cfg.MinIO.BucketName, objectName,
		minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("%w: ошибка удаления из MinIO: %v", models.ErrUpload, err)
	}
	return nil
}

func (m *MinIOClient) PublicURL(objectName string) string {
	scheme := "http"
	if m.cfg.MinIO.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.cfg.MinIO.Endpoint, m.cfg.MinIO.BucketName, objectName)
}

// ObjectNameFromURL восстанавливает ключ объекта из публичного URL.
func (m *MinIOClient) ObjectNameFromURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: неверный формат URL изображения", models.ErrValidation)
	}

	bucketPrefix := "/" + m.cfg.MinIO.BucketName + "/"
	if !strings.HasPrefix(parsed.Path, bucketPrefix) {
		return "", fmt.Errorf("%w: URL не относится к bucket %s", models.ErrValidation, m.cfg.MinIO.BucketName)
	}

	objectName := strings.TrimPrefix(parsed.Path, bucketPrefix)
	if objectName == "" {
		return "", fmt.Errorf("%w: неверный формат URL изображения", models.ErrValidation)
	}

	return objectName, nil
}
