package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/shenikar/crisisflow/internal/service"
	"github.com/sirupsen/logrus"
)

// objectPutter - часть клиента MinIO, которая нужна хранилищу
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader *bytes.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioPutter struct {
	client *minio.Client
}

func (p minioPutter) PutObject(ctx context.Context, bucketName, objectName string, reader *bytes.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return p.client.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

// ImageStore сохраняет изображения сообщений в бакет S3-совместимого хранилища
type ImageStore struct {
	putter objectPutter
	bucket string
	clock  clockwork.Clock
}

var _ service.ImageStore = (*ImageStore)(nil)

// MinioConfig - параметры подключения к MinIO
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinioImageStore подключается к MinIO и создает бакет, если его нет
func NewMinioImageStore(ctx context.Context, cfg MinioConfig, log *logrus.Logger) (*ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: could not create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: could not check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage: could not create bucket %q: %w", cfg.Bucket, err)
		}
		log.WithField("bucket", cfg.Bucket).Info("Image bucket created")
	}

	return &ImageStore{putter: minioPutter{client: client}, bucket: cfg.Bucket, clock: clockwork.NewRealClock()}, nil
}

// Save загружает изображение и возвращает ключ объекта вида reports/2006/01/02/<uuid>.<ext>
func (s *ImageStore) Save(ctx context.Context, data []byte, contentType string) (string, error) {
	key := s.objectKey(contentType)
	_, err := s.putter.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("storage: could not upload image: %w", err)
	}
	return key, nil
}

func (s *ImageStore) objectKey(contentType string) string {
	ext := ".bin"
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "image/jpeg":
			ext = ".jpg"
		case "image/png":
			ext = ".png"
		case "image/gif":
			ext = ".gif"
		case "image/webp":
			ext = ".webp"
		}
	}
	day := s.clock.Now().UTC().Format("2006/01/02")
	return path.Join("reports", day, uuid.NewString()+ext)
}
