package storage

import (
	"bytes"
	"context"
	"io"
	"quiz_backend/internal/config"
	"quiz_backend/internal/util"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioDocumentStore 文档存放在 MinIO 桶中
type MinioDocumentStore struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioDocumentStore(cfg *config.StorageConfig) (*MinioDocumentStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioDocumentStore{Config: cfg, Client: client}, nil
}

func (s *MinioDocumentStore) Read(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.Client.GetObject(ctx, s.Config.MinioBucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.translate(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.translate(err)
	}
	return data, nil
}

func (s *MinioDocumentStore) Write(ctx context.Context, name string, data []byte) error {
	_, err := s.Client.PutObject(ctx, s.Config.MinioBucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: util.JSONContentType,
	})
	return err
}

func (s *MinioDocumentStore) Ping(ctx context.Context) error {
	ok, err := s.Client.BucketExists(ctx, s.Config.MinioBucket)
	if err != nil {
		return err
	}
	if !ok {
		return minio.ErrorResponse{Code: "NoSuchBucket", BucketName: s.Config.MinioBucket, Message: "bucket does not exist"}
	}
	return nil
}

func (s *MinioDocumentStore) translate(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrDocumentNotFound
	}
	return err
}
