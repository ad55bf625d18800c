package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"quiz_backend/internal/config"
	"quiz_backend/internal/util"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

// OSSDocumentStore 文档存放在阿里云 OSS
type OSSDocumentStore struct {
	Config *config.StorageConfig
	Client *oss.Client
}

func NewOSSDocumentStore(cfg *config.StorageConfig) (*OSSDocumentStore, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSDocumentStore{Config: cfg, Client: client}, nil
}

func (s *OSSDocumentStore) Read(ctx context.Context, name string) ([]byte, error) {
	bucket, err := s.Client.Bucket(s.Config.OSSBucket)
	if err != nil {
		return nil, err
	}

	body, err := bucket.GetObject(name, oss.WithContext(ctx))
	if err != nil {
		var serr oss.ServiceError
		if errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

func (s *OSSDocumentStore) Write(ctx context.Context, name string, data []byte) error {
	bucket, err := s.Client.Bucket(s.Config.OSSBucket)
	if err != nil {
		return err
	}
	return bucket.PutObject(name, bytes.NewReader(data), oss.ContentType(util.JSONContentType), oss.WithContext(ctx))
}

func (s *OSSDocumentStore) Ping(ctx context.Context) error {
	ok, err := s.Client.IsBucketExist(s.Config.OSSBucket)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Errorf("oss bucket %s does not exist", s.Config.OSSBucket)
	}
	return nil
}
