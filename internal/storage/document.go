package storage

import (
	"context"
	"encoding/json"
	"quiz_backend/internal/config"
	"quiz_backend/internal/util"

	"github.com/pkg/errors"
)

// ErrDocumentNotFound 文档尚不存在，调用方按空列表处理
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore 以整份文档为单位读写，没有局部更新
type DocumentStore interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Ping(ctx context.Context) error
}

// NewDocumentStore 按配置选择文档存放位置
func NewDocumentStore(cfg *config.StorageConfig) (DocumentStore, error) {
	switch cfg.Type {
	case util.StorageMinio:
		return NewMinioDocumentStore(cfg)
	case util.StorageOSS:
		return NewOSSDocumentStore(cfg)
	case util.StorageLocal, "":
		return NewLocalDocumentStore(cfg.LocalPath)
	default:
		return nil, errors.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// ReadJSON 读取并解析整份文档；文档不存在或为空时保持 v 不变
func ReadJSON(ctx context.Context, store DocumentStore, name string, v any) error {
	data, err := store.Read(ctx, name)
	if errors.Is(err, ErrDocumentNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "could not read document %s", name)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "could not parse document %s", name)
	}
	return nil
}

// WriteJSON 以两格缩进重写整份文档
func WriteJSON(ctx context.Context, store DocumentStore, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "could not encode document %s", name)
	}
	if err := store.Write(ctx, name, data); err != nil {
		return errors.Wrapf(err, "could not write document %s", name)
	}
	return nil
}
