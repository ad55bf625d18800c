package storage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// LocalDocumentStore 本地磁盘上的 JSON 文档
type LocalDocumentStore struct {
	base string
}

func NewLocalDocumentStore(base string) (*LocalDocumentStore, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &LocalDocumentStore{base: base}, nil
}

func (s *LocalDocumentStore) path(name string) string {
	return filepath.Join(s.base, filepath.Clean("/"+name))
}

func (s *LocalDocumentStore) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrDocumentNotFound
	}
	return data, err
}

// Write 先写临时文件再改名，读者不会看到写了一半的文档
func (s *LocalDocumentStore) Write(ctx context.Context, name string, data []byte) error {
	dst := s.path(name)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

func (s *LocalDocumentStore) Ping(ctx context.Context) error {
	_, err := os.Stat(s.base)
	return err
}
