package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"quiz_backend/internal/model"
	"quiz_backend/internal/storage"
	"quiz_backend/pkg/logger"
	"slices"
	"sync"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FileQuizResultRepository 答题记录按追加顺序保存在一份 JSON 文档里
type FileQuizResultRepository struct {
	store storage.DocumentStore
	name  string
	mu    sync.Mutex
}

func NewFileQuizResultRepository(store storage.DocumentStore, name string) *FileQuizResultRepository {
	return &FileQuizResultRepository{store: store, name: name}
}

// load 逐条解析；不是对象的条目记录日志后跳过，下次写入时不再保留
func (r *FileQuizResultRepository) load(ctx context.Context) ([]model.QuizResult, error) {
	var raws []json.RawMessage
	if err := storage.ReadJSON(ctx, r.store, r.name, &raws); err != nil {
		return nil, errors.Wrap(err, "load quiz results")
	}
	rs := make([]model.QuizResult, 0, len(raws))
	for i, raw := range raws {
		var res model.QuizResult
		err := json.Unmarshal(raw, &res)
		if err == nil && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			err = model.ErrNotObject
		}
		if err != nil {
			logger.Log.Warn("跳过无法识别的答题记录",
				zap.String("document", r.name),
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		rs = append(rs, res)
	}
	return rs, nil
}

func (r *FileQuizResultRepository) save(ctx context.Context, rs []model.QuizResult) error {
	return errors.Wrap(storage.WriteJSON(ctx, r.store, r.name, rs), "save quiz results")
}

func (r *FileQuizResultRepository) Create(ctx context.Context, res *model.QuizResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append(rs, *res))
}

func (r *FileQuizResultRepository) CreateBatch(ctx context.Context, batch []model.QuizResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append(rs, batch...))
}

func (r *FileQuizResultRepository) List(ctx context.Context) ([]model.QuizResult, error) {
	rs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(rs, func(a, b model.QuizResult) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return rs, nil
}

func (r *FileQuizResultRepository) FindByIP(ctx context.Context, ip string) ([]model.QuizResult, error) {
	return r.findBy(ctx, func(res model.QuizResult) bool { return res.IP == ip })
}

func (r *FileQuizResultRepository) FindByUser(ctx context.Context, userID string) ([]model.QuizResult, error) {
	return r.findBy(ctx, func(res model.QuizResult) bool { return res.UserID == userID })
}

func (r *FileQuizResultRepository) findBy(ctx context.Context, match func(res model.QuizResult) bool) ([]model.QuizResult, error) {
	rs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	found := slice.FilterMap(rs, func(_ int, res model.QuizResult) (model.QuizResult, bool) {
		return res, match(res)
	})
	slices.SortStableFunc(found, func(a, b model.QuizResult) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return found, nil
}

func (r *FileQuizResultRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(ctx, []model.QuizResult{})
}

func (r *FileQuizResultRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	return r.deleteWhere(ctx, func(res model.QuizResult) bool { return res.UserID == userID })
}

func (r *FileQuizResultRepository) DeleteByTimestamp(ctx context.Context, ts time.Time) (int64, error) {
	return r.deleteWhere(ctx, func(res model.QuizResult) bool { return res.Timestamp.Equal(ts) })
}

// deleteWhere 没有命中时不重写文档
func (r *FileQuizResultRepository) deleteWhere(ctx context.Context, match func(res model.QuizResult) bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	remaining := slices.DeleteFunc(slices.Clone(rs), match)
	deleted := int64(len(rs) - len(remaining))
	if deleted == 0 {
		return 0, nil
	}
	return deleted, r.save(ctx, remaining)
}
