package repository

import (
	"context"
	"quiz_backend/internal/model"
	"quiz_backend/internal/storage"
	"quiz_backend/internal/util"
	"slices"
	"sync"

	"github.com/ecodeclub/ekit/slice"
	"github.com/pkg/errors"
)

// FileQuestionRepository 整份 JSON 文档保存题库，每次读取整份、每次写入整份重写。
// 写操作在进程内串行，多进程同时写仍是后写覆盖先写。
type FileQuestionRepository struct {
	store storage.DocumentStore
	name  string
	mu    sync.Mutex
}

func NewFileQuestionRepository(store storage.DocumentStore, name string) *FileQuestionRepository {
	return &FileQuestionRepository{store: store, name: name}
}

func (r *FileQuestionRepository) load(ctx context.Context) ([]model.Question, error) {
	qs := []model.Question{}
	if err := storage.ReadJSON(ctx, r.store, r.name, &qs); err != nil {
		return nil, errors.Wrap(err, "load questions")
	}
	return qs, nil
}

func (r *FileQuestionRepository) save(ctx context.Context, qs []model.Question) error {
	return errors.Wrap(storage.WriteJSON(ctx, r.store, r.name, qs), "save questions")
}

func sortByID(qs []model.Question) []model.Question {
	slices.SortStableFunc(qs, func(a, b model.Question) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return qs
}

func (r *FileQuestionRepository) List(ctx context.Context) ([]model.Question, error) {
	qs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return sortByID(qs), nil
}

func (r *FileQuestionRepository) FindByID(ctx context.Context, id int64) (*model.Question, error) {
	qs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(qs, func(q model.Question) bool { return q.ID == id })
	if idx < 0 {
		return nil, util.ErrQuestionNotFound
	}
	return &qs[idx], nil
}

func (r *FileQuestionRepository) ListByCategory(ctx context.Context, category string) ([]model.Question, error) {
	qs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return sortByID(slice.FilterMap(qs, func(_ int, q model.Question) (model.Question, bool) {
		return q, sameCategory(q, category)
	})), nil
}

// Create 新 id 为当前最大 id + 1，空题库从 1 开始；持锁完成读-改-写
func (r *FileQuestionRepository) Create(ctx context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	qs, err := r.load(ctx)
	if err != nil {
		return err
	}
	q.ID = maxID(qs) + 1
	return r.save(ctx, append(qs, *q))
}

func (r *FileQuestionRepository) Update(ctx context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	qs, err := r.load(ctx)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(qs, func(e model.Question) bool { return e.ID == q.ID })
	if idx < 0 {
		return util.ErrQuestionNotFound
	}
	qs[idx] = *q
	return r.save(ctx, qs)
}

func (r *FileQuestionRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	qs, err := r.load(ctx)
	if err != nil {
		return err
	}
	remaining := slices.DeleteFunc(slices.Clone(qs), func(q model.Question) bool { return q.ID == id })
	if len(remaining) == len(qs) {
		return util.ErrQuestionNotFound
	}
	return r.save(ctx, remaining)
}

// CreateBatch 保留传入的 id，没有 id 的题目接着最大 id 往后编号
func (r *FileQuestionRepository) CreateBatch(ctx context.Context, batch []model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	qs, err := r.load(ctx)
	if err != nil {
		return err
	}
	seen := make(map[int64]struct{}, len(qs)+len(batch))
	for _, q := range qs {
		seen[q.ID] = struct{}{}
	}
	next := max(maxID(qs), maxID(batch)) + 1
	for _, q := range batch {
		if q.ID == 0 {
			q.ID = next
			next++
		}
		if _, ok := seen[q.ID]; ok {
			return errors.Wrapf(util.ErrDuplicateQuestion, "id %d", q.ID)
		}
		seen[q.ID] = struct{}{}
		qs = append(qs, q)
	}
	return r.save(ctx, qs)
}

func (r *FileQuestionRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(ctx, []model.Question{})
}

func maxID(qs []model.Question) int64 {
	var res int64
	for _, q := range qs {
		if q.ID > res {
			res = q.ID
		}
	}
	return res
}
