package repository

import (
	"context"
	"quiz_backend/internal/model"
	"quiz_backend/internal/repository/cache"
	"quiz_backend/internal/util"
	"quiz_backend/pkg/logger"
	"strconv"

	"github.com/ecodeclub/ekit/slice"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedQuestionRepository 在任意 QuestionRepository 之上加一层整库缓存。
// 缓存出错只记日志，读请求回源；写请求成功后删除缓存。
type CachedQuestionRepository struct {
	repo  QuestionRepository
	cache cache.QuestionCache
	group singleflight.Group
}

func NewCachedQuestionRepository(repo QuestionRepository, c cache.QuestionCache) *CachedQuestionRepository {
	return &CachedQuestionRepository{repo: repo, cache: c}
}

func (r *CachedQuestionRepository) List(ctx context.Context) ([]model.Question, error) {
	qs, err := r.cache.GetQuestions(ctx)
	if err == nil {
		return qs, nil
	}
	if err != cache.ErrCacheMiss {
		logger.Log.Warn("读取题库缓存失败", zap.Error(err))
	}

	// 版本号必须在回源之前取得；取不到时只回源，不回写
	gen, genErr := r.cache.Generation(ctx)
	if genErr != nil {
		logger.Log.Warn("读取题库缓存版本失败", zap.Error(genErr))
		return r.repo.List(ctx)
	}

	// 失效之后发起的读取不会合并到失效之前的回源上
	v, err, _ := r.group.Do("questions:"+strconv.FormatInt(gen, 10), func() (any, error) {
		qs, err := r.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		err = r.cache.SetQuestions(ctx, qs, gen)
		switch {
		case err == cache.ErrStaleGeneration:
			logger.Log.Debug("题库在回源期间被修改，放弃回写缓存", zap.Int64("generation", gen))
		case err != nil:
			logger.Log.Warn("回写题库缓存失败", zap.Error(err))
		}
		return qs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Question), nil
}

func (r *CachedQuestionRepository) FindByID(ctx context.Context, id int64) (*model.Question, error) {
	qs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range qs {
		if qs[i].ID == id {
			q := qs[i]
			return &q, nil
		}
	}
	return nil, util.ErrQuestionNotFound
}

func (r *CachedQuestionRepository) ListByCategory(ctx context.Context, category string) ([]model.Question, error) {
	qs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return slice.FilterMap(qs, func(_ int, q model.Question) (model.Question, bool) {
		return q, sameCategory(q, category)
	}), nil
}

func (r *CachedQuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.invalidateAfter(ctx, r.repo.Create(ctx, q))
}

func (r *CachedQuestionRepository) Update(ctx context.Context, q *model.Question) error {
	return r.invalidateAfter(ctx, r.repo.Update(ctx, q))
}

func (r *CachedQuestionRepository) Delete(ctx context.Context, id int64) error {
	return r.invalidateAfter(ctx, r.repo.Delete(ctx, id))
}

func (r *CachedQuestionRepository) CreateBatch(ctx context.Context, qs []model.Question) error {
	return r.invalidateAfter(ctx, r.repo.CreateBatch(ctx, qs))
}

func (r *CachedQuestionRepository) DeleteAll(ctx context.Context) error {
	return r.invalidateAfter(ctx, r.repo.DeleteAll(ctx))
}

func (r *CachedQuestionRepository) invalidateAfter(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	if err := r.cache.Invalidate(ctx); err != nil {
		logger.Log.Warn("删除题库缓存失败", zap.Error(err))
	}
	return nil
}
