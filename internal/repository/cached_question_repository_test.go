package repository

import (
	"context"
	"errors"
	"quiz_backend/internal/model"
	"quiz_backend/internal/repository/cache"
	cachemocks "quiz_backend/internal/repository/cache/mocks"
	repomocks "quiz_backend/internal/repository/mocks"
	"quiz_backend/internal/storage"
	"quiz_backend/internal/util"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCachedQuestionRepository_List(t *testing.T) {
	stored := []model.Question{{ID: 1, Category: "math"}, {ID: 2, Category: "Science"}}

	testCases := []struct {
		name    string
		mock    func(ctrl *gomock.Controller) (QuestionRepository, cache.QuestionCache)
		wantLen int
		wantErr bool
	}{
		{
			name: "cache hit",
			mock: func(ctrl *gomock.Controller) (QuestionRepository, cache.QuestionCache) {
				repo := repomocks.NewMockQuestionRepository(ctrl)
				c := cachemocks.NewMockQuestionCache(ctrl)
				c.EXPECT().GetQuestions(gomock.Any()).Return(stored, nil)
				return repo, c
			},
			wantLen: 2,
		},
		{
			name: "cache miss fills cache",
			mock: func(ctrl *gomock.Controller) (QuestionRepository, cache.QuestionCache) {
				repo := repomocks.NewMockQuestionRepository(ctrl)
				c := cachemocks.NewMockQuestionCache(ctrl)
				c.EXPECT().GetQuestions(gomock.Any()).Return(nil, cache.ErrCacheMiss)
				c.EXPECT().Generation(gomock.Any()).Return(int64(4), nil)
				repo.EXPECT().List(gomock.Any()).Return(stored, nil)
				c.EXPECT().SetQuestions(gomock.Any(), stored, int64(4)).Return(nil)
				return repo, c
			},
			wantLen: 2,
		},
		{
			name: "changed while loading is not written back",
			mock: func(ctrl *gomock.Controller) (QuestionRepository, cache.QuestionCache) {
				repo := repomocks.NewMockQuestionRepository(ctrl)
				c := cachemocks.NewMockQuestionCache(ctrl)
				c.EXPECT().GetQuestions(gomock.Any()).Return(nil, cache.ErrCacheMiss)
				c.EXPECT().Generation(gomock.Any()).Return(int64(4), nil)
				repo.EXPECT().List(gomock.Any()).Return(stored, nil)
				c.EXPECT().SetQuestions(gomock.Any(), stored, int64(4)).Return(cache.ErrStaleGeneration)
				return repo, c
			},
			wantLen: 2,
		},
		{
			name: "cache write fails",
			mock: func(ctrl *gomock.Controller) (QuestionRepository, cache.QuestionCache) {
				repo := repomocks.NewMockQuestionRepository(ctrl)
				c := cachemocks.NewMockQuestionCache(ctrl)
				c.EXPECT().GetQuestions(gomock.Any()).Return(nil, cache.ErrCacheMiss)
				c.EXPECT().Generation(gomock.Any()).Return(int64(0), nil)
				repo.EXPECT().List(gomock.Any()).Return(stored, nil)
				c.EXPECT().SetQuestions(gomock.Any(), stored, int64(0)).Return(errors.New("redis down"))
				return repo, c
			},
			wantLen: 2,
		},
		{
			name: "cache broken falls back to storage",
			mock: func(ctrl *gomock.Controller) (QuestionRepository, cache.QuestionCache) {
				repo := repomocks.NewMockQuestionRepository(ctrl)
				c := cachemocks.NewMockQuestionCache(ctrl)
				c.EXPECT().GetQuestions(gomock.Any()).Return(nil, errors.New("redis down"))
				c.EXPECT().Generation(gomock.Any()).Return(int64(0), errors.New("redis down"))
				repo.EXPECT().List(gomock.Any()).Return(stored, nil)
				return repo, c
			},
			wantLen: 2,
		},
		{
			name: "storage error",
			mock: func(ctrl *gomock.Controller) (QuestionRepository, cache.QuestionCache) {
				repo := repomocks.NewMockQuestionRepository(ctrl)
				c := cachemocks.NewMockQuestionCache(ctrl)
				c.EXPECT().GetQuestions(gomock.Any()).Return(nil, cache.ErrCacheMiss)
				c.EXPECT().Generation(gomock.Any()).Return(int64(0), nil)
				repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("db down"))
				return repo, c
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewCachedQuestionRepository(tc.mock(ctrl))
			qs, err := repo.List(context.Background())
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, qs, tc.wantLen)
		})
	}
}

func TestCachedQuestionRepository_DerivedReads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := []model.Question{{ID: 1, Category: "math"}, {ID: 2, Category: "Math"}, {ID: 3, Category: "science"}}
	c := cachemocks.NewMockQuestionCache(ctrl)
	c.EXPECT().GetQuestions(gomock.Any()).Return(stored, nil).Times(3)

	repo := NewCachedQuestionRepository(repomocks.NewMockQuestionRepository(ctrl), c)
	ctx := context.Background()

	q, err := repo.FindByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "science", q.Category)

	_, err = repo.FindByID(ctx, 9)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)

	qs, err := repo.ListByCategory(ctx, "MATH")
	require.NoError(t, err)
	assert.Len(t, qs, 2)
}

func TestCachedQuestionRepository_WritesInvalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := repomocks.NewMockQuestionRepository(ctrl)
	c := cachemocks.NewMockQuestionCache(ctrl)
	repo := NewCachedQuestionRepository(inner, c)
	ctx := context.Background()

	q := &model.Question{ID: 1}
	inner.EXPECT().Create(gomock.Any(), q).Return(nil)
	inner.EXPECT().Update(gomock.Any(), q).Return(nil)
	inner.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)
	inner.EXPECT().DeleteAll(gomock.Any()).Return(nil)
	c.EXPECT().Invalidate(gomock.Any()).Return(nil).Times(4)

	require.NoError(t, repo.Create(ctx, q))
	require.NoError(t, repo.Update(ctx, q))
	require.NoError(t, repo.Delete(ctx, 1))
	require.NoError(t, repo.DeleteAll(ctx))

	// 写失败时不删缓存
	inner.EXPECT().Delete(gomock.Any(), int64(2)).Return(util.ErrQuestionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 2), util.ErrQuestionNotFound)
}

// memoryQuestionCache 进程内的版本化缓存，语义与 RedisQuestionCache 一致
type memoryQuestionCache struct {
	mu     sync.Mutex
	qs     []model.Question
	filled bool
	gen    int64
}

func (c *memoryQuestionCache) GetQuestions(ctx context.Context) ([]model.Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.filled {
		return nil, cache.ErrCacheMiss
	}
	return c.qs, nil
}

func (c *memoryQuestionCache) Generation(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *memoryQuestionCache) SetQuestions(ctx context.Context, qs []model.Question, generation int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.gen {
		return cache.ErrStaleGeneration
	}
	c.qs, c.filled = qs, true
	return nil
}

func (c *memoryQuestionCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.qs, c.filled = nil, false
	return nil
}

// slowFirstList 第一次 List 读完数据后停住，直到 release 被关闭
type slowFirstList struct {
	QuestionRepository
	started atomic.Bool
	loaded  chan struct{}
	release chan struct{}
}

func (r *slowFirstList) List(ctx context.Context) ([]model.Question, error) {
	qs, err := r.QuestionRepository.List(ctx)
	if r.started.CompareAndSwap(false, true) {
		close(r.loaded)
		<-r.release
	}
	return qs, err
}

func TestCachedQuestionRepository_WriteDuringLoad(t *testing.T) {
	ctx := context.Background()
	docs, err := storage.NewLocalDocumentStore(t.TempDir())
	require.NoError(t, err)

	inner := &slowFirstList{
		QuestionRepository: NewFileQuestionRepository(docs, "questions.json"),
		loaded:             make(chan struct{}),
		release:            make(chan struct{}),
	}
	c := &memoryQuestionCache{}
	repo := NewCachedQuestionRepository(inner, c)

	// 回源读到的是空题库，随后停住
	done := make(chan []model.Question)
	go func() {
		qs, err := repo.List(ctx)
		assert.NoError(t, err)
		done <- qs
	}()
	<-inner.loaded

	q := &model.Question{
		Question: model.LocalizedText{"zh": "一", "en": "one"},
		Options:  model.LocalizedOptions{"zh": {"a"}, "en": {"a"}},
	}
	require.NoError(t, repo.Create(ctx, q))

	// 写入之后的读取不会复用旧的回源结果
	fresh, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 1)

	close(inner.release)
	select {
	case stale := <-done:
		assert.Empty(t, stale)
	case <-time.After(5 * time.Second):
		t.Fatal("list did not return")
	}

	got, err := repo.FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.ID, got.ID)

	cached, err := c.GetQuestions(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}
