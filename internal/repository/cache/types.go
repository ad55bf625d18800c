package cache

import (
	"context"
	"errors"
	"quiz_backend/internal/model"
)

//go:generate mockgen -source=./types.go -package=cachemocks -destination=./mocks/cache.mock.go QuestionCache

var (
	ErrCacheMiss = errors.New("题库缓存未命中")
	// ErrStaleGeneration 读取题库期间缓存已失效过，本次结果不能回写
	ErrStaleGeneration = errors.New("题库缓存版本已变化")
)

// QuestionCache 缓存整个题库；题库不大，按 id、分类的查询都从整份列表里算。
//
// 每次失效都会让版本号加一。回源前先取版本号，回写时版本号不一致就放弃，
// 这样与写操作并发的回源不会把旧题库写回缓存。
type QuestionCache interface {
	GetQuestions(ctx context.Context) ([]model.Question, error)
	Generation(ctx context.Context) (int64, error)
	// SetQuestions 只有当前版本号仍为 generation 时才写入，否则返回 ErrStaleGeneration
	SetQuestions(ctx context.Context, qs []model.Question, generation int64) error
	Invalidate(ctx context.Context) error
}
