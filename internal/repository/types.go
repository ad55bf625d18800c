package repository

import (
	"context"
	"quiz_backend/internal/model"
	"strings"
	"time"
)

//go:generate mockgen -source=./types.go -package=repomocks -destination=./mocks/repository.mock.go QuestionRepository,QuizResultRepository

// QuestionRepository 题库存储。单条查询、修改、删除找不到时返回 util.ErrQuestionNotFound
type QuestionRepository interface {
	// List 按 id 升序返回全部题目
	List(ctx context.Context) ([]model.Question, error)
	FindByID(ctx context.Context, id int64) (*model.Question, error)
	// ListByCategory 分类比较不区分大小写，按 id 升序
	ListByCategory(ctx context.Context, category string) ([]model.Question, error)
	// Create 由存储分配 id 并回写到 q
	Create(ctx context.Context, q *model.Question) error
	Update(ctx context.Context, q *model.Question) error
	Delete(ctx context.Context, id int64) error

	// 以下供导入工具使用，保留题目原有 id
	CreateBatch(ctx context.Context, qs []model.Question) error
	DeleteAll(ctx context.Context) error
}

// QuizResultRepository 答题记录存储，只追加，删除为物理删除
type QuizResultRepository interface {
	Create(ctx context.Context, r *model.QuizResult) error
	CreateBatch(ctx context.Context, rs []model.QuizResult) error
	// List 按时间倒序
	List(ctx context.Context) ([]model.QuizResult, error)
	// FindByIP / FindByUser 按时间正序，最早的记录在前
	FindByIP(ctx context.Context, ip string) ([]model.QuizResult, error)
	FindByUser(ctx context.Context, userID string) ([]model.QuizResult, error)
	DeleteAll(ctx context.Context) error
	// DeleteByUser / DeleteByTimestamp 返回删除的条数
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteByTimestamp(ctx context.Context, ts time.Time) (int64, error)
}

func sameCategory(q model.Question, category string) bool {
	return q.Category != "" && strings.ToLower(q.Category) == strings.ToLower(category)
}
