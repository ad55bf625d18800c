package repository

import (
	"context"
	"quiz_backend/internal/model"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type GormQuizResultRepository struct {
	DB *gorm.DB
}

func NewGormQuizResultRepository(db *gorm.DB) *GormQuizResultRepository {
	return &GormQuizResultRepository{DB: db}
}

func (r *GormQuizResultRepository) Create(ctx context.Context, res *model.QuizResult) error {
	return errors.Wrap(r.DB.WithContext(ctx).Create(res).Error, "create quiz result")
}

func (r *GormQuizResultRepository) CreateBatch(ctx context.Context, rs []model.QuizResult) error {
	if len(rs) == 0 {
		return nil
	}
	return errors.Wrap(r.DB.WithContext(ctx).CreateInBatches(rs, 200).Error, "import quiz results")
}

func (r *GormQuizResultRepository) List(ctx context.Context) ([]model.QuizResult, error) {
	var rs []model.QuizResult
	err := r.DB.WithContext(ctx).Order("timestamp desc").Find(&rs).Error
	return rs, errors.Wrap(err, "list quiz results")
}

func (r *GormQuizResultRepository) FindByIP(ctx context.Context, ip string) ([]model.QuizResult, error) {
	var rs []model.QuizResult
	err := r.DB.WithContext(ctx).Where("ip = ?", ip).Order("timestamp asc").Find(&rs).Error
	return rs, errors.Wrapf(err, "find quiz results of ip %s", ip)
}

func (r *GormQuizResultRepository) FindByUser(ctx context.Context, userID string) ([]model.QuizResult, error) {
	var rs []model.QuizResult
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("timestamp asc").Find(&rs).Error
	return rs, errors.Wrapf(err, "find quiz results of user %s", userID)
}

func (r *GormQuizResultRepository) DeleteAll(ctx context.Context) error {
	err := r.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.QuizResult{}).Error
	return errors.Wrap(err, "clear quiz results")
}

func (r *GormQuizResultRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.QuizResult{})
	return res.RowsAffected, errors.Wrapf(res.Error, "delete quiz results of user %s", userID)
}

func (r *GormQuizResultRepository) DeleteByTimestamp(ctx context.Context, ts time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Where("timestamp = ?", ts.UTC()).Delete(&model.QuizResult{})
	return res.RowsAffected, errors.Wrapf(res.Error, "delete quiz result at %s", ts.Format(time.RFC3339Nano))
}
