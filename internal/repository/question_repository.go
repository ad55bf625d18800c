package repository

import (
	"context"
	"quiz_backend/internal/model"
	"quiz_backend/internal/util"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type GormQuestionRepository struct {
	DB *gorm.DB
}

func NewGormQuestionRepository(db *gorm.DB) *GormQuestionRepository {
	return &GormQuestionRepository{DB: db}
}

func (r *GormQuestionRepository) List(ctx context.Context) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.WithContext(ctx).Order("id asc").Find(&qs).Error
	return qs, errors.Wrap(err, "list questions")
}

func (r *GormQuestionRepository) FindByID(ctx context.Context, id int64) (*model.Question, error) {
	var q model.Question
	err := r.DB.WithContext(ctx).First(&q, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find question %d", id)
	}
	return &q, nil
}

func (r *GormQuestionRepository) ListByCategory(ctx context.Context, category string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.WithContext(ctx).
		Where("category <> '' AND LOWER(category) = ?", strings.ToLower(category)).
		Order("id asc").
		Find(&qs).Error
	return qs, errors.Wrapf(err, "list questions of category %s", category)
}

// Create id 由自增主键分配
func (r *GormQuestionRepository) Create(ctx context.Context, q *model.Question) error {
	q.ID = 0
	err := r.DB.WithContext(ctx).Create(q).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrDuplicateQuestion
	}
	return errors.Wrap(err, "create question")
}

func (r *GormQuestionRepository) Update(ctx context.Context, q *model.Question) error {
	res := r.DB.WithContext(ctx).Model(&model.Question{}).
		Where("id = ?", q.ID).
		Select("question", "options", "answer_index", "category").
		Updates(q)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update question %d", q.ID)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// MySQL 在值未变化时也会报告 0 行，需要再确认一次是否存在
	var cnt int64
	if err := r.DB.WithContext(ctx).Model(&model.Question{}).Where("id = ?", q.ID).Count(&cnt).Error; err != nil {
		return errors.Wrapf(err, "check question %d", q.ID)
	}
	if cnt == 0 {
		return util.ErrQuestionNotFound
	}
	return nil
}

func (r *GormQuestionRepository) Delete(ctx context.Context, id int64) error {
	res := r.DB.WithContext(ctx).Delete(&model.Question{}, id)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete question %d", id)
	}
	if res.RowsAffected == 0 {
		return util.ErrQuestionNotFound
	}
	return nil
}

// CreateBatch 显式写入 id；PostgreSQL 的序列不会随之前进，需要手动对齐
func (r *GormQuestionRepository) CreateBatch(ctx context.Context, qs []model.Question) error {
	if len(qs) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.CreateInBatches(qs, 100).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return util.ErrDuplicateQuestion
		}
		if err != nil {
			return errors.Wrap(err, "import questions")
		}
		if tx.Dialector.Name() == util.DriverPostgres {
			err = tx.Exec("SELECT setval(pg_get_serial_sequence('questions', 'id'), COALESCE(MAX(id), 1)) FROM questions").Error
			return errors.Wrap(err, "sync question id sequence")
		}
		return nil
	})
}

func (r *GormQuestionRepository) DeleteAll(ctx context.Context) error {
	err := r.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Question{}).Error
	return errors.Wrap(err, "clear questions")
}
