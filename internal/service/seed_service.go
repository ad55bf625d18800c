package service

import (
	"context"
	"quiz_backend/internal/repository"
	"quiz_backend/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	SeedImport = "import"
	SeedDelete = "delete"
	SeedExport = "export"
)

// SeedService 把文件存储里的题库和答题记录导入数据库，或清空数据库；
// export 反向把数据库内容写回文件存储
type SeedService struct {
	SourceQuestions repository.QuestionRepository
	SourceResults   repository.QuizResultRepository
	Questions       repository.QuestionRepository
	Results         repository.QuizResultRepository
}

type SeedReport struct {
	Questions int
	Results   int
}

func (s *SeedService) Run(ctx context.Context, action string) error {
	switch action {
	case SeedImport:
		_, err := s.Import(ctx)
		return err
	case SeedDelete:
		return s.Clear(ctx)
	case SeedExport:
		_, err := s.Export(ctx)
		return err
	default:
		return errors.Errorf("unknown seed action %q, want %q, %q or %q", action, SeedImport, SeedDelete, SeedExport)
	}
}

// Import 先清空两张表再整体导入，题目保留原有 id
func (s *SeedService) Import(ctx context.Context) (SeedReport, error) {
	var report SeedReport

	qs, err := s.SourceQuestions.List(ctx)
	if err != nil {
		return report, errors.Wrap(err, "read question source")
	}
	rs, err := s.SourceResults.List(ctx)
	if err != nil {
		return report, errors.Wrap(err, "read quiz result source")
	}

	if err := s.Clear(ctx); err != nil {
		return report, err
	}
	if err := s.Questions.CreateBatch(ctx, qs); err != nil {
		return report, err
	}
	if err := s.Results.CreateBatch(ctx, rs); err != nil {
		return report, err
	}

	report = SeedReport{Questions: len(qs), Results: len(rs)}
	logger.Log.Info("数据导入完成",
		zap.Int("questions", report.Questions),
		zap.Int("results", report.Results),
	)
	return report, nil
}

func (s *SeedService) Clear(ctx context.Context) error {
	if err := s.Questions.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.Results.DeleteAll(ctx); err != nil {
		return err
	}
	logger.Log.Info("数据已清空")
	return nil
}

// Export 用数据库内容覆盖文件存储中的两份文档
func (s *SeedService) Export(ctx context.Context) (SeedReport, error) {
	var report SeedReport

	qs, err := s.Questions.List(ctx)
	if err != nil {
		return report, err
	}
	rs, err := s.Results.List(ctx)
	if err != nil {
		return report, err
	}
	// 文件里按提交顺序保存
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}

	if err := s.SourceQuestions.DeleteAll(ctx); err != nil {
		return report, errors.Wrap(err, "clear question documents")
	}
	if err := s.SourceQuestions.CreateBatch(ctx, qs); err != nil {
		return report, errors.Wrap(err, "write question documents")
	}
	if err := s.SourceResults.DeleteAll(ctx); err != nil {
		return report, errors.Wrap(err, "clear quiz result documents")
	}
	if err := s.SourceResults.CreateBatch(ctx, rs); err != nil {
		return report, errors.Wrap(err, "write quiz result documents")
	}

	report = SeedReport{Questions: len(qs), Results: len(rs)}
	logger.Log.Info("数据导出完成",
		zap.Int("questions", report.Questions),
		zap.Int("results", report.Results),
	)
	return report, nil
}
