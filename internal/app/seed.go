package app

import (
	"context"
	"quiz_backend/internal/config"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/service"
	"quiz_backend/pkg/database"
	"quiz_backend/pkg/logger"

	"go.uber.org/zap"
)

// RunMigrations 只建表，完成后由调用方退出
func RunMigrations(cfg *config.Config) error {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return nil
}

// RunSeed 在文件存储与数据库之间搬运数据：import 导入，delete 清空
func RunSeed(ctx context.Context, cfg *config.Config, action string) error {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	docs, err := openDocuments(ctx, &cfg.Storage)
	if err != nil {
		return err
	}
	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	seeder := &service.SeedService{
		SourceQuestions: repository.NewFileQuestionRepository(docs, cfg.Storage.QuestionsFile),
		SourceResults:   repository.NewFileQuizResultRepository(docs, cfg.Storage.ResultsFile),
		Questions:       repository.NewGormQuestionRepository(db),
		Results:         repository.NewGormQuizResultRepository(db),
	}
	logger.Log.Info("seeding database", zap.String("action", action))
	return seeder.Run(ctx, action)
}
