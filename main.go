// @title Quiz 后端 API
// @version 1.0
// @description 题库与答题记录服务。文件与数据库两种存储方式提供相同的接口。

// @host localhost:3000
// @BasePath /api

package main

import (
	"context"
	"flag"
	"log"
	"quiz_backend/internal/app"
	"quiz_backend/internal/config"
	"quiz_backend/pkg/logger"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件所在目录")
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	seed := flag.String("seed", "", "数据搬运：import 从文件存储导入数据库，delete 清空两张表，export 把数据库写回文件存储")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.MigrateOnly = *migrateOnly
	cfg.Seed = *seed

	if cfg.MigrateOnly {
		if err := app.RunMigrations(cfg); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Println("数据库迁移完成，退出程序")
		return
	}

	if cfg.Seed != "" {
		if err := app.RunSeed(context.Background(), cfg, cfg.Seed); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		return
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
