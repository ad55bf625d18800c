// 手动把数据库中的题库与答题记录导出到文件存储
//
// 切回 file 存储方式前使用，等价于 `-seed=export`。
//
// 用法: go run scripts/export_documents.go [配置目录]

package main

import (
	"context"
	"log"
	"os"
	"quiz_backend/internal/app"
	"quiz_backend/internal/config"
	"quiz_backend/internal/service"
	"time"
)

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		log.Fatalf("无法读取配置: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("开始导出...")
	if err := app.RunSeed(ctx, cfg, service.SeedExport); err != nil {
		log.Fatalf("导出失败: %v", err)
	}
	log.Println("完成！")
}
