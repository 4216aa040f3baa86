// 手动写入演示数据脚本
//
// 主应用启动时会在空库上自动执行一次同样的播种逻辑。
// 此脚本仅用于手动触发，例如清库重建后想单独灌入演示数据。
//
// 用法: go run scripts/seed/main.go

package main

import (
	"context"
	"log"

	"lms_backend/internal/config"
	"lms_backend/internal/service"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	storage := service.NewStorageService(cfg)
	seed := service.NewSeedService(db, storage)

	log.Println("写入演示数据...")
	if err := seed.Seed(context.Background()); err != nil {
		log.Fatalf("写入失败: %v", err)
	}
	log.Println("完成！")
}
