// 手动触发周重置脚本
//
// 周重置已经可以通过 /api/cycles/:id/reset-week 接口完成，
// 此脚本用于 cron 在每周一凌晨自动清零当前激活周期的本周累计分钟数。
//
// 用法: go run scripts/reset_week.go

package main

import (
	"log"
	"os"
	"pomodoro_backend/internal/config"
	"pomodoro_backend/internal/repository"
	"pomodoro_backend/internal/service"
	"pomodoro_backend/pkg/database"
	"pomodoro_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	// 缓存开着的话重置后要让统计缓存失效
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			log.Printf("Redis 连接失败，跳过缓存失效: %v", err)
			rdb = nil
		}
	}

	cycleRepo := repository.NewCycleRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	stats := service.NewStatsService(sessionRepo, subjectRepo, rdb, 0)
	cycleService := service.NewCycleService(cycleRepo, subjectRepo, stats)

	active, err := cycleService.GetActive()
	if err != nil {
		log.Fatalf("查询激活周期失败: %v", err)
	}
	if active == nil {
		log.Println("没有激活的周期，无需重置")
		return
	}

	if err := cycleService.ResetWeek(active.ID); err != nil {
		log.Fatalf("周重置失败: %v", err)
	}
	log.Printf("周期 %s (%s) 的本周分钟数已清零", active.Name, active.ID)
}
