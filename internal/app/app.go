package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"pomodoro_backend/internal/config"
	"pomodoro_backend/internal/controller"
	"pomodoro_backend/internal/repository"
	"pomodoro_backend/internal/service"
	"pomodoro_backend/pkg/database"
	"pomodoro_backend/pkg/logger"
	"pomodoro_backend/pkg/monitoring"
	"pomodoro_backend/pkg/security"
	"pomodoro_backend/pkg/tracing"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	mu sync.RWMutex
}

type repositories struct {
	cycle     *repository.CycleRepository
	subject   *repository.SubjectRepository
	session   *repository.SessionRepository
	dailyStat *repository.DailyStatRepository
}

type services struct {
	stats     *service.StatsService
	cycle     *service.CycleService
	subject   *service.SubjectService
	session   *service.SessionService
	dailyStat *service.DailyStatService
	storage   *service.StorageService
	export    *service.ExportService
	backup    *service.BackupService
}

type controllers struct {
	cycle   *controller.CycleController
	subject *controller.SubjectController
	session *controller.SessionController
	stats   *controller.StatsController
	export  *controller.ExportController
	backup  *controller.BackupController
	health  *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		cycle:     repository.NewCycleRepository(db),
		subject:   repository.NewSubjectRepository(db),
		session:   repository.NewSessionRepository(db),
		dailyStat: repository.NewDailyStatRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.stats = service.NewStatsService(repos.session, repos.subject, rdb, cfg.Stats.CacheTTL)
	s.cycle = service.NewCycleService(repos.cycle, repos.subject, s.stats)
	s.subject = service.NewSubjectService(repos.subject, repos.cycle, s.stats)
	s.session = service.NewSessionService(repos.session, repos.subject, s.stats)
	s.dailyStat = service.NewDailyStatService(repos.dailyStat)
	s.storage = service.NewStorageService(cfg)
	s.export = service.NewExportService(repos.cycle, repos.subject, repos.session)
	s.backup = service.NewBackupService(db, s.storage, s.stats)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		cycle:   controller.NewCycleController(s.cycle),
		subject: controller.NewSubjectController(s.subject),
		session: controller.NewSessionController(s.session),
		stats:   controller.NewStatsController(s.stats, s.dailyStat),
		export:  controller.NewExportController(s.export),
		backup:  controller.NewBackupController(s.backup),
		health:  controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// ReloadConfig 配置热更新回调，目前只替换限流和CORS以外可安全调整的项
func (a *App) ReloadConfig(cfg *config.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Config.Stats = cfg.Stats
	a.Config.RateLimit = cfg.RateLimit
	logger.Log.Info("Config reloaded")
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		logger.Log.Info("Migrate-only mode, exiting")
		os.Exit(0)
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			// 缓存是可选依赖，初始化失败降级为直查
			logger.Log.Warn("Failed to initialize redis, stats cache disabled", zap.Error(err))
			rdb = nil
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("pomodoro-api", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
