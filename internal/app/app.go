package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"quiz_backend/internal/config"
	"quiz_backend/internal/controller"
	"quiz_backend/internal/middleware"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/repository/cache"
	"quiz_backend/internal/service"
	"quiz_backend/internal/storage"
	"quiz_backend/pkg/configwatcher"
	"quiz_backend/pkg/database"
	"quiz_backend/pkg/logger"
	"quiz_backend/pkg/monitoring"
	"quiz_backend/pkg/security"
	"quiz_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Documents       storage.DocumentStore
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
	// 后台协程（限流清理等）随 bg 结束
	bg   context.Context
	stop context.CancelFunc
}

// Repositories 两种存储方式对外提供同一组接口，路由与业务逻辑只依赖它
type Repositories struct {
	Question   repository.QuestionRepository
	QuizResult repository.QuizResultRepository
	// 健康检查的组件
	Health map[string]controller.Pinger
}

type services struct {
	question   *service.QuestionService
	quizResult *service.QuizResultService
}

type controllers struct {
	question   *controller.QuestionController
	quizResult *controller.QuizResultController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initServices(repos Repositories, cfg *config.Config) *services {
	return &services{
		question:   service.NewQuestionService(repos.Question, service.SettingsFromConfig(cfg.Quiz)),
		quizResult: service.NewQuizResultService(repos.QuizResult),
	}
}

func (a *App) initControllers(s *services, repos Repositories) *controllers {
	return &controllers{
		question:   controller.NewQuestionController(s.question),
		quizResult: controller.NewQuizResultController(s.quizResult),
		health:     controller.NewHealthController(repos.Health),
	}
}

func (a *App) setupMiddlewares(ctx context.Context, router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.ClientIP())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New 在已经准备好的存储之上组装路由，测试直接使用
func New(cfg *config.Config, repos Repositories) *App {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{Config: cfg, bg: ctx, stop: cancel}
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(app.services, repos)

	// 出题默认值支持热加载
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		if app.services.question.ApplySettings(service.SettingsFromConfig(newCfg.Quiz)) {
			logger.Log.Info("quiz settings reloaded",
				zap.Int("default_count", newCfg.Quiz.DefaultCount),
				zap.String("default_lang", newCfg.Quiz.DefaultLang),
			)
		}
	})

	monitoring.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode == gin.DebugMode {
		router.Use(gin.Logger())
	}
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		logger.Log.Warn("invalid trusted proxies, trusting none", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}
	app.Router = router

	app.setupMiddlewares(ctx, router, cfg)
	app.registerRoutes(router, controllers, cfg)

	return app
}

// NewApp 按配置连接存储并组装应用，存储不可用时直接退出
func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		repos  Repositories
		db     *gorm.DB
		docs   storage.DocumentStore
		health = map[string]controller.Pinger{}
		err    error
	)

	switch cfg.Store.Backend {
	case config.BackendDatabase:
		db, err = database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
		if err != nil {
			logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		}
		sqlDB, err := db.DB()
		if err != nil {
			logger.Log.Fatal("Failed to get database handle", zap.Error(err))
		}
		health["database"] = controller.PingFunc(sqlDB.PingContext)
		repos.Question = repository.NewGormQuestionRepository(db)
		repos.QuizResult = repository.NewGormQuizResultRepository(db)
	default:
		docs, err = openDocuments(ctx, &cfg.Storage)
		if err != nil {
			logger.Log.Fatal("Failed to initialize document storage", zap.Error(err))
		}
		health["storage"] = docs
		repos.Question = repository.NewFileQuestionRepository(docs, cfg.Storage.QuestionsFile)
		repos.QuizResult = repository.NewFileQuizResultRepository(docs, cfg.Storage.ResultsFile)
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(ctx, &cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		health["redis"] = controller.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		repos.Question = repository.NewCachedQuestionRepository(repos.Question, cache.NewRedisQuestionCache(rdb, cfg.Redis.TTL))
	}
	repos.Health = health

	var tp *sdktrace.TracerProvider
	if cfg.Tracing.Enabled {
		tp, err = tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app := New(cfg, repos)
	app.DB = db
	app.Redis = rdb
	app.Documents = docs
	app.tracer = tp
	return app
}

func openDocuments(ctx context.Context, cfg *config.StorageConfig) (storage.DocumentStore, error) {
	docs, err := storage.NewDocumentStore(cfg)
	if err != nil {
		return nil, err
	}
	if err := docs.Ping(ctx); err != nil {
		return nil, errors.Wrapf(err, "document storage %s unreachable", cfg.Type)
	}
	return docs, nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if a.Config.Dir != "" {
		err := configwatcher.WatchConfig(watchCtx, a.Config.Dir, func(newCfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		})
		if err != nil {
			logger.Log.Warn("config hot reload disabled", zap.Error(err))
		}
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port), zap.String("store", a.Config.Store.Backend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close(ctx)

	logger.Log.Info("Server exiting")
}

// Close 停止后台协程，释放数据库、Redis 与追踪资源
func (a *App) Close(ctx context.Context) {
	if a.stop != nil {
		a.stop()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
