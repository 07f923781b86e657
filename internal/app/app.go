package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"unicbt_backend/internal/config"
	"unicbt_backend/internal/controller"
	"unicbt_backend/internal/repository"
	"unicbt_backend/internal/service"
	"unicbt_backend/pkg/configwatcher"
	"unicbt_backend/pkg/database"
	"unicbt_backend/pkg/logger"
	"unicbt_backend/pkg/monitoring"
	"unicbt_backend/pkg/security"
	"unicbt_backend/pkg/tracing"

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
}

type repositories struct {
	exam        *repository.ExamRepository
	answerSheet *repository.AnswerSheetRepository
	stat        *repository.QuestionStatRepository
	result      *repository.ExamResultRepository
	user        *repository.UserRepository
	survey      *repository.SurveyRepository
}

type services struct {
	exam        *service.ExamService
	eligibility *service.EligibilityService
	submission  *service.SubmissionService
	stats       *service.StatsService
	user        *service.UserService
	survey      *service.SurveyService
}

type controllers struct {
	exam       *controller.ExamController
	submission *controller.SubmissionController
	stats      *controller.StatsController
	user       *controller.UserController
	survey     *controller.SurveyController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		exam:        repository.NewExamRepository(db),
		answerSheet: repository.NewAnswerSheetRepository(db),
		stat:        repository.NewQuestionStatRepository(db),
		result:      repository.NewExamResultRepository(db),
		user:        repository.NewUserRepository(db),
		survey:      repository.NewSurveyRepository(db),
	}
}

func (a *App) initServices(repos *repositories, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.exam = service.NewExamService(repos.exam, rdb)
	s.eligibility = service.NewEligibilityService(repos.exam, repos.user)
	s.submission = service.NewSubmissionService(
		repos.exam,
		repos.answerSheet,
		repos.stat,
		repos.result,
		s.eligibility,
		db,
	)
	s.stats = service.NewStatsService(repos.stat, repos.result, repos.answerSheet)
	s.user = service.NewUserService(repos.user)
	s.survey = service.NewSurveyService(repos.survey, db)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		exam:       controller.NewExamController(s.exam, s.user),
		submission: controller.NewSubmissionController(s.submission, s.stats),
		stats:      controller.NewStatsController(s.stats),
		user:       controller.NewUserController(s.user),
		survey:     controller.NewSurveyController(s.survey),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
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

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// release 模式下默认不迁移，通过 -migrate / -migrate-only 显式触发
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migration completed")
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
			log.Fatalf("Failed to initialize redis: %v", err)
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, db, rdb)
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("unicbt-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers)

	if !cfg.MigrateOnly {
		go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
			if c, ok := newCfg.(*config.Config); ok {
				app.Config = c
				logger.Log.Info("Config reloaded", zap.Strings("allowedOrigins", c.CORS.AllowedOrigins))
			}
		})
	}

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
