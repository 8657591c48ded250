package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"levelup_backend/internal/config"
	"levelup_backend/internal/controller"
	"levelup_backend/internal/repository"
	"levelup_backend/internal/service"
	"levelup_backend/pkg/database"
	"levelup_backend/pkg/logger"
	"levelup_backend/pkg/monitoring"
	"levelup_backend/pkg/security"
	"levelup_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	course        *repository.CourseRepository
	enrollment    *repository.EnrollmentRepository
	progress      *repository.ProgressRepository
	completion    *repository.CompletionRepository
	submission    *repository.SubmissionRepository
	reviewRequest *repository.ReviewRequestRepository
	tokenClaim    *repository.TokenClaimRepository
	certificate   *repository.CertificateRepository
	notification  *repository.NotificationRepository
}

type services struct {
	auth         *service.AuthService
	storage      *service.StorageService
	content      *service.ContentService
	notification *service.NotificationService
	catalog      *service.CatalogService
	enrollment   *service.EnrollmentService
	rewards      *service.RewardsService
	progression  *service.ProgressionService
	submission   *service.SubmissionService
	review       *service.ReviewService
	certificate  *service.CertificateService
}

type controllers struct {
	auth         *controller.AuthController
	course       *controller.CourseController
	progress     *controller.ProgressController
	rewards      *controller.RewardsController
	submission   *controller.SubmissionController
	review       *controller.ReviewController
	certificate  *controller.CertificateController
	notification *controller.NotificationController
	user         *controller.UserController
	admin        *controller.AdminController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新回调入口
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		course:        repository.NewCourseRepository(db),
		enrollment:    repository.NewEnrollmentRepository(db),
		progress:      repository.NewProgressRepository(db),
		completion:    repository.NewCompletionRepository(db),
		submission:    repository.NewSubmissionRepository(db),
		reviewRequest: repository.NewReviewRequestRepository(db),
		tokenClaim:    repository.NewTokenClaimRepository(db),
		certificate:   repository.NewCertificateRepository(db),
		notification:  repository.NewNotificationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.content = service.NewContentService(cfg, rdb)
	s.notification = service.NewNotificationService(repos.notification)
	s.catalog = service.NewCatalogService(repos.course)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, s.notification)
	s.rewards = service.NewRewardsService(db, repos.user, repos.tokenClaim)
	s.progression = service.NewProgressionService(db, s.catalog, s.rewards, repos.enrollment, repos.progress, repos.completion, s.notification)
	s.submission = service.NewSubmissionService(db, s.catalog, s.progression, s.rewards, repos.submission, s.storage, s.notification)
	s.review = service.NewReviewService(db, s.catalog, s.rewards, repos.reviewRequest, s.notification)
	s.certificate = service.NewCertificateService(db, repos.certificate, repos.completion, s.rewards, s.notification)

	return s, nil
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		course:       controller.NewCourseController(s.catalog, s.progression, s.enrollment, s.content),
		progress:     controller.NewProgressController(s.progression),
		rewards:      controller.NewRewardsController(s.rewards),
		submission:   controller.NewSubmissionController(s.submission),
		review:       controller.NewReviewController(s.review),
		certificate:  controller.NewCertificateController(s.certificate),
		notification: controller.NewNotificationController(s.notification),
		user:         controller.NewUserController(repos.user, s.enrollment),
		admin:        controller.NewAdminController(repos.course, repos.certificate),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		if err := database.SeedCatalog(db); err != nil {
			logger.Log.Fatal("Failed to seed catalog", zap.Error(err))
		}
	}

	// 课程目录完整性在启动期校验，损坏时立即失败
	if err := database.CheckCatalogIntegrity(db); err != nil {
		logger.Log.Fatal("Catalog integrity check failed", zap.Error(err))
	}

	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, content cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, repos, db)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("levelup-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
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
