package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizmaster_backend/internal/config"
	"quizmaster_backend/internal/controller"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/service"
	"quizmaster_backend/pkg/database"
	"quizmaster_backend/pkg/logger"
	"quizmaster_backend/pkg/monitoring"
	"quizmaster_backend/pkg/security"
	"quizmaster_backend/pkg/tracing"

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
	user     *repository.UserRepository
	subject  *repository.SubjectRepository
	chapter  *repository.ChapterRepository
	quiz     *repository.QuizRepository
	question *repository.QuestionRepository
	score    *repository.ScoreRepository
	snapshot *repository.AnswerSnapshotRepository
}

type services struct {
	auth     *service.AuthService
	storage  *service.StorageService
	subject  *service.SubjectService
	chapter  *service.ChapterService
	quiz     *service.QuizService
	question *service.QuestionService
	importer *service.QuestionImportService
	attempt  *service.AttemptService
	user     *service.UserService
}

type controllers struct {
	auth     *controller.AuthController
	subject  *controller.SubjectController
	chapter  *controller.ChapterController
	quiz     *controller.QuizController
	question *controller.QuestionController
	attempt  *controller.AttemptController
	user     *controller.UserController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		subject:  repository.NewSubjectRepository(db),
		chapter:  repository.NewChapterRepository(db),
		quiz:     repository.NewQuizRepository(db),
		question: repository.NewQuestionRepository(db),
		score:    repository.NewScoreRepository(db),
		snapshot: repository.NewAnswerSnapshotRepository(rdb, cfg.Session.SnapshotTTL),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	s := &services{storage: storage}
	s.auth = service.NewAuthService(repos.user, cfg)
	s.subject = service.NewSubjectService(repos.subject)
	s.chapter = service.NewChapterService(repos.chapter, repos.subject)
	s.quiz = service.NewQuizService(repos.quiz, repos.chapter, repos.question)
	s.question = service.NewQuestionService(repos.question, repos.quiz, storage)
	s.importer = service.NewQuestionImportService(db, repos.quiz)
	s.attempt = service.NewAttemptService(repos.quiz, repos.question, repos.score, repos.snapshot)
	s.user = service.NewUserService(repos.user, repos.subject, repos.score, repos.quiz, s.attempt)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth, s.user),
		subject:  controller.NewSubjectController(s.subject),
		chapter:  controller.NewChapterController(s.chapter),
		quiz:     controller.NewQuizController(s.quiz),
		question: controller.NewQuestionController(s.question, s.importer),
		attempt:  controller.NewAttemptController(s.attempt),
		user:     controller.NewUserController(s.user),
		health:   controller.NewHealthController(db, rdb),
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

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb, cfg)
	services, err := app.initServices(repos, cfg, db)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
		log.Fatalf("Failed to initialize services: %v", err)
	}
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quizmaster", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

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

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

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
