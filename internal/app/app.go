package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"tamamali_backend/internal/config"
	"tamamali_backend/internal/controller"
	"tamamali_backend/internal/repository"
	"tamamali_backend/internal/service"
	"tamamali_backend/pkg/configwatcher"
	"tamamali_backend/pkg/database"
	"tamamali_backend/pkg/logger"
	"tamamali_backend/pkg/monitoring"
	"tamamali_backend/pkg/security"
	"tamamali_backend/pkg/tracing"
	"time"

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
	user         *repository.UserRepository
	quiz         *repository.QuizRepository
	group        *repository.GroupRepository
	assignment   *repository.AssignmentRepository
	attempt      *repository.AttemptRepository
	conversation *repository.ConversationRepository
}

type services struct {
	auth       *service.AuthService
	quiz       *service.QuizService
	group      *service.GroupService
	assignment *service.AssignmentService
	student    *service.StudentService
	grading    *service.GradingService
	ai         *service.AIService
	chat       *service.ChatService
}

type controllers struct {
	auth       *controller.AuthController
	quiz       *controller.QuizController
	group      *controller.GroupController
	assignment *controller.AssignmentController
	student    *controller.StudentController
	roster     *controller.RosterController
	chat       *controller.ChatController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		quiz:         repository.NewQuizRepository(db),
		group:        repository.NewGroupRepository(db),
		assignment:   repository.NewAssignmentRepository(db),
		attempt:      repository.NewAttemptRepository(db),
		conversation: repository.NewConversationRepository(rdb, cfg.AI.SessionTTL),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.quiz = service.NewQuizService(repos.quiz, repos.user)
	s.group = service.NewGroupService(repos.group, repos.user)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.quiz, repos.group, repos.user)
	s.student = service.NewStudentService(repos.user, repos.quiz, repos.assignment, repos.attempt)
	s.grading = service.NewGradingService(repos.quiz, repos.assignment, repos.attempt)
	s.ai = service.NewAIService(cfg.AI)
	s.chat = service.NewChatService(s.ai, repos.conversation)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	isRelease := a.Config.Server.Mode == "release"
	return &controllers{
		auth:       controller.NewAuthController(s.auth, isRelease),
		quiz:       controller.NewQuizController(s.quiz),
		group:      controller.NewGroupController(s.group),
		assignment: controller.NewAssignmentController(s.assignment),
		student:    controller.NewStudentController(s.student, s.grading),
		roster:     controller.NewRosterController(s.student),
		chat:       controller.NewChatController(s.chat),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("tamamali-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	// Hot-reload config changes that can take effect without a restart.
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		app.Config.JWT = newCfg.JWT
		app.Config.AI = newCfg.AI
		services.ai.UpdateConfig(newCfg.AI)
		repos.conversation.TTL = newCfg.AI.SessionTTL
		for _, callback := range app.configCallbacks {
			callback(newCfg)
		}
	})

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
