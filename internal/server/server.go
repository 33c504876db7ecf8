package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/komiharuu/Trello-Project/internal/cache"
	"github.com/komiharuu/Trello-Project/internal/config"
	"github.com/komiharuu/Trello-Project/internal/handler"
	"github.com/komiharuu/Trello-Project/internal/mailer"
	"github.com/komiharuu/Trello-Project/internal/middleware"
	"github.com/komiharuu/Trello-Project/internal/model"
	"github.com/komiharuu/Trello-Project/internal/repository"
	"github.com/komiharuu/Trello-Project/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const boardListCacheTTL = 5 * time.Minute

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM. TranslateError is required so unique-index violations
	// surface as gorm.ErrDuplicatedKey instead of raw driver errors.
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	logrus.Info("✅ Connected to database")

	if err := db.AutoMigrate(
		&model.User{},
		&model.Board{},
		&model.List{},
		&model.Member{},
		&model.Invitation{},
	); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate schema: %w", err)
	}

	// Board list cache: Redis when configured, in-process otherwise.
	var listCache cache.Cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		listCache = cache.NewRedisCache(client, boardListCacheTTL)
		logrus.Info("✅ Connected to Redis cache")
	} else {
		listCache = cache.NewMemoryCache()
		logrus.Info("⚠️  REDIS_ADDR not set, using in-process cache")
	}

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	listRepo := repository.NewListRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)

	// Initialize services
	boardService := service.NewBoardService(boardRepo, userRepo, listCache)
	invitationService := service.NewInvitationService(boardRepo, userRepo, memberRepo, invitationRepo, smtpMailer, cfg.AppURL)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	boardHandler := handler.NewBoardHandler(boardService)
	invitationHandler := handler.NewInvitationHandler(invitationService, userRepo, memberRepo)
	listHandler := handler.NewListHandler(listRepo, boardRepo)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards", boardHandler.GetList)
		authorized.GET("/boards/:id", boardHandler.GetByID)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)

		// Invitation and membership routes
		authorized.POST("/boards/:id/invitations", invitationHandler.Create)
		authorized.GET("/boards/:id/members", invitationHandler.GetBoardMembers)
		authorized.POST("/invitations/:token/accept", invitationHandler.Accept)
		authorized.POST("/invitations/:token/decline", invitationHandler.Decline)

		// List routes
		authorized.POST("/lists", listHandler.Create)
		authorized.GET("/boards/:id/lists", listHandler.GetByBoardID)
		authorized.PUT("/lists/:id", listHandler.Update)
		authorized.DELETE("/lists/:id", listHandler.Delete)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		logrus.Infof("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("❌ Failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	logrus.Info("✅ Server exited properly")
}
