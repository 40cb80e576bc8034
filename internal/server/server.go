package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"identity-service/internal/config"
	"identity-service/internal/handler"
	"identity-service/internal/middleware"
	"identity-service/internal/notify"
	"identity-service/internal/repository"
	"identity-service/internal/service"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	log    *logrus.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, notifier *notify.Notifier, logger *zap.Logger, log *logrus.Logger) *Server {
	router := gin.Default()
	router.Use(middleware.RequestID())

	s := &Server{
		router: router,
		db:     db,
		log:    log,
	}

	s.setupRoutes(cfg, notifier, logger)

	return s
}

func (s *Server) setupRoutes(cfg *config.Config, notifier *notify.Notifier, logger *zap.Logger) {
	userRepo := repository.NewUserRepository(s.db, logger)
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.TokenTTL())
	authService := service.NewAuthService(userRepo, tokens, notifier, logger)
	userService := service.NewUserService(userRepo, logger)
	authHandler := handler.NewAuthHandler(authService, s.log)
	userHandler := handler.NewUserHandler(userService, s.log)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := s.router.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// Everything below requires a valid bearer token
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokens, logger))
	{
		protected.GET("/profile", userHandler.GetProfile)
		protected.PUT("/profile", userHandler.UpdateProfile)
		protected.GET("/users", userHandler.ListUsers)
		protected.GET("/users/count", userHandler.CountUsers)
	}
}

func (s *Server) Run(addr string) {
	s.log.Infof("Server starting on %s...", addr)
	if err := s.router.Run(addr); err != nil {
		s.log.Fatalf("Server failed to start: %v", err)
	}
}
