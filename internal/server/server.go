package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"arari/internal/api"
	"arari/internal/config"
	"arari/internal/service/aggregator"
	"arari/internal/store"
)

// Server HTTP サーバー
type Server struct {
	router *gin.Engine
	http   *http.Server
	repo   store.Repository
	api    *api.Handler
	logger *zap.Logger
}

// NewServer ルーターを組み立てる。repo の Close は呼び出し側の責務
func NewServer(cfg *config.AppConfig, repo store.Repository, agg *aggregator.Aggregator, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router: gin.New(),
		repo:   repo,
		api:    api.NewHandler(repo, agg, cfg, logger),
		logger: logger.Named("server"),
	}
	s.setupRoutes()

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery())
	s.router.Use(RequestLogger(s.logger))

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

// Handler テスト用
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 待ち受け開始。Shutdown 後は nil を返す
func (s *Server) Run() error {
	s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 処理中のリクエストを待って停止
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// GetStore ストア（テスト用）
func (s *Server) GetStore() store.Repository {
	return s.repo
}
