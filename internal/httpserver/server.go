package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookPath - адрес, на который Telegram присылает обновления
const WebhookPath = "/telegram/webhook"

// readyTimeout ограничивает все проверки /readyz вместе
const readyTimeout = 3 * time.Second

// Check - проверка зависимости для /readyz (Postgres, Redis)
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// Server - служебный HTTP сервер: проверки живости и webhook бота
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

// NewRouter собирает маршруты. webhook может быть nil (long polling).
func NewRouter(checks []Check, webhook http.HandlerFunc, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		failed := gin.H{}
		for _, check := range checks {
			if err := check.Ping(ctx); err != nil {
				logger.Warn("Readiness check failed", zap.String("check", check.Name), zap.Error(err))
				failed[check.Name] = err.Error()
			}
		}
		if len(failed) > 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "failed": failed})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if webhook != nil {
		router.POST(WebhookPath, gin.WrapF(webhook))
	}

	return router
}

// New создаёт сервер на addr
func New(addr string, router http.Handler, logger *zap.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run слушает до отмены ctx, затем корректно останавливает сервер
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("Stopping HTTP server")
	return s.srv.Shutdown(shutdownCtx)
}
