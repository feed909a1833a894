// Package server exposes SMR evaluation over HTTP with JSON requests and
// responses.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/TuftsBCB/microenv/smr"
	"github.com/gin-gonic/gin"
)

// Server routes HTTP requests to an SMR engine.
type Server struct {
	Engine *gin.Engine

	smr *smr.Engine
	log *slog.Logger
}

// New returns a server evaluating requests with eng. If log is nil,
// requests are not logged.
func New(eng *smr.Engine, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		Engine: gin.New(),
		smr:    eng,
		log:    log,
	}
	s.Engine.Use(gin.Recovery())
	s.Engine.Use(s.logMiddleware())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.Engine.GET("/healthz", s.handleHealth)
	v1 := s.Engine.Group("/v1")
	{
		v1.POST("/smr", s.handleEvaluate)
		v1.POST("/smr/batch", s.handleBatch)
	}
}

func (s *Server) logMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start))
	}
}

// ListenAndServe serves HTTP on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("starting smr service", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	s.log.Info("shutting down smr service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
