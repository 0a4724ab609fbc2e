// Package http is the gin-based inbound adapter: server lifecycle, routing
// and error rendering.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/quote-service/internal/platform/config"
)

// Server owns the gin engine and the listener serving it.
type Server struct {
	engine *gin.Engine
	srv    *http.Server
	cfg    *config.ServerConfig
	logger *slog.Logger

	mu sync.Mutex
	ln net.Listener
}

// New builds a Server. Every request body is capped at cfg.MaxRequestSize.
func New(cfg *config.ServerConfig, logger *slog.Logger) *Server {
	engine := gin.New()
	engine.Use(limitBody(cfg.MaxRequestSize))

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           engine,
			ReadHeaderTimeout: cfg.ReadTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		cfg:    cfg,
		logger: logger,
	}
}

// Engine is where routes are registered.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Listen binds the configured address. Run calls it when needed; calling
// it first surfaces bind errors and fixes Addr for port 0.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}

	s.ln = ln

	return nil
}

// Addr is the bound address once listening, the configured one before.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln != nil {
		return s.ln.Addr().String()
	}

	return s.srv.Addr
}

// Run serves until ctx is done, then drains in-flight requests for up to
// ShutdownTimeout. It returns nil after a clean drain.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("http server listening",
			slog.String("addr", s.Addr()),
			slog.Duration("request_timeout", s.cfg.RequestTimeout),
		)

		if err := s.srv.Serve(s.ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Info("http server draining", slog.Duration("timeout", s.cfg.ShutdownTimeout))

		if err := s.srv.Shutdown(drainCtx); err != nil {
			return fmt.Errorf("draining http server: %w", err)
		}

		s.logger.Info("http server stopped")

		return nil
	})

	return g.Wait()
}

func limitBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
