// Package api serves the InsightEd HTTP API: roster and analysis lookups,
// PDF report downloads, feedback generation and a websocket event stream.
package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/jaffarkeikei/InsightEd/pkg/config"
	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
	"github.com/jaffarkeikei/InsightEd/pkg/logging"
)

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	router     *Router
	config     *ServerConfig
	log        *log.Logger

	mu      sync.RWMutex
	running bool
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`

	ReadTimeout time.Duration `yaml:"read_timeout" json:"readTimeout"`
	// WriteTimeout must cover a class report with feedback for every student.
	WriteTimeout time.Duration `yaml:"write_timeout" json:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" json:"idleTimeout"`

	CORSOrigins []string `yaml:"cors_origins" json:"corsOrigins"`
	AccessLog   bool     `yaml:"access_log" json:"accessLog"`
}

// DefaultServerConfig returns the defaults for the API server.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:         "localhost",
		Port:         8081,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
		CORSOrigins:  []string{"*"},
		AccessLog:    true,
	}
}

// ServerConfigFrom maps the server section of the application config.
func ServerConfigFrom(c config.ServerConfig) *ServerConfig {
	sc := DefaultServerConfig()
	if c.Host != "" {
		sc.Host = c.Host
	}
	sc.Port = c.Port
	sc.CORSOrigins = c.CORSOrigins
	sc.AccessLog = c.AccessLog
	return sc
}

// NewServer creates a server with an empty router.
func NewServer(cfg *ServerConfig) *Server {
	if cfg == nil {
		cfg = DefaultServerConfig()
	}
	def := DefaultServerConfig()
	if cfg.Host == "" {
		cfg.Host = def.Host
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = def.ReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}

	return &Server{
		router: NewRouter(),
		config: cfg,
		log:    logging.New("api"),
	}
}

// Address returns host:port.
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Router returns the router for registering handlers.
func (s *Server) Router() *Router {
	return s.router
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mws := []Middleware{RecoveryMiddleware(s.log), RequestIDMiddleware}
	if s.config.AccessLog {
		mws = append(mws, AccessLogMiddleware(s.log))
	}
	if len(s.config.CORSOrigins) > 0 {
		mws = append(mws, CORSMiddleware(s.config.CORSOrigins))
		SetUpgraderCheckOrigin(makeOriginChecker(s.config.CORSOrigins))
	}
	mws = append(mws, ContentTypeMiddleware)
	return Chain(s.router, mws...)
}

// Start starts listening in a goroutine and returns once the address is
// bound or binding has failed.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("server is already running")
	}

	s.httpServer = &http.Server{
		Addr:         s.Address(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
	s.running = true

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.Address())
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Errorf("server error: %v", err)
			errCh <- err
		}
		close(errCh)
	}()

	// Binding errors such as a port in use surface immediately.
	select {
	case err := <-errCh:
		s.running = false
		return rerrors.Wrap(err, rerrors.ErrNetworkBindFailed, rerrors.CategoryNetwork, "server failed to start").
			WithContext("address", s.Address())
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.log.Info("shutting down")
	s.running = false

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// IsRunning reports whether Start succeeded and Shutdown has not been called.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// makeOriginChecker validates websocket origins against the CORS list.
func makeOriginChecker(allowedOrigins []string) func(*http.Request) bool {
	allowed := make(map[string]bool)
	for _, origin := range allowedOrigins {
		if origin == "*" {
			return func(r *http.Request) bool { return true }
		}
		allowed[origin] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return allowed[origin]
	}
}
