package admin

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// ServerConfig holds the listen address of the HTTP server.
type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

func NewServerConfig() ServerConfig {
	return ServerConfig{Port: 8080, ShutdownTimeout: 5 * time.Second}
}

func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, fmt.Sprint(c.Port))
}

// Server represents an HTTP server using Gorilla Mux
type Server struct {
	config    ServerConfig
	router    *mux.Router
	srv       *http.Server
	logger    *Logger
	endpoints []Endpoint
	bindOnce  sync.Once
}

func NewServer(config ServerConfig, logger *Logger) *Server {
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 5 * time.Second
	}
	router := mux.NewRouter()
	return &Server{
		config: config,
		router: router,
		srv: &http.Server{
			Addr:              config.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger.Named("Server"),
	}
}

// WithEndpoints registers endpoints with the server. Endpoints are bound in the
// given order, which matters when their paths overlap.
func (s *Server) WithEndpoints(endpoints ...Endpoint) *Server {
	s.endpoints = append(s.endpoints, endpoints...)
	return s
}

// WithMetrics exposes the metrics registry at /metrics.
func (s *Server) WithMetrics(metrics *Metrics) *Server {
	s.router.Handle("/metrics", metrics.Handler()).Methods("GET")
	s.logger.Info("Registered metrics endpoint at /metrics")
	return s
}

// Handler binds health check and endpoints and returns the router, without listening.
func (s *Server) Handler() http.Handler {
	s.bindOnce.Do(func() {
		s.registerHealthCheckEndpoint()

		for _, endpoint := range s.endpoints {
			methods := BindEndpoint(endpoint, s.router)
			sort.Slice(methods, func(i, j int) bool { return methods[i] < methods[j] })
			for _, method := range methods {
				s.logger.Info("Registered %s handler for endpoint %s", method, endpoint.Path())
			}
		}
	})
	return s.router
}

// Start binds the handlers and blocks serving until Shutdown.
func (s *Server) Start() error {
	s.Handler()

	s.logger.Info("Starting server on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting at most ShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()
	s.logger.Info("Stopping server on %s", s.srv.Addr)
	return s.srv.Shutdown(ctx)
}

func (s *Server) registerHealthCheckEndpoint() {
	s.router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "Status: UP")
	}).Methods("GET")
	s.logger.Info("Registered health check endpoint at /")
}
