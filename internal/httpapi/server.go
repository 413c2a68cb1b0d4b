package httpapi

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"fleet-workhours/internal/api"
	"fleet-workhours/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes the calculators and workshop workflows as a JSON API
type Server struct {
	api          api.BusinessAPI
	router       *chi.Mux
	loc          *time.Location
	requestLog   bool
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// Option configures a Server
type Option func(*Server)

// WithLocation sets the zone used for timestamps given without an offset
func WithLocation(loc *time.Location) Option {
	return func(s *Server) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithRequestLog enables per-request logging
func WithRequestLog(enabled bool) Option {
	return func(s *Server) {
		s.requestLog = enabled
	}
}

// WithTimeouts sets the server read and write timeouts
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = read
		s.writeTimeout = write
	}
}

// NewServer creates a Server over a BusinessAPI
func NewServer(businessAPI api.BusinessAPI, opts ...Option) *Server {
	s := &Server{
		api:          businessAPI,
		router:       chi.NewRouter(),
		loc:          time.Local,
		readTimeout:  10 * time.Second,
		writeTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	if s.requestLog {
		s.router.Use(middleware.Logger)
	}
	s.router.Use(middleware.Recoverer)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.Route("/v1", func(r chi.Router) {
		// Calculators
		r.Get("/elapsed", s.handleElapsed)
		r.Get("/completion", s.handleCompletion)
		r.Get("/window", s.handleWindow)

		// Work orders
		r.Get("/work-orders", s.handleListWorkOrders)
		r.Post("/work-orders", s.handleCreateWorkOrder)
		r.Get("/work-orders/overdue", s.handleListOverdue)
		r.Get("/work-orders/{key}", s.handleGetWorkOrder)
		r.Delete("/work-orders/{key}", s.handleDeleteWorkOrder)
		r.Put("/work-orders/{key}/estimate", s.handleReviseEstimate)
		r.Post("/work-orders/{key}/complete", s.handleCompleteWorkOrder)

		// Pauses
		r.Get("/work-orders/{key}/pauses", s.handleListPauses)
		r.Post("/work-orders/{key}/pauses", s.handleStartPause)
		r.Post("/work-orders/{key}/pauses/stop", s.handleStopPause)

		// Scheduling and reporting
		r.Get("/schedule/check", s.handleCheckSchedule)
		r.Get("/report", s.handleReport)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Debugf("http server listening on %s\n", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
