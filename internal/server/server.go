// Package server provides the HTTP REST API for the TrainTrack
// recommendation service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/traintrack/traintrack-api/internal/catalog"
	"github.com/traintrack/traintrack-api/internal/config"
	"github.com/traintrack/traintrack-api/internal/engine"
	"github.com/traintrack/traintrack-api/internal/history"
	"github.com/traintrack/traintrack-api/internal/observability"
	"github.com/traintrack/traintrack-api/internal/server/middleware"
	"github.com/traintrack/traintrack-api/internal/types"
)

// CatalogStore is the read accessor the engine needs from the catalog
// collaborator.
type CatalogStore interface {
	FetchRequirements(ctx context.Context) ([]engine.RequirementRow, error)
	FetchAttributeNames(ctx context.Context, ids []int64) ([]catalog.AttributeName, error)
	ListMajors(ctx context.Context) ([]types.Major, error)
	ListSubjectCategories(ctx context.Context) ([]types.SubjectCategory, error)
	ListSubjectsByCategories(ctx context.Context, categoryIDs []int64) ([]types.AttributeGroup, error)
	ListTechnicalSkills(ctx context.Context, categoryIDs []int64) ([]types.AttributeGroup, error)
	ListNonTechnicalSkills(ctx context.Context) ([]types.AttributeRef, error)
	ListSubjectsByIDs(ctx context.Context, ids []int64) ([]types.AttributeGroup, error)
	ListTechnicalSkillsByIDs(ctx context.Context, ids []int64) ([]types.AttributeGroup, error)
	GetMajorName(ctx context.Context, majorID int64) (string, error)
}

// HistoryStore persists scoring runs per user.
type HistoryStore interface {
	SaveResult(ctx context.Context, userID string, submission, result any) error
	ListResults(ctx context.Context, userID string) ([]history.Result, error)
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	catalog    CatalogStore
	history    HistoryStore
	jwtService *JWTService
	logger     *zap.Logger
	metrics    *observability.Metrics

	includeNoMatch bool
}

// New creates a new server instance.
func New(cfg *config.Config, store CatalogStore, hist HistoryStore, log *zap.Logger) *Server {
	s := &Server{
		catalog:        store,
		history:        hist,
		jwtService:     NewJWTService(cfg.Auth),
		logger:         log,
		metrics:        observability.NewMetrics(),
		includeNoMatch: cfg.Engine.IncludeNoMatch,
	}

	mux := http.NewServeMux()

	// Scoring engine endpoints
	mux.HandleFunc("POST /recommendations", s.handleRecommendations)
	mux.HandleFunc("POST /recommendations/gap-analysis", s.handleGapAnalysis)

	// Wizard catalog endpoints
	mux.HandleFunc("GET /wizard/majors", s.handleListMajors)
	mux.HandleFunc("GET /wizard/subject-categories", s.handleListSubjectCategories)
	mux.HandleFunc("GET /wizard/subjects", s.handleListSubjects)
	mux.HandleFunc("GET /wizard/technical-skills", s.handleListTechnicalSkills)
	mux.HandleFunc("GET /wizard/non-technical-skills", s.handleListNonTechnicalSkills)
	mux.HandleFunc("POST /wizard/preferences", s.handleSavePreferences)
	mux.HandleFunc("POST /wizard/summary", s.handleSummary)

	// Identity and history endpoints
	mux.HandleFunc("GET /guest", s.handleGuest)
	requireAuth := middleware.Auth(s.jwtService.AsTokenValidator())
	mux.Handle("GET /results/{user_id}", requireAuth(http.HandlerFunc(s.handleListResults)))

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.withMetrics(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds structured request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withMetrics records request counts and latency.
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = r.URL.Path
		}
		s.metrics.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		s.metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// handleHealth is a basic health check.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
