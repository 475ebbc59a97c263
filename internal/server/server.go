// Package server provides the HTTP REST API: listing queries, task
// submission, synchronous resume scoring, and portal management.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/priya/jobscout/internal/ats"
	"github.com/priya/jobscout/internal/config"
	"github.com/priya/jobscout/internal/db"
	"github.com/priya/jobscout/internal/server/middleware"
	"github.com/priya/jobscout/internal/types"
)

// Store is the persistence surface the API needs.
type Store interface {
	ListListings(ctx context.Context, filters db.ListingFilters) ([]types.Listing, int, error)
	GetListing(ctx context.Context, id uuid.UUID) (*types.Listing, error)
	CreateSearchTask(ctx context.Context, userID *uuid.UUID, query string, filters types.SearchFilters) (uuid.UUID, error)
	CreateAtsTask(ctx context.Context, userID *uuid.UUID, payload types.AtsPayload) (uuid.UUID, error)
	ListTasks(ctx context.Context, limit int) ([]types.SearchTask, error)
	GetTask(ctx context.Context, id uuid.UUID) (*types.SearchTask, error)
	InsertResumeScore(ctx context.Context, score *types.ResumeScore) error
	ListResumeScores(ctx context.Context, userID uuid.UUID) ([]types.ResumeScore, error)
	UpsertJobPreference(ctx context.Context, pref *types.JobPreference) error
	ListPortals(ctx context.Context) ([]types.PortalEntry, error)
	UpsertPortal(ctx context.Context, p *types.PortalEntry) error
}

// Config holds server configuration.
type Config struct {
	Port int
	JWT  *config.JWTConfig
}

// Server is the HTTP API.
type Server struct {
	httpServer  *http.Server
	store       Store
	analyzer    ats.Analyzer
	validate    *validator.Validate
	jwtService  *JWTService
	fetchResume func(ctx context.Context, url string) (string, error)
	log         *zap.Logger
}

// New builds the server and its routes. Mutating routes sit behind bearer
// authentication; read routes are open.
func New(store Store, cfg Config, log *zap.Logger) *Server {
	s := &Server{
		store:       store,
		validate:    validator.New(),
		jwtService:  NewJWTService(cfg.JWT),
		fetchResume: ats.FetchResumeText,
		log:         log,
	}

	auth := middleware.Auth(s.jwtService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /listings", s.handleListListings)
	mux.HandleFunc("GET /listings/{id}", s.handleGetListing)

	mux.HandleFunc("GET /tasks", s.handleListTasks)
	mux.HandleFunc("GET /tasks/{id}", s.handleGetTask)

	mux.Handle("POST /discover", auth(http.HandlerFunc(s.handleDiscover)))
	mux.Handle("POST /ats/scan", auth(http.HandlerFunc(s.handleAtsScan)))
	mux.Handle("GET /users/{id}/scores", auth(http.HandlerFunc(s.handleListScores)))
	mux.Handle("PUT /users/{id}/preferences", auth(http.HandlerFunc(s.handleUpsertPreferences)))

	mux.HandleFunc("GET /portals", s.handleListPortals)
	mux.Handle("PUT /portals/{company}", auth(http.HandlerFunc(s.handleUpsertPortal)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start listens until SIGINT/SIGTERM, then drains in-flight requests.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// jsonResponse writes a JSON response with the given status.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
