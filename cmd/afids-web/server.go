package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/afids/afids-go/cmd/afids-web/api"
	"github.com/afids/afids-go/internal/store"
	"github.com/afids/afids-go/pkg/fcsv"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Port                 int
	DBPath               string
	Version              string
	MaxUploadBytes       int64
	AllowDuplicateLabels bool
}

// Server is the HTTP server for the AFIDs validation service.
type Server struct {
	config  ServerConfig
	logger  *zap.Logger
	mux     *http.ServeMux
	server  *http.Server
	store   *store.Store
	setsAPI *api.SetsAPI
}

// NewServer creates a new server with the given configuration.
func NewServer(cfg ServerConfig, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	parser := fcsv.NewParser()
	parser.AllowDuplicateLabels = cfg.AllowDuplicateLabels

	s := &Server{
		config:  cfg,
		logger:  logger,
		mux:     http.NewServeMux(),
		store:   st,
		setsAPI: api.NewSetsAPI(st, parser, cfg.MaxUploadBytes, logger),
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.logRequests(s.mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/api/v1/health", s.handleHealth)
	s.mux.HandleFunc("/api/v1/info", s.handleInfo)

	s.mux.HandleFunc("/api/v1/validate", s.setsAPI.HandleValidate)
	s.mux.HandleFunc("/api/v1/sets", s.setsAPI.HandleSets)
	s.mux.HandleFunc("/api/v1/sets/", s.setsAPI.HandleSetByID)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests logs method, path, status and duration of every request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	version := s.config.Version
	if version == "" {
		version = "dev"
	}

	resp := map[string]string{
		"status":  "ok",
		"version": version,
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleInfo returns server information.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	setCount, err := s.store.Count()
	if err != nil {
		s.logger.Error("failed to count sets", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	resp := map[string]int{
		"set_count": setCount,
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListenAndServe starts the HTTP server. It returns nil after Shutdown.
func (s *Server) ListenAndServe() error {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for active ones to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Close shuts down the server and closes the store.
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
