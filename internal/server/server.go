package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/store"
)

// MentionWorker runs citation verification for one response's citations;
// satisfied by worker.MentionChecker
type MentionWorker interface {
	Process(ctx context.Context, citations []model.Citation, catalog model.Catalog) []model.Citation
}

// Server exposes the worker trigger endpoint. Writing back the enriched
// citation list is its only side effect.
type Server struct {
	store        store.Store
	worker       MentionWorker
	bearerSecret string
	logger       *zap.Logger
}

// New creates a server
func New(st store.Store, w MentionWorker, bearerSecret string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		store:        st,
		worker:       w,
		bearerSecret: bearerSecret,
		logger:       logger,
	}
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.requireBearer)
		r.Post("/v1/worker/citation-mentions", s.handleCitationMentions)
	})

	return r
}

// requestLogger logs one line per request
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// requireBearer rejects requests without the shared bearer secret
func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.bearerSecret == "" {
			writeError(w, http.StatusServiceUnavailable, "worker endpoint disabled: no bearer secret configured")
			return
		}
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.bearerSecret)) != 1 {
			writeError(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type citationMentionsRequest struct {
	ResponseID string `json:"response_id"`
}

type citationMentionsResponse struct {
	ResponseID string           `json:"response_id"`
	Processed  int              `json:"processed"` // Citations that now have a verdict
	Citations  []model.Citation `json:"citations"`
}

// handleCitationMentions loads one stored response plus its org's catalog,
// runs the mention worker, and writes back the updated citation list
func (s *Server) handleCitationMentions(w http.ResponseWriter, r *http.Request) {
	var req citationMentionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ResponseID == "" {
		writeError(w, http.StatusBadRequest, "body must be JSON with a response_id")
		return
	}

	resp, err := s.store.GetResponse(r.Context(), req.ResponseID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "response not found")
		return
	}
	if err != nil {
		s.logger.Error("load response", zap.String("response_id", req.ResponseID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "load response failed")
		return
	}

	catalog, err := s.store.GetCatalog(r.Context(), resp.OrgID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "brand catalog not found for org")
		return
	}
	if err != nil {
		s.logger.Error("load catalog", zap.String("org_id", resp.OrgID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "load catalog failed")
		return
	}

	enriched := s.worker.Process(r.Context(), resp.Citations, catalog)

	if err := s.store.UpdateCitations(r.Context(), req.ResponseID, enriched); err != nil {
		s.logger.Error("update citations", zap.String("response_id", req.ResponseID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "write back failed")
		return
	}

	processed := 0
	for _, c := range enriched {
		if c.BrandMention != model.VerdictUnknown {
			processed++
		}
	}

	writeJSON(w, http.StatusOK, citationMentionsResponse{
		ResponseID: req.ResponseID,
		Processed:  processed,
		Citations:  enriched,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
