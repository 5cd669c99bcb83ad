// Package chi exposes the search API over HTTP using the chi router.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dealhive/dealsearch/internal/cache"
	"github.com/dealhive/dealsearch/internal/domain"
	"github.com/dealhive/dealsearch/internal/domain/search/query"
	"github.com/dealhive/dealsearch/internal/domain/search/result"
	"github.com/dealhive/dealsearch/internal/domain/suggestion"
	suggestuc "github.com/dealhive/dealsearch/internal/usecase/suggest"
)

// Searcher executes one composite search.
type Searcher interface {
	Search(ctx context.Context, params query.Params) (*result.SearchResult, error)
}

// Server holds the HTTP handlers for the search API.
type Server struct {
	search      Searcher
	suggestions *suggestuc.Service
	resultCache cache.ResultCache
	logger      *zap.Logger
}

// NewServer creates an HTTP API server. resultCache may be nil when
// caching is disabled.
func NewServer(
	search Searcher,
	suggestions *suggestuc.Service,
	resultCache cache.ResultCache,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:      search,
		suggestions: suggestions,
		resultCache: resultCache,
		logger:      logger,
	}
}

// Routes mounts all API endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/suggest", s.handleSuggest)
	r.Post("/api/v1/vocabulary/refresh", s.handleVocabularyRefresh)
	r.Delete("/api/v1/cache", s.handleCacheClear)
	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// handleSearch handles GET /api/v1/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	res, err := s.search.Search(r.Context(), paramsFromURL(r.URL.Query()))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type suggestResponse struct {
	Query       string                  `json:"query"`
	Suggestions []suggestion.Suggestion `json:"suggestions"`
}

// handleSuggest handles GET /api/v1/suggest. It runs suggestion
// generation alone, without searching.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("q")

	q, err := query.New(query.Params{"q": text})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	suggestions := s.suggestions.Generate(r.Context(), q, nil)
	if suggestions == nil {
		suggestions = []suggestion.Suggestion{}
	}
	writeJSON(w, http.StatusOK, suggestResponse{Query: q.Text(), Suggestions: suggestions})
}

// handleVocabularyRefresh handles POST /api/v1/vocabulary/refresh.
func (s *Server) handleVocabularyRefresh(w http.ResponseWriter, r *http.Request) {
	vocab := s.suggestions.Vocabulary()
	if err := vocab.Refresh(r.Context()); err != nil {
		s.logger.Error("vocabulary refresh failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "vocabulary refresh failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"terms":  vocab.Size(),
	})
}

// handleCacheClear handles DELETE /api/v1/cache.
func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if s.resultCache != nil {
		if err := s.resultCache.Clear(r.Context()); err != nil {
			s.logger.Error("cache clear failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "cache clear failed")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "validation_failed",
			"param":   ve.Param,
			"message": ve.Reason,
		})
		return
	}
	if errors.Is(err, domain.ErrValidation) {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}
