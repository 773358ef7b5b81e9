// Package chi implements the HTTP API: match and rank endpoints, profile
// storage, health and metrics.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/matchdex/internal/domain"
	dommatch "github.com/kailas-cloud/matchdex/internal/domain/match"
	domprofile "github.com/kailas-cloud/matchdex/internal/domain/profile"
	logpkg "github.com/kailas-cloud/matchdex/internal/logger"
	"github.com/kailas-cloud/matchdex/internal/metrics"
	healthuc "github.com/kailas-cloud/matchdex/internal/usecase/health"
	matchuc "github.com/kailas-cloud/matchdex/internal/usecase/match"
	rankuc "github.com/kailas-cloud/matchdex/internal/usecase/rank"
	vectorizeuc "github.com/kailas-cloud/matchdex/internal/usecase/vectorize"
)

// DefaultMaxCandidates bounds the candidates list of one ranking request.
const DefaultMaxCandidates = 100

// profileStore is the consumer interface for stored profiles (ISP).
type profileStore interface {
	Save(ctx context.Context, id string, p domprofile.Profile) (bool, error)
	Get(ctx context.Context, id string) (domprofile.Profile, error)
	Delete(ctx context.Context, id string) error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the API handlers.
type Server struct {
	matcher       *matchuc.Service
	ranker        *rankuc.Service
	vectorizer    *vectorizeuc.Service
	profiles      profileStore
	health        *healthuc.Service
	weights       dommatch.Weights
	maxCandidates int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. weights is the default category
// weighting applied when a request carries none.
func NewServer(
	matcher *matchuc.Service,
	ranker *rankuc.Service,
	vectorizer *vectorizeuc.Service,
	profiles profileStore,
	health *healthuc.Service,
	weights dommatch.Weights,
	logger *zap.Logger,
) *Server {
	s := &Server{
		matcher:       matcher,
		ranker:        ranker,
		vectorizer:    vectorizer,
		profiles:      profiles,
		health:        health,
		weights:       weights,
		maxCandidates: DefaultMaxCandidates,
		logger:        logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrProfileNotFound, http.StatusNotFound, codeProfileNotFound),
		sentinelHandler(domain.ErrInvalidProfile, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrDimensionMismatch, http.StatusBadRequest, codeDimensionMismatch),
		sentinelHandler(domain.ErrInvalidWeights, http.StatusBadRequest, codeInvalidWeights),
		sentinelHandler(domain.ErrComputation, http.StatusUnprocessableEntity, codeComputationFailed),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProviderErr),
	}
	return s
}

// WithMaxCandidates bounds the candidates list of one ranking request.
func (s *Server) WithMaxCandidates(n int) *Server {
	if n > 0 {
		s.maxCandidates = n
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/match", s.Match)
	r.Post("/v1/rank", s.Rank)
	r.Put("/v1/profiles/{id}", s.UpsertProfile)
	r.Get("/v1/profiles/{id}", s.GetProfile)
	r.Delete("/v1/profiles/{id}", s.DeleteProfile)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Match handles POST /v1/match.
func (s *Server) Match(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())

	requirement, err := s.resolveProfile(ctx, req.Requirement)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}
	candidate, err := s.resolveProfile(ctx, req.Candidate)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	start := time.Now()
	res, err := s.matcher.Compute(requirement, candidate, s.requestWeights(req.Weights))
	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MatchesTotal.WithLabelValues("error").Inc()
		s.handleDomainError(r.Context(), w, err)
		return
	}
	metrics.MatchesTotal.WithLabelValues("ok").Inc()
	metrics.MatchScore.Observe(res.OverallScore)

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, matchResultToDTO(res))
}

// Rank handles POST /v1/rank.
func (s *Server) Rank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Candidates) == 0 || len(req.Candidates) > s.maxCandidates {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			fmt.Sprintf("candidates count must be between 1 and %d", s.maxCandidates))
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())

	requirement, err := s.resolveProfile(ctx, req.Requirement)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	candidates := make([]rankuc.Candidate, len(req.Candidates))
	for i, c := range req.Candidates {
		p, err := s.resolveProfile(ctx, c.profileInput)
		if err != nil {
			s.handleDomainError(r.Context(), w, fmt.Errorf("candidate %q: %w", c.ID, err))
			return
		}
		candidates[i] = rankuc.Candidate{ID: c.ID, Profile: p}
	}

	metrics.RankBatchSize.Observe(float64(len(candidates)))

	ranked := s.ranker.Rank(ctx, requirement, candidates, s.requestWeights(req.Weights))

	resp := rankResponse{Items: make([]rankedCandidateDTO, len(ranked))}
	for i, rc := range ranked {
		resp.Items[i] = rankedToDTO(rc)
		if rc.Err != nil {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, resp)
}

// UpsertProfile handles PUT /v1/profiles/{id}: vectorizes the raw profile
// and stores it under the given ID.
func (s *Server) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req profileInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ProfileID != "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"profile_id is not allowed when storing a profile")
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())

	p, err := s.vectorizer.Vectorize(ctx, req.toRaw())
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	created, err := s.profiles.Save(ctx, id, p)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", "/v1/profiles/"+id)
	}
	setEmbeddingHeaders(w, usage)
	writeJSON(w, status, profileToDTO(id, p, false))
}

// GetProfile handles GET /v1/profiles/{id}. Vectors are omitted unless
// include_vectors=true.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := s.profiles.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	includeVectors := r.URL.Query().Get("include_vectors") == "true"
	writeJSON(w, http.StatusOK, profileToDTO(id, p, includeVectors))
}

// DeleteProfile handles DELETE /v1/profiles/{id}.
func (s *Server) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.profiles.Delete(r.Context(), id); err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// resolveProfile turns a profile input into a vectorized Profile, either by
// loading a stored one or by embedding the inline texts.
func (s *Server) resolveProfile(ctx context.Context, in profileInput) (domprofile.Profile, error) {
	if in.ProfileID != "" {
		return s.profiles.Get(ctx, in.ProfileID)
	}
	return s.vectorizer.Vectorize(ctx, in.toRaw())
}

func (s *Server) requestWeights(in *weightsInput) dommatch.Weights {
	if in == nil {
		return s.weights
	}
	return dommatch.Weights{
		Skills:           in.Skills,
		Responsibilities: in.Responsibilities,
		JobTitle:         in.JobTitle,
		Experience:       in.Experience,
	}
}

func (s *Server) handleDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	log := logpkg.FromContextOr(ctx, s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func profileToDTO(id string, p domprofile.Profile, includeVectors bool) profileResponse {
	resp := profileResponse{
		ID:                id,
		Skills:            p.Skills(),
		Responsibilities:  p.Responsibilities(),
		JobTitle:          p.JobTitle(),
		YearsOfExperience: p.YearsOfExperience(),
		Dimension:         p.Dimension(),
	}
	if includeVectors {
		resp.SkillVectors = p.SkillVectors()
		resp.ResponsibilityVectors = p.ResponsibilityVectors()
		resp.JobTitleVector = p.JobTitleVector()
		resp.ExperienceVector = p.ExperienceVector()
	}
	return resp
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrProfileNotFound,
		domain.ErrInvalidProfile,
		domain.ErrDimensionMismatch,
		domain.ErrInvalidWeights,
		domain.ErrComputation,
		domain.ErrRateLimited,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func rankErrorCode(err error) errorCode {
	switch {
	case errors.Is(err, domain.ErrDimensionMismatch):
		return codeDimensionMismatch
	case errors.Is(err, domain.ErrInvalidWeights):
		return codeInvalidWeights
	case errors.Is(err, domain.ErrComputation):
		return codeComputationFailed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return codeCancelled
	default:
		return codeInternalError
	}
}
