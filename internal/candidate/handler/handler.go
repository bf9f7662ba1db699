// Package handler exposes the candidate registry over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hireflow/internal/candidate"
	"hireflow/internal/onboarding"
	"hireflow/internal/onboarding/checklist"
	"hireflow/internal/platform/metrics"
	"hireflow/internal/platform/middleware"
	"hireflow/pkg/platform/httputil"
	dErrors "hireflow/pkg/domain-errors"
)

// Service defines the candidate operations the handler needs.
type Service interface {
	Create(ctx context.Context, req candidate.CreateRequest) (string, error)
	Get(ctx context.Context, candidateID string) (candidate.Snapshot, error)
	List(ctx context.Context) ([]candidate.Snapshot, error)
}

// OnboardingReader supplies the onboarding view embedded in the detail
// response. It may be nil when onboarding is not wired.
type OnboardingReader interface {
	Checklist(ctx context.Context, candidateID string) (checklist.Result, onboarding.State, error)
}

// Handler handles candidate endpoints.
type Handler struct {
	logger     *slog.Logger
	candidates Service
	onboarding OnboardingReader
	metrics    *metrics.Metrics
}

func New(candidates Service, onboarding OnboardingReader, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:     logger,
		candidates: candidates,
		onboarding: onboarding,
		metrics:    m,
	}
}

// Register mounts the candidate routes with the shared middleware chain.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(router chi.Router) {
		router.Use(middleware.Recovery(h.logger))
		router.Use(middleware.RequestID)
		router.Use(middleware.Logger(h.logger))
		router.Use(middleware.Timeout(30 * time.Second))
		router.Use(middleware.ContentTypeJSON)
		router.Use(middleware.Latency(h.metrics))
		router.Post("/api/candidates", h.handleCreate)
		router.Get("/api/candidates", h.handleList)
		router.Get("/api/candidates/{candidateID}", h.handleGet)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req candidate.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid candidate create request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	candidateID, err := h.candidates.Create(ctx, req)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) || dErrors.HasCode(err, dErrors.CodeConflict) {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create candidate",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"candidate_id": candidateID})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snapshots, err := h.candidates.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list candidates",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"candidates": snapshots})
}

// detailResponse joins the candidate snapshot with its onboarding view.
type detailResponse struct {
	Candidate  candidate.Snapshot `json:"candidate"`
	Onboarding *onboarding.State  `json:"onboarding,omitempty"`
	Checklist  *checklist.Result  `json:"checklist,omitempty"`
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	candidateID := chi.URLParam(r, "candidateID")

	snap, err := h.candidates.Get(ctx, candidateID)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "failed to load candidate",
				"request_id", middleware.GetRequestID(ctx),
				"candidate_id", candidateID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	resp := detailResponse{Candidate: snap}
	if h.onboarding != nil {
		result, state, err := h.onboarding.Checklist(ctx, candidateID)
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to load onboarding state",
				"request_id", middleware.GetRequestID(ctx),
				"candidate_id", candidateID,
				"error", err.Error(),
			)
			httputil.WriteError(w, err)
			return
		}
		resp.Onboarding = &state
		resp.Checklist = &result
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}
