// Package handler exposes the onboarding workflow over HTTP: category
// selection, self-declaration, document upload, checklist reads, and
// submission.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hireflow/internal/docstore"
	"hireflow/internal/onboarding"
	"hireflow/internal/onboarding/checklist"
	"hireflow/internal/platform/metrics"
	"hireflow/internal/platform/middleware"
	"hireflow/pkg/platform/httputil"
	dErrors "hireflow/pkg/domain-errors"
)

// Service defines the onboarding operations the handler needs.
type Service interface {
	SelectCategory(ctx context.Context, candidateID string, category checklist.Category, flags checklist.Flags) error
	RecordSelfDeclaration(ctx context.Context, candidateID string, fields checklist.SelfDeclaration) error
	RecordUpload(ctx context.Context, candidateID string, req onboarding.UploadRequest) error
	Checklist(ctx context.Context, candidateID string) (checklist.Result, onboarding.State, error)
	Documents(ctx context.Context, candidateID string) ([]onboarding.Upload, error)
	Submit(ctx context.Context, candidateID string, verified bool) ([]string, error)
}

// Documents stores uploaded files; the handler records the resulting path.
type Documents interface {
	Save(candidateID, category, filename, contentType string, r io.Reader) (string, error)
}

// Handler handles onboarding endpoints.
type Handler struct {
	logger    *slog.Logger
	service   Service
	documents Documents
	metrics   *metrics.Metrics
}

func New(service Service, documents Documents, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		documents: documents,
		metrics:   m,
	}
}

// Register mounts the onboarding routes with the shared middleware chain.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(router chi.Router) {
		router.Use(middleware.Recovery(h.logger))
		router.Use(middleware.RequestID)
		router.Use(middleware.Logger(h.logger))
		router.Use(middleware.Timeout(30 * time.Second))
		router.Use(middleware.ContentTypeJSON)
		router.Use(middleware.Latency(h.metrics))
		router.Post("/api/candidates/{candidateID}/onboarding/category", h.handleCategory)
		router.Post("/api/candidates/{candidateID}/onboarding/self-declaration", h.handleSelfDeclaration)
		router.Post("/api/candidates/{candidateID}/onboarding/upload", h.handleUpload)
		router.Get("/api/candidates/{candidateID}/onboarding/checklist", h.handleChecklist)
		router.Post("/api/candidates/{candidateID}/onboarding/submit", h.handleSubmit)
		router.Get("/api/candidates/{candidateID}/documents", h.handleDocuments)
	})
}

type categoryRequest struct {
	Category    string `json:"category"`
	HasPG       bool   `json:"hasPg"`
	Experienced bool   `json:"experienced"`
}

func (h *Handler) handleCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	candidateID := chi.URLParam(r, "candidateID")

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	flags := checklist.Flags{HasPG: req.HasPG, Experienced: req.Experienced}
	if err := h.service.SelectCategory(ctx, candidateID, checklist.Category(req.Category), flags); err != nil {
		h.writeServiceError(ctx, w, candidateID, "select category", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSelfDeclaration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	candidateID := chi.URLParam(r, "candidateID")

	var fields checklist.SelfDeclaration
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.service.RecordSelfDeclaration(ctx, candidateID, fields); err != nil {
		h.writeServiceError(ctx, w, candidateID, "record self-declaration", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleUpload accepts a multipart form with a "file" part and doc_key,
// category, and required fields. The file lands in the document store first;
// only then is the ledger event appended.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	candidateID := chi.URLParam(r, "candidateID")

	if err := r.ParseMultipartForm(docstore.MaxFileSize); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.Validation(map[string]string{"file": "File is required."}))
		return
	}
	defer file.Close()

	docKey := r.FormValue("doc_key")
	category := r.FormValue("category")

	storedPath, err := h.documents.Save(candidateID, category, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.writeServiceError(ctx, w, candidateID, "store document", err)
		return
	}

	uploadReq := onboarding.UploadRequest{
		DocKey:           docKey,
		Category:         category,
		OriginalFilename: header.Filename,
		StoredPath:       storedPath,
		Required:         r.FormValue("required") == "true",
	}
	if err := h.service.RecordUpload(ctx, candidateID, uploadReq); err != nil {
		h.writeServiceError(ctx, w, candidateID, "record upload", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]string{
		"doc_key":     docKey,
		"stored_path": storedPath,
	})
}

type checklistResponse struct {
	Items     []checklist.Item `json:"items"`
	Missing   []string         `json:"missing"`
	Submitted bool             `json:"submitted"`
}

func (h *Handler) handleChecklist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	candidateID := chi.URLParam(r, "candidateID")

	result, state, err := h.service.Checklist(ctx, candidateID)
	if err != nil {
		h.writeServiceError(ctx, w, candidateID, "evaluate checklist", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, checklistResponse{
		Items:     result.Items,
		Missing:   result.Missing,
		Submitted: state.Submitted,
	})
}

func (h *Handler) handleDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	candidateID := chi.URLParam(r, "candidateID")

	uploads, err := h.service.Documents(ctx, candidateID)
	if err != nil {
		h.writeServiceError(ctx, w, candidateID, "list documents", err)
		return
	}
	if uploads == nil {
		uploads = []onboarding.Upload{}
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"documents": uploads})
}

type submitRequest struct {
	Verified bool `json:"verified"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	candidateID := chi.URLParam(r, "candidateID")

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	missing, err := h.service.Submit(ctx, candidateID, req.Verified)
	if err != nil {
		if len(missing) > 0 {
			httputil.WriteIncomplete(w, missing)
			return
		}
		h.writeServiceError(ctx, w, candidateID, "submit onboarding", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"candidate_id": candidateID,
		"final_status": "COMPLETED",
	})
}

// writeServiceError logs unexpected failures and maps every error through the
// shared envelope writer. Expected domain outcomes stay at warn-free levels.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, candidateID, op string, err error) {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeUnavailable, dErrors.CodeInternal:
		h.logger.ErrorContext(ctx, "onboarding operation failed",
			"request_id", middleware.GetRequestID(ctx),
			"candidate_id", candidateID,
			"op", op,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
