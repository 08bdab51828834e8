package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inspektor-hq/inspektor/internal/middleware"
	"github.com/inspektor-hq/inspektor/internal/models"
	"github.com/inspektor-hq/inspektor/internal/repository"
	"github.com/inspektor-hq/inspektor/internal/service"
	"github.com/inspektor-hq/inspektor/internal/validation"
)

// CaseService defines the case operations required by the HTTP handlers.
type CaseService interface {
	// CreateCase validates and atomically persists a raw case submission.
	CreateCase(ctx context.Context, authorUserID int64, payload map[string]any) (*service.CreateCaseResult, error)
	// GetCreatorCase loads a case for its author; foreign cases read as
	// missing.
	GetCreatorCase(ctx context.Context, caseID, authorUserID int64) (*models.Case, error)
	// GetLoggedHomeOverview assembles the logged home page data.
	GetLoggedHomeOverview(ctx context.Context, userID int64) (*service.HomeOverviewResult, error)
}

// CasesHandler handles HTTP requests for case creation and the case-centric
// read views.
type CasesHandler struct {
	CaseService CaseService
}

// Create handles POST /api/cases.
// The full submission (case, people, documents, timeline, progress) is
// validated and persisted in one transaction; any rule violation yields a
// 400 with the complete field error map and nothing persisted.
func (h *CasesHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "request body is not valid")
		return
	}

	result, err := h.CaseService.CreateCase(r.Context(), userID, payload)
	if err != nil {
		var valErr *validation.Error
		if errors.As(err, &valErr) {
			writeFieldErrors(w, http.StatusBadRequest, valErr.Error(), valErr.Fields)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to save case")
		return
	}

	writeData(w, http.StatusCreated, "case saved successfully", result)
}

// CreatorCase handles GET /api/cases/{caseID}/creator.
func (h *CasesHandler) CreatorCase(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	caseID, err := strconv.ParseInt(chi.URLParam(r, "caseID"), 10, 64)
	if err != nil || caseID <= 0 {
		writeError(w, http.StatusNotFound, "case not found")
		return
	}

	caseRow, err := h.CaseService.GetCreatorCase(r.Context(), caseID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCaseNotFound) {
			writeError(w, http.StatusNotFound, "case not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load case")
		return
	}

	writeData(w, http.StatusOK, "case loaded successfully", map[string]any{
		"case": caseRow,
	})
}

// HomeOverview handles GET /api/cases/home.
func (h *CasesHandler) HomeOverview(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	result, err := h.CaseService.GetLoggedHomeOverview(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load home overview")
		return
	}

	writeData(w, http.StatusOK, "home overview loaded successfully", result)
}
