package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inspektor-hq/inspektor/internal/middleware"
	"github.com/inspektor-hq/inspektor/internal/models"
	"github.com/inspektor-hq/inspektor/internal/repository"
	"github.com/inspektor-hq/inspektor/internal/service"
	"github.com/inspektor-hq/inspektor/internal/validation"
)

type mockCaseService struct {
	CreateCaseFunc            func(ctx context.Context, authorUserID int64, payload map[string]any) (*service.CreateCaseResult, error)
	GetCreatorCaseFunc        func(ctx context.Context, caseID, authorUserID int64) (*models.Case, error)
	GetLoggedHomeOverviewFunc func(ctx context.Context, userID int64) (*service.HomeOverviewResult, error)
}

func (m *mockCaseService) CreateCase(ctx context.Context, authorUserID int64, payload map[string]any) (*service.CreateCaseResult, error) {
	return m.CreateCaseFunc(ctx, authorUserID, payload)
}

func (m *mockCaseService) GetCreatorCase(ctx context.Context, caseID, authorUserID int64) (*models.Case, error) {
	return m.GetCreatorCaseFunc(ctx, caseID, authorUserID)
}

func (m *mockCaseService) GetLoggedHomeOverview(ctx context.Context, userID int64) (*service.HomeOverviewResult, error) {
	return m.GetLoggedHomeOverviewFunc(ctx, userID)
}

func authenticatedRequest(method, path, body string, userID int64) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestCreateCase(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		create     func(ctx context.Context, authorUserID int64, payload map[string]any) (*service.CreateCaseResult, error)
		wantStatus int
		wantBody   []string
		notInBody  []string
	}{
		{
			name: "successful submission",
			body: `{"title":"Nestanak dokaza"}`,
			create: func(ctx context.Context, authorUserID int64, payload map[string]any) (*service.CreateCaseResult, error) {
				assert.Equal(t, int64(7), authorUserID)
				return &service.CreateCaseResult{
					Case: &models.Case{ID: 10, Title: "Nestanak dokaza"},
					Totals: service.CreateCaseTotals{
						People: 2, Documents: 1, TimelineItems: 2, ProgressEntries: 1,
					},
				}, nil
			},
			wantStatus: http.StatusCreated,
			wantBody:   []string{`"ok":true`, `"totals"`, `"people":2`, `"timelineItems":2`},
		},
		{
			name: "validation failure returns the full error map",
			body: `{"title":"x"}`,
			create: func(ctx context.Context, authorUserID int64, payload map[string]any) (*service.CreateCaseResult, error) {
				return nil, validation.ErrorFor(validation.FieldErrors{
					"title":                  "title must be at least 3 characters long",
					"people.0.fullName":      "full name must be at least 2 characters long",
					"timeline.1.unlockOrder": "unlock order must be unique within the case",
				})
			},
			wantStatus: http.StatusBadRequest,
			wantBody: []string{
				`"ok":false`,
				"submitted data is not valid",
				`"people.0.fullName"`,
				`"timeline.1.unlockOrder"`,
			},
		},
		{
			name: "persistence failure stays opaque",
			body: `{"title":"Nestanak dokaza"}`,
			create: func(ctx context.Context, authorUserID int64, payload map[string]any) (*service.CreateCaseResult, error) {
				return nil, errors.New("insert case: pq: connection refused")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   []string{"failed to save case"},
			notInBody:  []string{"pq:", "insert case"},
		},
		{
			name:       "malformed body",
			body:       `{"title":`,
			create:     nil,
			wantStatus: http.StatusBadRequest,
			wantBody:   []string{"request body is not valid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &CasesHandler{CaseService: &mockCaseService{CreateCaseFunc: tt.create}}

			req := authenticatedRequest(http.MethodPost, "/api/cases", tt.body, 7)
			rec := httptest.NewRecorder()
			handler.Create(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := strings.ReplaceAll(rec.Body.String(), " ", "")
			for _, want := range tt.wantBody {
				assert.Contains(t, body, strings.ReplaceAll(want, " ", ""))
			}
			for _, unwanted := range tt.notInBody {
				assert.NotContains(t, rec.Body.String(), unwanted)
			}
		})
	}
}

func TestCreatorCase(t *testing.T) {
	tests := []struct {
		name       string
		caseID     string
		find       func(ctx context.Context, caseID, authorUserID int64) (*models.Case, error)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "own case is returned",
			caseID: "3",
			find: func(ctx context.Context, caseID, authorUserID int64) (*models.Case, error) {
				assert.Equal(t, int64(3), caseID)
				assert.Equal(t, int64(7), authorUserID)
				return &models.Case{ID: 3, AuthorUserID: 7, Title: "Nestanak dokaza"}, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   `"Nestanak dokaza"`,
		},
		{
			name:   "foreign case reads as missing",
			caseID: "3",
			find: func(ctx context.Context, caseID, authorUserID int64) (*models.Case, error) {
				return nil, repository.ErrCaseNotFound
			},
			wantStatus: http.StatusNotFound,
			wantBody:   "case not found",
		},
		{
			name:       "non-numeric id",
			caseID:     "abc",
			find:       nil,
			wantStatus: http.StatusNotFound,
			wantBody:   "case not found",
		},
		{
			name:       "non-positive id",
			caseID:     "0",
			find:       nil,
			wantStatus: http.StatusNotFound,
			wantBody:   "case not found",
		},
		{
			name:   "storage failure",
			caseID: "3",
			find: func(ctx context.Context, caseID, authorUserID int64) (*models.Case, error) {
				return nil, errors.New("pq: connection refused")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "failed to load case",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &CasesHandler{CaseService: &mockCaseService{GetCreatorCaseFunc: tt.find}}

			router := chi.NewRouter()
			router.Get("/api/cases/{caseID}/creator", handler.CreatorCase)

			req := authenticatedRequest(http.MethodGet, "/api/cases/"+tt.caseID+"/creator", "", 7)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHomeOverview(t *testing.T) {
	avg := 4.5
	handler := &CasesHandler{CaseService: &mockCaseService{
		GetLoggedHomeOverviewFunc: func(ctx context.Context, userID int64) (*service.HomeOverviewResult, error) {
			require.Equal(t, int64(7), userID)
			return &service.HomeOverviewResult{
				Summary: models.HomeStats{ActiveCount: 2, ResolvedCount: 1, CreatedCount: 3, AverageResolvedRating: &avg},
				Sections: service.HomeSections{
					ActiveCases:         []models.HomeActiveCase{{ID: 3, Title: "Nestali svjedok", ProgressPercent: 40}},
					ResolvedCases:       []models.HomeResolvedCase{},
					TopRatedPublicCases: []models.HomeTopRatedCase{},
					CreatedCases:        []models.HomeCreatedCase{},
				},
			}, nil
		},
	}}

	req := authenticatedRequest(http.MethodGet, "/api/cases/home", "", 7)
	rec := httptest.NewRecorder()
	handler.HomeOverview(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := strings.ReplaceAll(rec.Body.String(), " ", "")
	assert.Contains(t, body, `"activeCases"`)
	assert.Contains(t, body, `"averageResolvedRating":4.5`)
	// Empty sections serialize as arrays, never null.
	assert.Contains(t, body, `"resolvedCases":[]`)
}

func TestHomeOverview_Failure(t *testing.T) {
	handler := &CasesHandler{CaseService: &mockCaseService{
		GetLoggedHomeOverviewFunc: func(ctx context.Context, userID int64) (*service.HomeOverviewResult, error) {
			return nil, errors.New("pq: connection refused")
		},
	}}

	req := authenticatedRequest(http.MethodGet, "/api/cases/home", "", 7)
	rec := httptest.NewRecorder()
	handler.HomeOverview(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to load home overview")
}
