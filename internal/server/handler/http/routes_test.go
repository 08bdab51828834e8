package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inspektor-hq/inspektor/internal/models"
	"github.com/inspektor-hq/inspektor/internal/service"
	"github.com/inspektor-hq/inspektor/internal/token"
)

func newTestRouter(t *testing.T) (http.Handler, *token.Issuer) {
	t.Helper()

	issuer, err := token.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	authHandler := &AuthHandler{AuthService: &mockAuthService{}}
	casesHandler := &CasesHandler{CaseService: &mockCaseService{
		CreateCaseFunc: func(ctx context.Context, authorUserID int64, payload map[string]any) (*service.CreateCaseResult, error) {
			return &service.CreateCaseResult{Case: &models.Case{ID: 10, AuthorUserID: authorUserID}}, nil
		},
		GetLoggedHomeOverviewFunc: func(ctx context.Context, userID int64) (*service.HomeOverviewResult, error) {
			return &service.HomeOverviewResult{}, nil
		},
	}}

	return NewRouter(authHandler, casesHandler, issuer, zap.NewNop()), issuer
}

func TestRouter_HealthIsPublic(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "inspektor backend is up")
}

func TestRouter_CasesRequireAuth(t *testing.T) {
	router, issuer := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/cases", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	signed, err := issuer.Issue(&models.User{ID: 7, Email: "ana@example.com"})
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPost, "/api/cases", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signed)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_RejectsNonJSONBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("email=a"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
