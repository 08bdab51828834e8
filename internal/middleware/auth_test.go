package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inspektor-hq/inspektor/internal/models"
	"github.com/inspektor-hq/inspektor/internal/token"
)

func newTestIssuer(t *testing.T) *token.Issuer {
	issuer, err := token.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	return issuer
}

func TestRequireAuth(t *testing.T) {
	issuer := newTestIssuer(t)
	signed, err := issuer.Issue(&models.User{ID: 7, Email: "ana@example.com"})
	require.NoError(t, err)

	foreign, err := token.NewIssuer("another-secret", time.Hour)
	require.NoError(t, err)
	forged, err := foreign.Issue(&models.User{ID: 7, Email: "ana@example.com"})
	require.NoError(t, err)

	tests := []struct {
		name           string
		authorization  string
		wantStatus     int
		wantUserID     int64
		wantNextCalled bool
		wantMessage    string
	}{
		{
			name:           "valid bearer token",
			authorization:  "Bearer " + signed,
			wantStatus:     http.StatusOK,
			wantUserID:     7,
			wantNextCalled: true,
		},
		{
			name:           "bearer keyword is case insensitive",
			authorization:  "bearer " + signed,
			wantStatus:     http.StatusOK,
			wantUserID:     7,
			wantNextCalled: true,
		},
		{
			name:          "missing header",
			authorization: "",
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   "authorization token is missing",
		},
		{
			name:          "wrong scheme",
			authorization: "Basic " + signed,
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   "authorization token is missing",
		},
		{
			name:          "token without scheme",
			authorization: signed,
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   "authorization token is missing",
		},
		{
			name:          "token signed with another secret",
			authorization: "Bearer " + forged,
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   "token is not valid or has expired",
		},
		{
			name:          "garbage token",
			authorization: "Bearer not.a.token",
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   "token is not valid or has expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var gotUserID int64
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID = GetUserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/cases/home", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rec := httptest.NewRecorder()

			RequireAuth(issuer)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			if tt.wantNextCalled {
				assert.Equal(t, tt.wantUserID, gotUserID)
			} else {
				assert.JSONEq(t, `{"ok": false, "message": "`+tt.wantMessage+`"}`, rec.Body.String())
			}
		})
	}
}

func TestGetUserIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, int64(0), GetUserIDFromContext(req.Context()))
}

func TestWithUserID_RoundTrip(t *testing.T) {
	ctx := WithUserID(httptest.NewRequest(http.MethodGet, "/", nil).Context(), 42)
	assert.Equal(t, int64(42), GetUserIDFromContext(ctx))
}
