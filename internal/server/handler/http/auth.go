// Package http provides the HTTP handlers and routing for the inspektor API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/inspektor-hq/inspektor/internal/service"
	"github.com/inspektor-hq/inspektor/internal/validation"

	"github.com/inspektor-hq/inspektor/internal/models"
)

// AuthService defines the authentication operations required by the HTTP
// handlers.
type AuthService interface {
	// Register creates a new account from a raw registration payload.
	Register(ctx context.Context, payload map[string]any) (*models.User, error)
	// Login verifies credentials and returns a signed token with the user.
	Login(ctx context.Context, payload map[string]any) (*service.LoginResult, error)
}

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// decodePayload reads the request body as a loose JSON object. An empty body
// decodes to an empty payload; malformed JSON is an error.
func decodePayload(r *http.Request) (map[string]any, error) {
	payload := map[string]any{}
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return payload, nil
}

// publicUser strips the credential hash from a user for API responses.
func publicUser(user *models.User) map[string]any {
	return map[string]any{
		"id":        user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"createdAt": user.CreatedAt,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "request body is not valid")
		return
	}

	user, err := h.AuthService.Register(r.Context(), payload)
	if err != nil {
		var valErr *validation.Error
		switch {
		case errors.As(err, &valErr):
			writeFieldErrors(w, http.StatusBadRequest, valErr.Error(), valErr.Fields)
		case errors.Is(err, service.ErrEmailTaken):
			writeFieldErrors(w, http.StatusConflict, service.ErrEmailTaken.Error(), validation.FieldErrors{
				"email": service.ErrEmailTaken.Error(),
			})
		default:
			writeError(w, http.StatusInternalServerError, "failed to create account")
		}
		return
	}

	writeData(w, http.StatusCreated, "account created successfully", map[string]any{
		"user": publicUser(user),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "request body is not valid")
		return
	}

	result, err := h.AuthService.Login(r.Context(), payload)
	if err != nil {
		var valErr *validation.Error
		switch {
		case errors.As(err, &valErr):
			writeFieldErrors(w, http.StatusBadRequest, valErr.Error(), valErr.Fields)
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			writeError(w, http.StatusInternalServerError, "failed to log in")
		}
		return
	}

	writeData(w, http.StatusOK, "login successful", map[string]any{
		"token": result.Token,
		"user":  publicUser(result.User),
	})
}
