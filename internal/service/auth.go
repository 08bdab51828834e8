package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/inspektor-hq/inspektor/internal/models"
	"github.com/inspektor-hq/inspektor/internal/validation"
)

const bcryptCost = 10

// ErrEmailTaken is returned when registering with an email that already has
// an account.
var ErrEmailTaken = errors.New("an account with this email already exists")

// ErrInvalidCredentials is returned for login attempts with an unknown email
// or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// FindUserByEmail returns the user with the given email, or nil when no
	// such user exists.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateUser inserts a new user and returns the persisted row.
	CreateUser(ctx context.Context, firstName, lastName, email, passwordHash string) (*models.User, error)
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// AuthService implements registration and login.
type AuthService struct {
	repo   UserRepository
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService using the provided repository and
// token issuer.
func NewAuthService(repo UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// LoginResult carries the signed access token and the authenticated user.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register validates a registration payload, hashes the password and creates
// the account. A duplicate email yields ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, payload map[string]any) (*models.User, error) {
	draft, fieldErrors := validation.ValidateRegistrationPayload(payload)
	if len(fieldErrors) > 0 {
		return nil, validation.ErrorFor(fieldErrors)
	}

	existing, err := s.repo.FindUserByEmail(ctx, draft.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.CreateUser(ctx, draft.FirstName, draft.LastName, draft.Email, string(hash))
}

// Login validates a login payload and verifies the credentials, returning a
// signed access token together with the user.
func (s *AuthService) Login(ctx context.Context, payload map[string]any) (*LoginResult, error) {
	draft, fieldErrors := validation.ValidateLoginPayload(payload)
	if len(fieldErrors) > 0 {
		return nil, validation.ErrorFor(fieldErrors)
	}

	user, err := s.repo.FindUserByEmail(ctx, draft.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(draft.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{Token: accessToken, User: user}, nil
}
