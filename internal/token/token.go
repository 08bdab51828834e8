// Package token issues and verifies the HS256 access tokens used by the API.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inspektor-hq/inspektor/internal/models"
)

// ErrInvalidToken is returned for tokens that are malformed, expired, signed
// with the wrong key, or carry an unusable subject.
var ErrInvalidToken = errors.New("token is not valid")

// Identity is the authenticated identity carried inside an access token.
type Identity struct {
	UserID    int64
	Email     string
	FirstName string
	LastName  string
}

// Issuer signs and verifies access tokens. The secret is held here so the
// rest of the application stays crypto-library agnostic.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer builds an Issuer from the configured secret and token lifetime.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed access token for the given user.
func (i *Issuer) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       strconv.FormatInt(user.ID, 10),
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"iat":       now.Unix(),
		"exp":       now.Add(i.ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates an access token, returning the identity it
// carries. The subject must be a positive integer user id.
func (i *Issuer) Verify(tokenString string) (*Identity, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	subject, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, ErrInvalidToken
	}

	identity := &Identity{UserID: userID}
	identity.Email, _ = claims["email"].(string)
	identity.FirstName, _ = claims["firstName"].(string)
	identity.LastName, _ = claims["lastName"].(string)
	return identity, nil
}
