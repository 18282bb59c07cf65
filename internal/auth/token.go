package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/technexus/blog-server/internal/models"
)

// Claims is the JWT payload: the user identifier plus standard iat/exp.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// UserStore is the lookup the verifier needs to resolve a token back to a
// stored user.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Service issues and verifies bearer tokens. The signing secret and token
// lifetime are injected at construction; nothing here reads the environment.
type Service struct {
	secret []byte
	ttl    time.Duration
	users  UserStore
}

func NewService(secret []byte, ttl time.Duration, users UserStore) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{secret: secret, ttl: ttl, users: users}
}

// IssueToken creates a signed HS256 token for an already-authenticated user.
func (s *Service) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authenticate resolves a bearer token string to its stored user, failing
// closed. A nil user with nil error means "no identity": empty token,
// malformed or forged signature, expired token, a payload without a user ID,
// or an ID that no longer resolves to a stored user. A non-nil error means
// the store itself failed; the caller still gets no identity but may log it.
// Verification is read-only and safe to run on every request.
func (s *Service) Authenticate(ctx context.Context, tokenStr string) (*models.User, error) {
	if tokenStr == "" {
		return nil, nil
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, nil
	}

	if claims.UserID == "" {
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve token user: %w", err)
	}
	return user, nil
}
