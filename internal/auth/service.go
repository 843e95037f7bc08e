// internal/auth/service.go
// Token validation only. Credential issuance and session management live in
// the identity service; this API only needs to verify access tokens.

package auth

import (
	"context"
	"errors"

	"github.com/Ecera-System/ESMatromonial-sub000/internal/common/utils"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

type Service interface {
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)
}

type service struct {
	jwtSecret string
}

// NewService creates a new auth service
func NewService(jwtSecret string) Service {
	return &service{jwtSecret: jwtSecret}
}

func (s *service) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateJWT(token, s.jwtSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
