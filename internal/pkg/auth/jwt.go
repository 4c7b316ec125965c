// Package auth verifies the HS256 bearer tokens issued by the identity service.
package auth

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const issuer = "dispatch"

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

// Issue signs a token for userID. The service never issues tokens to end users; Issue exists
// for local tooling and tests.
func (s *JWTService) Issue(userID kernel.UUID, role kernel.Role, ttl time.Duration, now time.Time) (string, error) {
	claims := &Claims{
		UserID: userID.String(),
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature, algorithm and time claims of token.
func (s *JWTService) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate verifies token and returns the user and role it names.
func (s *JWTService) Authenticate(token string) (kernel.UUID, kernel.Role, error) {
	claims, err := s.Verify(token)
	if err != nil {
		return kernel.UUID{}, kernel.RoleUnknown, err
	}
	userID, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return kernel.UUID{}, kernel.RoleUnknown, fmt.Errorf("%w: user_id: %w", ErrInvalidToken, err)
	}
	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return kernel.UUID{}, kernel.RoleUnknown, fmt.Errorf("%w: role: %w", ErrInvalidToken, err)
	}
	return userID, role, nil
}
