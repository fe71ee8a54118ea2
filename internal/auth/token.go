// Package auth implements the stateless bearer-token service.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is how long an issued token stays valid. Tokens are
// stateless and cannot be revoked before expiry.
const TokenValidity = 365 * 24 * time.Hour

// ErrInvalidToken is returned for any verification failure. Callers must
// not leak the underlying cause to clients.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService issues and verifies HS256-signed bearer tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given signing secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue signs the given claims into a bearer token. The claims payload is
// arbitrary but minimally carries an email; exp and iat are set here.
func (s *TokenService) Issue(claims map[string]any) (string, error) {
	now := time.Now()
	mapClaims := jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(TokenValidity).Unix(),
	}
	for k, v := range claims {
		if k == "iat" || k == "exp" {
			continue
		}
		mapClaims[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the decoded claims.
// Missing, malformed, badly signed, and expired tokens all yield
// ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (jwt.MapClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Email extracts the email identity claim from decoded claims.
func Email(claims jwt.MapClaims) (string, bool) {
	email, ok := claims["email"].(string)
	return email, ok && email != ""
}
