// Package auth holds the password hasher and the token service: the two
// pure pieces of the authentication layer. Neither touches the store.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, or expiry. Callers get no finer detail.
var ErrInvalidToken = errors.New("invalid token")

// TokenTTL is the fixed lifetime of an issued token. There is no
// refresh; an expired token requires a fresh login.
const TokenTTL = time.Hour

// TokenService issues and verifies HS256-signed identity tokens. The
// secret is process-wide and read-only after startup; rotating it means
// restarting the process and invalidating every outstanding token.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue signs a token embedding userID with a 1-hour expiry.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"iat":    now.Unix(),
		"exp":    now.Add(TokenTTL).Unix(),
	})
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded userId.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	userID, _ := claims["userId"].(string)
	if userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
