package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed, badly signed and expired tokens alike; the
// caller only needs to know the bearer is not trusted.
var ErrInvalidToken = errors.New("invalid or expired token")

const tokenTTL = 24 * time.Hour

// Service issues and verifies HS256 bearer tokens carrying the user's email.
type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue signs a token for the given email with a 24-hour expiry.
func (s *Service) Issue(email string) (string, error) {
	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	})
	return claims.SignedString(s.secret)
}

// Verify parses the token and returns the email claim.
func (s *Service) Verify(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}
