package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the access token lifetime used when none is configured.
const DefaultTokenTTL = 30 * time.Minute

var (
	// ErrInvalidToken is returned when a token fails signature or claim checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSubject is returned when a valid token carries no subject claim.
	ErrMissingSubject = errors.New("token subject not found")
)

// Claims represents JWT claims. The subject holds the username of the
// authenticated user.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTService issues and validates signed, time-limited access tokens.
// The signing secret is set once at construction and never mutated.
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService creates a new JWT service with the given secret and token TTL.
// A non-positive ttl falls back to DefaultTokenTTL.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue generates a signed access token whose subject is the given identity.
func (s *JWTService) Issue(subject string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate verifies the token signature and expiry and returns the subject.
// Malformed tokens, bad signatures, expired tokens and tokens without a
// subject all fail.
func (s *JWTService) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}

	return claims.Subject, nil
}
