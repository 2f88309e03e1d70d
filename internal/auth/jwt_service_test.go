package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", 0)

	token, err := svc.Issue("alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", 0)

	// token whose expiry is already in the past, signed with the right key
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)

	// an otherwise identical token that is still fresh validates
	fresh, err := svc.Issue("alice")
	assert.NoError(t, err)
	subject, err := svc.Validate(fresh)
	assert.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-one", 0)
	validator := NewJWTService("secret-two", 0)

	token, err := issuer.Issue("alice")
	assert.NoError(t, err)

	_, err = validator.Validate(token)
	assert.Error(t, err)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc := NewJWTService("test-secret", 0)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Validate(raw)
		assert.Error(t, err)
	}
}

func TestJWTService_MissingSubject(t *testing.T) {
	svc := NewJWTService("test-secret", 0)

	// token signed with the right key but no subject claim
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestJWTService_RejectsNonHMACMethod(t *testing.T) {
	svc := NewJWTService("test-secret", 0)

	// alg "none" must never validate
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}
