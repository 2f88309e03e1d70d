package auth

import (
	"context"

	"github.com/labstack/echo/v4"

	"taskapi/internal/errors"
	"taskapi/internal/model"
	"taskapi/internal/repository"
)

// Identity resolves bearer tokens into authenticated users. Resolution runs
// on every protected request and is never cached: signature and expiry are
// re-checked each time.
type Identity struct {
	jwt   *JWTService
	users repository.UserRepository
}

// NewIdentity creates an identity resolver.
func NewIdentity(jwt *JWTService, users repository.UserRepository) *Identity {
	return &Identity{jwt: jwt, users: users}
}

// Authenticate validates a raw token and looks up the user named by its
// subject. All failure modes collapse into errors.ErrUnauthenticated so the
// caller cannot tell which step rejected the credential.
func (i *Identity) Authenticate(ctx context.Context, raw string) (*model.User, error) {
	subject, err := i.jwt.Validate(raw)
	if err != nil {
		return nil, errors.ErrUnauthenticated
	}

	user, err := i.users.FindByUsername(ctx, subject)
	if err != nil {
		return nil, errors.ErrUnauthenticated
	}

	return user, nil
}

// CurrentUser returns the authenticated user stored on the request context
// by the JWT middleware.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get("user").(*model.User)
	return user, ok
}
