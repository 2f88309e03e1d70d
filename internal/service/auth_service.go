package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskapi/internal/auth"
	"taskapi/internal/errors"
	"taskapi/internal/model"
	"taskapi/internal/repository"
)

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, username, password, firstName, lastName string) (*model.User, error)
	Login(ctx context.Context, username, password string) (token string, err error)
}

type authService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	jwt    *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, jwt *auth.JWTService) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Register creates a new user with a hashed password. Usernames are unique.
func (s *authService) Register(ctx context.Context, username, password, firstName, lastName string) (*model.User, error) {
	existing, err := s.users.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, errors.ErrUsernameTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: digest,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues an access token with the username
// as subject. Unknown username and wrong password fail identically.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", errors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", errors.ErrInvalidCredentials
	}

	token, err := s.jwt.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}
