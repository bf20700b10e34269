package service

import (
	"context"

	"github.com/talhafarman98/SplitEase/internal/auth"
	"github.com/talhafarman98/SplitEase/internal/models"
)

// AuthService handles account registration and login, issuing session tokens.
type AuthService struct {
	authenticator auth.Authenticator
	tokens        *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(authenticator auth.Authenticator, tokens *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		tokens:        tokens,
	}
}

// Register creates a new account and returns the user with a session token.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.User, string, error) {
	user, err := s.authenticator.Register(ctx, email, name, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
