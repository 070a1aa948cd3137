package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mealops/kitchen-system/internal/api/metrics"
	"github.com/mealops/kitchen-system/internal/auth"
	"github.com/mealops/kitchen-system/internal/core/domain"
	"github.com/mealops/kitchen-system/internal/core/ports"
	"github.com/mealops/kitchen-system/internal/session"
)

// AuthService authenticates operators, issues session tokens, and keeps the
// session store in sync.
type AuthService struct {
	directory ports.DirectoryService
	tokens    *auth.TokenManager
	sessions  *session.Store
	logger    zerolog.Logger
}

func NewAuthService(directory ports.DirectoryService, tokens *auth.TokenManager, sessions *session.Store, logger zerolog.Logger) *AuthService {
	return &AuthService{directory: directory, tokens: tokens, sessions: sessions, logger: logger}
}

// Login verifies credentials, signs the operator into the session store,
// and returns a bearer token. A wrong email or password yields
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.AppUser, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.directory.Verify(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.sessions.SignIn(ctx, session.Identity{Email: user.Email, Name: user.Name, Role: user.Role})
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("operator signed in")

	return token, user, nil
}

// Logout clears the session store.
func (s *AuthService) Logout(ctx context.Context) {
	s.sessions.SignOut(ctx)
	s.logger.Info().Msg("operator signed out")
}
