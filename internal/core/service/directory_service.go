package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mealops/kitchen-system/internal/auth"
	"github.com/mealops/kitchen-system/internal/core/domain"
	"github.com/mealops/kitchen-system/internal/core/ports"
)

// DirectoryService implements user creation and credential verification
// over a UserDirectory.
type DirectoryService struct {
	repo   ports.UserDirectory
	hasher auth.Hasher
	logger zerolog.Logger
}

func NewDirectoryService(repo ports.UserDirectory, hasher auth.Hasher, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{repo: repo, hasher: hasher, logger: logger}
}

// Create hashes the password and appends a new user. The email must be
// unused (case-insensitive); otherwise ErrDuplicateEmail is returned.
func (s *DirectoryService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.AppUser, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.AppUser{
		Email:        domain.NormalizeEmail(input.Email),
		Name:         input.Name,
		Role:         input.Role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

// ListAll returns every registered user in insertion order.
func (s *DirectoryService) ListAll(ctx context.Context) ([]domain.AppUser, error) {
	return s.repo.ListAll(ctx)
}

// Verify looks up the user by case-insensitive email and compares digests.
// An unknown email or a wrong password yields (nil, nil): a failed
// verification is a normal negative outcome, never an error.
func (s *DirectoryService) Verify(ctx context.Context, email, password string) (*domain.AppUser, error) {
	user, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, nil
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}
