package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mealops/kitchen-system/internal/api/metrics"
	"github.com/mealops/kitchen-system/internal/core/domain"
	"github.com/mealops/kitchen-system/internal/core/ports"
)

// RegistrationService implements the signup approval workflow: requests are
// filed by operators and resolved (approved or declined) by administrators.
type RegistrationService struct {
	requests  ports.RequestStore
	directory ports.DirectoryService
	logger    zerolog.Logger
}

func NewRegistrationService(requests ports.RequestStore, directory ports.DirectoryService, logger zerolog.Logger) *RegistrationService {
	return &RegistrationService{requests: requests, directory: directory, logger: logger}
}

// Submit files a new registration request. The password stays plaintext on
// the request; the digest is computed at approval time.
func (s *RegistrationService) Submit(ctx context.Context, input ports.SubmitRequestInput) (*domain.RegistrationRequest, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	now := time.Now().UTC()
	req := &domain.RegistrationRequest{
		ID:        domain.NewRequestID(now),
		Email:     domain.NormalizeEmail(input.Email),
		Name:      input.Name,
		Role:      input.Role,
		Password:  input.Password,
		CreatedAt: now,
	}

	if err := s.requests.Insert(ctx, req); err != nil {
		return nil, fmt.Errorf("submit registration: %w", err)
	}

	metrics.RegistrationsSubmittedTotal.WithLabelValues(string(req.Role)).Inc()
	s.logger.Info().Str("request_id", req.ID).Str("email", req.Email).Msg("registration submitted")
	return req, nil
}

// List returns all pending requests, newest first.
func (s *RegistrationService) List(ctx context.Context) ([]domain.RegistrationRequest, error) {
	return s.requests.List(ctx)
}

// Approve materializes the request into an AppUser and removes it. The user
// is persisted before the request is removed; a request whose email was
// registered through another path in the meantime is removed as stale, and
// ErrDuplicateEmail is still returned so the caller knows no account was
// created by this call.
func (s *RegistrationService) Approve(ctx context.Context, id string) (*domain.AppUser, error) {
	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := s.directory.Create(ctx, ports.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			// Stale request: the account already exists. Clean it up so it
			// cannot be approved again, then surface the conflict.
			if rmErr := s.requests.Remove(ctx, id); rmErr != nil {
				s.logger.Warn().Err(rmErr).Str("request_id", id).Msg("failed to remove stale request")
			}
			metrics.RegistrationsResolvedTotal.WithLabelValues("duplicate").Inc()
		}
		return nil, err
	}

	if err := s.requests.Remove(ctx, id); err != nil {
		// The user exists but the request lingers; the next approve of this
		// id takes the stale-cleanup path above.
		s.logger.Error().Err(err).Str("request_id", id).Msg("user created but request removal failed")
		return user, fmt.Errorf("approve %s: remove request: %w", id, err)
	}

	metrics.RegistrationsResolvedTotal.WithLabelValues("approved").Inc()
	s.logger.Info().Str("request_id", id).Str("email", user.Email).Msg("registration approved")
	return user, nil
}

// Decline removes the request without creating a user. Declining an unknown
// id fails with ErrRequestNotFound.
func (s *RegistrationService) Decline(ctx context.Context, id string) error {
	if _, err := s.requests.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.requests.Remove(ctx, id); err != nil {
		return fmt.Errorf("decline %s: %w", id, err)
	}

	metrics.RegistrationsResolvedTotal.WithLabelValues("declined").Inc()
	s.logger.Info().Str("request_id", id).Msg("registration declined")
	return nil
}
