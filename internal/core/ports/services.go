package ports

import (
	"context"

	"github.com/mealops/kitchen-system/internal/core/domain"
)

// CreateUserInput carries the data needed to create an account directly.
type CreateUserInput struct {
	Email    string
	Name     string
	Role     domain.Role
	Password string
}

// DirectoryService defines use-case operations over the user directory.
type DirectoryService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.AppUser, error)
	ListAll(ctx context.Context) ([]domain.AppUser, error)
	// Verify returns (nil, nil) when the email is unknown or the password
	// does not match: a failed verification is a normal negative outcome.
	Verify(ctx context.Context, email, password string) (*domain.AppUser, error)
}

// SubmitRequestInput carries a signup submission.
type SubmitRequestInput struct {
	Email    string
	Name     string
	Role     domain.Role
	Password string
}

// RegistrationService manages the signup approval workflow.
type RegistrationService interface {
	Submit(ctx context.Context, input SubmitRequestInput) (*domain.RegistrationRequest, error)
	List(ctx context.Context) ([]domain.RegistrationRequest, error)
	// Approve materializes the request into an AppUser and removes it.
	Approve(ctx context.Context, id string) (*domain.AppUser, error)
	// Decline removes the request without creating a user.
	Decline(ctx context.Context, id string) error
}

// AuthService authenticates operators and issues session tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.AppUser, error)
	Logout(ctx context.Context)
}
