package ports

import (
	"context"

	"github.com/mealops/kitchen-system/internal/core/domain"
)

// UserDirectory defines persistence operations for registered users.
// Emails are matched case-insensitively by every implementation.
type UserDirectory interface {
	// ListAll returns the full user list in insertion order.
	ListAll(ctx context.Context) ([]domain.AppUser, error)
	// FindByEmail returns ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*domain.AppUser, error)
	// Insert appends a user, returning ErrDuplicateEmail when the email is taken.
	Insert(ctx context.Context, user *domain.AppUser) error
}
