package ports

import (
	"context"

	"github.com/mealops/kitchen-system/internal/core/domain"
)

// RequestStore defines persistence operations for pending registration
// requests. Listing order is newest-first.
type RequestStore interface {
	List(ctx context.Context) ([]domain.RegistrationRequest, error)
	// FindByID returns ErrRequestNotFound when no request matches.
	FindByID(ctx context.Context, id string) (*domain.RegistrationRequest, error)
	// Insert prepends a request.
	Insert(ctx context.Context, req *domain.RegistrationRequest) error
	// Remove deletes the request with the given id; removing an absent id
	// is a no-op, not an error.
	Remove(ctx context.Context, id string) error
}
