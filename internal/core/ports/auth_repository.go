package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// AuthRepository defines the interface for user authentication persistence.
// Create must surface domain.ErrUserExists when the email is already taken;
// the unique index on email is the authoritative guard, not a service-layer
// existence check.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
