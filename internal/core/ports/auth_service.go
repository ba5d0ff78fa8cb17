package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// AuthService orchestrates registration and login. Register always persists
// the non-privileged role regardless of what the caller sent; Login returns
// domain.ErrInvalidCredentials for both unknown email and wrong password so
// callers cannot distinguish which factor failed.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
