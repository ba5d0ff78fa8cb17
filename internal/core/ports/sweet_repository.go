package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// SweetUpdate carries the mutable fields of a sweet. Nil pointers mean
// "keep the stored value" so PUT can be partial, as the API contract allows.
type SweetUpdate struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int64
}

// SweetRepository defines persistence operations for sweets.
type SweetRepository interface {
	Create(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	// List returns every sweet. When query is non-empty, results are limited
	// to sweets whose name or category contains query (case-insensitive).
	List(ctx context.Context, query string) ([]*domain.Sweet, error)
	Update(ctx context.Context, id string, upd SweetUpdate) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
	// AdjustQuantity atomically applies delta to the stock level and returns
	// the updated sweet. A negative delta fails with domain.ErrOutOfStock
	// when the stored quantity is insufficient; the check and the decrement
	// are a single store operation.
	AdjustQuantity(ctx context.Context, id string, delta int64) (*domain.Sweet, error)
}
