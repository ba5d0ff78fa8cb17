package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// CreateSweetInput carries the data needed to add a sweet to the catalog.
type CreateSweetInput struct {
	Name     string
	Category string
	Price    float64
	Quantity int64
}

// UpdateSweetInput carries a partial update; nil fields are left untouched.
type UpdateSweetInput struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int64
}

// StockInput identifies an inventory operation on a single sweet. Actor is
// the user ID performing the operation, recorded in the movement journal.
type StockInput struct {
	SweetID  string
	Quantity int64
	Actor    string
}

// SweetService defines the inventory use-cases.
type SweetService interface {
	Create(ctx context.Context, actor string, input CreateSweetInput) (*domain.Sweet, error)
	List(ctx context.Context) ([]*domain.Sweet, error)
	Search(ctx context.Context, query string) ([]*domain.Sweet, error)
	Update(ctx context.Context, id string, input UpdateSweetInput) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
	Purchase(ctx context.Context, input StockInput) (*domain.Sweet, error)
	Restock(ctx context.Context, input StockInput) (*domain.Sweet, error)
}
