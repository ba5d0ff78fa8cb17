package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// MovementRepository persists stock movement journal entries.
type MovementRepository interface {
	Insert(ctx context.Context, m *domain.StockMovement) error
}

// MovementJournal is the asynchronous sink services emit movements to.
// Implementations must not block the caller beyond a bounded buffer.
type MovementJournal interface {
	Record(m domain.StockMovement)
}
