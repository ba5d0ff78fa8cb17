package domain

import "time"

// MovementKind classifies a stock movement journal entry.
type MovementKind string

const (
	MovementCreated   MovementKind = "created"
	MovementPurchased MovementKind = "purchased"
	MovementRestocked MovementKind = "restocked"
)

// StockMovement records a single change to a sweet's stock level. Movements
// are an append-only audit trail; they are never read back on the hot path.
type StockMovement struct {
	SweetID   string       `bson:"sweet_id"`
	Kind      MovementKind `bson:"kind"`
	Quantity  int64        `bson:"quantity"`
	Remaining int64        `bson:"remaining"`
	Actor     string       `bson:"actor,omitempty"`
	At        time.Time    `bson:"at"`
}
