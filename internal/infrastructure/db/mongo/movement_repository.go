package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

const movementsCollection = "stock_movements"

// MovementRepository implements ports.MovementRepository using MongoDB.
// The journal is append-only.
type MovementRepository struct {
	coll *mongo.Collection
}

func NewMovementRepository(db *mongo.Database) *MovementRepository {
	return &MovementRepository{coll: db.Collection(movementsCollection)}
}

var _ ports.MovementRepository = (*MovementRepository)(nil)

func (r *MovementRepository) Insert(ctx context.Context, m *domain.StockMovement) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// EnsureIndexes creates the index used by per-sweet audit queries.
func (r *MovementRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sweet_id", Value: 1}, {Key: "at", Value: 1}},
	})
	return err
}
