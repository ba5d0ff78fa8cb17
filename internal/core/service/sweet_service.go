package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-api/internal/api/metrics"
	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

// SweetService implements the inventory use-cases over a SweetRepository.
// Stock changes are delegated to atomic repository operations; the service
// never performs read-modify-write on quantities.
type SweetService struct {
	repo    ports.SweetRepository
	journal ports.MovementJournal // optional
	log     zerolog.Logger
}

func NewSweetService(repo ports.SweetRepository, journal ports.MovementJournal, log zerolog.Logger) *SweetService {
	return &SweetService{repo: repo, journal: journal, log: log}
}

func (s *SweetService) Create(ctx context.Context, actor string, input ports.CreateSweetInput) (*domain.Sweet, error) {
	now := time.Now().UTC()
	sweet := &domain.Sweet{
		Name:      input.Name,
		Category:  input.Category,
		Price:     input.Price,
		Quantity:  input.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, sweet)
	if err != nil {
		s.log.Error().Err(err).Str("name", input.Name).Msg("failed to create sweet")
		return nil, err
	}

	metrics.SweetsCreatedTotal.WithLabelValues(created.Category).Inc()
	s.record(domain.StockMovement{
		SweetID:   created.ID,
		Kind:      domain.MovementCreated,
		Quantity:  created.Quantity,
		Remaining: created.Quantity,
		Actor:     actor,
		At:        now,
	})

	s.log.Info().Str("sweet_id", created.ID).Str("name", created.Name).Msg("sweet created")
	return created, nil
}

func (s *SweetService) List(ctx context.Context) ([]*domain.Sweet, error) {
	return s.repo.List(ctx, "")
}

// Search returns sweets whose name or category contains query, ignoring
// case. An empty query behaves like List.
func (s *SweetService) Search(ctx context.Context, query string) ([]*domain.Sweet, error) {
	return s.repo.List(ctx, query)
}

func (s *SweetService) Update(ctx context.Context, id string, input ports.UpdateSweetInput) (*domain.Sweet, error) {
	updated, err := s.repo.Update(ctx, id, ports.SweetUpdate{
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
		Quantity: input.Quantity,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("sweet_id", id).Msg("sweet updated")
	return updated, nil
}

func (s *SweetService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("sweet_id", id).Msg("sweet deleted")
	return nil
}

// Purchase decrements stock by input.Quantity. The quantity check and the
// decrement are one atomic store operation, so two concurrent purchases can
// never oversell the last unit.
func (s *SweetService) Purchase(ctx context.Context, input ports.StockInput) (*domain.Sweet, error) {
	qty := input.Quantity
	if qty <= 0 {
		qty = 1
	}

	updated, err := s.repo.AdjustQuantity(ctx, input.SweetID, -qty)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOutOfStock):
			metrics.PurchasesTotal.WithLabelValues("out_of_stock").Inc()
		case errors.Is(err, domain.ErrSweetNotFound):
			metrics.PurchasesTotal.WithLabelValues("not_found").Inc()
		default:
			metrics.PurchasesTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	metrics.PurchasesTotal.WithLabelValues("ok").Inc()
	metrics.UnitsSoldTotal.Add(float64(qty))
	s.record(domain.StockMovement{
		SweetID:   updated.ID,
		Kind:      domain.MovementPurchased,
		Quantity:  qty,
		Remaining: updated.Quantity,
		Actor:     input.Actor,
		At:        time.Now().UTC(),
	})

	s.log.Info().Str("sweet_id", updated.ID).Int64("quantity", qty).Int64("remaining", updated.Quantity).Msg("sweet purchased")
	return updated, nil
}

// Restock increments stock by input.Quantity (default 1).
func (s *SweetService) Restock(ctx context.Context, input ports.StockInput) (*domain.Sweet, error) {
	qty := input.Quantity
	if qty <= 0 {
		qty = 1
	}

	updated, err := s.repo.AdjustQuantity(ctx, input.SweetID, qty)
	if err != nil {
		return nil, err
	}

	metrics.RestocksTotal.Inc()
	s.record(domain.StockMovement{
		SweetID:   updated.ID,
		Kind:      domain.MovementRestocked,
		Quantity:  qty,
		Remaining: updated.Quantity,
		Actor:     input.Actor,
		At:        time.Now().UTC(),
	})

	s.log.Info().Str("sweet_id", updated.ID).Int64("quantity", qty).Int64("remaining", updated.Quantity).Msg("sweet restocked")
	return updated, nil
}

func (s *SweetService) record(m domain.StockMovement) {
	if s.journal == nil {
		return
	}
	s.journal.Record(m)
}
