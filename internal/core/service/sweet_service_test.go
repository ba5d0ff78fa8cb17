package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

type stubSweetRepo struct {
	sweets map[string]*domain.Sweet
	seq    int
}

func newStubSweetRepo() *stubSweetRepo {
	return &stubSweetRepo{sweets: make(map[string]*domain.Sweet)}
}

func cloneSweet(s *domain.Sweet) *domain.Sweet {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func (r *stubSweetRepo) Create(_ context.Context, s *domain.Sweet) (*domain.Sweet, error) {
	r.seq++
	copy := cloneSweet(s)
	copy.ID = "sweet_" + strconv.Itoa(r.seq)
	r.sweets[copy.ID] = cloneSweet(copy)
	return cloneSweet(copy), nil
}

func (r *stubSweetRepo) FindByID(_ context.Context, id string) (*domain.Sweet, error) {
	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	return cloneSweet(s), nil
}

func (r *stubSweetRepo) List(_ context.Context, query string) ([]*domain.Sweet, error) {
	out := make([]*domain.Sweet, 0, len(r.sweets))
	q := strings.ToLower(query)
	for _, s := range r.sweets {
		if q == "" ||
			strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Category), q) {
			out = append(out, cloneSweet(s))
		}
	}
	return out, nil
}

func (r *stubSweetRepo) Update(_ context.Context, id string, upd ports.SweetUpdate) (*domain.Sweet, error) {
	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	if upd.Name != nil {
		s.Name = *upd.Name
	}
	if upd.Category != nil {
		s.Category = *upd.Category
	}
	if upd.Price != nil {
		s.Price = *upd.Price
	}
	if upd.Quantity != nil {
		s.Quantity = *upd.Quantity
	}
	return cloneSweet(s), nil
}

func (r *stubSweetRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.sweets[id]; !ok {
		return domain.ErrSweetNotFound
	}
	delete(r.sweets, id)
	return nil
}

func (r *stubSweetRepo) AdjustQuantity(_ context.Context, id string, delta int64) (*domain.Sweet, error) {
	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	if delta < 0 && s.Quantity < -delta {
		return nil, domain.ErrOutOfStock
	}
	s.Quantity += delta
	return cloneSweet(s), nil
}

type stubJournal struct {
	movements []domain.StockMovement
}

func (j *stubJournal) Record(m domain.StockMovement) {
	j.movements = append(j.movements, m)
}

func newSweetService(repo *stubSweetRepo, journal ports.MovementJournal) *SweetService {
	return NewSweetService(repo, journal, zerolog.Nop())
}

func TestSweetService_Create(t *testing.T) {
	repo := newStubSweetRepo()
	journal := &stubJournal{}
	svc := newSweetService(repo, journal)

	sweet, err := svc.Create(context.Background(), "user_1", ports.CreateSweetInput{
		Name:     "Gummy Bears",
		Category: "Gummies",
		Price:    1.99,
		Quantity: 100,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if sweet.ID == "" {
		t.Fatalf("expected generated ID")
	}
	if sweet.Name != "Gummy Bears" || sweet.Quantity != 100 {
		t.Fatalf("unexpected sweet: %+v", sweet)
	}

	if len(journal.movements) != 1 {
		t.Fatalf("expected 1 journal entry, got %d", len(journal.movements))
	}
	m := journal.movements[0]
	if m.Kind != domain.MovementCreated || m.SweetID != sweet.ID || m.Actor != "user_1" {
		t.Fatalf("unexpected movement: %+v", m)
	}
}

func TestSweetService_Search(t *testing.T) {
	repo := newStubSweetRepo()
	svc := newSweetService(repo, nil)

	for _, in := range []ports.CreateSweetInput{
		{Name: "Apple Pie", Category: "Bakery", Price: 5, Quantity: 5},
		{Name: "Apple Tart", Category: "Bakery", Price: 4, Quantity: 5},
		{Name: "Chocolate Cake", Category: "Bakery", Price: 10, Quantity: 2},
	} {
		if _, err := svc.Create(context.Background(), "u", in); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
	}

	found, err := svc.Search(context.Background(), "apple")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(found))
	}

	all, err := svc.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("empty query should list all, got %d", len(all))
	}
}

func TestSweetService_Update_NotFound(t *testing.T) {
	svc := newSweetService(newStubSweetRepo(), nil)

	name := "New Name"
	if _, err := svc.Update(context.Background(), "missing", ports.UpdateSweetInput{Name: &name}); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound, got %v", err)
	}
}

func TestSweetService_Update_Partial(t *testing.T) {
	repo := newStubSweetRepo()
	svc := newSweetService(repo, nil)

	sweet, err := svc.Create(context.Background(), "u", ports.CreateSweetInput{
		Name: "Old Name", Category: "Test", Price: 1, Quantity: 10,
	})
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	name := "New Name"
	price := 5.0
	updated, err := svc.Update(context.Background(), sweet.ID, ports.UpdateSweetInput{Name: &name, Price: &price})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "New Name" || updated.Price != 5.0 {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	// Untouched fields keep their values.
	if updated.Category != "Test" || updated.Quantity != 10 {
		t.Fatalf("partial update clobbered fields: %+v", updated)
	}
}

func TestSweetService_Purchase(t *testing.T) {
	repo := newStubSweetRepo()
	journal := &stubJournal{}
	svc := newSweetService(repo, journal)

	sweet, err := svc.Create(context.Background(), "u", ports.CreateSweetInput{
		Name: "Candy Cane", Category: "Xmas", Price: 1, Quantity: 5,
	})
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	updated, err := svc.Purchase(context.Background(), ports.StockInput{SweetID: sweet.ID, Quantity: 1, Actor: "user_1"})
	if err != nil {
		t.Fatalf("Purchase returned error: %v", err)
	}
	if updated.Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", updated.Quantity)
	}

	last := journal.movements[len(journal.movements)-1]
	if last.Kind != domain.MovementPurchased || last.Quantity != 1 || last.Remaining != 4 {
		t.Fatalf("unexpected movement: %+v", last)
	}
}

func TestSweetService_Purchase_DefaultsToOne(t *testing.T) {
	repo := newStubSweetRepo()
	svc := newSweetService(repo, nil)

	sweet, err := svc.Create(context.Background(), "u", ports.CreateSweetInput{
		Name: "Lollipop", Category: "Hard Candy", Price: 1, Quantity: 3,
	})
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	updated, err := svc.Purchase(context.Background(), ports.StockInput{SweetID: sweet.ID})
	if err != nil {
		t.Fatalf("Purchase returned error: %v", err)
	}
	if updated.Quantity != 2 {
		t.Fatalf("expected quantity 2 after default purchase, got %d", updated.Quantity)
	}
}

func TestSweetService_Purchase_OutOfStock(t *testing.T) {
	repo := newStubSweetRepo()
	svc := newSweetService(repo, nil)

	sweet, err := svc.Create(context.Background(), "u", ports.CreateSweetInput{
		Name: "Rare Candy", Category: "Pokemon", Price: 100, Quantity: 0,
	})
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	if _, err := svc.Purchase(context.Background(), ports.StockInput{SweetID: sweet.ID, Quantity: 1}); !errors.Is(err, domain.ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
}

func TestSweetService_Restock(t *testing.T) {
	repo := newStubSweetRepo()
	journal := &stubJournal{}
	svc := newSweetService(repo, journal)

	sweet, err := svc.Create(context.Background(), "u", ports.CreateSweetInput{
		Name: "Empty Bin", Category: "Bulk", Price: 1, Quantity: 0,
	})
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	updated, err := svc.Restock(context.Background(), ports.StockInput{SweetID: sweet.ID, Quantity: 50, Actor: "admin_1"})
	if err != nil {
		t.Fatalf("Restock returned error: %v", err)
	}
	if updated.Quantity != 50 {
		t.Fatalf("expected quantity 50, got %d", updated.Quantity)
	}

	last := journal.movements[len(journal.movements)-1]
	if last.Kind != domain.MovementRestocked || last.Quantity != 50 {
		t.Fatalf("unexpected movement: %+v", last)
	}
}

func TestSweetService_Delete(t *testing.T) {
	repo := newStubSweetRepo()
	svc := newSweetService(repo, nil)

	sweet, err := svc.Create(context.Background(), "u", ports.CreateSweetInput{
		Name: "To Delete", Category: "Test", Price: 1, Quantity: 10,
	})
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), sweet.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), sweet.ID); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound on second delete, got %v", err)
	}
}
