package services_test

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prakashraj/godown/app/models"
	"github.com/prakashraj/godown/app/repositories"
	"github.com/prakashraj/godown/app/services"
)

// fakeStore is an in-memory ProductStore preserving insertion order.
type fakeStore struct {
	products []models.Product
	failAll  bool
}

var errStore = errors.New("store unreachable")

func (f *fakeStore) All(context.Context) ([]models.Product, error) {
	if f.failAll {
		return nil, errStore
	}
	return append([]models.Product(nil), f.products...), nil
}

func (f *fakeStore) StockBelow(_ context.Context, threshold int) ([]models.Product, error) {
	if f.failAll {
		return nil, errStore
	}
	out := make([]models.Product, 0)
	for _, p := range f.products {
		if p.AmountInStock < threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return models.Product{}, repositories.ErrInvalidID
	}
	for _, p := range f.products {
		if p.ID.Hex() == id {
			return p, nil
		}
	}
	return models.Product{}, repositories.ErrNotFound
}

func (f *fakeStore) Create(_ context.Context, p models.Product) (models.Product, error) {
	p.ID = primitive.NewObjectID()
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeStore) CreateMany(ctx context.Context, batch []models.Product) ([]models.Product, error) {
	out := make([]models.Product, 0, len(batch))
	for _, p := range batch {
		created, _ := f.Create(ctx, p)
		out = append(out, created)
	}
	return out, nil
}

func (f *fakeStore) Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return models.Product{}, repositories.ErrInvalidID
	}
	for i, p := range f.products {
		if p.ID.Hex() != id {
			continue
		}
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.SKU != nil {
			p.SKU = *patch.SKU
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.Manufacturer != nil {
			p.Manufacturer = *patch.Manufacturer
		}
		if patch.AmountInStock != nil {
			p.AmountInStock = *patch.AmountInStock
		}
		f.products[i] = p
		return p, nil
	}
	return models.Product{}, repositories.ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	for i, p := range f.products {
		if p.ID.Hex() == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func newService(store *fakeStore) *services.CatalogService {
	return services.NewCatalogService(store, nil)
}

func seedProduct(manufacturer string, price float64, stock int) models.Product {
	return models.Product{
		Name:          manufacturer + " widget",
		Price:         price,
		AmountInStock: stock,
		Manufacturer:  models.Manufacturer{Name: manufacturer},
	}
}

func TestCreateThenReadRoundTrip(t *testing.T) {
	svc := newService(&fakeStore{})
	ctx := context.Background()

	in := models.Product{
		Name:          "Anvil",
		SKU:           "ACME-001",
		Price:         149.5,
		AmountInStock: 12,
		Manufacturer: models.Manufacturer{
			Name:    "Acme",
			Contact: models.Contact{Name: "Wile E.", Email: "wile@acme.example"},
		},
	}

	created, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatal("expected assigned identity")
	}

	got, err := svc.Product(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got.Name != in.Name || got.SKU != in.SKU || got.Price != in.Price ||
		got.AmountInStock != in.AmountInStock || got.Manufacturer != in.Manufacturer {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestUpdatePartialMergeLeavesOtherFields(t *testing.T) {
	svc := newService(&fakeStore{})
	ctx := context.Background()

	created, _ := svc.Create(ctx, seedProduct("Acme", 10, 5))

	stock := 2
	updated, err := svc.Update(ctx, created.ID.Hex(), models.ProductPatch{AmountInStock: &stock})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.AmountInStock != 2 {
		t.Errorf("amountInStock = %d, want 2", updated.AmountInStock)
	}
	if updated.Name != created.Name || updated.Price != created.Price ||
		updated.Manufacturer != created.Manufacturer {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestDeleteThenReadIsNotFound(t *testing.T) {
	svc := newService(&fakeStore{})
	ctx := context.Background()

	created, _ := svc.Create(ctx, seedProduct("Acme", 10, 5))

	if err := svc.Delete(ctx, created.ID.Hex()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Product(ctx, created.ID.Hex()); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID.Hex()); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestTotalStockValueScenario(t *testing.T) {
	store := &fakeStore{}
	svc := newService(store)
	ctx := context.Background()

	_, _ = svc.Create(ctx, seedProduct("Acme", 10, 5))
	_, _ = svc.Create(ctx, seedProduct("Acme", 20, 2))

	total, err := svc.TotalStockValue(ctx)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 90 {
		t.Errorf("total = %v, want 90", total)
	}

	grouped, err := svc.StockValueByManufacturer(ctx)
	if err != nil {
		t.Fatalf("by manufacturer: %v", err)
	}
	if len(grouped) != 1 || grouped[0].Manufacturer != "Acme" || grouped[0].TotalValue != 90 {
		t.Errorf("grouped = %+v, want [{Acme 90}]", grouped)
	}
}

func TestCriticalStockIsSubsetOfLowStock(t *testing.T) {
	store := &fakeStore{}
	svc := newService(store)
	ctx := context.Background()

	for _, stock := range []int{0, 3, 4, 5, 9, 10, 50} {
		_, _ = svc.Create(ctx, seedProduct("Acme", 1, stock))
	}

	low, err := svc.LowStock(ctx)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	critical, err := svc.CriticalStock(ctx)
	if err != nil {
		t.Fatalf("critical stock: %v", err)
	}

	if len(low) != 5 {
		t.Errorf("low stock count = %d, want 5", len(low))
	}
	if len(critical) != 3 {
		t.Errorf("critical stock count = %d, want 3", len(critical))
	}
}

func TestManufacturersRosterLengthMatchesProductCount(t *testing.T) {
	store := &fakeStore{}
	svc := newService(store)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = svc.Create(ctx, seedProduct("Acme", 1, 1))
	}

	roster, err := svc.Manufacturers(ctx, false)
	if err != nil {
		t.Fatalf("manufacturers: %v", err)
	}
	if len(roster) != 5 {
		t.Errorf("roster length = %d, want 5", len(roster))
	}

	distinct, err := svc.Manufacturers(ctx, true)
	if err != nil {
		t.Fatalf("manufacturers distinct: %v", err)
	}
	if len(distinct) != 1 {
		t.Errorf("distinct roster length = %d, want 1", len(distinct))
	}
}

func TestReportsFailAtomicallyOnStoreError(t *testing.T) {
	svc := newService(&fakeStore{failAll: true})
	ctx := context.Background()

	if _, err := svc.TotalStockValue(ctx); !errors.Is(err, errStore) {
		t.Errorf("total: expected store error, got %v", err)
	}
	if _, err := svc.StockValueByManufacturer(ctx); !errors.Is(err, errStore) {
		t.Errorf("grouped: expected store error, got %v", err)
	}
	if _, err := svc.LowStock(ctx); !errors.Is(err, errStore) {
		t.Errorf("low: expected store error, got %v", err)
	}
	if _, err := svc.CriticalStock(ctx); !errors.Is(err, errStore) {
		t.Errorf("critical: expected store error, got %v", err)
	}
	if _, err := svc.Manufacturers(ctx, false); !errors.Is(err, errStore) {
		t.Errorf("manufacturers: expected store error, got %v", err)
	}
}
