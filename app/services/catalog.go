// Package services holds the catalog service shared by the REST and
// GraphQL surfaces. Both adapters call through here, so CRUD semantics
// and report arithmetic exist exactly once.
package services

import (
	"context"
	"time"

	"github.com/prakashraj/godown/app/events"
	"github.com/prakashraj/godown/app/models"
	"github.com/prakashraj/godown/app/reports"
	"github.com/prakashraj/godown/pkg/cache"
)

// ProductStore is the persistence contract the service depends on.
// *repositories.ProductRepository satisfies it; tests supply fakes.
type ProductStore interface {
	All(ctx context.Context) ([]models.Product, error)
	StockBelow(ctx context.Context, threshold int) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (models.Product, error)
	Create(ctx context.Context, p models.Product) (models.Product, error)
	CreateMany(ctx context.Context, products []models.Product) ([]models.Product, error)
	Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error)
	Delete(ctx context.Context, id string) error
}

// Report cache keys. Short TTL: reports tolerate slight staleness, and
// every write invalidates them anyway.
const (
	cacheKeyTotalValue     = "reports:total-stock-value"
	cacheKeyByManufacturer = "reports:total-stock-value-by-manufacturer"
	reportCacheTTL         = 30 * time.Second
)

// CatalogService exposes product CRUD and the derived reports.
type CatalogService struct {
	store  ProductStore
	events *events.Publisher
}

// NewCatalogService wires the service. publisher may be nil (no event
// stream), which keeps unit tests free of WebSocket plumbing.
func NewCatalogService(store ProductStore, publisher *events.Publisher) *CatalogService {
	return &CatalogService{store: store, events: publisher}
}

// ── CRUD ─────────────────────────────────────────────────────────────────────

func (s *CatalogService) Products(ctx context.Context) ([]models.Product, error) {
	return s.store.All(ctx)
}

func (s *CatalogService) Product(ctx context.Context, id string) (models.Product, error) {
	return s.store.FindByID(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, p models.Product) (models.Product, error) {
	created, err := s.store.Create(ctx, p)
	if err != nil {
		return models.Product{}, err
	}

	s.invalidateReports(ctx)
	s.events.Publish(events.Created(created))
	return created, nil
}

func (s *CatalogService) CreateMany(ctx context.Context, batch []models.Product) ([]models.Product, error) {
	created, err := s.store.CreateMany(ctx, batch)
	if err != nil {
		return nil, err
	}

	s.invalidateReports(ctx)
	for _, p := range created {
		s.events.Publish(events.Created(p))
	}
	return created, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return models.Product{}, err
	}

	s.invalidateReports(ctx)
	s.events.Publish(events.Updated(updated))
	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateReports(ctx)
	s.events.Publish(events.Deleted(id))
	return nil
}

// ── Reports ──────────────────────────────────────────────────────────────────

// TotalStockValue reports Σ price × amountInStock over the whole catalog.
func (s *CatalogService) TotalStockValue(ctx context.Context) (float64, error) {
	var cached float64
	if cache.Get(ctx, cacheKeyTotalValue, &cached) {
		return cached, nil
	}

	products, err := s.store.All(ctx)
	if err != nil {
		return 0, err
	}

	total := reports.TotalStockValue(products)
	_ = cache.Set(ctx, cacheKeyTotalValue, total, reportCacheTTL)
	return total, nil
}

// StockValueByManufacturer reports the per-manufacturer breakdown in
// first-seen order.
func (s *CatalogService) StockValueByManufacturer(ctx context.Context) ([]reports.ManufacturerValue, error) {
	var cached []reports.ManufacturerValue
	if cache.Get(ctx, cacheKeyByManufacturer, &cached) {
		return cached, nil
	}

	products, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	grouped := reports.ByManufacturer(products)
	_ = cache.Set(ctx, cacheKeyByManufacturer, grouped, reportCacheTTL)
	return grouped, nil
}

// LowStock returns the products with fewer than ten units in stock.
func (s *CatalogService) LowStock(ctx context.Context) ([]models.Product, error) {
	return s.store.StockBelow(ctx, reports.LowStockThreshold)
}

// CriticalStock returns the contact projection for products with fewer
// than five units in stock.
func (s *CatalogService) CriticalStock(ctx context.Context) ([]reports.CriticalContact, error) {
	products, err := s.store.StockBelow(ctx, reports.CriticalStockThreshold)
	if err != nil {
		return nil, err
	}
	return reports.CriticalContacts(products), nil
}

// Manufacturers returns the roster, one entry per product unless distinct
// is requested.
func (s *CatalogService) Manufacturers(ctx context.Context, distinct bool) ([]models.Manufacturer, error) {
	products, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return reports.Manufacturers(products, distinct), nil
}

func (s *CatalogService) invalidateReports(ctx context.Context) {
	_ = cache.Del(ctx, cacheKeyTotalValue, cacheKeyByManufacturer)
}
