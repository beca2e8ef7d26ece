package service

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/models"
)

// stubCatalog satisfies CatalogReader/CatalogWriter for tests.
type stubCatalog struct {
	mu       sync.Mutex
	products map[int64]*models.Product
	variants map[int64]*models.Variant
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		products: make(map[int64]*models.Product),
		variants: make(map[int64]*models.Variant),
	}
}

func (c *stubCatalog) addProduct(p models.Product) *models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = &p
	return &p
}

func (c *stubCatalog) addVariant(v models.Variant) *models.Variant {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.variants[v.ID] = &v
	return &v
}

func (c *stubCatalog) GetProductByID(_ context.Context, id int64) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.products[id]; ok {
		result := *p
		return &result, nil
	}
	return nil, fmt.Errorf("product not found: %d", id)
}

func (c *stubCatalog) GetVariantByID(_ context.Context, id int64) (*models.Variant, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.variants[id]; ok {
		result := *v
		return &result, nil
	}
	return nil, fmt.Errorf("variant not found: %d", id)
}

func (c *stubCatalog) UpdateVariantStock(_ context.Context, id int64, stock int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.variants[id]
	if !ok {
		return 0, fmt.Errorf("variant not found: %d", id)
	}
	previous := v.Stock
	v.Stock = stock
	return previous, nil
}

// stubPublisher records published events instead of touching Kafka.
type stubPublisher struct {
	mu            sync.Mutex
	placed        []*models.OrderPlacedEvent
	statusChanged []*models.OrderStatusChangedEvent
	restored      []*models.StockRestoredEvent
}

func (p *stubPublisher) PublishOrderPlaced(_ context.Context, event *models.OrderPlacedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.placed = append(p.placed, event)
	return nil
}

func (p *stubPublisher) PublishOrderStatusChanged(_ context.Context, event *models.OrderStatusChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statusChanged = append(p.statusChanged, event)
	return nil
}

func (p *stubPublisher) PublishStockRestored(_ context.Context, event *models.StockRestoredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.restored = append(p.restored, event)
	return nil
}

func price(v int64) *int64 {
	return &v
}
