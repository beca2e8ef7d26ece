package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront/internal/kv"
	"storefront/internal/models"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// CatalogReader is the slice of the catalog the cart and notification layers
// need. *store.Catalog satisfies it; tests supply a stub.
type CatalogReader interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetVariantByID(ctx context.Context, id int64) (*models.Variant, error)
}

// addedNoticeTTL is how long the transient "added to cart" notice lives.
const addedNoticeTTL = 2800 * time.Millisecond

// CartService holds the authoritative in-memory cart lines and derives all
// monetary figures. Every mutation re-persists the full line list; a
// corrupted persisted cart is discarded (and purged) at hydration.
type CartService struct {
	kv       kv.Store
	catalog  CatalogReader
	settings *SettingsService
	logger   *zap.Logger

	mu          sync.Mutex
	lines       []models.CartLine
	notice      string
	noticeTimer *time.Timer
}

// CartTotals are pure functions of the current lines and settings.
type CartTotals struct {
	TotalItems           int     `json:"total_items"`
	Subtotal             int64   `json:"subtotal"`
	ShippingCost         int64   `json:"shipping_cost"`
	Total                int64   `json:"total"`
	FreeShippingProgress float64 `json:"free_shipping_progress"`
	AmountToFreeShipping int64   `json:"amount_to_free_shipping"`
}

// NewCartService creates a cart engine hydrated from the persisted cart key.
func NewCartService(store kv.Store, catalog CatalogReader, settings *SettingsService) *CartService {
	s := &CartService{
		kv:       store,
		catalog:  catalog,
		settings: settings,
		logger:   util.GetLogger(),
	}
	kv.Load(context.Background(), store, kv.KeyCart, &s.lines, true)
	return s
}

// unitPrice resolves the line price: the variant override beats the base price.
func unitPrice(product *models.Product, variant *models.Variant) int64 {
	if variant.PriceOverride != nil {
		return *variant.PriceOverride
	}
	return product.BasePrice
}

func clampQuantity(quantity, stock int) int {
	if quantity < 1 {
		return 1
	}
	if quantity > stock {
		return stock
	}
	return quantity
}

// AddItem merges into an existing line for the variant or appends a new one,
// clamping the quantity to the variant's stock. Adding an out-of-stock
// variant is a no-op.
func (s *CartService) AddItem(ctx context.Context, product *models.Product, variant *models.Variant, quantity int) {
	if variant.Stock < 1 {
		return
	}
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.lines {
		if s.lines[i].VariantID == variant.ID {
			s.lines[i].Quantity = clampQuantity(s.lines[i].Quantity+quantity, variant.Stock)
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, models.CartLine{
			ProductID:   product.ID,
			VariantID:   variant.ID,
			ProductName: product.Name,
			Size:        variant.Size,
			Color:       variant.Color,
			UnitPrice:   unitPrice(product, variant),
			Quantity:    clampQuantity(quantity, variant.Stock),
		})
	}

	util.CartItemsAddedTotal.Inc()
	s.setNoticeLocked(fmt.Sprintf("%s agregado al carrito", product.Name))
	s.persistLocked(ctx)
}

// RemoveItem deletes the line for the variant, no-op if absent.
func (s *CartService) RemoveItem(ctx context.Context, variantID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].VariantID == variantID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persistLocked(ctx)
			return
		}
	}
}

// UpdateQuantity sets the line quantity clamped to the variant's stock; a
// quantity of zero or less removes the line entirely.
func (s *CartService) UpdateQuantity(ctx context.Context, variantID int64, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, variantID)
		return
	}

	variant, err := s.catalog.GetVariantByID(ctx, variantID)
	if err != nil {
		s.logger.Warn("Variant lookup failed on quantity update",
			zap.Int64("variant_id", variantID), zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].VariantID == variantID {
			if variant.Stock < 1 {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
			} else {
				s.lines[i].Quantity = clampQuantity(quantity, variant.Stock)
			}
			s.persistLocked(ctx)
			return
		}
	}
}

// Clear empties all lines and drops any pending "added" notice so a cart
// emptied at checkout does not keep reporting the last add.
func (s *CartService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.notice = ""
	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
		s.noticeTimer = nil
	}
	s.persistLocked(ctx)
}

// Lines returns a copy of the current cart lines.
func (s *CartService) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Notice returns the transient "added" message, empty once it has expired.
func (s *CartService) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// Totals recomputes the derived monetary figures. Shipping is zero for an
// empty cart regardless of threshold.
func (s *CartService) Totals(ctx context.Context) CartTotals {
	settings := s.settings.Get(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	var totals CartTotals
	for _, line := range s.lines {
		totals.TotalItems += line.Quantity
		totals.Subtotal += line.UnitPrice * int64(line.Quantity)
	}

	if len(s.lines) > 0 && totals.Subtotal < settings.FreeShippingThreshold {
		totals.ShippingCost = settings.ShippingCost
	}
	totals.Total = totals.Subtotal + totals.ShippingCost

	progress := float64(totals.Subtotal) / float64(settings.FreeShippingThreshold) * 100
	if progress > 100 {
		progress = 100
	}
	totals.FreeShippingProgress = progress

	if remaining := settings.FreeShippingThreshold - totals.Subtotal; remaining > 0 {
		totals.AmountToFreeShipping = remaining
	}

	return totals
}

func (s *CartService) setNoticeLocked(msg string) {
	s.notice = msg
	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
	}
	s.noticeTimer = time.AfterFunc(addedNoticeTTL, func() {
		s.mu.Lock()
		s.notice = ""
		s.mu.Unlock()
	})
}

func (s *CartService) persistLocked(ctx context.Context) {
	kv.Save(ctx, s.kv, kv.KeyCart, s.lines)
}
