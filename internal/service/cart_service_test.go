package service

import (
	"context"
	"testing"

	"storefront/internal/kv"
	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings(store kv.Store) *SettingsService {
	return NewSettingsService(store, models.StoreSettings{
		FreeShippingThreshold: 200000,
		ShippingCost:          12000,
		ContactEmail:          "ventas@panacaps.co",
		ContactPhone:          "+573001112233",
	})
}

func newCartFixture(t *testing.T) (*CartService, *stubCatalog, *kv.MemoryStore) {
	t.Helper()
	store := kv.NewMemoryStore()
	catalog := newStubCatalog()
	return NewCartService(store, catalog, testSettings(store)), catalog, store
}

func TestAddItemClampsToStock(t *testing.T) {
	cart, catalog, _ := newCartFixture(t)
	ctx := context.Background()

	product := catalog.addProduct(models.Product{ID: 1, Name: "Gorra Trucker", BasePrice: 60000})
	variant := catalog.addVariant(models.Variant{ID: 10, ProductID: 1, Stock: 3})

	cart.AddItem(ctx, product, variant, 2)
	cart.AddItem(ctx, product, variant, 5)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestAddItemOutOfStockIsNoop(t *testing.T) {
	cart, catalog, _ := newCartFixture(t)
	ctx := context.Background()

	product := catalog.addProduct(models.Product{ID: 1, Name: "Gorra", BasePrice: 60000})
	variant := catalog.addVariant(models.Variant{ID: 10, ProductID: 1, Stock: 0})

	cart.AddItem(ctx, product, variant, 1)
	assert.Empty(t, cart.Lines())
}

func TestAddItemSetsTransientNotice(t *testing.T) {
	cart, catalog, _ := newCartFixture(t)
	ctx := context.Background()

	product := catalog.addProduct(models.Product{ID: 1, Name: "Gorra Snapback", BasePrice: 55000})
	variant := catalog.addVariant(models.Variant{ID: 10, ProductID: 1, Stock: 5})

	cart.AddItem(ctx, product, variant, 1)
	assert.Equal(t, "Gorra Snapback agregado al carrito", cart.Notice())
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	cart, catalog, _ := newCartFixture(t)
	ctx := context.Background()

	product := catalog.addProduct(models.Product{ID: 1, Name: "Gorra", BasePrice: 60000})
	variant := catalog.addVariant(models.Variant{ID: 10, ProductID: 1, Stock: 5})

	cart.AddItem(ctx, product, variant, 2)
	cart.UpdateQuantity(ctx, 10, 0)
	assert.Empty(t, cart.Lines())
}

func TestUpdateQuantityClampsToStock(t *testing.T) {
	cart, catalog, _ := newCartFixture(t)
	ctx := context.Background()

	product := catalog.addProduct(models.Product{ID: 1, Name: "Gorra", BasePrice: 60000})
	variant := catalog.addVariant(models.Variant{ID: 10, ProductID: 1, Stock: 4})

	cart.AddItem(ctx, product, variant, 1)
	cart.UpdateQuantity(ctx, 10, 99)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Quantity)
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	cart, _, _ := newCartFixture(t)
	cart.RemoveItem(context.Background(), 999)
	assert.Empty(t, cart.Lines())
}

func TestSubtotalMixesOverriddenAndBasePrices(t *testing.T) {
	cart, catalog, _ := newCartFixture(t)
	ctx := context.Background()

	product := catalog.addProduct(models.Product{ID: 1, Name: "Gorra", BasePrice: 60000})
	plain := catalog.addVariant(models.Variant{ID: 10, ProductID: 1, Stock: 10})
	discounted := catalog.addVariant(models.Variant{ID: 11, ProductID: 1, Stock: 10, PriceOverride: price(45000)})

	cart.AddItem(ctx, product, plain, 2)
	cart.AddItem(ctx, product, discounted, 3)

	totals := cart.Totals(ctx)
	assert.Equal(t, 5, totals.TotalItems)
	assert.Equal(t, int64(2*60000+3*45000), totals.Subtotal)
}

func TestShippingBoundaries(t *testing.T) {
	cart, catalog, _ := newCartFixture(t)
	ctx := context.Background()

	// empty cart ships free regardless of threshold
	totals := cart.Totals(ctx)
	assert.Equal(t, int64(0), totals.ShippingCost)
	assert.Equal(t, int64(0), totals.Total)

	product := catalog.addProduct(models.Product{ID: 1, Name: "Gorra", BasePrice: 199999})
	variant := catalog.addVariant(models.Variant{ID: 10, ProductID: 1, Stock: 5})
	cart.AddItem(ctx, product, variant, 1)

	// one peso short of the threshold pays the flat cost
	totals = cart.Totals(ctx)
	assert.Equal(t, int64(12000), totals.ShippingCost)
	assert.Equal(t, int64(199999+12000), totals.Total)

	// exactly at the threshold ships free
	exact := catalog.addProduct(models.Product{ID: 2, Name: "Gorra Premium", BasePrice: 1})
	exactVariant := catalog.addVariant(models.Variant{ID: 20, ProductID: 2, Stock: 5})
	cart.AddItem(ctx, exact, exactVariant, 1)

	totals = cart.Totals(ctx)
	assert.Equal(t, int64(200000), totals.Subtotal)
	assert.Equal(t, int64(0), totals.ShippingCost)
	assert.Equal(t, float64(100), totals.FreeShippingProgress)
	assert.Equal(t, int64(0), totals.AmountToFreeShipping)
}

func TestFreeShippingProgress(t *testing.T) {
	cart, catalog, _ := newCartFixture(t)
	ctx := context.Background()

	product := catalog.addProduct(models.Product{ID: 1, Name: "Gorra", BasePrice: 50000})
	variant := catalog.addVariant(models.Variant{ID: 10, ProductID: 1, Stock: 10})
	cart.AddItem(ctx, product, variant, 1)

	totals := cart.Totals(ctx)
	assert.InDelta(t, 25.0, totals.FreeShippingProgress, 0.001)
	assert.Equal(t, int64(150000), totals.AmountToFreeShipping)
}

func TestCartRehydratesFromStore(t *testing.T) {
	cart, catalog, store := newCartFixture(t)
	ctx := context.Background()

	product := catalog.addProduct(models.Product{ID: 1, Name: "Gorra", BasePrice: 60000})
	variant := catalog.addVariant(models.Variant{ID: 10, ProductID: 1, Stock: 5})
	cart.AddItem(ctx, product, variant, 2)

	reloaded := NewCartService(store, catalog, testSettings(store))
	lines := reloaded.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(10), lines[0].VariantID)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCorruptedCartStartsEmptyAndPurges(t *testing.T) {
	store := kv.NewMemoryStore()
	catalog := newStubCatalog()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, kv.KeyCart, "{broken"))

	cart := NewCartService(store, catalog, testSettings(store))
	assert.Empty(t, cart.Lines())

	_, ok, err := store.Get(ctx, kv.KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClearEmptiesCart(t *testing.T) {
	cart, catalog, _ := newCartFixture(t)
	ctx := context.Background()

	product := catalog.addProduct(models.Product{ID: 1, Name: "Gorra", BasePrice: 60000})
	variant := catalog.addVariant(models.Variant{ID: 10, ProductID: 1, Stock: 5})
	cart.AddItem(ctx, product, variant, 2)

	cart.Clear(ctx)
	assert.Empty(t, cart.Lines())
	assert.Equal(t, 0, cart.Totals(ctx).TotalItems)
}

func TestClearDropsPendingNotice(t *testing.T) {
	cart, catalog, _ := newCartFixture(t)
	ctx := context.Background()

	product := catalog.addProduct(models.Product{ID: 1, Name: "Gorra", BasePrice: 60000})
	variant := catalog.addVariant(models.Variant{ID: 10, ProductID: 1, Stock: 5})
	cart.AddItem(ctx, product, variant, 1)
	require.NotEmpty(t, cart.Notice())

	cart.Clear(ctx)
	assert.Empty(t, cart.Notice())
}

func TestSettingsOverrideShipping(t *testing.T) {
	store := kv.NewMemoryStore()
	catalog := newStubCatalog()
	settings := testSettings(store)
	cart := NewCartService(store, catalog, settings)
	ctx := context.Background()

	settings.Update(ctx, models.StoreSettings{
		FreeShippingThreshold: 100000,
		ShippingCost:          8000,
	})

	product := catalog.addProduct(models.Product{ID: 1, Name: "Gorra", BasePrice: 99999})
	variant := catalog.addVariant(models.Variant{ID: 10, ProductID: 1, Stock: 5})
	cart.AddItem(ctx, product, variant, 1)

	totals := cart.Totals(ctx)
	assert.Equal(t, int64(8000), totals.ShippingCost)
}
