package service

import (
	"context"
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestockFromZeroPublishesStockRestored(t *testing.T) {
	catalog := newStubCatalog()
	publisher := &stubPublisher{}
	inventory := NewInventoryService(catalog, publisher)
	ctx := context.Background()

	catalog.addVariant(models.Variant{ID: 10, ProductID: 1, Stock: 0})

	variant, err := inventory.RestockVariant(ctx, 10, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, variant.Stock)

	require.Len(t, publisher.restored, 1)
	assert.Equal(t, int64(10), publisher.restored[0].VariantID)
}

func TestRestockWithExistingStockDoesNotPublish(t *testing.T) {
	catalog := newStubCatalog()
	publisher := &stubPublisher{}
	inventory := NewInventoryService(catalog, publisher)
	ctx := context.Background()

	catalog.addVariant(models.Variant{ID: 10, ProductID: 1, Stock: 3})

	_, err := inventory.RestockVariant(ctx, 10, 8)
	require.NoError(t, err)
	assert.Empty(t, publisher.restored)
}

func TestRestockUnknownVariant(t *testing.T) {
	inventory := NewInventoryService(newStubCatalog(), &stubPublisher{})
	_, err := inventory.RestockVariant(context.Background(), 404, 5)
	assert.Error(t, err)
}
