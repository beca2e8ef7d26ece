package service

import (
	"context"
	"testing"

	"storefront/internal/kv"
	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsDefaultsWhenAbsent(t *testing.T) {
	settings := testSettings(kv.NewMemoryStore())
	got := settings.Get(context.Background())
	assert.Equal(t, int64(200000), got.FreeShippingThreshold)
	assert.Equal(t, int64(12000), got.ShippingCost)
}

func TestSettingsDefaultsWhenUnparseable(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, kv.KeySettings, "not-json"))

	settings := testSettings(store)
	got := settings.Get(ctx)
	assert.Equal(t, int64(200000), got.FreeShippingThreshold)
}

func TestSettingsDefaultsWhenThresholdInvalid(t *testing.T) {
	store := kv.NewMemoryStore()
	settings := testSettings(store)
	ctx := context.Background()

	settings.Update(ctx, models.StoreSettings{FreeShippingThreshold: 0, ShippingCost: 5000})
	got := settings.Get(ctx)
	assert.Equal(t, int64(200000), got.FreeShippingThreshold)
	assert.Equal(t, int64(12000), got.ShippingCost)
}

func TestSettingsUpdateOverridesDefaults(t *testing.T) {
	store := kv.NewMemoryStore()
	settings := testSettings(store)
	ctx := context.Background()

	updated := settings.Update(ctx, models.StoreSettings{
		FreeShippingThreshold: 150000,
		ShippingCost:          9000,
	})
	assert.Equal(t, int64(150000), updated.FreeShippingThreshold)
	assert.Equal(t, int64(9000), updated.ShippingCost)

	// contact channels fall back to the defaults when not set
	assert.Equal(t, "ventas@panacaps.co", updated.ContactEmail)
}
