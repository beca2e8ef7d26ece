package service

import (
	"context"

	"storefront/internal/kv"
	"storefront/internal/models"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// SettingsService resolves the storefront settings: admin-persisted overrides
// when present and sane, compiled defaults otherwise.
type SettingsService struct {
	kv       kv.Store
	defaults models.StoreSettings
	logger   *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(store kv.Store, defaults models.StoreSettings) *SettingsService {
	return &SettingsService{
		kv:       store,
		defaults: defaults,
		logger:   util.GetLogger(),
	}
}

// Get returns the effective settings. An absent or unparseable settings blob
// falls back to the defaults; so does a blob with a non-positive threshold.
func (s *SettingsService) Get(ctx context.Context) models.StoreSettings {
	settings := s.defaults
	if !kv.Load(ctx, s.kv, kv.KeySettings, &settings, false) {
		return s.defaults
	}
	if settings.FreeShippingThreshold <= 0 || settings.ShippingCost < 0 {
		return s.defaults
	}
	if settings.ContactEmail == "" {
		settings.ContactEmail = s.defaults.ContactEmail
	}
	if settings.ContactPhone == "" {
		settings.ContactPhone = s.defaults.ContactPhone
	}
	return settings
}

// Update persists admin-configured settings.
func (s *SettingsService) Update(ctx context.Context, settings models.StoreSettings) models.StoreSettings {
	kv.Save(ctx, s.kv, kv.KeySettings, settings)
	s.logger.Info("Store settings updated",
		zap.Int64("free_shipping_threshold", settings.FreeShippingThreshold),
		zap.Int64("shipping_cost", settings.ShippingCost))
	return s.Get(ctx)
}
