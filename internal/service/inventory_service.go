package service

import (
	"context"
	"time"

	"storefront/internal/models"
	"storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogWriter extends the read-only catalog with the admin restock write.
type CatalogWriter interface {
	CatalogReader
	UpdateVariantStock(ctx context.Context, variantID int64, stock int) (int, error)
}

// InventoryService handles the admin restock operation and raises the
// restock event when a variant comes back from zero stock.
type InventoryService struct {
	catalog   CatalogWriter
	publisher Publisher
	logger    *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(catalog CatalogWriter, publisher Publisher) *InventoryService {
	return &InventoryService{
		catalog:   catalog,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// RestockVariant sets the variant's stock. A transition from zero to a
// positive count publishes StockRestored, which drives the subscription
// fan-out in the notification worker.
func (s *InventoryService) RestockVariant(ctx context.Context, variantID int64, stock int) (*models.Variant, error) {
	ctx, span := util.StartSpan(ctx, "InventoryService.RestockVariant")
	defer span.End()

	previous, err := s.catalog.UpdateVariantStock(ctx, variantID, stock)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Variant restocked",
		zap.Int64("variant_id", variantID),
		zap.Int("previous", previous),
		zap.Int("stock", stock))

	if previous == 0 && stock > 0 {
		event := &models.StockRestoredEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeStockRestored,
				Timestamp: time.Now(),
			},
			VariantID: variantID,
			Stock:     stock,
		}
		if err := s.publisher.PublishStockRestored(ctx, event); err != nil {
			s.logger.Error("Failed to publish StockRestored event", zap.Error(err))
		}
	}

	return s.catalog.GetVariantByID(ctx, variantID)
}
