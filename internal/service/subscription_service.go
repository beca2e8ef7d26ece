package service

import (
	"context"
	"strings"
	"time"

	"storefront/internal/kv"
	"storefront/internal/models"
	"storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubscriptionService manages restock alert requests. A subscription is
// unique per (variant, email) while un-notified; once notified it is spent
// and a fresh subscription for the same pair creates a new record.
type SubscriptionService struct {
	kv     kv.Store
	logger *zap.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(store kv.Store) *SubscriptionService {
	return &SubscriptionService{
		kv:     store,
		logger: util.GetLogger(),
	}
}

func (s *SubscriptionService) load(ctx context.Context) []models.StockSubscription {
	var subs []models.StockSubscription
	kv.Load(ctx, s.kv, kv.KeySubscriptions, &subs, false)
	return subs
}

func (s *SubscriptionService) persist(ctx context.Context, subs []models.StockSubscription) {
	kv.Save(ctx, s.kv, kv.KeySubscriptions, subs)
}

// Subscribe returns the existing un-notified subscription for the same
// variant and email (case-insensitive), or creates and persists a new one.
func (s *SubscriptionService) Subscribe(ctx context.Context, variantID int64, email, phone string) *models.StockSubscription {
	subs := s.load(ctx)
	for i := range subs {
		if subs[i].VariantID == variantID && !subs[i].Notified && strings.EqualFold(subs[i].Email, email) {
			existing := subs[i]
			return &existing
		}
	}

	sub := models.StockSubscription{
		ID:        uuid.New().String(),
		VariantID: variantID,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now(),
	}
	subs = append(subs, sub)
	s.persist(ctx, subs)

	util.StockSubscriptionsTotal.Inc()
	s.logger.Info("Stock subscription created",
		zap.String("id", sub.ID), zap.Int64("variant_id", variantID))
	return &sub
}

// ForVariant returns all un-notified subscriptions for the variant, the
// fan-out list used when stock is restored.
func (s *SubscriptionService) ForVariant(ctx context.Context, variantID int64) []models.StockSubscription {
	var out []models.StockSubscription
	for _, sub := range s.load(ctx) {
		if sub.VariantID == variantID && !sub.Notified {
			out = append(out, sub)
		}
	}
	return out
}

// MarkNotified transitions the subscription to notified, irreversibly.
func (s *SubscriptionService) MarkNotified(ctx context.Context, id string) {
	subs := s.load(ctx)
	for i := range subs {
		if subs[i].ID == id {
			subs[i].Notified = true
			s.persist(ctx, subs)
			util.StockRestockNotifiedTotal.Inc()
			return
		}
	}
}

// Unsubscribe hard-deletes the subscription.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, id string) {
	subs := s.load(ctx)
	for i := range subs {
		if subs[i].ID == id {
			subs = append(subs[:i], subs[i+1:]...)
			s.persist(ctx, subs)
			return
		}
	}
}
