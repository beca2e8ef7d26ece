package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/kv"
	"storefront/internal/models"
	"storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService records simulated email and WhatsApp sends in an
// append-only log. Nothing is delivered; the record-and-log senders stand in
// for a future provider integration.
type NotificationService struct {
	kv       kv.Store
	catalog  CatalogReader
	subs     *SubscriptionService
	settings *SettingsService
	logger   *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(store kv.Store, catalog CatalogReader, subs *SubscriptionService, settings *SettingsService) *NotificationService {
	return &NotificationService{
		kv:       store,
		catalog:  catalog,
		subs:     subs,
		settings: settings,
		logger:   util.GetLogger(),
	}
}

func (s *NotificationService) append(ctx context.Context, rec models.NotificationRecord) *models.NotificationRecord {
	var log []models.NotificationRecord
	kv.Load(ctx, s.kv, kv.KeyNotifications, &log, false)
	log = append(log, rec)
	kv.Save(ctx, s.kv, kv.KeyNotifications, log)

	util.NotificationsSentTotal.WithLabelValues(rec.Channel).Inc()
	s.logger.Info("Notification sent",
		zap.String("channel", rec.Channel),
		zap.String("recipient", rec.Recipient),
		zap.String("subject", rec.Subject))
	return &rec
}

// SendEmail appends an email record with a generated ID and timestamp.
func (s *NotificationService) SendEmail(ctx context.Context, to, subject, body string) *models.NotificationRecord {
	return s.append(ctx, models.NotificationRecord{
		ID:        uuid.New().String(),
		Channel:   models.ChannelEmail,
		Recipient: to,
		Subject:   subject,
		Body:      body,
		Status:    models.NotificationStatusSent,
		CreatedAt: time.Now(),
	})
}

// SendWhatsApp appends a WhatsApp record with a generated ID and timestamp.
func (s *NotificationService) SendWhatsApp(ctx context.Context, phone, body string) *models.NotificationRecord {
	return s.append(ctx, models.NotificationRecord{
		ID:        uuid.New().String(),
		Channel:   models.ChannelWhatsApp,
		Recipient: phone,
		Body:      body,
		Status:    models.NotificationStatusSent,
		CreatedAt: time.Now(),
	})
}

// Log returns the full append-only notification log.
func (s *NotificationService) Log(ctx context.Context) []models.NotificationRecord {
	var log []models.NotificationRecord
	kv.Load(ctx, s.kv, kv.KeyNotifications, &log, false)
	return log
}

// NotifyOrderPlaced sends the order confirmation to the customer and a copy
// to the store contact. The WhatsApp send is skipped when the order has no
// phone on file.
func (s *NotificationService) NotifyOrderPlaced(ctx context.Context, order *models.Order) {
	settings := s.settings.Get(ctx)

	subject := fmt.Sprintf("Confirmación de pedido %s", order.ID)
	body := fmt.Sprintf("Hola %s, recibimos tu pedido %s por $%d. Te avisaremos cuando sea despachado.",
		order.CustomerName, order.ID, order.Total)

	s.SendEmail(ctx, order.Email, subject, body)
	s.SendEmail(ctx, settings.ContactEmail,
		fmt.Sprintf("Nuevo pedido %s", order.ID),
		fmt.Sprintf("Pedido %s de %s por $%d (%d artículos).",
			order.ID, order.CustomerName, order.Total, len(order.Lines)))

	if order.Phone != "" {
		s.SendWhatsApp(ctx, order.Phone,
			fmt.Sprintf("Tu pedido %s fue recibido. Total: $%d.", order.ID, order.Total))
	}
}

func statusMessage(status string) string {
	switch status {
	case models.OrderStatusConfirmed:
		return "fue confirmado"
	case models.OrderStatusShipped:
		return "fue despachado"
	case models.OrderStatusDelivered:
		return "fue entregado"
	case models.OrderStatusCancelled:
		return "fue cancelado"
	default:
		return "cambió de estado"
	}
}

// NotifyOrderStatusChanged tells the customer about a status transition.
func (s *NotificationService) NotifyOrderStatusChanged(ctx context.Context, order *models.Order) {
	subject := fmt.Sprintf("Tu pedido %s %s", order.ID, statusMessage(order.Status))
	body := fmt.Sprintf("Hola %s, tu pedido %s %s.", order.CustomerName, order.ID, statusMessage(order.Status))

	s.SendEmail(ctx, order.Email, subject, body)

	if order.Phone != "" {
		s.SendWhatsApp(ctx, order.Phone, body)
	}
}

// NotifyStockRestored fans out to every un-notified subscription for the
// variant. The owning product is looked up once; each subscription gets the
// email send, the WhatsApp send when a phone is on file, and is then marked
// notified. There is no partial-failure handling: the loop always marks.
func (s *NotificationService) NotifyStockRestored(ctx context.Context, variantID int64) {
	subscriptions := s.subs.ForVariant(ctx, variantID)
	if len(subscriptions) == 0 {
		return
	}

	name := fmt.Sprintf("variante %d", variantID)
	if variant, err := s.catalog.GetVariantByID(ctx, variantID); err == nil {
		if product, err := s.catalog.GetProductByID(ctx, variant.ProductID); err == nil {
			name = fmt.Sprintf("%s (%s %s)", product.Name, variant.Size, variant.Color)
		}
	}

	for _, sub := range subscriptions {
		body := fmt.Sprintf("¡%s está de vuelta en stock! Corre antes de que se agote.", name)
		s.SendEmail(ctx, sub.Email, fmt.Sprintf("%s disponible de nuevo", name), body)
		if sub.Phone != "" {
			s.SendWhatsApp(ctx, sub.Phone, body)
		}
		s.subs.MarkNotified(ctx, sub.ID)
	}

	s.logger.Info("Restock fan-out completed",
		zap.Int64("variant_id", variantID),
		zap.Int("subscriptions", len(subscriptions)))
}
