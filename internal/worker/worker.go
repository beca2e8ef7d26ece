package worker

import (
	"context"
	"log"

	"storefront/internal/broker"
	"storefront/internal/models"
	"storefront/internal/service"
)

// NotificationWorker consumes storefront events and runs the notification
// orchestrations off the request path.
type NotificationWorker struct {
	consumer      *broker.Consumer
	eventHandler  *broker.EventHandler
	orders        *service.OrderService
	notifications *service.NotificationService
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(
	consumer *broker.Consumer,
	orders *service.OrderService,
	notifications *service.NotificationService,
) *NotificationWorker {
	w := &NotificationWorker{
		consumer:      consumer,
		orders:        orders,
		notifications: notifications,
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderPlaced(w.handleOrderPlaced)
	eventHandler.OnOrderStatusChanged(w.handleOrderStatusChanged)
	eventHandler.OnStockRestored(w.handleStockRestored)
	w.eventHandler = eventHandler

	return w
}

func (w *NotificationWorker) handleOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	order, err := w.orders.GetOrder(ctx, event.OrderID)
	if err != nil {
		return err
	}
	w.notifications.NotifyOrderPlaced(ctx, order)
	return nil
}

func (w *NotificationWorker) handleOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	order, err := w.orders.GetOrder(ctx, event.OrderID)
	if err != nil {
		return err
	}
	w.notifications.NotifyOrderStatusChanged(ctx, order)
	return nil
}

func (w *NotificationWorker) handleStockRestored(ctx context.Context, event *models.StockRestoredEvent) error {
	w.notifications.NotifyStockRestored(ctx, event.VariantID)
	return nil
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	log.Println("Starting notification worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	log.Println("Stopping notification worker...")
	return w.consumer.Close()
}
