package service

import (
	"context"
	"time"

	"storefront/internal/kv"
	"storefront/internal/models"
	"storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publisher is the slice of the event broker the services publish through.
// *broker.EventPublisher satisfies it; tests supply a stub.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error
	PublishStockRestored(ctx context.Context, event *models.StockRestoredEvent) error
}

// OrderService persists orders as a flat list in the key-value store:
// snapshots of cart contents plus customer/shipping info, created at
// checkout and read back for dashboards, history and tracking.
type OrderService struct {
	kv        kv.Store
	cart      *CartService
	publisher Publisher
	logger    *zap.Logger
}

// CheckoutRequest carries the customer/shipping info the order snapshot
// is stamped with.
type CheckoutRequest struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address" binding:"required"`
	Department string `json:"department" binding:"required"`
	City       string `json:"city" binding:"required"`
}

// NewOrderService creates a new order service
func NewOrderService(store kv.Store, cart *CartService, publisher Publisher) *OrderService {
	return &OrderService{
		kv:        store,
		cart:      cart,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

func (s *OrderService) load(ctx context.Context) []models.Order {
	var orders []models.Order
	kv.Load(ctx, s.kv, kv.KeyOrders, &orders, false)
	return orders
}

// Checkout snapshots the cart into a pending order, clears the cart and
// publishes the placed event.
func (s *OrderService) Checkout(ctx context.Context, req *CheckoutRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Checkout")
	defer span.End()

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	totals := s.cart.Totals(ctx)

	now := time.Now()
	order := models.Order{
		ID:           uuid.New().String(),
		CustomerID:   req.CustomerID,
		CustomerName: req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Department:   req.Department,
		City:         req.City,
		Lines:        lines,
		Subtotal:     totals.Subtotal,
		ShippingCost: totals.ShippingCost,
		Total:        totals.Total,
		Status:       models.OrderStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	orders := append(s.load(ctx), order)
	kv.Save(ctx, s.kv, kv.KeyOrders, orders)

	s.cart.Clear(ctx)

	util.OrdersPlacedTotal.Inc()
	s.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.Int64("total", order.Total))

	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderPlaced,
			Timestamp: now,
		},
		OrderID: order.ID,
		Total:   order.Total,
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
	}

	return &order, nil
}

// GetOrder retrieves an order by ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	for _, order := range s.load(ctx) {
		if order.ID == id {
			result := order
			return &result, nil
		}
	}
	return nil, ErrOrderNotFound
}

// ListOrders returns a page of orders, newest first, and the total count.
func (s *OrderService) ListOrders(ctx context.Context, page, perPage int) ([]models.Order, int) {
	orders := s.load(ctx)
	// newest first
	for i, j := 0, len(orders)-1; i < j; i, j = i+1, j-1 {
		orders[i], orders[j] = orders[j], orders[i]
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	total := len(orders)
	start := (page - 1) * perPage
	if start >= total {
		return []models.Order{}, total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return orders[start:end], total
}

// OrdersForCustomer returns all orders for the customer, newest first.
func (s *OrderService) OrdersForCustomer(ctx context.Context, customerID string) []models.Order {
	var out []models.Order
	orders := s.load(ctx)
	for i := len(orders) - 1; i >= 0; i-- {
		if orders[i].CustomerID == customerID {
			out = append(out, orders[i])
		}
	}
	return out
}

// UpdateStatus transitions the order to a new status and publishes the
// status-changed event the notification worker reacts to.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateStatus")
	defer span.End()

	if !models.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	orders := s.load(ctx)
	for i := range orders {
		if orders[i].ID != id {
			continue
		}

		orders[i].Status = status
		orders[i].UpdatedAt = time.Now()
		kv.Save(ctx, s.kv, kv.KeyOrders, orders)

		util.OrderStatusUpdatesTotal.WithLabelValues(status).Inc()
		s.logger.Info("Order status updated",
			zap.String("order_id", id), zap.String("status", status))

		event := &models.OrderStatusChangedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderStatusChanged,
				Timestamp: time.Now(),
			},
			OrderID: id,
			Status:  status,
		}
		if err := s.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
		}

		result := orders[i]
		return &result, nil
	}

	return nil, ErrOrderNotFound
}
