package models

import "time"

// Event types
const (
	EventTypeOrderPlaced        = "ORDER_PLACED"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
	EventTypeStockRestored      = "STOCK_RESTORED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderPlacedEvent published when checkout completes
type OrderPlacedEvent struct {
	BaseEvent
	OrderID string `json:"order_id"`
	Total   int64  `json:"total"`
}

// OrderStatusChangedEvent published when an admin updates an order status
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// StockRestoredEvent published when a variant goes from zero stock back
// into stock; drives the subscription fan-out.
type StockRestoredEvent struct {
	BaseEvent
	VariantID int64 `json:"variant_id"`
	Stock     int   `json:"stock"`
}
