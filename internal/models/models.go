package models

import "time"

// Product is catalog reference data. The cart only reads price and stock,
// it never writes back to the catalog.
type Product struct {
	ID          int64     `db:"id" json:"id"`
	SKU         string    `db:"sku" json:"sku"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	BasePrice   int64     `db:"base_price" json:"base_price"`
	ImageURL    string    `db:"image_url" json:"image_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Variant is a purchasable SKU of a product (size/color combination) with its
// own stock count and an optional price override that beats the base price.
type Variant struct {
	ID            int64     `db:"id" json:"id"`
	ProductID     int64     `db:"product_id" json:"product_id"`
	Size          string    `db:"size" json:"size"`
	Color         string    `db:"color" json:"color"`
	Stock         int       `db:"stock" json:"stock"`
	PriceOverride *int64    `db:"price_override" json:"price_override,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// CartLine ties one variant to a quantity. Uniqueness key is the variant ID.
type CartLine struct {
	ProductID   int64  `json:"product_id"`
	VariantID   int64  `json:"variant_id"`
	ProductName string `json:"product_name"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

// AdminUser is the single hardcoded admin identity.
type AdminUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Customer is a registered storefront account. Password holds the encoded
// form and must never leave the persistence layer; use Sanitized for
// anything user-facing.
type Customer struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address,omitempty"`
	Department string    `json:"department,omitempty"`
	City       string    `json:"city,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Sanitized returns a copy safe to return to clients.
func (c Customer) Sanitized() Customer {
	c.Password = ""
	return c
}

// StoreSettings are admin-configurable overrides for the compiled shipping
// defaults and contact channels.
type StoreSettings struct {
	FreeShippingThreshold int64  `json:"free_shipping_threshold"`
	ShippingCost          int64  `json:"shipping_cost"`
	ContactEmail          string `json:"contact_email"`
	ContactPhone          string `json:"contact_phone"`
}

// StockSubscription is a restock alert request keyed by (variant, email).
// Notified flips to true exactly once when the restock notification fires.
type StockSubscription struct {
	ID        string    `json:"id"`
	VariantID int64     `json:"variant_id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Notified  bool      `json:"notified"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification channels
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
)

// NotificationRecord is an append-only log entry for a simulated send.
type NotificationRecord struct {
	ID        string    `json:"id"`
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationStatusSent is the only status a record is ever written with.
const NotificationStatusSent = "sent"

// Order is a snapshot of cart contents plus customer/shipping info.
type Order struct {
	ID           string     `json:"id"`
	CustomerID   string     `json:"customer_id,omitempty"`
	CustomerName string     `json:"customer_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	Address      string     `json:"address"`
	Department   string     `json:"department"`
	City         string     `json:"city"`
	Lines        []CartLine `json:"lines"`
	Subtotal     int64      `json:"subtotal"`
	ShippingCost int64      `json:"shipping_cost"`
	Total        int64      `json:"total"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Order statuses
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
