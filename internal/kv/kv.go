package kv

import "context"

// Store is the storage port every mock service persists through. Values are
// JSON blobs under fixed string keys; there is no locking and no transaction
// boundary, so concurrent writers to the same key are last-write-wins.
type Store interface {
	// Get returns the raw value under key and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Stable key names. These must be preserved for compatibility with data
// written by earlier revisions of the storefront.
const (
	KeyCart          = "panacaps_cart"
	KeyAdminToken    = "panacaps_admin_token"
	KeyAdminUser     = "panacaps_admin_user"
	KeyCustomers     = "panacaps_customers"
	KeyCustomerToken = "panacaps_customer_token"
	KeyCustomerUser  = "panacaps_customer_user"
	KeyWishlistGuest = "panacaps_wishlist_guest"
	KeySubscriptions = "panacaps_stock_subscriptions"
	KeyNotifications = "panacaps_notifications"
	KeyOrders        = "panacaps_orders"
	KeySettings      = "panacaps_settings"
)

const wishlistPrefix = "panacaps_wishlist_"

// WishlistKey resolves the storage scope for a wishlist: a per-customer key
// when authenticated, the shared guest key otherwise.
func WishlistKey(customerID string) string {
	if customerID == "" {
		return KeyWishlistGuest
	}
	return wishlistPrefix + customerID
}
