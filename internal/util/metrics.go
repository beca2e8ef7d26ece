package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartItemsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_added_total",
		Help: "Total number of items added to carts",
	})

	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders placed at checkout",
	})

	OrderStatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_updates_total",
		Help: "Total number of admin order status updates",
	}, []string{"status"})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logins_total",
		Help: "Total number of login attempts",
	}, []string{"role", "outcome"})

	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "registrations_total",
		Help: "Total number of customer registration attempts",
	}, []string{"outcome"})

	NotificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Total number of notification records written",
	}, []string{"channel"})

	StockSubscriptionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_subscriptions_total",
		Help: "Total number of restock alert subscriptions created",
	})

	StockRestockNotifiedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_restock_notified_total",
		Help: "Total number of restock subscriptions notified",
	})

	PaymentCheckoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_checkouts_total",
		Help: "Total number of payment checkout sessions created",
	})

	KVLoadFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kv_load_failed_total",
		Help: "Total number of key-value loads resolved to a fallback",
	}, []string{"reason"})

	KVSaveFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kv_save_failed_total",
		Help: "Total number of best-effort key-value saves that failed",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
