package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront/internal/service"
	"storefront/internal/store"
	"storefront/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog       *store.Catalog
	cart          *service.CartService
	adminAuth     *service.AdminAuthService
	customerAuth  *service.CustomerAuthService
	wishlist      *service.WishlistService
	subscriptions *service.SubscriptionService
	orders        *service.OrderService
	inventory     *service.InventoryService
	payments      *service.PaymentService
	settings      *service.SettingsService
	notifications *service.NotificationService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *store.Catalog,
	cart *service.CartService,
	adminAuth *service.AdminAuthService,
	customerAuth *service.CustomerAuthService,
	wishlist *service.WishlistService,
	subscriptions *service.SubscriptionService,
	orders *service.OrderService,
	inventory *service.InventoryService,
	payments *service.PaymentService,
	settings *service.SettingsService,
	notifications *service.NotificationService,
) *Handler {
	return &Handler{
		catalog:       catalog,
		cart:          cart,
		adminAuth:     adminAuth,
		customerAuth:  customerAuth,
		wishlist:      wishlist,
		subscriptions: subscriptions,
		orders:        orders,
		inventory:     inventory,
		payments:      payments,
		settings:      settings,
		notifications: notifications,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)

		v1.POST("/auth/register", h.register)
		v1.POST("/auth/login", h.login)
		v1.POST("/auth/logout", h.logout)
		v1.GET("/auth/me", h.me)
		v1.PUT("/auth/profile", h.updateProfile)

		v1.POST("/admin/login", h.adminLogin)
		v1.POST("/admin/logout", h.adminLogout)

		v1.GET("/cart", h.getCart)
		v1.POST("/cart/items", h.addCartItem)
		v1.PUT("/cart/items/:variantId", h.updateCartItem)
		v1.DELETE("/cart/items/:variantId", h.removeCartItem)
		v1.DELETE("/cart", h.clearCart)

		v1.GET("/wishlist", h.getWishlist)
		v1.POST("/wishlist/:productId", h.toggleWishlist)
		v1.DELETE("/wishlist/:productId", h.removeWishlist)

		v1.POST("/stock-subscriptions", h.subscribeStock)
		v1.DELETE("/stock-subscriptions/:id", h.unsubscribeStock)

		v1.POST("/orders", h.checkout)
		v1.GET("/orders", h.customerOrders)
		v1.GET("/orders/:id", h.trackOrder)

		v1.POST("/payments/create", h.createPayment)

		admin := v1.Group("/admin", h.requireAdmin())
		{
			admin.GET("/orders", h.adminListOrders)
			admin.PATCH("/orders/:id/status", h.adminUpdateOrderStatus)
			admin.PATCH("/variants/:id/stock", h.adminRestockVariant)
			admin.GET("/settings", h.adminGetSettings)
			admin.PUT("/settings", h.adminUpdateSettings)
			admin.GET("/notifications", h.adminNotificationLog)
		}
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// currentCustomerID resolves the bearer token to a customer ID, empty for
// guests. Wishlist scope and order stamping both go through this.
func (h *Handler) currentCustomerID(c *gin.Context) string {
	customer := h.customerAuth.Authenticate(c.Request.Context(), bearerToken(c))
	if customer == nil {
		return ""
	}
	return customer.ID
}

// requireAdmin rejects requests whose bearer token does not resolve to the
// admin session. Admin-prefixed routes 401 here, which the storefront turns
// into a forced redirect to the login page.
func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.adminAuth.Authenticate(c.Request.Context(), bearerToken(c)) == nil {
			respondError(c, http.StatusUnauthorized, "No autorizado")
			c.Abort()
			return
		}
		c.Next()
	}
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	return page, perPage
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
