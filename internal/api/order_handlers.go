package api

import (
	"net/http"
	"strconv"

	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// checkout snapshots the cart into an order. An authenticated session stamps
// the order with the customer ID; guests check out with the form data alone.
func (h *Handler) checkout(c *gin.Context) {
	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Datos de envío inválidos")
		return
	}
	req.CustomerID = h.currentCustomerID(c)

	order, err := h.orders.Checkout(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondData(c, http.StatusCreated, order)
}

// customerOrders returns the order history for the current customer.
func (h *Handler) customerOrders(c *gin.Context) {
	customerID := h.currentCustomerID(c)
	if customerID == "" {
		respondError(c, http.StatusUnauthorized, "No autorizado")
		return
	}

	respondData(c, http.StatusOK, h.orders.OrdersForCustomer(c.Request.Context(), customerID))
}

// trackOrder returns a single order for the tracking page.
func (h *Handler) trackOrder(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	respondData(c, http.StatusOK, order)
}

type createPaymentRequest struct {
	Amount    int64  `json:"amount" binding:"required,min=1"`
	Reference string `json:"reference"`
}

// createPayment mints a checkout session for the payment widget.
func (h *Handler) createPayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Monto inválido")
		return
	}

	session := h.payments.CreateCheckout(c.Request.Context(), req.Amount, req.Reference)
	respondData(c, http.StatusCreated, session)
}

// adminListOrders returns a page of all orders, newest first.
func (h *Handler) adminListOrders(c *gin.Context) {
	page, perPage := pageParams(c)
	orders, total := h.orders.ListOrders(c.Request.Context(), page, perPage)
	respondPage(c, http.StatusOK, orders, page, perPage, total)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// adminUpdateOrderStatus transitions an order's status.
func (h *Handler) adminUpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Estado inválido")
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err == service.ErrInvalidStatus {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}

	respondData(c, http.StatusOK, order)
}

type restockRequest struct {
	Stock int `json:"stock" binding:"min=0"`
}

// adminRestockVariant sets a variant's stock count.
func (h *Handler) adminRestockVariant(c *gin.Context) {
	variantID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identificador de variante inválido")
		return
	}

	var req restockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Cantidad inválida")
		return
	}

	variant, err := h.inventory.RestockVariant(c.Request.Context(), variantID, req.Stock)
	if err != nil {
		respondError(c, http.StatusNotFound, "Variante no encontrada")
		return
	}

	respondData(c, http.StatusOK, variant)
}

// adminGetSettings returns the effective store settings.
func (h *Handler) adminGetSettings(c *gin.Context) {
	respondData(c, http.StatusOK, h.settings.Get(c.Request.Context()))
}

// adminUpdateSettings persists admin-configured settings.
func (h *Handler) adminUpdateSettings(c *gin.Context) {
	var settings models.StoreSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		respondError(c, http.StatusBadRequest, "Configuración inválida")
		return
	}

	respondData(c, http.StatusOK, h.settings.Update(c.Request.Context(), settings))
}

// adminNotificationLog returns the append-only notification log.
func (h *Handler) adminNotificationLog(c *gin.Context) {
	respondData(c, http.StatusOK, h.notifications.Log(c.Request.Context()))
}
