package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	VariantID int64 `json:"variant_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) cartPayload(c *gin.Context) gin.H {
	return gin.H{
		"lines":  h.cart.Lines(),
		"totals": h.cart.Totals(c.Request.Context()),
		"notice": h.cart.Notice(),
	}
}

// getCart returns the cart lines, derived totals and the transient notice.
func (h *Handler) getCart(c *gin.Context) {
	respondData(c, http.StatusOK, h.cartPayload(c))
}

// addCartItem resolves the catalog references and adds to the cart.
func (h *Handler) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Datos de carrito inválidos")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, err := h.catalog.GetProductByID(c.Request.Context(), req.ProductID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Producto no encontrado")
		return
	}

	variant, err := h.catalog.GetVariantByID(c.Request.Context(), req.VariantID)
	if err != nil || variant.ProductID != product.ID {
		respondError(c, http.StatusNotFound, "Variante no encontrada")
		return
	}

	h.cart.AddItem(c.Request.Context(), product, variant, req.Quantity)
	respondData(c, http.StatusOK, h.cartPayload(c))
}

// updateCartItem updates a line quantity; zero or less removes the line.
func (h *Handler) updateCartItem(c *gin.Context) {
	variantID, err := strconv.ParseInt(c.Param("variantId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identificador de variante inválido")
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Cantidad inválida")
		return
	}

	h.cart.UpdateQuantity(c.Request.Context(), variantID, req.Quantity)
	respondData(c, http.StatusOK, h.cartPayload(c))
}

// removeCartItem deletes a line, no-op if absent.
func (h *Handler) removeCartItem(c *gin.Context) {
	variantID, err := strconv.ParseInt(c.Param("variantId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identificador de variante inválido")
		return
	}

	h.cart.RemoveItem(c.Request.Context(), variantID)
	respondData(c, http.StatusOK, h.cartPayload(c))
}

// clearCart empties all lines.
func (h *Handler) clearCart(c *gin.Context) {
	h.cart.Clear(c.Request.Context())
	respondData(c, http.StatusOK, h.cartPayload(c))
}

// getWishlist returns the wishlist for the resolved scope (customer/guest).
func (h *Handler) getWishlist(c *gin.Context) {
	ids := h.wishlist.List(c.Request.Context(), h.currentCustomerID(c))
	respondData(c, http.StatusOK, ids)
}

// toggleWishlist adds or removes the product in the resolved scope.
func (h *Handler) toggleWishlist(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identificador de producto inválido")
		return
	}

	ids := h.wishlist.Toggle(c.Request.Context(), h.currentCustomerID(c), productID)
	respondData(c, http.StatusOK, ids)
}

// removeWishlist removes the product from the resolved scope.
func (h *Handler) removeWishlist(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identificador de producto inválido")
		return
	}

	ids := h.wishlist.Remove(c.Request.Context(), h.currentCustomerID(c), productID)
	respondData(c, http.StatusOK, ids)
}

type subscribeRequest struct {
	VariantID int64  `json:"variant_id" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
}

// subscribeStock registers a restock alert; re-subscribing an un-notified
// pair returns the existing record.
func (h *Handler) subscribeStock(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Datos de suscripción inválidos")
		return
	}

	sub := h.subscriptions.Subscribe(c.Request.Context(), req.VariantID, req.Email, req.Phone)
	respondData(c, http.StatusCreated, sub)
}

// unsubscribeStock hard-deletes the subscription.
func (h *Handler) unsubscribeStock(c *gin.Context) {
	h.subscriptions.Unsubscribe(c.Request.Context(), c.Param("id"))
	respondMessage(c, http.StatusOK, "Suscripción eliminada")
}
