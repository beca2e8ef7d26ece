package api

import (
	"net/http"

	"storefront/internal/service"

	"github.com/gin-gonic/gin"
)

type credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// register creates a customer account and auto-logs-in. Registration is a
// guest-to-authenticated transition like login, so it merges the guest
// wishlist into the new account's scope the same way.
func (h *Handler) register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Datos de registro inválidos")
		return
	}

	customer, token, err := h.customerAuth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, http.StatusConflict, err.Error())
		return
	}

	wishlist := h.wishlist.MergeGuest(c.Request.Context(), customer.ID)

	respondData(c, http.StatusCreated, gin.H{
		"user":     customer.Sanitized(),
		"token":    token,
		"wishlist": wishlist,
	})
}

// login authenticates a customer. On success the guest wishlist is merged
// into the customer scope, exactly once, as part of this completion handler.
func (h *Handler) login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Datos de acceso inválidos")
		return
	}

	customer, token, err := h.customerAuth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	wishlist := h.wishlist.MergeGuest(c.Request.Context(), customer.ID)

	respondData(c, http.StatusOK, gin.H{
		"user":     customer.Sanitized(),
		"token":    token,
		"wishlist": wishlist,
	})
}

// logout destroys the customer session.
func (h *Handler) logout(c *gin.Context) {
	h.customerAuth.Logout(c.Request.Context())
	respondMessage(c, http.StatusOK, "Sesión cerrada")
}

// me returns the current customer, or 401.
func (h *Handler) me(c *gin.Context) {
	customer := h.customerAuth.Authenticate(c.Request.Context(), bearerToken(c))
	if customer == nil {
		respondError(c, http.StatusUnauthorized, "No autorizado")
		return
	}
	respondData(c, http.StatusOK, customer.Sanitized())
}

// updateProfile merges a partial profile update into the current customer.
func (h *Handler) updateProfile(c *gin.Context) {
	customer := h.customerAuth.Authenticate(c.Request.Context(), bearerToken(c))
	if customer == nil {
		respondError(c, http.StatusUnauthorized, "No autorizado")
		return
	}

	var patch service.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, "Datos de perfil inválidos")
		return
	}

	updated, err := h.customerAuth.UpdateProfile(c.Request.Context(), customer.ID, patch)
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}

	respondData(c, http.StatusOK, updated.Sanitized())
}

// adminLogin authenticates the admin identity.
func (h *Handler) adminLogin(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Datos de acceso inválidos")
		return
	}

	admin, token, err := h.adminAuth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"user":  admin,
		"token": token,
	})
}

// adminLogout destroys the admin session.
func (h *Handler) adminLogout(c *gin.Context) {
	h.adminAuth.Logout(c.Request.Context())
	respondMessage(c, http.StatusOK, "Sesión cerrada")
}
