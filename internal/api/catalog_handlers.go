package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// listProducts handles the paginated catalog listing
func (h *Handler) listProducts(c *gin.Context) {
	page, perPage := pageParams(c)

	products, total, err := h.catalog.ListProducts(c.Request.Context(), page, perPage)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "No se pudieron cargar los productos")
		return
	}

	respondPage(c, http.StatusOK, products, page, perPage, total)
}

// getProduct returns a product with its variants
func (h *Handler) getProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Identificador de producto inválido")
		return
	}

	product, err := h.catalog.GetProductByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, http.StatusNotFound, "Producto no encontrado")
		return
	}

	variants, err := h.catalog.GetVariantsByProductID(c.Request.Context(), id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "No se pudieron cargar las variantes")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"product":  product,
		"variants": variants,
	})
}
