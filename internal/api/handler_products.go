package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pantry-sync-backend/internal/openfoodfacts"
)

// GetProduct handles GET /api/products/:barcode and returns an unsaved pantry item preview.
func (h *Handler) GetProduct(c *gin.Context) {
	item, err := h.lookup.Preview(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// GetNutrition handles GET /api/products/:barcode/nutrition.
func (h *Handler) GetNutrition(c *gin.Context) {
	info, err := h.lookup.Nutrition(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nutrition": info})
}

// GetProductImage handles GET /api/products/:barcode/image by proxying the product photo.
func (h *Handler) GetProductImage(c *gin.Context) {
	data, err := h.lookup.Image(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

// SearchProducts handles GET /api/products?q=&page=.
func (h *Handler) SearchProducts(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		page = max(p, 1)
	}

	items, err := h.lookup.Search(c.Request.Context(), c.Query("q"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "items": items})
}

// GetAttribution handles GET /api/attribution. Product data is ODbL licensed.
func (h *Handler) GetAttribution(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"attribution": openfoodfacts.Attribution,
		"text":        openfoodfacts.Attribution.Text(),
	})
}
