package api

import (
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"pantry-sync-backend/config"
	"pantry-sync-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	// Responses carrying fresh item ids are never replayed.
	cacheStore := cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	caching := mw.Cache(cacheStore, cfg.CacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/products", h.SearchProducts)
		api.GET("/products/:barcode", h.GetProduct)
		api.GET("/products/:barcode/nutrition", caching, h.GetNutrition)
		api.GET("/products/:barcode/image", caching, h.GetProductImage)
		api.GET("/attribution", h.GetAttribution)

		api.GET("/pantry", h.ListPantry)
		api.GET("/pantry/groups", h.GetPantryGroups)
		api.POST("/pantry", h.AddPantryItem)
		api.DELETE("/pantry", h.ClearPantry)
		api.PUT("/pantry/:id", h.UpdatePantryItem)
		api.DELETE("/pantry/:id", h.DeletePantryItem)
		api.POST("/pantry/:id/toggle", h.TogglePantryItem)
		api.POST("/pantry/:id/push", h.PushPantryItem)

		api.POST("/scan", h.Scan)
		api.GET("/photos/:ref", h.GetPhoto)
		api.DELETE("/photos/:ref", h.DeletePhoto)

		api.GET("/auth", h.GetAuth)
		api.PUT("/auth", h.PutAuth)
		api.DELETE("/auth", h.DeleteAuth)

		api.GET("/lists", h.GetLists)
		api.GET("/lists/:list_id", h.GetList)
		api.POST("/lists/:list_id/items", h.AddListItem)
		api.POST("/lists/:list_id/items/:item_id/toggle", h.ToggleListItem)
		api.GET("/lists/:list_id/share", h.ShareList)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	return r
}
