package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pantry-sync-backend/internal/listpush"
	"pantry-sync-backend/internal/model"
	"pantry-sync-backend/internal/pantry"
)

type pantryItemRequest struct {
	ID         string               `json:"id"`
	Name       string               `json:"name" binding:"required"`
	Quantity   string               `json:"quantity"`
	Category   model.ItemCategory   `json:"category"`
	ExpiryDate *time.Time           `json:"expiryDate"`
	ImageRef   *string              `json:"imageReference"`
	Barcode    *string              `json:"barcode"`
	IsInList   bool                 `json:"isInList"`
	Nutrition  *model.NutritionInfo `json:"nutrition"`
}

// toItem applies the same defaults as a freshly normalized item.
func (r pantryItemRequest) toItem() (model.PantryItem, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return model.PantryItem{}, errors.New("name must not be blank")
	}
	item := model.PantryItem{
		ID:         r.ID,
		Name:       name,
		Quantity:   strings.TrimSpace(r.Quantity),
		Category:   r.Category,
		ExpiryDate: r.ExpiryDate,
		ImageRef:   r.ImageRef,
		Barcode:    r.Barcode,
		IsInList:   r.IsInList,
		Nutrition:  r.Nutrition,
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Quantity == "" {
		item.Quantity = model.DefaultQuantity
	}
	if !item.Category.Valid() {
		item.Category = model.CategoryOther
	}
	return item, nil
}

// ListPantry handles GET /api/pantry with optional ?q= and ?category= filters.
func (h *Handler) ListPantry(c *gin.Context) {
	var category *model.ItemCategory
	if raw := c.Query("category"); raw != "" {
		cat, ok := model.ParseCategory(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
			return
		}
		category = &cat
	}

	items, err := h.pantry.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": pantry.Filter(items, c.Query("q"), category)})
}

// GetPantryGroups handles GET /api/pantry/groups.
func (h *Handler) GetPantryGroups(c *gin.Context) {
	items, err := h.pantry.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	groups := pantry.GroupByCategory(items)
	if groups == nil {
		groups = []model.CategoryGroup{}
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// AddPantryItem handles POST /api/pantry.
func (h *Handler) AddPantryItem(c *gin.Context) {
	var req pantryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := req.toItem()
	if err != nil {
		badRequest(c, err)
		return
	}

	if err := h.pantry.Add(c.Request.Context(), item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdatePantryItem handles PUT /api/pantry/:id. The item is replaced wholesale.
func (h *Handler) UpdatePantryItem(c *gin.Context) {
	var req pantryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.ID = c.Param("id")
	item, err := req.toItem()
	if err != nil {
		badRequest(c, err)
		return
	}

	if !h.pantryItemExists(c, item.ID) {
		return
	}
	if err := h.pantry.Update(c.Request.Context(), item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeletePantryItem handles DELETE /api/pantry/:id. Deleting an unknown id succeeds.
func (h *Handler) DeletePantryItem(c *gin.Context) {
	if err := h.pantry.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearPantry handles DELETE /api/pantry.
func (h *Handler) ClearPantry(c *gin.Context) {
	if err := h.pantry.Clear(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TogglePantryItem handles POST /api/pantry/:id/toggle and returns the updated item.
func (h *Handler) TogglePantryItem(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if !h.pantryItemExists(c, id) {
		return
	}
	if err := h.pantry.ToggleInList(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	item, _, err := h.pantry.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type pushRequest struct {
	ListID string `json:"listId"`
}

// PushPantryItem handles POST /api/pantry/:id/push. The item is queued for the
// given list, or the active one, and put on it in the background.
func (h *Handler) PushPantryItem(c *gin.Context) {
	var req pushRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	id := c.Param("id")
	if !h.pantryItemExists(c, id) {
		return
	}

	listID := req.ListID
	if listID == "" {
		active, ok := h.lists.Active()
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No shopping list selected"})
			return
		}
		listID = active
	}
	if !h.ensureListCached(c, listID) {
		return
	}

	job := listpush.Job{ItemID: id, ListID: listID}
	if err := h.pusher.Dispatch(c.Request.Context(), job); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"itemId": id, "listId": listID})
}

// pantryItemExists writes a 404 and returns false when id is not in the pantry.
func (h *Handler) pantryItemExists(c *gin.Context, id string) bool {
	_, ok, err := h.pantry.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return false
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pantry item not found"})
		return false
	}
	return true
}
