package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pantry-sync-backend/internal/skylight"
)

// GetLists handles GET /api/lists.
func (h *Handler) GetLists(c *gin.Context) {
	creds, err := h.creds.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	lists, err := h.lists.Lists(c.Request.Context(), creds)
	if err != nil {
		respondError(c, err)
		return
	}
	active, _ := h.lists.Active()
	c.JSON(http.StatusOK, gin.H{"lists": lists, "activeListId": active})
}

// GetList handles GET /api/lists/:list_id. It always refreshes from Skylight,
// discarding local edits, and makes the list the active one.
func (h *Handler) GetList(c *gin.Context) {
	creds, err := h.creds.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	detail, err := h.lists.Refresh(c.Request.Context(), creds, c.Param("list_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

type addListItemRequest struct {
	Label   string  `json:"label" binding:"required"`
	Section *string `json:"section"`
}

// AddListItem handles POST /api/lists/:list_id/items. The item is only added to
// the cached copy and carries a temporary id.
func (h *Handler) AddListItem(c *gin.Context) {
	var req addListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	listID := c.Param("list_id")
	if !h.ensureListCached(c, listID) {
		return
	}

	item, err := h.lists.AppendLocal(listID, req.Label, req.Section)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ToggleListItem handles POST /api/lists/:list_id/items/:item_id/toggle.
func (h *Handler) ToggleListItem(c *gin.Context) {
	listID := c.Param("list_id")
	if !h.ensureListCached(c, listID) {
		return
	}

	item, err := h.lists.ToggleStatus(listID, c.Param("item_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// ShareList handles GET /api/lists/:list_id/share and returns plain text.
func (h *Handler) ShareList(c *gin.Context) {
	listID := c.Param("list_id")
	if !h.ensureListCached(c, listID) {
		return
	}

	detail, _ := h.lists.Get(listID)
	c.String(http.StatusOK, skylight.ShareText(detail.List, detail.Items))
}

// ensureListCached fetches listID if there is no cached copy. It writes the
// error response and returns false on failure.
func (h *Handler) ensureListCached(c *gin.Context, listID string) bool {
	if _, ok := h.lists.Get(listID); ok {
		return true
	}

	creds, err := h.creds.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return false
	}
	if _, err := h.lists.Refresh(c.Request.Context(), creds, listID); err != nil {
		respondError(c, err)
		return false
	}
	return true
}
