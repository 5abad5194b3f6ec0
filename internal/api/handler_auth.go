package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pantry-sync-backend/internal/apperr"
	"pantry-sync-backend/internal/model"
)

// PutAuth handles PUT /api/auth, storing the Skylight frame credentials.
func (h *Handler) PutAuth(c *gin.Context) {
	var creds model.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.creds.Save(c.Request.Context(), creds); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAuth handles GET /api/auth. The token itself is never returned.
func (h *Handler) GetAuth(c *gin.Context) {
	creds, err := h.creds.Load(c.Request.Context())
	if errors.Is(err, apperr.ErrUnauthenticated) {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"frameId":       creds.FrameID,
		"authType":      creds.AuthType,
	})
}

// DeleteAuth handles DELETE /api/auth (sign out).
func (h *Handler) DeleteAuth(c *gin.Context) {
	if err := h.creds.Clear(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
