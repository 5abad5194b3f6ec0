package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pantry-sync-backend/config"
	"pantry-sync-backend/internal/apperr"
	"pantry-sync-backend/internal/auth"
	"pantry-sync-backend/internal/listpush"
	"pantry-sync-backend/internal/openfoodfacts"
	"pantry-sync-backend/internal/pantry"
	"pantry-sync-backend/internal/scan"
	"pantry-sync-backend/internal/skylight"
)

// Dispatcher queues pantry items for pushing onto a shopping list.
type Dispatcher interface {
	Dispatch(ctx context.Context, job listpush.Job) error
}

// Deps are the services the API is a facade over.
type Deps struct {
	DB          *gorm.DB
	Pantry      *pantry.Reconciler
	Lookup      *openfoodfacts.Lookup
	Scanner     *scan.Service
	Credentials *auth.CredentialStore
	Lists       *skylight.ListCache
	Pusher      Dispatcher
	Push        config.PushConfig
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	db      *gorm.DB
	pantry  *pantry.Reconciler
	lookup  *openfoodfacts.Lookup
	scanner *scan.Service
	creds   *auth.CredentialStore
	lists   *skylight.ListCache
	pusher  Dispatcher
	push    config.PushConfig
}

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	return &Handler{
		db:      d.DB,
		pantry:  d.Pantry,
		lookup:  d.Lookup,
		scanner: d.Scanner,
		creds:   d.Credentials,
		lists:   d.Lists,
		pusher:  d.Pusher,
		push:    d.Push,
	}
}

// respondError writes err as {"error": message} with the status its kind maps to.
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": apperr.Message(err)})
}

// badRequest reports a malformed request body or parameter.
func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": apperr.Message(apperr.ErrInvalidInput), "detail": err.Error()})
}
