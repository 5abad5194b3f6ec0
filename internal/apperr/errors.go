package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrProductNotFound means the product database has no record for a barcode.
	// It matches ErrNotFound.
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	// ErrUnreachable wraps transport-level failures talking to an upstream service.
	ErrUnreachable = errors.New("service unreachable")
	// ErrInvalidInput is returned for empty or malformed barcodes and requests.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorageCorrupt marks a pantry blob that failed to parse. It is logged and
	// recovered locally, never returned to callers of the reconciler.
	ErrStorageCorrupt = errors.New("storage corrupt")
	// ErrUnauthenticated means remote list credentials are missing or rejected.
	ErrUnauthenticated = errors.New("not authenticated")
)

// Message maps an error to a short description suitable for showing to a user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrProductNotFound):
		return "Product not found"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case errors.Is(err, ErrInvalidInput):
		return "Invalid input"
	case errors.Is(err, ErrUnauthenticated):
		return "Not signed in to Skylight"
	case errors.Is(err, ErrUnreachable):
		return "Service unreachable, please try again later"
	case errors.Is(err, ErrStorageCorrupt):
		return "Saved pantry could not be read"
	default:
		return "Something went wrong"
	}
}

// Status maps an error to the HTTP status code the API responds with.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUnreachable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
