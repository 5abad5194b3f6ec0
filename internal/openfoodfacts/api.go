package openfoodfacts

import "pantry-sync-backend/internal/model"

// ProductResponse models GET /api/v2/product/{barcode}.
type ProductResponse struct {
	Status        int                    `json:"status"`
	StatusVerbose string                 `json:"status_verbose"`
	Code          string                 `json:"code"`
	Product       *model.ExternalProduct `json:"product"`
}

// SearchPage models GET /cgi/search.pl?json=1.
type SearchPage struct {
	Count     int                     `json:"count"`
	Page      int                     `json:"page"`
	PageCount int                     `json:"page_count"`
	PageSize  int                     `json:"page_size"`
	Products  []model.ExternalProduct `json:"products"`
}

// barcodeRequest validates a lookup barcode (EAN-8 through GTIN-14).
type barcodeRequest struct {
	Barcode string `validate:"required,numeric,min=8,max=14"`
}
