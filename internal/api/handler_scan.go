package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pantry-sync-backend/internal/model"
	"pantry-sync-backend/internal/scan"
)

// Scan handles POST /api/scan. The multipart form carries the photo as "image",
// recognized object labels as repeated "label" fields with matching "confidence"
// fields, and raw recognized text as repeated "text" fields.
func (h *Handler) Scan(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		badRequest(c, err)
		return
	}

	labels := c.PostFormArray("label")
	confidences := c.PostFormArray("confidence")
	if len(confidences) > len(labels) {
		badRequest(c, fmt.Errorf("%d confidences for %d labels", len(confidences), len(labels)))
		return
	}

	detections := make([]model.Detection, len(labels))
	for i, label := range labels {
		detections[i].Label = label
		if i < len(confidences) && confidences[i] != "" {
			v, err := strconv.ParseFloat(confidences[i], 64)
			if err != nil {
				badRequest(c, err)
				return
			}
			detections[i].Confidence = &v
		}
	}

	f, err := file.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer f.Close()

	rec := scan.StaticRecognizer{Detections: detections, TextLines: c.PostFormArray("text")}
	result, items, err := h.scanner.Scan(c.Request.Context(), f, rec)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imageReference": result.ImageRef,
		"detections":     result.Detections,
		"items":          items,
	})
}

// GetPhoto handles GET /api/photos/:ref.
func (h *Handler) GetPhoto(c *gin.Context) {
	data, err := h.scanner.Photo(c.Request.Context(), c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/jpeg", data)
}

// DeletePhoto handles DELETE /api/photos/:ref, e.g. after discarding a scan.
func (h *Handler) DeletePhoto(c *gin.Context) {
	if err := h.scanner.DeletePhoto(c.Request.Context(), c.Param("ref")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
