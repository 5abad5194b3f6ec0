package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"

	"pantry-sync-backend/config"
	"pantry-sync-backend/internal/apperr"
)

// maxUploadBytes caps how much of a photo upload is read.
const maxUploadBytes = 20 << 20

var acceptedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Photo is a captured image ready to be stored.
type Photo struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// Processor shrinks captured photos before they are kept in the blob store.
type Processor struct {
	maxDimension int
	quality      int
}

// NewProcessor creates a Processor from configuration.
func NewProcessor(cfg config.ImagingConfig) *Processor {
	return &Processor{maxDimension: cfg.MaxDimension, quality: cfg.JPEGQuality}
}

// Process sniffs the upload, rejecting anything but JPEG and PNG, scales it to
// fit the configured bounds and re-encodes it as JPEG.
func (p *Processor) Process(r io.Reader) (*Photo, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	detected := http.DetectContentType(data)
	if !acceptedTypes[detected] {
		return nil, fmt.Errorf("unsupported image format %s: %w", detected, apperr.ErrInvalidInput)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %v: %w", err, apperr.ErrInvalidInput)
	}

	img = fit(img, p.maxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	b := img.Bounds()
	return &Photo{Data: buf.Bytes(), MIME: "image/jpeg", Width: b.Dx(), Height: b.Dy()}, nil
}

// fit scales img down, keeping its aspect ratio, until neither side exceeds maxDim.
func fit(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	newW, newH := maxDim, maxDim
	if w > h {
		newH = max(1, h*maxDim/w)
	} else {
		newW = max(1, w*maxDim/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
