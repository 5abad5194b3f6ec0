package model

// Detection is one candidate label produced by the image recognizer.
type Detection struct {
	Label      string   `json:"label"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// ScanResult is the outcome of recognizing one captured photo.
type ScanResult struct {
	Detections []Detection `json:"detections"`
	ImageRef   *string     `json:"imageReference,omitempty"`
}
