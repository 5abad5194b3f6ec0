package scan

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"pantry-sync-backend/internal/apperr"
	"pantry-sync-backend/internal/categorize"
	"pantry-sync-backend/internal/imaging"
	"pantry-sync-backend/internal/model"
	"pantry-sync-backend/internal/normalize"
	"pantry-sync-backend/internal/store"
)

// Recognizer finds candidate grocery labels in a photo. An empty result is valid.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) ([]model.Detection, error)
}

// StaticRecognizer replays recognition already done on the capturing device.
// Object labels are used as given; text lines are reduced to known food words.
type StaticRecognizer struct {
	Detections []model.Detection
	TextLines  []string
}

// Recognize returns the supplied detections followed by food words found in the text.
func (s StaticRecognizer) Recognize(ctx context.Context, image []byte) ([]model.Detection, error) {
	out := make([]model.Detection, 0, len(s.Detections))
	for _, d := range s.Detections {
		if d.Label != "" {
			out = append(out, d)
		}
	}
	for _, label := range categorize.FilterFoodLabels(s.TextLines) {
		out = append(out, model.Detection{Label: label})
	}
	return out, nil
}

// Service turns captured photos into candidate pantry items.
type Service struct {
	store      store.Store
	processor  *imaging.Processor
	normalizer *normalize.Normalizer
	newRef     func() string
}

// NewService creates a scan service.
func NewService(s store.Store, processor *imaging.Processor, normalizer *normalize.Normalizer) *Service {
	return &Service{
		store:      s,
		processor:  processor,
		normalizer: normalizer,
		newRef:     func() string { return uuid.NewString() },
	}
}

// Scan stores the photo, runs the recognizer over it and normalizes every
// detection into an unsaved pantry item carrying the photo's reference.
func (s *Service) Scan(ctx context.Context, image io.Reader, rec Recognizer) (model.ScanResult, []model.PantryItem, error) {
	photo, err := s.processor.Process(image)
	if err != nil {
		return model.ScanResult{}, nil, err
	}

	ref := s.newRef()
	if err := s.store.Put(ctx, store.PhotoKeyPrefix+ref, photo.Data); err != nil {
		return model.ScanResult{}, nil, fmt.Errorf("failed to store photo: %w", err)
	}

	detections, err := rec.Recognize(ctx, photo.Data)
	if err != nil {
		log.Printf("Error recognizing photo %s: %v", ref, err)
		return model.ScanResult{}, nil, fmt.Errorf("%w: recognizer failed: %v", apperr.ErrUnreachable, err)
	}
	if detections == nil {
		detections = []model.Detection{}
	}

	result := model.ScanResult{Detections: detections, ImageRef: &ref}
	return result, s.normalizer.FromScan(result), nil
}

// Photo returns a stored photo by reference.
func (s *Service) Photo(ctx context.Context, ref string) ([]byte, error) {
	if _, err := uuid.Parse(ref); err != nil {
		return nil, fmt.Errorf("photo reference %q: %w", ref, apperr.ErrInvalidInput)
	}

	data, ok, err := s.store.Get(ctx, store.PhotoKeyPrefix+ref)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("photo %s: %w", ref, apperr.ErrNotFound)
	}
	return data, nil
}

// DeletePhoto removes a stored photo. Missing photos are ignored.
func (s *Service) DeletePhoto(ctx context.Context, ref string) error {
	if _, err := uuid.Parse(ref); err != nil {
		return fmt.Errorf("photo reference %q: %w", ref, apperr.ErrInvalidInput)
	}
	return s.store.Delete(ctx, store.PhotoKeyPrefix+ref)
}
