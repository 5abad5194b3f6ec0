package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"pantry-sync-backend/internal/apperr"
	"pantry-sync-backend/internal/model"
	"pantry-sync-backend/internal/store"
)

// CredentialStore keeps the remote list credentials as three scalar entries.
// The user is authenticated only when all three are present.
type CredentialStore struct {
	store    store.Store
	validate *validator.Validate
}

// NewCredentialStore creates a credential store.
func NewCredentialStore(s store.Store) *CredentialStore {
	return &CredentialStore{store: s, validate: validator.New()}
}

// Save validates and writes the credentials.
func (c *CredentialStore) Save(ctx context.Context, creds model.Credentials) error {
	if err := c.validate.Struct(creds); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}

	entries := []struct {
		key   string
		value string
	}{
		{store.KeyFrameID, creds.FrameID},
		{store.KeyAuthToken, creds.Token},
		{store.KeyAuthType, string(creds.AuthType)},
	}
	for _, e := range entries {
		if err := c.store.Put(ctx, e.key, []byte(e.value)); err != nil {
			return err
		}
	}
	return nil
}

// Load returns the stored credentials or ErrUnauthenticated if any part is missing.
func (c *CredentialStore) Load(ctx context.Context) (model.Credentials, error) {
	var values [3]string
	for i, key := range []string{store.KeyFrameID, store.KeyAuthToken, store.KeyAuthType} {
		v, ok, err := c.store.Get(ctx, key)
		if err != nil {
			return model.Credentials{}, err
		}
		if !ok || len(v) == 0 {
			return model.Credentials{}, apperr.ErrUnauthenticated
		}
		values[i] = string(v)
	}
	return model.Credentials{FrameID: values[0], Token: values[1], AuthType: model.AuthType(values[2])}, nil
}

// IsAuthenticated reports whether all three credential entries are present.
func (c *CredentialStore) IsAuthenticated(ctx context.Context) (bool, error) {
	_, err := c.Load(ctx)
	if errors.Is(err, apperr.ErrUnauthenticated) {
		return false, nil
	}
	return err == nil, err
}

// Clear removes the stored credentials.
func (c *CredentialStore) Clear(ctx context.Context) error {
	return c.store.Delete(ctx, store.KeyFrameID, store.KeyAuthToken, store.KeyAuthType)
}
