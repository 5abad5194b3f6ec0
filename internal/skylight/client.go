package skylight

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"pantry-sync-backend/config"
	"pantry-sync-backend/internal/apperr"
	"pantry-sync-backend/internal/model"
)

// Client reads shopping lists from the Skylight frame API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client from configuration.
func NewClient(cfg config.SkylightConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
			Timeout:   cfg.Timeout,
		},
	}
}

// FetchLists returns every list on the user's frame.
func (c *Client) FetchLists(ctx context.Context, creds model.Credentials) ([]model.ShoppingList, error) {
	var resp model.ListsResponse
	path := fmt.Sprintf("/api/frames/%s/lists", url.PathEscape(creds.FrameID))
	if err := c.get(ctx, creds, path, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []model.ShoppingList{}
	}
	return resp.Data, nil
}

// FetchListDetail returns one list and its items ordered by position.
func (c *Client) FetchListDetail(ctx context.Context, creds model.Credentials, listID string) (model.ListDetail, error) {
	if listID == "" {
		return model.ListDetail{}, fmt.Errorf("empty list id: %w", apperr.ErrInvalidInput)
	}

	var resp model.ListDetailResponse
	path := fmt.Sprintf("/api/frames/%s/lists/%s", url.PathEscape(creds.FrameID), url.PathEscape(listID))
	if err := c.get(ctx, creds, path, &resp); err != nil {
		return model.ListDetail{}, err
	}

	items := resp.Included
	if items == nil {
		items = []model.ListItem{}
	}
	SortByPosition(items)
	return model.ListDetail{List: resp.Data, Items: items}, nil
}

// SortByPosition orders items by position, unset counting as 0. Ties keep their order.
func SortByPosition(items []model.ListItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PositionOrZero() < items[j].PositionOrZero()
	})
}

func (c *Client) get(ctx context.Context, creds model.Credentials, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", creds.Header())
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("Error fetching %s: %v", path, err)
		return fmt.Errorf("%w: http request failed: %v", apperr.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, apperr.ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("received status code %d: %w", resp.StatusCode, apperr.ErrUnauthenticated)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: received non-2xx status code: %d", apperr.ErrUnreachable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %v", apperr.ErrUnreachable, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to unmarshal response: %v", apperr.ErrUnreachable, err)
	}
	return nil
}
