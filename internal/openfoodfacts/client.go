package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"pantry-sync-backend/config"
	"pantry-sync-backend/internal/apperr"
	"pantry-sync-backend/internal/model"
)

// maxImageBytes caps product image downloads.
const maxImageBytes = 10 << 20

// Client talks to the OpenFoodFacts product database. It does not retry.
type Client struct {
	baseURL   string
	userAgent string
	pageSize  int
	client    *http.Client
	validate  *validator.Validate
}

// NewClient creates a client from configuration.
func NewClient(cfg config.OpenFoodFactsConfig) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		pageSize:  cfg.PageSize,
		client: &http.Client{
			Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
			Timeout:   cfg.Timeout,
		},
		validate: validator.New(),
	}
}

// GetProduct looks up a product by barcode. A product the database does not know
// is reported as apperr.ErrProductNotFound, distinct from a found product with null fields.
func (c *Client) GetProduct(ctx context.Context, barcode string) (*model.ExternalProduct, error) {
	barcode = strings.TrimSpace(barcode)
	if err := c.validate.Struct(barcodeRequest{Barcode: barcode}); err != nil {
		return nil, fmt.Errorf("barcode %q: %w", barcode, apperr.ErrInvalidInput)
	}

	var resp ProductResponse
	status, err := c.getJSON(ctx, "/api/v2/product/"+url.PathEscape(barcode), nil, &resp)
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("barcode %s: %w", barcode, apperr.ErrProductNotFound)
	}
	if err != nil {
		log.Printf("Error fetching product %s: %v", barcode, err)
		return nil, err
	}

	if resp.Status != 1 || resp.Product == nil {
		return nil, fmt.Errorf("barcode %s: %w", barcode, apperr.ErrProductNotFound)
	}
	return resp.Product, nil
}

// Search runs a free-text product search. Pages are 1-indexed.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query: %w", apperr.ErrInvalidInput)
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(c.pageSize))
	params.Set("json", "1")

	var resp SearchPage
	if _, err := c.getJSON(ctx, "/cgi/search.pl", params, &resp); err != nil {
		log.Printf("Error searching %q: %v", query, err)
		return nil, err
	}
	if resp.Products == nil {
		resp.Products = []model.ExternalProduct{}
	}
	return &resp, nil
}

// DownloadImage fetches a product image.
func (c *Client) DownloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	if _, err := url.ParseRequestURI(imageURL); err != nil {
		return nil, fmt.Errorf("image url %q: %w", imageURL, apperr.ErrInvalidInput)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("image %s: %w", imageURL, apperr.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: received status code %d", apperr.ErrUnreachable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read image body: %v", apperr.ErrUnreachable, err)
	}
	return data, nil
}

// getJSON performs a GET and decodes a 200 response into out. The HTTP status is
// returned alongside any error so callers can tell "not found" from failures.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) (int, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: http request failed: %v", apperr.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("%w: received non-200 status code: %d", apperr.ErrUnreachable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: failed to read response body: %v", apperr.ErrUnreachable, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: failed to unmarshal response: %v", apperr.ErrUnreachable, err)
	}

	log.Printf("GET %s -> %d in %s", path, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	return resp.StatusCode, nil
}
