// Package catalog is the read-only client for the external product
// catalog. There is no local caching layer: every call re-fetches.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"ministore/internal/models"
	"ministore/internal/util"

	"go.uber.org/zap"
)

// Client fetches products over HTTP. Responses are JSON; no auth
// headers, no pagination beyond accepting the full body.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     util.GetLogger(),
	}
}

// Products retrieves the full catalog.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.getJSON(ctx, "/products", "products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product retrieves a single product by id.
func (c *Client) Product(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	path := fmt.Sprintf("/products/%d", id)
	if err := c.getJSON(ctx, path, "product", &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Categories retrieves the list of category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, "/products/categories", "categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ProductsByCategory retrieves all products in one category.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	path := "/products/category/" + url.PathEscape(category)
	if err := c.getJSON(ctx, path, "products_by_category", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) getJSON(ctx context.Context, path, endpoint string, out interface{}) error {
	start := time.Now()
	defer func() {
		util.CatalogRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		util.CatalogRequestFailures.WithLabelValues(endpoint).Inc()
		c.logger.Warn("Catalog request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		util.CatalogRequestFailures.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("catalog returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		util.CatalogRequestFailures.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return nil
}
