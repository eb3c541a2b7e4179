// Package clients holds thin clients for the downstream services this
// catalog talks to. Currently that is only the category service.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"katalog/internal/models"
)

// DefaultCategoryTimeout bounds a single category lookup. A slow category
// service degrades reads to "Uncategorized" instead of hanging them.
const DefaultCategoryTimeout = 3 * time.Second

// CategoryClient resolves category identifiers to display names via the
// external category service. The client is safe for concurrent use and is
// created once at startup.
type CategoryClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCategoryClient creates a new CategoryClient. baseURL should not carry a
// trailing slash. A non-positive timeout falls back to the default.
func NewCategoryClient(baseURL string, timeout time.Duration) *CategoryClient {
	if timeout <= 0 {
		timeout = DefaultCategoryTimeout
	}
	return &CategoryClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// categoryResponse is the subset of the category service's payload we use.
type categoryResponse struct {
	Name string `json:"name"`
}

// ResolveName looks up the display name for a category identifier. It is
// best-effort: any failure (network error, non-2xx, malformed body, timeout,
// empty name) returns "Uncategorized" so a product read never depends on the
// category service's health.
func (c *CategoryClient) ResolveName(ctx context.Context, categoryID string) string {
	url := fmt.Sprintf("%s/category/%s", c.baseURL, categoryID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("Category lookup for %s failed to build request: %v", categoryID, err)
		return models.UncategorizedName
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Category lookup for %s failed: %v", categoryID, err)
		return models.UncategorizedName
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Category lookup for %s returned status %d", categoryID, resp.StatusCode)
		return models.UncategorizedName
	}

	var category categoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&category); err != nil {
		log.Printf("Category lookup for %s returned malformed body: %v", categoryID, err)
		return models.UncategorizedName
	}
	if category.Name == "" {
		return models.UncategorizedName
	}
	return category.Name
}
