package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/germanaqua/Psychovoystore/internal/domain"
)

// Client fetches the full product catalog from the upstream API. The breaker
// keeps a flapping upstream from being hammered on every reload.
type Client struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker[[]domain.Product]
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		breaker: gobreaker.NewCircuitBreaker[[]domain.Product](gobreaker.Settings{
			Name: "catalog-api",
		}),
	}
}

func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	return c.breaker.Execute(func() ([]domain.Product, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build catalog request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("catalog request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
		}

		var products []domain.Product
		if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
			return nil, fmt.Errorf("failed to decode products: %w", err)
		}

		return products, nil
	})
}
