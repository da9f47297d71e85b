package ticketing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/festivo/backend/internal/domain/ticketing"
	"github.com/festivo/backend/internal/infrastructure/config"
)

// HTTPOrderClient implements OrderClient against the provider's REST API.
// Each tenant authenticates with its own bearer token.
type HTTPOrderClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPOrderClient creates a client from provider configuration
func NewHTTPOrderClient(cfg config.ProviderConfig) *HTTPOrderClient {
	return &HTTPOrderClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// ordersResponse matches the provider's paged envelope. Some deployments
// return a bare array instead, so decoding falls back to that shape.
type ordersResponse struct {
	Orders []ticketing.ProviderOrder `json:"orders"`
}

// FetchOrders retrieves one page of orders updated since the watermark
func (c *HTTPOrderClient) FetchOrders(ctx context.Context, token string, since time.Time, page, perPage int) ([]ticketing.ProviderOrder, error) {
	endpoint, err := url.Parse(c.baseURL + "/v1/orders")
	if err != nil {
		return nil, fmt.Errorf("invalid provider url: %w", err)
	}

	q := endpoint.Query()
	q.Set("since", since.UTC().Format(time.RFC3339))
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build provider request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var envelope ordersResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Orders != nil {
		return envelope.Orders, nil
	}

	var orders []ticketing.ProviderOrder
	if err := json.Unmarshal(body, &orders); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}
	return orders, nil
}
