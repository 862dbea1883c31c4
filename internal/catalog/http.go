package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"marketplace-companion/internal/domain"
)

// HTTPClient talks to GET {base}/products/{id} and normalizes whatever field
// casing the backend uses into domain.Product. Fetches run through a circuit
// breaker so a flapping catalog fails fast instead of stacking up timeouts.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*domain.Product]
	logger  zerolog.Logger
}

// NewHTTP builds an HTTPClient against baseURL.
func NewHTTP(baseURL string, timeout time.Duration, logger zerolog.Logger) *HTTPClient {
	breaker := gobreaker.NewCircuitBreaker[*domain.Product](gobreaker.Settings{
		Name:    "catalog",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("catalog breaker state change")
		},
	})
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		breaker: breaker,
		logger:  logger,
	}
}

func (c *HTTPClient) Product(ctx context.Context, id int64) (*domain.Product, error) {
	return c.breaker.Execute(func() (*domain.Product, error) {
		return c.fetch(ctx, id)
	})
}

func (c *HTTPClient) fetch(ctx context.Context, id int64) (*domain.Product, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch product %d: %w", id, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch product %d: unexpected status %d", id, resp.StatusCode)
	}

	var payload productPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode product %d: %w", id, err)
	}

	product := payload.normalize()
	if product.ID == 0 {
		product.ID = id
	}
	return &product, nil
}

// productPayload accepts every alias the marketplace backend is known to emit
// for the same concept; normalize collapses them into the canonical schema so
// nothing past this boundary sees the inconsistency.
type productPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// some endpoints label the product name "title"
	Title string `json:"title"`

	Price          *float64 `json:"price"`
	PriceCents     *int64   `json:"priceCents"`
	PriceCentsSnak *int64   `json:"price_cents"`
	Currency       string   `json:"currency"`

	Stock         *int `json:"stock"`
	StockQty      *int `json:"stockQty"`
	StockQuantity *int `json:"stock_quantity"`

	Image         string `json:"image"`
	ImageURL      string `json:"imageUrl"`
	ImageURLSnake string `json:"image_url"`
}

func (p productPayload) normalize() domain.Product {
	product := domain.Product{
		ID:       p.ID,
		Name:     p.Name,
		Currency: p.Currency,
	}
	if product.Name == "" {
		product.Name = p.Title
	}

	switch {
	case p.PriceCents != nil:
		product.PriceCents = *p.PriceCents
	case p.PriceCentsSnak != nil:
		product.PriceCents = *p.PriceCentsSnak
	case p.Price != nil:
		product.PriceCents = int64(math.Round(*p.Price * 100))
	}

	switch {
	case p.StockQuantity != nil:
		product.StockQty = *p.StockQuantity
	case p.StockQty != nil:
		product.StockQty = *p.StockQty
	case p.Stock != nil:
		product.StockQty = *p.Stock
	}

	switch {
	case p.ImageURL != "":
		product.ImageURL = p.ImageURL
	case p.ImageURLSnake != "":
		product.ImageURL = p.ImageURLSnake
	default:
		product.ImageURL = p.Image
	}

	return product
}
