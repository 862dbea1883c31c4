package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"marketplace-companion/internal/domain"
)

// ErrSubmitFailed wraps any order submission failure. The caller surfaces it
// as a generic retryable condition; no automatic retry happens here.
var ErrSubmitFailed = errors.New("order submission failed")

// Client submits a finalized cart to the order service. The backend never
// sees an open cart; this is the only point where it learns about one.
type Client interface {
	Submit(ctx context.Context, lines []domain.CartLine) (orderID string, err error)
}

// HTTPClient posts to {base}/orders.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewHTTP builds an HTTPClient against baseURL.
func NewHTTP(baseURL string, timeout time.Duration, logger zerolog.Logger) *HTTPClient {
	return &HTTPClient{baseURL: baseURL, http: &http.Client{Timeout: timeout}, logger: logger}
}

type submitLine struct {
	ProductID      int64 `json:"productId"`
	Quantity       int   `json:"quantity"`
	UnitPriceCents int64 `json:"unitPriceCents"`
}

type submitRequest struct {
	IdempotencyKey string       `json:"idempotencyKey"`
	Lines          []submitLine `json:"lines"`
	TotalCents     int64        `json:"totalCents"`
}

type submitResponse struct {
	OrderID   string `json:"orderId"`
	OrderIDSn string `json:"order_id"`
	ID        string `json:"id"`
}

func (c *HTTPClient) Submit(ctx context.Context, lines []domain.CartLine) (string, error) {
	req := submitRequest{IdempotencyKey: uuid.NewString()}
	for _, line := range lines {
		req.Lines = append(req.Lines, submitLine{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
		})
		req.TotalCents += line.TotalCents()
	}

	raw, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn().Err(err).Msg("order submission request failed")
		return "", fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("order submission rejected")
		return "", fmt.Errorf("%w: unexpected status %d", ErrSubmitFailed, resp.StatusCode)
	}

	var body submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	orderID := body.OrderID
	if orderID == "" {
		orderID = body.OrderIDSn
	}
	if orderID == "" {
		orderID = body.ID
	}
	return orderID, nil
}
