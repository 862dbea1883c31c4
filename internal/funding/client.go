package funding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"marketplace-companion/internal/domain"
)

// StatusPatch is the partial update sent to the funding service. Nil fields
// are left untouched server-side.
type StatusPatch struct {
	Status        *domain.FundingStatus `json:"status,omitempty"`
	AdminApproved *bool                 `json:"adminApproved,omitempty"`
}

// Client talks to the remote funding-request service. The server is
// authoritative; the companion only reads and patches.
type Client interface {
	Get(ctx context.Context, id int64) (*domain.FundingRequest, error)
	Patch(ctx context.Context, id int64, patch StatusPatch) (*domain.FundingRequest, error)
	Messages(ctx context.Context, id int64) ([]domain.FundingMessage, error)
	PostMessage(ctx context.Context, id int64, author, body string) (*domain.FundingMessage, error)
}

// HTTPClient implements Client over {base}/funding-requests/{id}.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewHTTP builds an HTTPClient against baseURL.
func NewHTTP(baseURL string, timeout time.Duration, logger zerolog.Logger) *HTTPClient {
	return &HTTPClient{baseURL: baseURL, http: &http.Client{Timeout: timeout}, logger: logger}
}

func (c *HTTPClient) Get(ctx context.Context, id int64) (*domain.FundingRequest, error) {
	url := fmt.Sprintf("%s/funding-requests/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.doRequest(req)
}

func (c *HTTPClient) Patch(ctx context.Context, id int64, patch StatusPatch) (*domain.FundingRequest, error) {
	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/funding-requests/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doRequest(req)
}

func (c *HTTPClient) doRequest(req *http.Request) (*domain.FundingRequest, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		c.logger.Warn().Int("status", resp.StatusCode).Str("url", req.URL.String()).Msg("funding service returned unexpected status")
		return nil, fmt.Errorf("funding request: unexpected status %d", resp.StatusCode)
	}

	var payload requestPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	request := payload.normalize()
	return &request, nil
}

func (c *HTTPClient) Messages(ctx context.Context, id int64) ([]domain.FundingMessage, error) {
	url := fmt.Sprintf("%s/funding-requests/%d/messages", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("funding messages: unexpected status %d", resp.StatusCode)
	}

	var payloads []messagePayload
	if err := json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		return nil, err
	}
	messages := make([]domain.FundingMessage, 0, len(payloads))
	for _, p := range payloads {
		messages = append(messages, p.normalize(id))
	}
	return messages, nil
}

func (c *HTTPClient) PostMessage(ctx context.Context, id int64, author, body string) (*domain.FundingMessage, error) {
	raw, err := json.Marshal(map[string]string{"author": author, "body": body})
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/funding-requests/%d/messages", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return nil, fmt.Errorf("funding message: unexpected status %d", resp.StatusCode)
	}

	var payload messagePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	message := payload.normalize(id)
	return &message, nil
}

// requestPayload accepts the snake/camel aliases the funding service emits.
type requestPayload struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`

	AmountCents     *int64   `json:"amountCents"`
	AmountCentsSnak *int64   `json:"amount_cents"`
	Amount          *float64 `json:"amount"`

	AdminApproved     *bool `json:"adminApproved"`
	AdminApprovedSnak *bool `json:"admin_approved"`

	CreatedAt     time.Time `json:"createdAt"`
	CreatedAtSnak time.Time `json:"created_at"`
}

func (p requestPayload) normalize() domain.FundingRequest {
	request := domain.FundingRequest{
		ID:        p.ID,
		Title:     p.Title,
		Status:    domain.FundingStatus(p.Status),
		CreatedAt: p.CreatedAt,
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = p.CreatedAtSnak
	}

	switch {
	case p.AmountCents != nil:
		request.AmountCents = *p.AmountCents
	case p.AmountCentsSnak != nil:
		request.AmountCents = *p.AmountCentsSnak
	case p.Amount != nil:
		request.AmountCents = int64(*p.Amount * 100)
	}

	switch {
	case p.AdminApproved != nil:
		request.AdminApproved = *p.AdminApproved
	case p.AdminApprovedSnak != nil:
		request.AdminApproved = *p.AdminApprovedSnak
	}

	return request
}

type messagePayload struct {
	ID            string    `json:"id"`
	Author        string    `json:"author"`
	Body          string    `json:"body"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedAtSnak time.Time `json:"created_at"`
}

func (p messagePayload) normalize(requestID int64) domain.FundingMessage {
	message := domain.FundingMessage{
		ID:        p.ID,
		RequestID: requestID,
		Author:    p.Author,
		Body:      p.Body,
		CreatedAt: p.CreatedAt,
	}
	if message.Body == "" {
		message.Body = p.Message
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = p.CreatedAtSnak
	}
	return message
}
