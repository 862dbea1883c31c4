package domain

// Product is the canonical catalog product shape used inside the companion.
// Remote payloads are normalized into this struct at the catalog client
// boundary, whatever casing or aliases the backend happens to use.
type Product struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Currency   string `json:"currency,omitempty"`
	StockQty   int    `json:"stockQty"`
	ImageURL   string `json:"imageUrl,omitempty"`
}
