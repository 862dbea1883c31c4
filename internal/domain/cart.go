package domain

import "time"

// CartLine is one product selection in the device-local cart. Name, price and
// image are a snapshot taken when the product was added and are not refreshed
// afterwards; LastKnownStock is refreshed opportunistically and is nil when no
// stock figure has ever been fetched.
type CartLine struct {
	ProductID      int64     `json:"productId"`
	Quantity       int       `json:"quantity"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	LastKnownStock *int      `json:"lastKnownStock,omitempty"`
	AddedAt        time.Time `json:"addedAt"`
}

// TotalCents is the line total at the snapshotted unit price.
func (l CartLine) TotalCents() int64 {
	return int64(l.Quantity) * l.UnitPriceCents
}

// CartView is the cart as rendered to the UI: the persisted lines plus totals
// computed from the denormalized snapshots.
type CartView struct {
	Lines         []CartLine `json:"lineItems"`
	TotalQuantity int        `json:"totalQuantity"`
	TotalCents    int64      `json:"totalCents"`
}

// NewCartView computes totals over lines.
func NewCartView(lines []CartLine) CartView {
	view := CartView{Lines: lines}
	if view.Lines == nil {
		view.Lines = []CartLine{}
	}
	for _, line := range lines {
		view.TotalQuantity += line.Quantity
		view.TotalCents += line.TotalCents()
	}
	return view
}
