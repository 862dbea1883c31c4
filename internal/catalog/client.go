package catalog

import (
	"context"

	"marketplace-companion/internal/domain"
)

// Client fetches authoritative product data from the remote catalog service.
type Client interface {
	// Product returns the catalog product for id, or domain.ErrNotFound.
	Product(ctx context.Context, id int64) (*domain.Product, error)
}
