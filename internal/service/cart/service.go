package cart

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"marketplace-companion/internal/domain"
)

// Service owns the device-local cart: quantity changes under the stock
// ceiling, best-effort stock reconciliation and the checkout guard.
type Service struct {
	store   store
	catalog catalogClient
	orders  ordersClient
	logger  zerolog.Logger
}

type store interface {
	Load(ctx context.Context) ([]domain.CartLine, error)
	Save(ctx context.Context, lines []domain.CartLine) error
	Clear(ctx context.Context) error
}

type catalogClient interface {
	Product(ctx context.Context, id int64) (*domain.Product, error)
}

type ordersClient interface {
	Submit(ctx context.Context, lines []domain.CartLine) (string, error)
}

// New builds a Service.
func New(store store, catalog catalogClient, orders ordersClient, logger zerolog.Logger) *Service {
	return &Service{store: store, catalog: catalog, orders: orders, logger: logger}
}

// View returns the cart with totals. A store failure reads as an empty cart.
func (s *Service) View(ctx context.Context) domain.CartView {
	return domain.NewCartView(s.lines(ctx))
}

func (s *Service) lines(ctx context.Context) []domain.CartLine {
	lines, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("cart load failed, treating as empty")
		return []domain.CartLine{}
	}
	return lines
}

// Add puts qty units of the product into the cart. If a line for the product
// already exists the quantities are combined and the combined total is checked
// against authoritative stock, not the increment alone.
func (s *Service) Add(ctx context.Context, productID int64, qty int) (*domain.CartLine, error) {
	if qty < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return nil, err
	}

	lines := s.lines(ctx)
	idx := indexOf(lines, productID)
	existing := 0
	if idx >= 0 {
		existing = lines[idx].Quantity
	}

	if existing+qty > product.StockQty {
		maxAddable := product.StockQty - existing
		if maxAddable < 0 {
			maxAddable = 0
		}
		return nil, &domain.InsufficientStockError{
			ProductID:  productID,
			Available:  product.StockQty,
			MaxAddable: maxAddable,
		}
	}

	stock := product.StockQty
	if idx >= 0 {
		lines[idx].Quantity += qty
		lines[idx].LastKnownStock = &stock
	} else {
		lines = append(lines, domain.CartLine{
			ProductID:      productID,
			Quantity:       qty,
			Name:           product.Name,
			UnitPriceCents: product.PriceCents,
			ImageURL:       product.ImageURL,
			LastKnownStock: &stock,
			AddedAt:        time.Now().UTC(),
		})
		idx = len(lines) - 1
	}

	if err := s.store.Save(ctx, lines); err != nil {
		return nil, err
	}
	line := lines[idx]
	return &line, nil
}

// Increment raises a line's quantity by one, blocked at the stock ceiling.
// When no stock figure is cached a live check decides; if that check itself
// fails the increment is allowed, since there is no ceiling to enforce.
func (s *Service) Increment(ctx context.Context, productID int64) (*domain.CartLine, error) {
	lines := s.lines(ctx)
	idx := indexOf(lines, productID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}

	line := &lines[idx]
	if line.LastKnownStock == nil {
		if product, err := s.catalog.Product(ctx, productID); err == nil {
			stock := product.StockQty
			line.LastKnownStock = &stock
		} else {
			s.logger.Debug().Err(err).Int64("product", productID).Msg("live stock check failed, no ceiling to enforce")
		}
	}

	if line.LastKnownStock != nil && line.Quantity >= *line.LastKnownStock {
		return nil, domain.ErrStockLimit
	}

	line.Quantity++
	if err := s.store.Save(ctx, lines); err != nil {
		return nil, err
	}
	out := *line
	return &out, nil
}

// Decrement lowers a line's quantity by one; reaching zero removes the line.
// Decrementing an absent product is a no-op.
func (s *Service) Decrement(ctx context.Context, productID int64) error {
	lines := s.lines(ctx)
	idx := indexOf(lines, productID)
	if idx < 0 {
		return nil
	}

	lines[idx].Quantity--
	if lines[idx].Quantity <= 0 {
		lines = append(lines[:idx], lines[idx+1:]...)
	}
	return s.store.Save(ctx, lines)
}

// Remove deletes a line outright. Removing an absent product is a no-op.
func (s *Service) Remove(ctx context.Context, productID int64) error {
	lines := s.lines(ctx)
	idx := indexOf(lines, productID)
	if idx < 0 {
		return nil
	}
	lines = append(lines[:idx], lines[idx+1:]...)
	return s.store.Save(ctx, lines)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Reconcile refreshes each line's cached stock from the catalog. Fetches run
// independently; a failed fetch keeps that line's previous figure. All
// outcomes are joined before the store is rewritten once, so subscribers see
// exactly one update per run. Quantities are never touched, even when the new
// stock figure drops below an already-selected quantity.
func (s *Service) Reconcile(ctx context.Context) (domain.CartView, error) {
	lines := s.lines(ctx)
	if len(lines) == 0 {
		return domain.NewCartView(lines), nil
	}

	stocks := make([]*int, len(lines))
	var g errgroup.Group
	for i, line := range lines {
		g.Go(func() error {
			product, err := s.catalog.Product(ctx, line.ProductID)
			if err != nil {
				s.logger.Debug().Err(err).Int64("product", line.ProductID).Msg("stock refresh failed, keeping cached figure")
				return nil
			}
			stock := product.StockQty
			stocks[i] = &stock
			return nil
		})
	}
	// workers never return errors; failures degrade to stale figures
	_ = g.Wait()

	for i := range lines {
		if stocks[i] != nil {
			lines[i].LastKnownStock = stocks[i]
		}
	}

	if err := s.store.Save(ctx, lines); err != nil {
		return domain.NewCartView(lines), err
	}
	return domain.NewCartView(lines), nil
}

// Checkout submits the cart as a finalized order. An empty cart is refused;
// a successful submission clears the cart. Submission failures surface to the
// caller unretried.
func (s *Service) Checkout(ctx context.Context) (string, error) {
	lines := s.lines(ctx)
	if len(lines) == 0 {
		return "", domain.ErrEmptyCart
	}

	orderID, err := s.orders.Submit(ctx, lines)
	if err != nil {
		return "", err
	}

	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn().Err(err).Str("order", orderID).Msg("cart clear after checkout failed")
	}
	return orderID, nil
}

func indexOf(lines []domain.CartLine, productID int64) int {
	for i, line := range lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
