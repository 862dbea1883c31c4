package cartstore

import (
	"context"
	"sync"

	"marketplace-companion/internal/domain"
)

// Key is the single storage key the cart lives under. The whole line list is
// the unit of persistence; there are no per-line writes.
const Key = "cart"

// Store is the injected device-local cart storage. Load never fails the
// caller over a missing or corrupt blob: both read back as an empty cart.
// Save replaces the entire list and notifies subscribers once with the new
// state, as does Clear (with an empty list).
type Store interface {
	Load(ctx context.Context) ([]domain.CartLine, error)
	Save(ctx context.Context, lines []domain.CartLine) error
	Clear(ctx context.Context) error
	Subscribe(fn func([]domain.CartLine)) (cancel func())
}

// notifier implements Subscribe for the concrete stores.
type notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func([]domain.CartLine)
}

func (n *notifier) Subscribe(fn func([]domain.CartLine)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func([]domain.CartLine))
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) notify(lines []domain.CartLine) {
	n.mu.Lock()
	fns := make([]func([]domain.CartLine), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn(lines)
	}
}
