// Package cart implements the cart state container: an ordered list of
// line items synchronized to durable storage.
package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"ministore/internal/models"
	"ministore/internal/storage"
	"ministore/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store holds the cart line items. Every mutation schedules a persist
// of the full list; mutations inside the debounce window coalesce into
// a single write. The invariant is one line item per product id.
type Store struct {
	mu       sync.Mutex
	items    []models.CartItem
	dirty    bool
	timer    *time.Timer
	storage  storage.Store
	debounce time.Duration
	logger   *zap.Logger
}

// New creates a cart store on top of the given storage backend and
// loads any previously persisted list. An absent or unparsable snapshot
// is silently discarded and the cart starts empty. A debounce of zero
// persists synchronously on every mutation.
func New(st storage.Store, debounce time.Duration) *Store {
	s := &Store{
		storage:  st,
		debounce: debounce,
		logger:   util.GetLogger(),
	}

	var items []models.CartItem
	err := st.Get(context.Background(), storage.KeyCart, &items)
	switch {
	case err == nil:
		s.items = items
	case errors.Is(err, storage.ErrNotFound):
		// first run, nothing persisted yet
	default:
		s.logger.Warn("Discarding unreadable cart snapshot", zap.Error(err))
	}

	return s
}

// Add appends a new line item, or increments the quantity of the
// existing line for the same product id. Quantities below 1 count as 1.
func (s *Store) Add(product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity += quantity
			s.scheduleFlushLocked()
			return
		}
	}

	s.items = append(s.items, models.CartItem{
		ID:       product.ID,
		Product:  product,
		Quantity: quantity,
	})
	s.scheduleFlushLocked()
}

// Remove deletes the line item for the product id; no-op when absent.
func (s *Store) Remove(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

func (s *Store) removeLocked(productID int) {
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.scheduleFlushLocked()
			return
		}
	}
}

// SetQuantity overwrites the quantity of the line item; a quantity of
// zero or less removes it.
func (s *Store) SetQuantity(productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
		return
	}

	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
			s.scheduleFlushLocked()
			return
		}
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.scheduleFlushLocked()
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Subtotal is the sum of price*quantity over all items; zero for an
// empty cart.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := decimal.Zero
	for _, item := range s.items {
		line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	return subtotal
}

// ItemCount is the sum of quantities over all items.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// scheduleFlushLocked marks the cart dirty and arms the debounce timer,
// or persists immediately when debouncing is disabled. Re-arming an
// already armed timer extends the window so rapid changes coalesce.
func (s *Store) scheduleFlushLocked() {
	s.dirty = true

	if s.debounce <= 0 {
		if err := s.persistLocked(context.Background()); err != nil {
			s.logger.Error("Failed to persist cart", zap.Error(err))
		}
		return
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.dirty {
			return
		}
		if err := s.persistLocked(context.Background()); err != nil {
			s.logger.Error("Failed to persist cart", zap.Error(err))
		}
	})
}

func (s *Store) persistLocked(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []models.CartItem{}
	}
	if err := s.storage.Set(ctx, storage.KeyCart, items); err != nil {
		util.CartFlushFailuresTotal.Inc()
		return err
	}
	s.dirty = false
	util.CartFlushesTotal.Inc()
	return nil
}

// Flush cancels any pending debounce timer and persists the current
// list immediately. No-op when nothing changed since the last write.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if !s.dirty {
		return nil
	}
	return s.persistLocked(ctx)
}

// Close flushes any pending changes.
func (s *Store) Close() error {
	return s.Flush(context.Background())
}
