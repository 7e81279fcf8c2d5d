// Package order is the orders half of the mock backend: an append-only
// order log in the injected storage backend.
package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"ministore/internal/models"
	"ministore/internal/storage"
	"ministore/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the mocked order API.
type Service struct {
	storage storage.Store
	latency time.Duration
	logger  *zap.Logger
}

// NewService creates an order service. latency simulates the round trip
// of a real API; pass zero for none.
func NewService(st storage.Store, latency time.Duration) *Service {
	return &Service{
		storage: st,
		latency: latency,
		logger:  util.GetLogger(),
	}
}

// Create assigns a unique id and creation timestamp, appends the order
// to the log and returns the stored record. There is no inventory
// check, no idempotency key and no rollback: a failed write propagates
// to the caller.
func (s *Service) Create(ctx context.Context, draft models.Order) (*models.Order, error) {
	if err := util.Delay(ctx, s.latency); err != nil {
		return nil, err
	}

	draft.ID = uuid.New().String()
	draft.CreatedAt = time.Now().UTC()

	orders := s.readOrders(ctx)
	orders = append(orders, draft)

	if err := s.storage.Set(ctx, storage.KeyOrders, orders); err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.String("order_id", draft.ID),
		zap.String("user_id", draft.UserID))
	return &draft, nil
}

// ForUser returns all orders whose userId matches, in storage order.
// Callers that want recency first re-sort with SortByCreatedDesc.
func (s *Service) ForUser(ctx context.Context, userID string) ([]models.Order, error) {
	if err := util.Delay(ctx, s.latency); err != nil {
		return nil, err
	}

	var matched []models.Order
	for _, o := range s.readOrders(ctx) {
		if o.UserID == userID {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

// SortByCreatedDesc sorts orders newest first, in place.
func SortByCreatedDesc(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// readOrders loads the order log, treating absent or unreadable storage
// as an empty log.
func (s *Service) readOrders(ctx context.Context) []models.Order {
	var orders []models.Order
	err := s.storage.Get(ctx, storage.KeyOrders, &orders)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Ignoring unreadable order log", zap.Error(err))
		}
		return nil
	}
	return orders
}
