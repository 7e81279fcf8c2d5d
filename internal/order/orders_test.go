package order

import (
	"context"
	"testing"
	"time"

	"ministore/internal/models"
	"ministore/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftOrder(userID string) models.Order {
	return models.Order{
		UserID: userID,
		Items: []models.CartItem{
			{ID: 1, Product: models.Product{ID: 1, Price: decimal.RequireFromString("10.00")}, Quantity: 2},
		},
		Total:  decimal.RequireFromString("31.59"),
		Status: models.OrderStatusProcessing,
		ShippingAddress: models.ShippingAddress{
			Name: "Ada", Address: "1 Main St", City: "Springfield",
			ZipCode: "12345", Country: "United States",
		},
	}
}

func TestCreateAssignsIDAndTimestamp(t *testing.T) {
	svc := NewService(storage.NewMemoryStore(), 0)

	before := time.Now().UTC()
	placed, err := svc.Create(context.Background(), draftOrder("user-1"))
	require.NoError(t, err)

	assert.NotEmpty(t, placed.ID)
	assert.False(t, placed.CreatedAt.Before(before))
	assert.Equal(t, models.OrderStatusProcessing, placed.Status)
}

func TestCreateThenForUser(t *testing.T) {
	svc := NewService(storage.NewMemoryStore(), 0)
	ctx := context.Background()

	placed, err := svc.Create(ctx, draftOrder("user-1"))
	require.NoError(t, err)

	orders, err := svc.ForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.ID, orders[0].ID)
	assert.Equal(t, "31.59", orders[0].Total.StringFixed(2))

	other, err := svc.ForUser(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestOrderLogAppends(t *testing.T) {
	svc := NewService(storage.NewMemoryStore(), 0)
	ctx := context.Background()

	first, err := svc.Create(ctx, draftOrder("user-1"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, draftOrder("user-1"))
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	orders, err := svc.ForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// storage order is insertion order
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, second.ID, orders[1].ID)
}

func TestSortByCreatedDesc(t *testing.T) {
	now := time.Now().UTC()
	orders := []models.Order{
		{ID: "old", CreatedAt: now.Add(-time.Hour)},
		{ID: "new", CreatedAt: now},
		{ID: "mid", CreatedAt: now.Add(-time.Minute)},
	}

	SortByCreatedDesc(orders)

	assert.Equal(t, "new", orders[0].ID)
	assert.Equal(t, "mid", orders[1].ID)
	assert.Equal(t, "old", orders[2].ID)
}

func TestCreateTreatsCorruptLogAsEmpty(t *testing.T) {
	mem := storage.NewMemoryStore()
	mem.Corrupt(storage.KeyOrders, []byte("{nope"))
	svc := NewService(mem, 0)

	placed, err := svc.Create(context.Background(), draftOrder("user-1"))
	require.NoError(t, err)

	orders, err := svc.ForUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.ID, orders[0].ID)
}

type failingStore struct {
	storage.Store
}

func (f failingStore) Set(ctx context.Context, key string, value interface{}) error {
	return assert.AnError
}

func TestCreatePropagatesWriteFailure(t *testing.T) {
	svc := NewService(failingStore{storage.NewMemoryStore()}, 0)

	_, err := svc.Create(context.Background(), draftOrder("user-1"))
	assert.ErrorIs(t, err, assert.AnError)
}
