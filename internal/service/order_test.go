package service

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noraraghay/central-catalunya/internal/database"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func seedProduct(t *testing.T, store Store, req CreateProductRequest) *database.Product {
	t.Helper()
	product, err := NewStockService(store).CreateProduct(context.Background(), req)
	require.NoError(t, err)
	return product
}

func TestStockServiceAvailability(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewStockService(store)
	ctx := context.Background()

	memberPrice := 18.0
	shirt := seedProduct(t, store, CreateProductRequest{
		Name:           "Home shirt",
		Category:       database.ProductCategoryUniform,
		Price:          25,
		MemberPrice:    &memberPrice,
		HasStock:       true,
		StockQuantity:  3,
		AvailableSizes: []string{"S", "M", "L"},
	})

	ok, err := svc.CheckAvailability(ctx, shirt.ID, 3, "M")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckAvailability(ctx, shirt.ID, 4, "M")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CheckAvailability(ctx, shirt.ID, 1, "XXL")
	require.NoError(t, err)
	assert.False(t, ok)

	// Untracked products are available at any quantity.
	sticker := seedProduct(t, store, CreateProductRequest{
		Name:     "Crest sticker",
		Category: database.ProductCategoryMerch,
		Price:    1,
	})
	ok, err = svc.CheckAvailability(ctx, sticker.ID, 500, "")
	require.NoError(t, err)
	assert.True(t, ok)

	// A size on a one-size product is ignored rather than rejected.
	ok, err = svc.CheckAvailability(ctx, sticker.ID, 1, "M")
	require.NoError(t, err)
	assert.True(t, ok)

	// Deactivated products are never available.
	_, err = svc.SetActive(ctx, sticker.ID, false)
	require.NoError(t, err)
	ok, err = svc.CheckAvailability(ctx, sticker.ID, 1, "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.CheckAvailability(ctx, uuid.New(), 1, "")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestStockServiceUpdateStock(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewStockService(store)
	ctx := context.Background()

	shirt := seedProduct(t, store, CreateProductRequest{
		Name:          "Home shirt",
		Category:      database.ProductCategoryUniform,
		Price:         25,
		HasStock:      true,
		StockQuantity: 3,
	})

	got, err := svc.UpdateStock(ctx, shirt.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, got.StockQuantity)

	got, err = svc.Decrease(ctx, shirt.ID, 15)
	require.NoError(t, err)
	assert.Equal(t, 25, got.StockQuantity)

	got, err = svc.Increase(ctx, shirt.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 30, got.StockQuantity)
}

func TestOrderServiceCreate(t *testing.T) {
	store := database.NewMemoryStore()
	orders := NewOrderService(store, testLogger())
	ctx := context.Background()

	memberPrice := 18.0
	shirt := seedProduct(t, store, CreateProductRequest{
		Name:           "Home shirt",
		Category:       database.ProductCategoryUniform,
		Price:          25,
		MemberPrice:    &memberPrice,
		HasStock:       true,
		StockQuantity:  10,
		AvailableSizes: []string{"S", "M", "L"},
	})
	bag := seedProduct(t, store, CreateProductRequest{
		Name:     "Kit bag",
		Category: database.ProductCategoryEquipment,
		Price:    12.50,
	})

	order, err := orders.Create(ctx, CreateOrderRequest{
		MemberID: "CDC-2026-0001",
		Items: []OrderItemRequest{
			{ProductID: shirt.ID, Quantity: 2, Size: "M"},
			{ProductID: bag.ID, Quantity: 1},
		},
		DeliveryMethod: "pickup",
	})
	require.NoError(t, err)
	assert.Equal(t, database.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)
	// Member unit price is snapshotted on the line.
	assert.Equal(t, 18.0, order.Items[0].UnitPrice)
	assert.Equal(t, 36.0, order.Items[0].TotalPrice)
	assert.Equal(t, 12.50, order.Items[1].UnitPrice)
	assert.Equal(t, 48.50, order.Subtotal)
	assert.Equal(t, 48.50, order.Total)

	// Tracked stock was decremented, untracked left alone.
	got, err := store.GetProduct(ctx, shirt.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.StockQuantity)

	// Non-members pay the regular price.
	guest, err := orders.Create(ctx, CreateOrderRequest{
		Items:          []OrderItemRequest{{ProductID: shirt.ID, Quantity: 1, Size: "L"}},
		DeliveryMethod: "pickup",
	})
	require.NoError(t, err)
	assert.Equal(t, 25.0, guest.Items[0].UnitPrice)

	_, err = orders.Create(ctx, CreateOrderRequest{
		Items:          []OrderItemRequest{{ProductID: shirt.ID, Quantity: 100, Size: "M"}},
		DeliveryMethod: "pickup",
	})
	assert.ErrorIs(t, err, database.ErrProductUnavailable)

	_, err = orders.Create(ctx, CreateOrderRequest{DeliveryMethod: "pickup"})
	assert.Error(t, err)
}

func TestOrderServiceLifecycle(t *testing.T) {
	store := database.NewMemoryStore()
	orders := NewOrderService(store, testLogger())
	ctx := context.Background()

	bag := seedProduct(t, store, CreateProductRequest{
		Name:     "Kit bag",
		Category: database.ProductCategoryEquipment,
		Price:    12.50,
	})
	order, err := orders.Create(ctx, CreateOrderRequest{
		Items:          []OrderItemRequest{{ProductID: bag.ID, Quantity: 1}},
		DeliveryMethod: "pickup",
	})
	require.NoError(t, err)

	got, err := orders.Confirm(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, database.OrderStatusConfirmed, got.Status)

	got, err = orders.MarkPreparing(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, database.OrderStatusPreparing, got.Status)

	got, err = orders.MarkReady(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, database.OrderStatusReady, got.Status)

	got, err = orders.MarkDelivered(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, database.OrderStatusDelivered, got.Status)
	require.NotNil(t, got.DeliveredAt)

	// Delivered orders cannot be cancelled.
	_, err = orders.Cancel(ctx, order.ID)
	assert.ErrorIs(t, err, database.ErrOrderDelivered)
}

func TestOrderServiceCancelRestoresStockOnce(t *testing.T) {
	store := database.NewMemoryStore()
	orders := NewOrderService(store, testLogger())
	ctx := context.Background()

	shirt := seedProduct(t, store, CreateProductRequest{
		Name:          "Home shirt",
		Category:      database.ProductCategoryUniform,
		Price:         25,
		HasStock:      true,
		StockQuantity: 10,
	})
	sticker := seedProduct(t, store, CreateProductRequest{
		Name:     "Crest sticker",
		Category: database.ProductCategoryMerch,
		Price:    1,
	})
	order, err := orders.Create(ctx, CreateOrderRequest{
		Items: []OrderItemRequest{
			{ProductID: shirt.ID, Quantity: 4},
			{ProductID: sticker.ID, Quantity: 2},
		},
		DeliveryMethod: "pickup",
	})
	require.NoError(t, err)

	got, err := store.GetProduct(ctx, shirt.ID)
	require.NoError(t, err)
	require.Equal(t, 6, got.StockQuantity)

	cancelled, err := orders.Cancel(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, database.OrderStatusCancelled, cancelled.Status)

	got, err = store.GetProduct(ctx, shirt.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.StockQuantity)

	// The untracked line never touched a counter, so none is restored.
	got, err = store.GetProduct(ctx, sticker.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)

	// Cancelling again is a no-op and must not restore stock twice.
	again, err := orders.Cancel(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, database.OrderStatusCancelled, again.Status)
	got, err = store.GetProduct(ctx, shirt.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.StockQuantity)

	_, err = orders.Cancel(ctx, uuid.New())
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestOrderServiceApplyDiscount(t *testing.T) {
	store := database.NewMemoryStore()
	orders := NewOrderService(store, testLogger())
	ctx := context.Background()

	bag := seedProduct(t, store, CreateProductRequest{
		Name:     "Kit bag",
		Category: database.ProductCategoryEquipment,
		Price:    12.50,
	})
	order, err := orders.Create(ctx, CreateOrderRequest{
		Items:          []OrderItemRequest{{ProductID: bag.ID, Quantity: 2}},
		DeliveryMethod: "pickup",
	})
	require.NoError(t, err)
	require.Equal(t, 25.0, order.Total)

	got, err := orders.ApplyDiscount(ctx, order.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Discount)
	assert.Equal(t, 20.0, got.Total)

	// A discount larger than the subtotal floors the total at zero.
	got, err = orders.ApplyDiscount(ctx, order.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Total)
}
