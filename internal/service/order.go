package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/noraraghay/central-catalunya/internal/database"
	"github.com/noraraghay/central-catalunya/internal/pricing"
)

// OrderItemRequest is one requested order line.
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size,omitempty"`
}

// CreateOrderRequest carries a new merchandise order.
type CreateOrderRequest struct {
	MemberID       string             `json:"memberId"`
	Items          []OrderItemRequest `json:"items"`
	DeliveryMethod string             `json:"deliveryMethod"`
	Notes          string             `json:"notes,omitempty"`
}

// OrderService manages merchandise orders and keeps stock levels in
// step with their lifecycle.
type OrderService interface {
	Create(ctx context.Context, req CreateOrderRequest) (*database.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*database.Order, error)
	Confirm(ctx context.Context, id uuid.UUID) (*database.Order, error)
	MarkPreparing(ctx context.Context, id uuid.UUID) (*database.Order, error)
	MarkReady(ctx context.Context, id uuid.UUID) (*database.Order, error)
	MarkDelivered(ctx context.Context, id uuid.UUID) (*database.Order, error)
	Cancel(ctx context.Context, id uuid.UUID) (*database.Order, error)
	ApplyDiscount(ctx context.Context, id uuid.UUID, discount float64) (*database.Order, error)
}

type orderServiceImpl struct {
	store  Store
	logger *logrus.Logger
}

// NewOrderService creates an order service backed by the given store.
func NewOrderService(store Store, logger *logrus.Logger) OrderService {
	return &orderServiceImpl{store: store, logger: logger}
}

// Create validates every line against the catalog, snapshots unit
// prices, persists the order and then decrements tracked stock.
func (s *orderServiceImpl) Create(ctx context.Context, req CreateOrderRequest) (*database.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order has no items")
	}

	member := req.MemberID != ""

	items := make([]database.OrderItem, 0, len(req.Items))
	lineTotals := make([]float64, 0, len(req.Items))
	for _, line := range req.Items {
		product, err := s.store.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !Available(product, line.Quantity, line.Size) {
			return nil, fmt.Errorf("%w: %s", database.ErrProductUnavailable, product.Name)
		}
		unit := product.Price
		if member && product.MemberPrice != nil {
			unit = *product.MemberPrice
		}
		lineTotal := pricing.LineTotal(unit, line.Quantity)
		items = append(items, database.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Size:        line.Size,
			Quantity:    line.Quantity,
			UnitPrice:   unit,
			TotalPrice:  lineTotal,
		})
		lineTotals = append(lineTotals, lineTotal)
	}

	subtotal := pricing.Sum(lineTotals...)
	now := time.Now().UTC()
	order := &database.Order{
		ID:             uuid.New(),
		MemberID:       req.MemberID,
		Items:          items,
		Subtotal:       subtotal,
		Total:          subtotal,
		Status:         database.OrderStatusPending,
		DeliveryMethod: req.DeliveryMethod,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		if _, err := s.store.DecreaseStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"orderId":   order.ID,
				"productId": item.ProductID,
			}).Warn("failed to decrement stock for order line")
		}
	}
	return order, nil
}

func (s *orderServiceImpl) Get(ctx context.Context, id uuid.UUID) (*database.Order, error) {
	return s.store.GetOrder(ctx, id)
}

func (s *orderServiceImpl) Confirm(ctx context.Context, id uuid.UUID) (*database.Order, error) {
	return s.store.UpdateOrder(ctx, id, database.Patch{"status": database.OrderStatusConfirmed})
}

func (s *orderServiceImpl) MarkPreparing(ctx context.Context, id uuid.UUID) (*database.Order, error) {
	return s.store.UpdateOrder(ctx, id, database.Patch{"status": database.OrderStatusPreparing})
}

func (s *orderServiceImpl) MarkReady(ctx context.Context, id uuid.UUID) (*database.Order, error) {
	return s.store.UpdateOrder(ctx, id, database.Patch{"status": database.OrderStatusReady})
}

func (s *orderServiceImpl) MarkDelivered(ctx context.Context, id uuid.UUID) (*database.Order, error) {
	return s.store.UpdateOrder(ctx, id, database.Patch{
		"status":      database.OrderStatusDelivered,
		"deliveredAt": time.Now().UTC(),
	})
}

// Cancel moves the order to cancelled and restores tracked stock. The
// transition happens first and exactly once, so concurrent cancels of
// the same order restore stock only once. A delivered order cannot be
// cancelled; cancelling an already cancelled order is a no-op.
func (s *orderServiceImpl) Cancel(ctx context.Context, id uuid.UUID) (*database.Order, error) {
	order, changed, err := s.store.MarkOrderCancelled(ctx, id)
	if err != nil {
		return nil, err
	}
	if !changed {
		if order.Status == database.OrderStatusDelivered {
			return nil, database.ErrOrderDelivered
		}
		return order, nil
	}

	for _, item := range order.Items {
		if _, err := s.store.IncreaseStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"orderId":   order.ID,
				"productId": item.ProductID,
			}).Warn("failed to restore stock for cancelled order line")
		}
	}
	return order, nil
}

// ApplyDiscount recomputes the total from the stored subtotal.
func (s *orderServiceImpl) ApplyDiscount(ctx context.Context, id uuid.UUID, discount float64) (*database.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	total := pricing.DiscountedTotal(order.Subtotal, discount)
	return s.store.UpdateOrder(ctx, id, database.Patch{
		"discount": discount,
		"total":    total,
	})
}
