package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/noraraghay/central-catalunya/internal/database"
	"github.com/noraraghay/central-catalunya/internal/service"
)

// MockFieldService is a mock implementation of FieldService
type MockFieldService struct {
	mock.Mock
}

func (m *MockFieldService) Create(ctx context.Context, req service.CreateFieldRequest) (*database.Field, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Field), args.Error(1)
}

func (m *MockFieldService) Get(ctx context.Context, id uuid.UUID) (*database.Field, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Field), args.Error(1)
}

func (m *MockFieldService) List(ctx context.Context) ([]database.Field, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]database.Field), args.Error(1)
}

func (m *MockFieldService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFieldService) ChangeStatus(ctx context.Context, id uuid.UUID, status database.FieldStatus) (*database.Field, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Field), args.Error(1)
}

func (m *MockFieldService) IsAvailable(ctx context.Context, id uuid.UUID, date, startTime, endTime string) (bool, error) {
	args := m.Called(ctx, id, date, startTime, endTime)
	return args.Bool(0), args.Error(1)
}

func (m *MockFieldService) AvailableSlots(ctx context.Context, id uuid.UUID, date string) ([]service.Slot, error) {
	args := m.Called(ctx, id, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.Slot), args.Error(1)
}

func (m *MockFieldService) Quote(ctx context.Context, id uuid.UUID, req service.QuoteRequest) (float64, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(float64), args.Error(1)
}

// MockBookingService is a mock implementation of BookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, req service.CreateBookingRequest) (*database.Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Booking), args.Error(1)
}

func (m *MockBookingService) Get(ctx context.Context, id uuid.UUID) (*database.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Booking), args.Error(1)
}

func (m *MockBookingService) ListForField(ctx context.Context, fieldID uuid.UUID) ([]database.Booking, error) {
	args := m.Called(ctx, fieldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]database.Booking), args.Error(1)
}

func (m *MockBookingService) Confirm(ctx context.Context, id uuid.UUID) (*database.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Booking), args.Error(1)
}

func (m *MockBookingService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*database.Booking, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Booking), args.Error(1)
}

func (m *MockBookingService) Complete(ctx context.Context, id uuid.UUID) (*database.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Booking), args.Error(1)
}

func (m *MockBookingService) MarkAsPaid(ctx context.Context, id uuid.UUID, paymentRef string) (*database.Booking, error) {
	args := m.Called(ctx, id, paymentRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Booking), args.Error(1)
}

// MockStockService is a mock implementation of StockService
type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) CreateProduct(ctx context.Context, req service.CreateProductRequest) (*database.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Product), args.Error(1)
}

func (m *MockStockService) Get(ctx context.Context, id uuid.UUID) (*database.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Product), args.Error(1)
}

func (m *MockStockService) List(ctx context.Context) ([]database.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]database.Product), args.Error(1)
}

func (m *MockStockService) CheckAvailability(ctx context.Context, id uuid.UUID, quantity int, size string) (bool, error) {
	args := m.Called(ctx, id, quantity, size)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockService) UpdateStock(ctx context.Context, id uuid.UUID, quantity int) (*database.Product, error) {
	args := m.Called(ctx, id, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Product), args.Error(1)
}

func (m *MockStockService) Decrease(ctx context.Context, id uuid.UUID, quantity int) (*database.Product, error) {
	args := m.Called(ctx, id, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Product), args.Error(1)
}

func (m *MockStockService) Increase(ctx context.Context, id uuid.UUID, quantity int) (*database.Product, error) {
	args := m.Called(ctx, id, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Product), args.Error(1)
}

func (m *MockStockService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*database.Product, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Product), args.Error(1)
}

// MockOrderService is a mock implementation of OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, req service.CreateOrderRequest) (*database.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, id uuid.UUID) (*database.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Order), args.Error(1)
}

func (m *MockOrderService) Confirm(ctx context.Context, id uuid.UUID) (*database.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Order), args.Error(1)
}

func (m *MockOrderService) MarkPreparing(ctx context.Context, id uuid.UUID) (*database.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Order), args.Error(1)
}

func (m *MockOrderService) MarkReady(ctx context.Context, id uuid.UUID) (*database.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Order), args.Error(1)
}

func (m *MockOrderService) MarkDelivered(ctx context.Context, id uuid.UUID) (*database.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Order), args.Error(1)
}

func (m *MockOrderService) Cancel(ctx context.Context, id uuid.UUID) (*database.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Order), args.Error(1)
}

func (m *MockOrderService) ApplyDiscount(ctx context.Context, id uuid.UUID, discount float64) (*database.Order, error) {
	args := m.Called(ctx, id, discount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Order), args.Error(1)
}

// MockMemberService is a mock implementation of MemberService
type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) Create(ctx context.Context, req service.CreateMemberRequest) (*database.Member, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Member), args.Error(1)
}

func (m *MockMemberService) Get(ctx context.Context, id uuid.UUID) (*database.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Member), args.Error(1)
}

func (m *MockMemberService) List(ctx context.Context, page, limit int) ([]database.Member, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]database.Member), args.Get(1).(int64), args.Error(2)
}

func (m *MockMemberService) FindByNumber(ctx context.Context, number string) (*database.Member, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Member), args.Error(1)
}

// MockPaymentService is a mock implementation of PaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Create(ctx context.Context, req service.CreatePaymentRequest) (*database.Payment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Payment), args.Error(1)
}

func (m *MockPaymentService) Get(ctx context.Context, id uuid.UUID) (*database.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Payment), args.Error(1)
}

func (m *MockPaymentService) MarkPaid(ctx context.Context, id uuid.UUID, method, transactionID string) (*database.Payment, error) {
	args := m.Called(ctx, id, method, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Payment), args.Error(1)
}
