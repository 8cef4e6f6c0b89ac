package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/noraraghay/central-catalunya/internal/database"
)

// Store is the persistence surface the services depend on. Both the
// Postgres repository and the in-memory store satisfy it.
type Store interface {
	CreateField(ctx context.Context, f *database.Field) error
	GetField(ctx context.Context, id uuid.UUID) (*database.Field, error)
	UpdateField(ctx context.Context, id uuid.UUID, patch database.Patch) (*database.Field, error)
	DeleteField(ctx context.Context, id uuid.UUID) error
	ListFields(ctx context.Context) ([]database.Field, error)

	ActiveBookings(ctx context.Context, fieldID uuid.UUID, date string) ([]database.Booking, error)
	CreateBooking(ctx context.Context, b *database.Booking) error
	GetBooking(ctx context.Context, id uuid.UUID) (*database.Booking, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, patch database.Patch) (*database.Booking, error)
	BookingsForField(ctx context.Context, fieldID uuid.UUID) ([]database.Booking, error)

	CreateProduct(ctx context.Context, p *database.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*database.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch database.Patch) (*database.Product, error)
	ListProducts(ctx context.Context) ([]database.Product, error)
	DecreaseStock(ctx context.Context, id uuid.UUID, quantity int) (*database.Product, error)
	IncreaseStock(ctx context.Context, id uuid.UUID, quantity int) (*database.Product, error)

	CreateOrder(ctx context.Context, o *database.Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*database.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, patch database.Patch) (*database.Order, error)
	MarkOrderCancelled(ctx context.Context, id uuid.UUID) (*database.Order, bool, error)

	CreateMember(ctx context.Context, m *database.Member) error
	GetMember(ctx context.Context, id uuid.UUID) (*database.Member, error)
	ListMembers(ctx context.Context, page, limit int) ([]database.Member, int64, error)
	FindMemberByNumber(ctx context.Context, number string) (*database.Member, error)

	CreatePayment(ctx context.Context, p *database.Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*database.Payment, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, patch database.Patch) (*database.Payment, error)

	NextSequence(ctx context.Context, name string) (int64, error)
}

var (
	_ Store = (*database.Repository)(nil)
	_ Store = (*database.MemoryStore)(nil)
)
