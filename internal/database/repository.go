package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noraraghay/central-catalunya/internal/timeslot"
)

// Repository is the Postgres-backed store. CRUD is delegated to the
// generic collections; operations with cross-request invariants
// (counters, booking inserts, stock arithmetic) run their own SQL so
// the store enforces them atomically.
type Repository struct {
	pool *pgxpool.Pool

	fields   *Collection[Field]
	bookings *Collection[Booking]
	products *Collection[Product]
	orders   *Collection[Order]
	members  *Collection[Member]
	payments *Collection[Payment]
}

// NewRepository creates a repository over a connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{
		pool:     pool,
		fields:   NewCollection[Field](pool, "fields"),
		bookings: NewCollection[Booking](pool, "bookings"),
		products: NewCollection[Product](pool, "products"),
		orders:   NewCollection[Order](pool, "orders"),
		members:  NewCollection[Member](pool, "members"),
		payments: NewCollection[Payment](pool, "payments"),
	}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS fields (
		id uuid PRIMARY KEY,
		doc jsonb NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id uuid PRIMARY KEY,
		doc jsonb NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_doc_idx ON bookings USING gin (doc jsonb_path_ops)`,
	`CREATE TABLE IF NOT EXISTS products (
		id uuid PRIMARY KEY,
		doc jsonb NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id uuid PRIMARY KEY,
		doc jsonb NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS members (
		id uuid PRIMARY KEY,
		doc jsonb NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS members_doc_idx ON members USING gin (doc jsonb_path_ops)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id uuid PRIMARY KEY,
		doc jsonb NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS counters (
		name text PRIMARY KEY,
		value bigint NOT NULL
	)`,
}

// EnsureSchema creates the store tables if they do not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// --- Fields ---

func (r *Repository) CreateField(ctx context.Context, f *Field) error {
	return r.fields.Create(ctx, f.ID, f)
}

func (r *Repository) GetField(ctx context.Context, id uuid.UUID) (*Field, error) {
	return r.fields.Get(ctx, id)
}

func (r *Repository) UpdateField(ctx context.Context, id uuid.UUID, patch Patch) (*Field, error) {
	return r.fields.Update(ctx, id, patch)
}

func (r *Repository) ListFields(ctx context.Context) ([]Field, error) {
	return r.fields.All(ctx)
}

func (r *Repository) DeleteField(ctx context.Context, id uuid.UUID) error {
	return r.fields.Delete(ctx, id)
}

// --- Bookings ---

var activeBookingStatuses = []string{
	string(BookingStatusPending),
	string(BookingStatusConfirmed),
}

// ActiveBookings returns the pending and confirmed bookings for a
// field on a date.
func (r *Repository) ActiveBookings(ctx context.Context, fieldID uuid.UUID, date string) ([]Booking, error) {
	return activeBookings(ctx, r.pool, fieldID, date)
}

func activeBookings(ctx context.Context, db querier, fieldID uuid.UUID, date string) ([]Booking, error) {
	probe, err := json.Marshal(map[string]any{"fieldId": fieldID, "date": date})
	if err != nil {
		return nil, fmt.Errorf("marshal booking probe: %w", err)
	}

	rows, err := db.Query(ctx, `
		SELECT doc FROM bookings
		WHERE doc @> $1 AND doc->>'status' = ANY($2)
		ORDER BY doc->>'startTime'
	`, probe, activeBookingStatuses)
	if err != nil {
		return nil, fmt.Errorf("query active bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		var b Booking
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}

// CreateBooking inserts a booking, guaranteeing that no two active
// bookings on the same field and date overlap. The overlap check and
// the insert run in one transaction serialized per (field, date) by an
// advisory lock, so concurrent requests for the same slot cannot both
// succeed. Returns ErrSlotUnavailable on conflict.
func (r *Repository) CreateBooking(ctx context.Context, b *Booking) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal booking: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	lockKey := b.FieldID.String() + "|" + b.Date
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return fmt.Errorf("acquire booking lock: %w", err)
	}

	existing, err := activeBookings(ctx, tx, b.FieldID, b.Date)
	if err != nil {
		return err
	}

	requested := timeslot.New(b.StartTime, b.EndTime)
	for _, other := range existing {
		if timeslot.Overlaps(requested, timeslot.New(other.StartTime, other.EndTime)) {
			return ErrSlotUnavailable
		}
	}

	if _, err := tx.Exec(ctx, `INSERT INTO bookings (id, doc) VALUES ($1, $2)`, b.ID, raw); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *Repository) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return r.bookings.Get(ctx, id)
}

func (r *Repository) UpdateBooking(ctx context.Context, id uuid.UUID, patch Patch) (*Booking, error) {
	return r.bookings.Update(ctx, id, patch)
}

func (r *Repository) BookingsForField(ctx context.Context, fieldID uuid.UUID) ([]Booking, error) {
	return r.bookings.FindByField(ctx, "fieldId", fieldID)
}

// --- Products & stock ---

func (r *Repository) CreateProduct(ctx context.Context, p *Product) error {
	return r.products.Create(ctx, p.ID, p)
}

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	return r.products.Get(ctx, id)
}

func (r *Repository) UpdateProduct(ctx context.Context, id uuid.UUID, patch Patch) (*Product, error) {
	return r.products.Update(ctx, id, patch)
}

func (r *Repository) ListProducts(ctx context.Context) ([]Product, error) {
	return r.products.All(ctx)
}

// DecreaseStock subtracts quantity from a tracked product's stock in a
// single UPDATE, clamped at zero. Untracked products are returned
// unchanged. Callers are expected to have checked availability first.
func (r *Repository) DecreaseStock(ctx context.Context, id uuid.UUID, quantity int) (*Product, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `
		UPDATE products
		SET doc = jsonb_set(doc, '{stockQuantity}',
		        to_jsonb(GREATEST(COALESCE((doc->>'stockQuantity')::int, 0) - $2, 0)))
		        || jsonb_build_object('updatedAt', now()),
		    updated_at = now()
		WHERE id = $1 AND (doc->>'hasStock')::boolean
		RETURNING doc
	`, id, quantity).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		// Missing product or one without stock tracking.
		return r.products.Get(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("decrease stock: %w", err)
	}
	return decodeProduct(raw)
}

// IncreaseStock adds quantity to a tracked product's stock. It is the
// compensating action for order cancellation and is also used for
// manual restocks. Products without stock tracking are left untouched.
func (r *Repository) IncreaseStock(ctx context.Context, id uuid.UUID, quantity int) (*Product, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `
		UPDATE products
		SET doc = jsonb_set(doc, '{stockQuantity}',
		        to_jsonb(COALESCE((doc->>'stockQuantity')::int, 0) + $2))
		        || jsonb_build_object('updatedAt', now()),
		    updated_at = now()
		WHERE id = $1 AND (doc->>'hasStock')::boolean
		RETURNING doc
	`, id, quantity).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		// Missing product or one without stock tracking.
		return r.products.Get(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("increase stock: %w", err)
	}
	return decodeProduct(raw)
}

func decodeProduct(raw []byte) (*Product, error) {
	var p Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &p, nil
}

// --- Orders ---

func (r *Repository) CreateOrder(ctx context.Context, o *Order) error {
	return r.orders.Create(ctx, o.ID, o)
}

func (r *Repository) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	return r.orders.Get(ctx, id)
}

func (r *Repository) UpdateOrder(ctx context.Context, id uuid.UUID, patch Patch) (*Order, error) {
	return r.orders.Update(ctx, id, patch)
}

// MarkOrderCancelled flips an order to cancelled unless it is already
// cancelled or delivered. The conditional UPDATE makes the transition
// happen at most once under concurrent cancel calls; the returned flag
// tells the caller whether this call performed it.
func (r *Repository) MarkOrderCancelled(ctx context.Context, id uuid.UUID) (*Order, bool, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `
		UPDATE orders
		SET doc = doc || jsonb_build_object('status', 'cancelled', 'updatedAt', now()),
		    updated_at = now()
		WHERE id = $1 AND doc->>'status' NOT IN ('cancelled', 'delivered')
		RETURNING doc
	`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		order, getErr := r.orders.Get(ctx, id)
		if getErr != nil {
			return nil, false, getErr
		}
		return order, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cancel order: %w", err)
	}

	var o Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, false, fmt.Errorf("decode order: %w", err)
	}
	return &o, true, nil
}

// --- Members & payments ---

func (r *Repository) CreateMember(ctx context.Context, m *Member) error {
	return r.members.Create(ctx, m.ID, m)
}

func (r *Repository) GetMember(ctx context.Context, id uuid.UUID) (*Member, error) {
	return r.members.Get(ctx, id)
}

// ListMembers returns one page of members plus the total count.
func (r *Repository) ListMembers(ctx context.Context, page, limit int) ([]Member, int64, error) {
	return r.members.List(ctx, page, limit)
}

func (r *Repository) FindMemberByNumber(ctx context.Context, number string) (*Member, error) {
	members, err := r.members.FindByField(ctx, "memberNumber", number)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, ErrNotFound
	}
	return &members[0], nil
}

func (r *Repository) CreatePayment(ctx context.Context, p *Payment) error {
	return r.payments.Create(ctx, p.ID, p)
}

func (r *Repository) GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return r.payments.Get(ctx, id)
}

func (r *Repository) UpdatePayment(ctx context.Context, id uuid.UUID, patch Patch) (*Payment, error) {
	return r.payments.Update(ctx, id, patch)
}

// --- Counters ---

// NextSequence atomically increments a named counter and returns the
// new value. The upsert-increment is a single statement, so no two
// callers can ever observe the same value; an unseen counter starts
// at 1.
func (r *Repository) NextSequence(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO counters (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value
	`, name).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("next sequence %q: %w", name, err)
	}
	return value, nil
}
