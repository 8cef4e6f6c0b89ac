package database

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noraraghay/central-catalunya/internal/timeslot"
)

// MemoryStore is an in-memory store with the same guarantees as the
// Postgres repository: the mutex is held across every check-then-write,
// so overlap checks, counter increments and stock arithmetic are atomic
// with respect to concurrent callers. It backs the service tests and
// can run the server without a database.
type MemoryStore struct {
	mu       sync.Mutex
	fields   map[uuid.UUID]*Field
	bookings map[uuid.UUID]*Booking
	products map[uuid.UUID]*Product
	orders   map[uuid.UUID]*Order
	members  map[uuid.UUID]*Member
	payments map[uuid.UUID]*Payment
	counters map[string]int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		fields:   make(map[uuid.UUID]*Field),
		bookings: make(map[uuid.UUID]*Booking),
		products: make(map[uuid.UUID]*Product),
		orders:   make(map[uuid.UUID]*Order),
		members:  make(map[uuid.UUID]*Member),
		payments: make(map[uuid.UUID]*Payment),
		counters: make(map[string]int64),
	}
}

// clone deep-copies a record through JSON so callers never alias stored
// state. It also gives patches the exact same shallow-merge semantics
// as the jsonb || operator in the repository.
func clone[T any](rec *T) *T {
	raw, _ := json.Marshal(rec)
	out := new(T)
	_ = json.Unmarshal(raw, out)
	return out
}

func applyPatch[T any](rec *T, patch Patch) (*T, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	for k, v := range patch {
		doc[k] = v
	}
	doc["updatedAt"] = time.Now().UTC()

	merged, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal patched record: %w", err)
	}
	out := new(T)
	if err := json.Unmarshal(merged, out); err != nil {
		return nil, fmt.Errorf("decode patched record: %w", err)
	}
	return out, nil
}

// --- Fields ---

func (s *MemoryStore) CreateField(ctx context.Context, f *Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[f.ID] = clone(f)
	return nil
}

func (s *MemoryStore) GetField(ctx context.Context, id uuid.UUID) (*Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fields[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(f), nil
}

func (s *MemoryStore) UpdateField(ctx context.Context, id uuid.UUID, patch Patch) (*Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fields[id]
	if !ok {
		return nil, ErrNotFound
	}
	updated, err := applyPatch(f, patch)
	if err != nil {
		return nil, err
	}
	s.fields[id] = updated
	return clone(updated), nil
}

func (s *MemoryStore) DeleteField(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.fields[id]; !ok {
		return ErrNotFound
	}
	delete(s.fields, id)
	return nil
}

func (s *MemoryStore) ListFields(ctx context.Context) ([]Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Field
	for _, f := range s.fields {
		out = append(out, *clone(f))
	}
	return out, nil
}

// --- Bookings ---

func (s *MemoryStore) ActiveBookings(ctx context.Context, fieldID uuid.UUID, date string) ([]Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeBookingsLocked(fieldID, date), nil
}

func (s *MemoryStore) activeBookingsLocked(fieldID uuid.UUID, date string) []Booking {
	var out []Booking
	for _, b := range s.bookings {
		if b.FieldID != fieldID || b.Date != date {
			continue
		}
		if b.Status != BookingStatusPending && b.Status != BookingStatusConfirmed {
			continue
		}
		out = append(out, *clone(b))
	}
	return out
}

func (s *MemoryStore) CreateBooking(ctx context.Context, b *Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	requested := timeslot.New(b.StartTime, b.EndTime)
	for _, other := range s.activeBookingsLocked(b.FieldID, b.Date) {
		if timeslot.Overlaps(requested, timeslot.New(other.StartTime, other.EndTime)) {
			return ErrSlotUnavailable
		}
	}
	s.bookings[b.ID] = clone(b)
	return nil
}

func (s *MemoryStore) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(b), nil
}

func (s *MemoryStore) UpdateBooking(ctx context.Context, id uuid.UUID, patch Patch) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	updated, err := applyPatch(b, patch)
	if err != nil {
		return nil, err
	}
	s.bookings[id] = updated
	return clone(updated), nil
}

func (s *MemoryStore) BookingsForField(ctx context.Context, fieldID uuid.UUID) ([]Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Booking
	for _, b := range s.bookings {
		if b.FieldID == fieldID {
			out = append(out, *clone(b))
		}
	}
	return out, nil
}

// --- Products & stock ---

func (s *MemoryStore) CreateProduct(ctx context.Context, p *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = clone(p)
	return nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(p), nil
}

func (s *MemoryStore) UpdateProduct(ctx context.Context, id uuid.UUID, patch Patch) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	updated, err := applyPatch(p, patch)
	if err != nil {
		return nil, err
	}
	s.products[id] = updated
	return clone(updated), nil
}

func (s *MemoryStore) ListProducts(ctx context.Context) ([]Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Product
	for _, p := range s.products {
		out = append(out, *clone(p))
	}
	return out, nil
}

func (s *MemoryStore) DecreaseStock(ctx context.Context, id uuid.UUID, quantity int) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !p.HasStock {
		return clone(p), nil
	}
	p.StockQuantity -= quantity
	if p.StockQuantity < 0 {
		p.StockQuantity = 0
	}
	p.UpdatedAt = time.Now().UTC()
	return clone(p), nil
}

func (s *MemoryStore) IncreaseStock(ctx context.Context, id uuid.UUID, quantity int) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !p.HasStock {
		return clone(p), nil
	}
	p.StockQuantity += quantity
	p.UpdatedAt = time.Now().UTC()
	return clone(p), nil
}

// --- Orders ---

func (s *MemoryStore) CreateOrder(ctx context.Context, o *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = clone(o)
	return nil
}

func (s *MemoryStore) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(o), nil
}

func (s *MemoryStore) UpdateOrder(ctx context.Context, id uuid.UUID, patch Patch) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	updated, err := applyPatch(o, patch)
	if err != nil {
		return nil, err
	}
	s.orders[id] = updated
	return clone(updated), nil
}

func (s *MemoryStore) MarkOrderCancelled(ctx context.Context, id uuid.UUID) (*Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, false, ErrNotFound
	}
	if o.Status == OrderStatusCancelled || o.Status == OrderStatusDelivered {
		return clone(o), false, nil
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now().UTC()
	return clone(o), true, nil
}

// --- Members & payments ---

func (s *MemoryStore) CreateMember(ctx context.Context, m *Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[m.ID] = clone(m)
	return nil
}

func (s *MemoryStore) GetMember(ctx context.Context, id uuid.UUID) (*Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(m), nil
}

// ListMembers returns one page of members, newest first, plus the
// total count.
func (s *MemoryStore) ListMembers(ctx context.Context, page, limit int) ([]Member, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	all := make([]Member, 0, len(s.members))
	for _, m := range s.members {
		all = append(all, *clone(m))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []Member{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *MemoryStore) FindMemberByNumber(ctx context.Context, number string) (*Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.MemberNumber == number {
			return clone(m), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreatePayment(ctx context.Context, p *Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[p.ID] = clone(p)
	return nil
}

func (s *MemoryStore) GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(p), nil
}

func (s *MemoryStore) UpdatePayment(ctx context.Context, id uuid.UUID, patch Patch) (*Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	updated, err := applyPatch(p, patch)
	if err != nil {
		return nil, err
	}
	s.payments[id] = updated
	return clone(updated), nil
}

// --- Counters ---

func (s *MemoryStore) NextSequence(ctx context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[name]++
	return s.counters[name], nil
}
