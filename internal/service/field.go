package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noraraghay/central-catalunya/internal/database"
	"github.com/noraraghay/central-catalunya/internal/pricing"
	"github.com/noraraghay/central-catalunya/internal/timeslot"
)

// Slot is one bookable interval on a field's calendar.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CreateFieldRequest carries the attributes of a new field.
type CreateFieldRequest struct {
	Name        string                  `json:"name"`
	Type        database.FieldType      `json:"type"`
	Capacity    int                     `json:"capacity"`
	HasLighting bool                    `json:"hasLighting"`
	Pricing     pricing.RateCard        `json:"pricing"`
	Hours       database.OperatingHours `json:"availableHours"`
	Notes       string                  `json:"notes,omitempty"`
}

// QuoteRequest carries the inputs for a price quote on a field.
type QuoteRequest struct {
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	WithLighting bool   `json:"withLighting"`
	IsMember     bool   `json:"isMember"`
}

// FieldService manages fields, their availability and their pricing.
type FieldService interface {
	Create(ctx context.Context, req CreateFieldRequest) (*database.Field, error)
	Get(ctx context.Context, id uuid.UUID) (*database.Field, error)
	List(ctx context.Context) ([]database.Field, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ChangeStatus(ctx context.Context, id uuid.UUID, status database.FieldStatus) (*database.Field, error)
	IsAvailable(ctx context.Context, id uuid.UUID, date, startTime, endTime string) (bool, error)
	AvailableSlots(ctx context.Context, id uuid.UUID, date string) ([]Slot, error)
	Quote(ctx context.Context, id uuid.UUID, req QuoteRequest) (float64, error)
}

type fieldServiceImpl struct {
	store Store
}

// NewFieldService creates a field service backed by the given store.
func NewFieldService(store Store) FieldService {
	return &fieldServiceImpl{store: store}
}

func (s *fieldServiceImpl) Create(ctx context.Context, req CreateFieldRequest) (*database.Field, error) {
	now := time.Now().UTC()
	field := &database.Field{
		ID:          uuid.New(),
		Name:        req.Name,
		Type:        req.Type,
		Status:      database.FieldStatusAvailable,
		Capacity:    req.Capacity,
		HasLighting: req.HasLighting,
		Pricing:     req.Pricing,
		Hours:       req.Hours,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateField(ctx, field); err != nil {
		return nil, fmt.Errorf("failed to create field: %w", err)
	}
	return field, nil
}

func (s *fieldServiceImpl) Get(ctx context.Context, id uuid.UUID) (*database.Field, error) {
	return s.store.GetField(ctx, id)
}

func (s *fieldServiceImpl) List(ctx context.Context) ([]database.Field, error) {
	return s.store.ListFields(ctx)
}

func (s *fieldServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteField(ctx, id)
}

func (s *fieldServiceImpl) ChangeStatus(ctx context.Context, id uuid.UUID, status database.FieldStatus) (*database.Field, error) {
	return s.store.UpdateField(ctx, id, database.Patch{"status": status})
}

// IsAvailable reports whether the interval on the given date is free of
// active bookings. A field under maintenance is never available.
func (s *fieldServiceImpl) IsAvailable(ctx context.Context, id uuid.UUID, date, startTime, endTime string) (bool, error) {
	field, err := s.store.GetField(ctx, id)
	if err != nil {
		return false, err
	}
	if field.Status == database.FieldStatusMaintenance {
		return false, nil
	}

	active, err := s.store.ActiveBookings(ctx, id, date)
	if err != nil {
		return false, fmt.Errorf("failed to load bookings: %w", err)
	}
	requested := timeslot.New(startTime, endTime)
	for _, b := range active {
		if timeslot.Overlaps(requested, timeslot.New(b.StartTime, b.EndTime)) {
			return false, nil
		}
	}
	return true, nil
}

// AvailableSlots returns the free hourly slots for the date, cut from
// the field's weekday or weekend window.
func (s *fieldServiceImpl) AvailableSlots(ctx context.Context, id uuid.UUID, date string) ([]Slot, error) {
	field, err := s.store.GetField(ctx, id)
	if err != nil {
		return nil, err
	}
	if field.Status == database.FieldStatusMaintenance {
		return []Slot{}, nil
	}

	window := field.Hours.Weekday
	if weekend, err := isWeekend(date); err != nil {
		return nil, err
	} else if weekend {
		window = field.Hours.Weekend
	}

	active, err := s.store.ActiveBookings(ctx, id, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	slots := []Slot{}
	for _, candidate := range timeslot.HourlySlots(timeslot.New(window.Start, window.End)) {
		taken := false
		for _, b := range active {
			if timeslot.Overlaps(candidate, timeslot.New(b.StartTime, b.EndTime)) {
				taken = true
				break
			}
		}
		if !taken {
			slots = append(slots, Slot{
				Start: timeslot.Format(candidate.Start),
				End:   timeslot.Format(candidate.End),
			})
		}
	}
	return slots, nil
}

// Quote prices the interval without reserving anything.
func (s *fieldServiceImpl) Quote(ctx context.Context, id uuid.UUID, req QuoteRequest) (float64, error) {
	field, err := s.store.GetField(ctx, id)
	if err != nil {
		return 0, err
	}
	weekend, err := isWeekend(req.Date)
	if err != nil {
		return 0, err
	}
	interval := timeslot.New(req.StartTime, req.EndTime)
	lighting := req.WithLighting && field.HasLighting
	return pricing.Quote(field.Pricing, interval.Start, interval.End, weekend, lighting, req.IsMember), nil
}

func isWeekend(date string) (bool, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false, fmt.Errorf("invalid date %q: %w", date, err)
	}
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday, nil
}
