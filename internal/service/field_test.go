package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noraraghay/central-catalunya/internal/database"
	"github.com/noraraghay/central-catalunya/internal/pricing"
)

const (
	weekdayDate = "2026-09-04" // Friday
	weekendDate = "2026-09-05" // Saturday
)

func seedField(t *testing.T, store Store) *database.Field {
	t.Helper()
	svc := NewFieldService(store)
	field, err := svc.Create(context.Background(), CreateFieldRequest{
		Name:        "Camp Principal",
		Type:        database.FieldTypeGrass,
		Capacity:    22,
		HasLighting: true,
		Pricing: pricing.RateCard{
			HourlyRate:        20,
			MemberDiscount:    10,
			WeekendSurcharge:  20,
			LightingSurcharge: 5,
		},
		Hours: database.OperatingHours{
			Weekday: database.TimeWindow{Start: "09:00", End: "22:00"},
			Weekend: database.TimeWindow{Start: "08:00", End: "21:00"},
		},
	})
	require.NoError(t, err)
	return field
}

func TestFieldServiceCreateAndGet(t *testing.T) {
	store := database.NewMemoryStore()
	field := seedField(t, store)

	got, err := NewFieldService(store).Get(context.Background(), field.ID)
	require.NoError(t, err)
	assert.Equal(t, "Camp Principal", got.Name)
	assert.Equal(t, database.FieldStatusAvailable, got.Status)

	_, err = NewFieldService(store).Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestFieldServiceDelete(t *testing.T) {
	store := database.NewMemoryStore()
	field := seedField(t, store)
	svc := NewFieldService(store)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, field.ID))

	_, err := svc.Get(ctx, field.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, field.ID), database.ErrNotFound)
}

func TestFieldServiceIsAvailable(t *testing.T) {
	store := database.NewMemoryStore()
	field := seedField(t, store)
	svc := NewFieldService(store)
	ctx := context.Background()

	ok, err := svc.IsAvailable(ctx, field.ID, weekdayDate, "10:00", "12:00")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = NewBookingService(store).Create(ctx, CreateBookingRequest{
		FieldID:   field.ID,
		Date:      weekdayDate,
		StartTime: "10:00",
		EndTime:   "12:00",
		BookedBy:  "coach",
	})
	require.NoError(t, err)

	ok, err = svc.IsAvailable(ctx, field.ID, weekdayDate, "11:00", "13:00")
	require.NoError(t, err)
	assert.False(t, ok)

	// Adjacent interval is free.
	ok, err = svc.IsAvailable(ctx, field.ID, weekdayDate, "12:00", "13:00")
	require.NoError(t, err)
	assert.True(t, ok)

	// Maintenance shuts the field down entirely.
	_, err = svc.ChangeStatus(ctx, field.ID, database.FieldStatusMaintenance)
	require.NoError(t, err)
	ok, err = svc.IsAvailable(ctx, field.ID, weekdayDate, "15:00", "16:00")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFieldServiceAvailableSlots(t *testing.T) {
	store := database.NewMemoryStore()
	field := seedField(t, store)
	svc := NewFieldService(store)
	ctx := context.Background()

	slots, err := svc.AvailableSlots(ctx, field.ID, weekdayDate)
	require.NoError(t, err)
	require.Len(t, slots, 13) // 09:00 through 21:00 starts
	assert.Equal(t, Slot{Start: "09:00", End: "10:00"}, slots[0])
	assert.Equal(t, Slot{Start: "21:00", End: "22:00"}, slots[12])

	// The weekend window starts and ends an hour earlier.
	slots, err = svc.AvailableSlots(ctx, field.ID, weekendDate)
	require.NoError(t, err)
	require.Len(t, slots, 13)
	assert.Equal(t, Slot{Start: "08:00", End: "09:00"}, slots[0])

	// Booked hours drop out.
	_, err = NewBookingService(store).Create(ctx, CreateBookingRequest{
		FieldID:   field.ID,
		Date:      weekdayDate,
		StartTime: "10:00",
		EndTime:   "12:00",
		BookedBy:  "coach",
	})
	require.NoError(t, err)
	slots, err = svc.AvailableSlots(ctx, field.ID, weekdayDate)
	require.NoError(t, err)
	require.Len(t, slots, 11)
	for _, slot := range slots {
		assert.NotEqual(t, "10:00", slot.Start)
		assert.NotEqual(t, "11:00", slot.Start)
	}

	// Maintenance empties the calendar.
	_, err = svc.ChangeStatus(ctx, field.ID, database.FieldStatusMaintenance)
	require.NoError(t, err)
	slots, err = svc.AvailableSlots(ctx, field.ID, weekdayDate)
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = svc.AvailableSlots(ctx, uuid.New(), weekdayDate)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestFieldServiceQuote(t *testing.T) {
	store := database.NewMemoryStore()
	field := seedField(t, store)
	svc := NewFieldService(store)
	ctx := context.Background()

	tests := []struct {
		name string
		req  QuoteRequest
		want float64
	}{
		{
			name: "weekday base",
			req:  QuoteRequest{Date: weekdayDate, StartTime: "10:00", EndTime: "12:00"},
			want: 40.00,
		},
		{
			name: "weekend surcharge",
			req:  QuoteRequest{Date: weekendDate, StartTime: "10:00", EndTime: "12:00"},
			want: 48.00,
		},
		{
			name: "weekend with lighting",
			req:  QuoteRequest{Date: weekendDate, StartTime: "10:00", EndTime: "12:00", WithLighting: true},
			want: 58.00,
		},
		{
			name: "member discount on weekend lighting total",
			req:  QuoteRequest{Date: weekendDate, StartTime: "10:00", EndTime: "12:00", WithLighting: true, IsMember: true},
			want: 52.20,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Quote(ctx, field.ID, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := svc.Quote(ctx, field.ID, QuoteRequest{Date: "not-a-date", StartTime: "10:00", EndTime: "11:00"})
	assert.Error(t, err)
}
