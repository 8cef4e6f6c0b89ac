package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noraraghay/central-catalunya/internal/database"
)

func TestBookingServiceCreate(t *testing.T) {
	store := database.NewMemoryStore()
	field := seedField(t, store)
	svc := NewBookingService(store)
	ctx := context.Background()

	booking, err := svc.Create(ctx, CreateBookingRequest{
		FieldID:      field.ID,
		Date:         weekendDate,
		StartTime:    "10:00",
		EndTime:      "12:00",
		BookedBy:     "member-42",
		WithLighting: true,
	})
	require.NoError(t, err)
	assert.Equal(t, database.BookingStatusPending, booking.Status)
	assert.Equal(t, database.PaymentStatusPending, booking.PaymentStatus)
	// Members get the discount on the weekend-and-lighting total.
	assert.Equal(t, 52.20, booking.TotalPrice)

	// External requesters pay full price.
	external, err := svc.Create(ctx, CreateBookingRequest{
		FieldID:      field.ID,
		Date:         weekendDate,
		StartTime:    "14:00",
		EndTime:      "16:00",
		BookedBy:     "front desk",
		IsExternal:   true,
		WithLighting: true,
		ExternalContact: &database.ContactInfo{
			Name:  "Jordi Santos",
			Phone: "600123123",
			Email: "jordi@example.com",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 58.00, external.TotalPrice)

	_, err = svc.Create(ctx, CreateBookingRequest{
		FieldID:   field.ID,
		Date:      weekendDate,
		StartTime: "11:00",
		EndTime:   "13:00",
		BookedBy:  "member-7",
	})
	assert.ErrorIs(t, err, database.ErrSlotUnavailable)

	_, err = svc.Create(ctx, CreateBookingRequest{
		FieldID:   uuid.New(),
		Date:      weekendDate,
		StartTime: "10:00",
		EndTime:   "11:00",
		BookedBy:  "member-7",
	})
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = svc.Create(ctx, CreateBookingRequest{
		FieldID:   field.ID,
		Date:      weekendDate,
		StartTime: "18:00",
		EndTime:   "17:00",
		BookedBy:  "member-7",
	})
	assert.Error(t, err)
}

func TestBookingServiceCreateOnMaintenanceField(t *testing.T) {
	store := database.NewMemoryStore()
	field := seedField(t, store)
	ctx := context.Background()

	_, err := NewFieldService(store).ChangeStatus(ctx, field.ID, database.FieldStatusMaintenance)
	require.NoError(t, err)

	_, err = NewBookingService(store).Create(ctx, CreateBookingRequest{
		FieldID:   field.ID,
		Date:      weekdayDate,
		StartTime: "10:00",
		EndTime:   "11:00",
		BookedBy:  "member-42",
	})
	assert.ErrorIs(t, err, database.ErrSlotUnavailable)
}

func TestBookingServiceConcurrentCreateSameSlot(t *testing.T) {
	store := database.NewMemoryStore()
	field := seedField(t, store)
	svc := NewBookingService(store)
	ctx := context.Background()

	const n = 20
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, CreateBookingRequest{
				FieldID:   field.ID,
				Date:      weekdayDate,
				StartTime: "10:00",
				EndTime:   "11:00",
				BookedBy:  "member",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	won := 0
	for err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, database.ErrSlotUnavailable)
		}
	}
	assert.Equal(t, 1, won, "exactly one concurrent request should win the slot")
}

func TestBookingServiceLifecycle(t *testing.T) {
	store := database.NewMemoryStore()
	field := seedField(t, store)
	svc := NewBookingService(store)
	ctx := context.Background()

	booking, err := svc.Create(ctx, CreateBookingRequest{
		FieldID:   field.ID,
		Date:      weekdayDate,
		StartTime: "10:00",
		EndTime:   "11:00",
		BookedBy:  "member-42",
	})
	require.NoError(t, err)

	confirmed, err := svc.Confirm(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, database.BookingStatusConfirmed, confirmed.Status)

	paid, err := svc.MarkAsPaid(ctx, booking.ID, "pay-123")
	require.NoError(t, err)
	assert.Equal(t, database.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, "pay-123", paid.PaymentRef)

	done, err := svc.Complete(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, database.BookingStatusCompleted, done.Status)

	_, err = svc.Confirm(ctx, uuid.New())
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestBookingServiceCancel(t *testing.T) {
	store := database.NewMemoryStore()
	field := seedField(t, store)
	svc := NewBookingService(store)
	ctx := context.Background()

	booking, err := svc.Create(ctx, CreateBookingRequest{
		FieldID:   field.ID,
		Date:      weekdayDate,
		StartTime: "10:00",
		EndTime:   "11:00",
		BookedBy:  "member-42",
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, booking.ID, "rained out")
	require.NoError(t, err)
	assert.Equal(t, database.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, database.PaymentStatusCancelled, cancelled.PaymentStatus)
	assert.Equal(t, "rained out", cancelled.Notes)

	// The slot is free again.
	_, err = svc.Create(ctx, CreateBookingRequest{
		FieldID:   field.ID,
		Date:      weekdayDate,
		StartTime: "10:00",
		EndTime:   "11:00",
		BookedBy:  "member-7",
	})
	assert.NoError(t, err)

	// A paid booking keeps its payment status when cancelled.
	paidBooking, err := svc.Create(ctx, CreateBookingRequest{
		FieldID:   field.ID,
		Date:      weekdayDate,
		StartTime: "15:00",
		EndTime:   "16:00",
		BookedBy:  "member-42",
	})
	require.NoError(t, err)
	_, err = svc.MarkAsPaid(ctx, paidBooking.ID, "pay-456")
	require.NoError(t, err)
	cancelled, err = svc.Cancel(ctx, paidBooking.ID, "")
	require.NoError(t, err)
	assert.Equal(t, database.PaymentStatusPaid, cancelled.PaymentStatus)
}
