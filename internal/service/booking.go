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

// CreateBookingRequest carries everything needed to reserve a field.
type CreateBookingRequest struct {
	FieldID         uuid.UUID             `json:"fieldId"`
	Date            string                `json:"date"`
	StartTime       string                `json:"startTime"`
	EndTime         string                `json:"endTime"`
	BookedBy        string                `json:"bookedBy"`
	IsExternal      bool                  `json:"isExternalBooking"`
	ExternalContact *database.ContactInfo `json:"externalContactInfo,omitempty"`
	Purpose         string                `json:"purpose,omitempty"`
	TeamID          *uuid.UUID            `json:"teamId,omitempty"`
	EventID         *uuid.UUID            `json:"eventId,omitempty"`
	WithLighting    bool                  `json:"withLighting"`
	Notes           string                `json:"notes,omitempty"`
}

// BookingService manages the booking lifecycle.
type BookingService interface {
	Create(ctx context.Context, req CreateBookingRequest) (*database.Booking, error)
	Get(ctx context.Context, id uuid.UUID) (*database.Booking, error)
	ListForField(ctx context.Context, fieldID uuid.UUID) ([]database.Booking, error)
	Confirm(ctx context.Context, id uuid.UUID) (*database.Booking, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) (*database.Booking, error)
	Complete(ctx context.Context, id uuid.UUID) (*database.Booking, error)
	MarkAsPaid(ctx context.Context, id uuid.UUID, paymentRef string) (*database.Booking, error)
}

type bookingServiceImpl struct {
	store Store
}

// NewBookingService creates a booking service backed by the given store.
func NewBookingService(store Store) BookingService {
	return &bookingServiceImpl{store: store}
}

// Create prices the requested interval and reserves it. The overlap
// check runs inside the store so a concurrent request for the same slot
// gets ErrSlotUnavailable instead of a double booking.
func (s *bookingServiceImpl) Create(ctx context.Context, req CreateBookingRequest) (*database.Booking, error) {
	field, err := s.store.GetField(ctx, req.FieldID)
	if err != nil {
		return nil, err
	}
	if field.Status == database.FieldStatusMaintenance {
		return nil, database.ErrSlotUnavailable
	}

	weekend, err := isWeekend(req.Date)
	if err != nil {
		return nil, err
	}
	interval := timeslot.New(req.StartTime, req.EndTime)
	if interval.End <= interval.Start {
		return nil, fmt.Errorf("end time %q is not after start time %q", req.EndTime, req.StartTime)
	}

	lighting := req.WithLighting && field.HasLighting
	total := pricing.Quote(field.Pricing, interval.Start, interval.End, weekend, lighting, !req.IsExternal)

	now := time.Now().UTC()
	booking := &database.Booking{
		ID:              uuid.New(),
		FieldID:         req.FieldID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		BookedBy:        req.BookedBy,
		IsExternal:      req.IsExternal,
		ExternalContact: req.ExternalContact,
		Purpose:         req.Purpose,
		TeamID:          req.TeamID,
		EventID:         req.EventID,
		Status:          database.BookingStatusPending,
		TotalPrice:      total,
		PaymentStatus:   database.PaymentStatusPending,
		WithLighting:    lighting,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingServiceImpl) Get(ctx context.Context, id uuid.UUID) (*database.Booking, error) {
	return s.store.GetBooking(ctx, id)
}

func (s *bookingServiceImpl) ListForField(ctx context.Context, fieldID uuid.UUID) ([]database.Booking, error) {
	return s.store.BookingsForField(ctx, fieldID)
}

func (s *bookingServiceImpl) Confirm(ctx context.Context, id uuid.UUID) (*database.Booking, error) {
	return s.store.UpdateBooking(ctx, id, database.Patch{"status": database.BookingStatusConfirmed})
}

// Cancel releases the slot. An unpaid booking also has its payment
// voided; a paid one keeps its payment record for later refund handling.
func (s *bookingServiceImpl) Cancel(ctx context.Context, id uuid.UUID, reason string) (*database.Booking, error) {
	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	patch := database.Patch{"status": database.BookingStatusCancelled}
	if reason != "" {
		patch["notes"] = reason
	}
	if booking.PaymentStatus == database.PaymentStatusPending {
		patch["paymentStatus"] = database.PaymentStatusCancelled
	}
	return s.store.UpdateBooking(ctx, id, patch)
}

func (s *bookingServiceImpl) Complete(ctx context.Context, id uuid.UUID) (*database.Booking, error) {
	return s.store.UpdateBooking(ctx, id, database.Patch{"status": database.BookingStatusCompleted})
}

func (s *bookingServiceImpl) MarkAsPaid(ctx context.Context, id uuid.UUID, paymentRef string) (*database.Booking, error) {
	patch := database.Patch{"paymentStatus": database.PaymentStatusPaid}
	if paymentRef != "" {
		patch["paymentId"] = paymentRef
	}
	return s.store.UpdateBooking(ctx, id, patch)
}
