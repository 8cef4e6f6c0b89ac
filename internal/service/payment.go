package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noraraghay/central-catalunya/internal/database"
	"github.com/noraraghay/central-catalunya/internal/pricing"
)

// CreatePaymentRequest carries a new charge against a member.
type CreatePaymentRequest struct {
	MemberID          string               `json:"memberId"`
	Type              database.PaymentType `json:"type"`
	Concept           string               `json:"concept"`
	Amount            float64              `json:"amount"`
	Discount          float64              `json:"discount,omitempty"`
	Surcharge         float64              `json:"surcharge,omitempty"`
	DueDate           time.Time            `json:"dueDate"`
	RelatedEntityID   string               `json:"relatedEntityId,omitempty"`
	RelatedEntityType string               `json:"relatedEntityType,omitempty"`
	Notes             string               `json:"notes,omitempty"`
}

// PaymentService manages charges and their receipts.
type PaymentService interface {
	Create(ctx context.Context, req CreatePaymentRequest) (*database.Payment, error)
	Get(ctx context.Context, id uuid.UUID) (*database.Payment, error)
	MarkPaid(ctx context.Context, id uuid.UUID, method, transactionID string) (*database.Payment, error)
}

type paymentServiceImpl struct {
	store Store
}

// NewPaymentService creates a payment service backed by the given store.
func NewPaymentService(store Store) PaymentService {
	return &paymentServiceImpl{store: store}
}

// Create records a charge and mints the next REC-<year>-<seq> receipt
// number from the shared counter.
func (s *paymentServiceImpl) Create(ctx context.Context, req CreatePaymentRequest) (*database.Payment, error) {
	seq, err := s.store.NextSequence(ctx, "receipt_number")
	if err != nil {
		return nil, fmt.Errorf("failed to allocate receipt number: %w", err)
	}

	total := pricing.Sum(req.Amount, req.Surcharge)
	total = pricing.DiscountedTotal(total, req.Discount)

	now := time.Now().UTC()
	payment := &database.Payment{
		ID:                uuid.New(),
		MemberID:          req.MemberID,
		Type:              req.Type,
		Concept:           req.Concept,
		Amount:            req.Amount,
		Discount:          req.Discount,
		Surcharge:         req.Surcharge,
		TotalAmount:       total,
		Status:            database.PaymentStatusPending,
		DueDate:           req.DueDate,
		ReceiptNumber:     fmt.Sprintf("REC-%d-%06d", now.Year(), seq),
		RelatedEntityID:   req.RelatedEntityID,
		RelatedEntityType: req.RelatedEntityType,
		Notes:             req.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentServiceImpl) Get(ctx context.Context, id uuid.UUID) (*database.Payment, error) {
	return s.store.GetPayment(ctx, id)
}

func (s *paymentServiceImpl) MarkPaid(ctx context.Context, id uuid.UUID, method, transactionID string) (*database.Payment, error) {
	patch := database.Patch{
		"status":   database.PaymentStatusPaid,
		"paidDate": time.Now().UTC(),
	}
	if method != "" {
		patch["paymentMethod"] = method
	}
	if transactionID != "" {
		patch["transactionId"] = transactionID
	}
	return s.store.UpdatePayment(ctx, id, patch)
}
