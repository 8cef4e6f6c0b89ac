package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noraraghay/central-catalunya/internal/database"
)

func TestMemberServiceCreateMintsSequentialNumbers(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewMemberService(store)
	ctx := context.Background()
	year := time.Now().UTC().Year()

	first, err := svc.Create(ctx, CreateMemberRequest{
		FirstName: "Laia",
		LastName:  "Puig",
		DNI:       "12345678Z",
		Email:     "laia@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("CDC-%d-0001", year), first.MemberNumber)
	assert.Equal(t, database.MemberStatusActive, first.Status)

	second, err := svc.Create(ctx, CreateMemberRequest{
		FirstName: "Marc",
		LastName:  "Serra",
		DNI:       "87654321X",
		Email:     "marc@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("CDC-%d-0002", year), second.MemberNumber)

	found, err := svc.FindByNumber(ctx, first.MemberNumber)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = svc.FindByNumber(ctx, "CDC-1999-0001")
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestMemberServiceList(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewMemberService(store)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, CreateMemberRequest{
			FirstName: "Member",
			LastName:  fmt.Sprintf("Number%d", i),
			Email:     fmt.Sprintf("m%d@example.com", i),
		})
		require.NoError(t, err)
	}

	members, total, err := svc.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, members, 2)

	members, total, err = svc.List(ctx, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, members, 1)

	// Past the last page is empty, not an error.
	members, _, err = svc.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestPaymentServiceCreate(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewPaymentService(store)
	ctx := context.Background()
	year := time.Now().UTC().Year()

	payment, err := svc.Create(ctx, CreatePaymentRequest{
		MemberID:  "CDC-2026-0001",
		Type:      database.PaymentTypeMonthlyFee,
		Concept:   "September fee",
		Amount:    30,
		Discount:  5,
		Surcharge: 2,
		DueDate:   time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("REC-%d-000001", year), payment.ReceiptNumber)
	assert.Equal(t, database.PaymentStatusPending, payment.Status)
	// amount + surcharge - discount
	assert.Equal(t, 27.0, payment.TotalAmount)

	second, err := svc.Create(ctx, CreatePaymentRequest{
		MemberID: "CDC-2026-0002",
		Type:     database.PaymentTypeFieldRental,
		Concept:  "Field rental",
		Amount:   52.20,
		DueDate:  time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("REC-%d-000002", year), second.ReceiptNumber)
	assert.Equal(t, 52.20, second.TotalAmount)
}

func TestPaymentServiceMarkPaid(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewPaymentService(store)
	ctx := context.Background()

	payment, err := svc.Create(ctx, CreatePaymentRequest{
		MemberID: "CDC-2026-0001",
		Type:     database.PaymentTypeUniform,
		Concept:  "Home shirt",
		Amount:   18,
		DueDate:  time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(ctx, payment.ID, "card", "txn-789")
	require.NoError(t, err)
	assert.Equal(t, database.PaymentStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidDate)
	assert.Equal(t, "card", paid.PaymentMethod)
	assert.Equal(t, "txn-789", paid.TransactionID)

	_, err = svc.MarkPaid(ctx, uuid.New(), "", "")
	assert.ErrorIs(t, err, database.ErrNotFound)
}
