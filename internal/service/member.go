package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noraraghay/central-catalunya/internal/database"
)

// CreateMemberRequest carries the attributes of a new member.
type CreateMemberRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	DNI       string `json:"dni"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// MemberService manages club members.
type MemberService interface {
	Create(ctx context.Context, req CreateMemberRequest) (*database.Member, error)
	Get(ctx context.Context, id uuid.UUID) (*database.Member, error)
	List(ctx context.Context, page, limit int) ([]database.Member, int64, error)
	FindByNumber(ctx context.Context, number string) (*database.Member, error)
}

type memberServiceImpl struct {
	store Store
}

// NewMemberService creates a member service backed by the given store.
func NewMemberService(store Store) MemberService {
	return &memberServiceImpl{store: store}
}

// Create registers a member and mints the next CDC-<year>-<seq> member
// number from the shared counter.
func (s *memberServiceImpl) Create(ctx context.Context, req CreateMemberRequest) (*database.Member, error) {
	seq, err := s.store.NextSequence(ctx, "member_number")
	if err != nil {
		return nil, fmt.Errorf("failed to allocate member number: %w", err)
	}

	now := time.Now().UTC()
	member := &database.Member{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DNI:          req.DNI,
		Email:        req.Email,
		Phone:        req.Phone,
		MemberNumber: fmt.Sprintf("CDC-%d-%04d", now.Year(), seq),
		Status:       database.MemberStatusActive,
		JoinDate:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *memberServiceImpl) Get(ctx context.Context, id uuid.UUID) (*database.Member, error) {
	return s.store.GetMember(ctx, id)
}

func (s *memberServiceImpl) List(ctx context.Context, page, limit int) ([]database.Member, int64, error) {
	return s.store.ListMembers(ctx, page, limit)
}

func (s *memberServiceImpl) FindByNumber(ctx context.Context, number string) (*database.Member, error) {
	return s.store.FindMemberByNumber(ctx, number)
}
