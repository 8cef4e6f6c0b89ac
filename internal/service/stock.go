package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/noraraghay/central-catalunya/internal/database"
)

// CreateProductRequest carries the attributes of a new catalog item.
type CreateProductRequest struct {
	Name           string                   `json:"name"`
	Description    string                   `json:"description,omitempty"`
	Category       database.ProductCategory `json:"category"`
	Price          float64                  `json:"price"`
	MemberPrice    *float64                 `json:"memberPrice,omitempty"`
	HasStock       bool                     `json:"hasStock"`
	StockQuantity  int                      `json:"stockQuantity"`
	AvailableSizes []string                 `json:"availableSizes,omitempty"`
}

// StockService manages the product catalog and its stock levels.
type StockService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*database.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*database.Product, error)
	List(ctx context.Context) ([]database.Product, error)
	CheckAvailability(ctx context.Context, id uuid.UUID, quantity int, size string) (bool, error)
	UpdateStock(ctx context.Context, id uuid.UUID, quantity int) (*database.Product, error)
	Decrease(ctx context.Context, id uuid.UUID, quantity int) (*database.Product, error)
	Increase(ctx context.Context, id uuid.UUID, quantity int) (*database.Product, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*database.Product, error)
}

type stockServiceImpl struct {
	store Store
}

// NewStockService creates a stock service backed by the given store.
func NewStockService(store Store) StockService {
	return &stockServiceImpl{store: store}
}

func (s *stockServiceImpl) CreateProduct(ctx context.Context, req CreateProductRequest) (*database.Product, error) {
	now := time.Now().UTC()
	product := &database.Product{
		ID:             uuid.New(),
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Price:          req.Price,
		MemberPrice:    req.MemberPrice,
		HasStock:       req.HasStock,
		StockQuantity:  req.StockQuantity,
		AvailableSizes: req.AvailableSizes,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *stockServiceImpl) Get(ctx context.Context, id uuid.UUID) (*database.Product, error) {
	return s.store.GetProduct(ctx, id)
}

func (s *stockServiceImpl) List(ctx context.Context) ([]database.Product, error) {
	return s.store.ListProducts(ctx)
}

func (s *stockServiceImpl) CheckAvailability(ctx context.Context, id uuid.UUID, quantity int, size string) (bool, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return false, err
	}
	return Available(product, quantity, size), nil
}

// Available reports whether the requested quantity of the product can
// be ordered. Untracked products are always in stock while active. A
// size is only checked against products that declare sizes; on a
// one-size product it is ignored.
func Available(p *database.Product, quantity int, size string) bool {
	if !p.IsActive {
		return false
	}
	if size != "" && len(p.AvailableSizes) > 0 && !containsSize(p.AvailableSizes, size) {
		return false
	}
	if p.HasStock {
		return quantity <= p.StockQuantity
	}
	return true
}

func containsSize(sizes []string, size string) bool {
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	return false
}

// UpdateStock sets the absolute stock level.
func (s *stockServiceImpl) UpdateStock(ctx context.Context, id uuid.UUID, quantity int) (*database.Product, error) {
	return s.store.UpdateProduct(ctx, id, database.Patch{"stockQuantity": quantity})
}

func (s *stockServiceImpl) Decrease(ctx context.Context, id uuid.UUID, quantity int) (*database.Product, error) {
	return s.store.DecreaseStock(ctx, id, quantity)
}

func (s *stockServiceImpl) Increase(ctx context.Context, id uuid.UUID, quantity int) (*database.Product, error) {
	return s.store.IncreaseStock(ctx, id, quantity)
}

func (s *stockServiceImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) (*database.Product, error) {
	return s.store.UpdateProduct(ctx, id, database.Patch{"isActive": active})
}
