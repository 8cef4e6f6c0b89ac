package database

import (
	"time"

	"github.com/google/uuid"

	"github.com/noraraghay/central-catalunya/internal/pricing"
)

// FieldStatus represents the operational status of a field
type FieldStatus string

const (
	FieldStatusAvailable   FieldStatus = "available"
	FieldStatusOccupied    FieldStatus = "occupied"
	FieldStatusMaintenance FieldStatus = "maintenance"
	FieldStatusReserved    FieldStatus = "reserved"
)

// FieldType represents the playing surface of a field
type FieldType string

const (
	FieldTypeGrass      FieldType = "grass"
	FieldTypeArtificial FieldType = "artificial"
	FieldTypeIndoor     FieldType = "indoor"
	FieldTypeFutsal     FieldType = "futsal"
)

// TimeWindow is an opening window expressed as "HH:mm" bounds
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// OperatingHours holds the opening windows per day type
type OperatingHours struct {
	Weekday TimeWindow `json:"weekdays"`
	Weekend TimeWindow `json:"weekends"`
}

// Field represents a bookable field
type Field struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Type        FieldType        `json:"type"`
	Status      FieldStatus      `json:"status"`
	Capacity    int              `json:"capacity"`
	HasLighting bool             `json:"hasLighting"`
	Pricing     pricing.RateCard `json:"pricing"`
	Hours       OperatingHours   `json:"availableHours"`
	Notes       string           `json:"notes,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// PaymentStatus is tracked independently of the booking lifecycle
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusOverdue   PaymentStatus = "overdue"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// ContactInfo identifies an external (non-member) requester
type ContactInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Booking represents a claim on one field for one contiguous interval
// on one calendar date. Date is "YYYY-MM-DD"; times are "HH:mm".
type Booking struct {
	ID              uuid.UUID     `json:"id"`
	FieldID         uuid.UUID     `json:"fieldId"`
	Date            string        `json:"date"`
	StartTime       string        `json:"startTime"`
	EndTime         string        `json:"endTime"`
	BookedBy        string        `json:"bookedBy"`
	IsExternal      bool          `json:"isExternalBooking"`
	ExternalContact *ContactInfo  `json:"externalContactInfo,omitempty"`
	Purpose         string        `json:"purpose,omitempty"`
	TeamID          *uuid.UUID    `json:"teamId,omitempty"`
	EventID         *uuid.UUID    `json:"eventId,omitempty"`
	Status          BookingStatus `json:"status"`
	TotalPrice      float64       `json:"totalPrice"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	PaymentRef      string        `json:"paymentId,omitempty"`
	WithLighting    bool          `json:"withLighting"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// ProductCategory classifies catalog items
type ProductCategory string

const (
	ProductCategoryUniform     ProductCategory = "uniform"
	ProductCategoryTrainingKit ProductCategory = "training_kit"
	ProductCategoryAccessories ProductCategory = "accessories"
	ProductCategoryEquipment   ProductCategory = "equipment"
	ProductCategoryMerch       ProductCategory = "merchandise"
	ProductCategoryOther       ProductCategory = "other"
)

// Product represents a catalog item, optionally stock-tracked.
// StockQuantity is meaningful only when HasStock is true.
type Product struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Category       ProductCategory `json:"category"`
	Price          float64         `json:"price"`
	MemberPrice    *float64        `json:"memberPrice,omitempty"`
	HasStock       bool            `json:"hasStock"`
	StockQuantity  int             `json:"stockQuantity"`
	AvailableSizes []string        `json:"availableSizes,omitempty"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// OrderStatus represents the lifecycle status of a merchandise order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItem is one order line; the unit price is snapshotted at order
// creation and never recomputed.
type OrderItem struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Size        string    `json:"size,omitempty"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	TotalPrice  float64   `json:"totalPrice"`
}

// Order represents a merchandise order
type Order struct {
	ID             uuid.UUID   `json:"id"`
	MemberID       string      `json:"memberId"`
	Items          []OrderItem `json:"items"`
	Subtotal       float64     `json:"subtotal"`
	Discount       float64     `json:"discount,omitempty"`
	Total          float64     `json:"total"`
	Status         OrderStatus `json:"status"`
	DeliveryMethod string      `json:"deliveryMethod"`
	DeliveredAt    *time.Time  `json:"deliveredAt,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// MemberStatus represents a member's standing in the club
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "active"
	MemberStatusInactive  MemberStatus = "inactive"
	MemberStatusSuspended MemberStatus = "suspended"
	MemberStatusPending   MemberStatus = "pending"
)

// Member represents a club member
type Member struct {
	ID           uuid.UUID    `json:"id"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	DNI          string       `json:"dni"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone,omitempty"`
	MemberNumber string       `json:"memberNumber"`
	Status       MemberStatus `json:"status"`
	JoinDate     time.Time    `json:"joinDate"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// PaymentType classifies what a payment is for
type PaymentType string

const (
	PaymentTypeMonthlyFee  PaymentType = "monthly_fee"
	PaymentTypeUniform     PaymentType = "uniform"
	PaymentTypeEquipment   PaymentType = "equipment"
	PaymentTypeEvent       PaymentType = "event"
	PaymentTypeFieldRental PaymentType = "field_rental"
	PaymentTypeInscription PaymentType = "inscription"
	PaymentTypeOther       PaymentType = "other"
)

// Payment represents a charge raised against a member
type Payment struct {
	ID                uuid.UUID     `json:"id"`
	MemberID          string        `json:"memberId"`
	Type              PaymentType   `json:"type"`
	Concept           string        `json:"concept"`
	Amount            float64       `json:"amount"`
	Discount          float64       `json:"discount,omitempty"`
	Surcharge         float64       `json:"surcharge,omitempty"`
	TotalAmount       float64       `json:"totalAmount"`
	Status            PaymentStatus `json:"status"`
	DueDate           time.Time     `json:"dueDate"`
	PaidDate          *time.Time    `json:"paidDate,omitempty"`
	PaymentMethod     string        `json:"paymentMethod,omitempty"`
	TransactionID     string        `json:"transactionId,omitempty"`
	ReceiptNumber     string        `json:"receiptNumber"`
	RelatedEntityID   string        `json:"relatedEntityId,omitempty"`
	RelatedEntityType string        `json:"relatedEntityType,omitempty"`
	Notes             string        `json:"notes,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}
