package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus enumerates the order lifecycle states.
type OrderStatus int

const (
	StatusConfirmed OrderStatus = iota
	StatusProcessing
	StatusShipped
	StatusDelivered
	StatusCancelled
)

// Valid reports whether the value maps to a known state.
func (s OrderStatus) Valid() bool {
	return s >= StatusConfirmed && s <= StatusCancelled
}

// Terminal reports whether no further transitions are accepted.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s OrderStatus) String() string {
	switch s {
	case StatusConfirmed:
		return "confirmed"
	case StatusProcessing:
		return "processing"
	case StatusShipped:
		return "shipped"
	case StatusDelivered:
		return "delivered"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// TimestampColumn names the column stamped when an order enters this state.
func (s OrderStatus) TimestampColumn() string {
	switch s {
	case StatusConfirmed:
		return "confirmed_at"
	case StatusProcessing:
		return "processing_at"
	case StatusShipped:
		return "shipped_at"
	case StatusDelivered:
		return "delivered_at"
	case StatusCancelled:
		return "cancelled_at"
	}
	return ""
}

// Order is a placed checkout. OrderNumber is the customer-facing 9-digit
// identifier, independent of the storage id.
type Order struct {
	BaseModel
	OrderNumber     string      `gorm:"uniqueIndex" json:"order_id"`
	UserID          *uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	Status          OrderStatus `json:"status"`
	TotalAmount     float64     `json:"total_amount"`
	OriginalAmount  float64     `json:"original_amount"`
	Savings         float64     `json:"savings"`
	PaymentMethod   string      `json:"payment_method"`
	DeliveryAddress string      `json:"delivery_address"`
	Items           []OrderItem `json:"items,omitempty"`

	ConfirmedAt  *time.Time `json:"confirmed_at"`
	ProcessingAt *time.Time `json:"processing_at"`
	ShippedAt    *time.Time `json:"shipped_at"`
	DeliveredAt  *time.Time `json:"delivered_at"`
	CancelledAt  *time.Time `json:"cancelled_at"`
}

type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID  `gorm:"type:uuid;index" json:"order_id"`
	ProductID *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	BundleID  *uuid.UUID `gorm:"type:uuid" json:"bundle_id"`
	Name      string     `json:"name"`
	Quantity  int        `json:"quantity"`
	UnitPrice float64    `json:"unit_price"`
	LineTotal float64    `json:"line_total"`
}
