package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusPending     OrderStatus = "pending"       // Order placed, awaiting confirmation
	OrderStatusConfirmed   OrderStatus = "confirmed"     // Confirmed by the roastery
	OrderStatusReadyToShip OrderStatus = "ready_to_ship" // Packed and ready for dispatch
	OrderStatusShipped     OrderStatus = "shipped"       // Out for delivery
	OrderStatusDelivered   OrderStatus = "delivered"     // Customer received the item
	OrderStatusReturned    OrderStatus = "returned"      // Customer returned the item
	OrderStatusCancelled   OrderStatus = "cancelled"     // Cancelled before shipping

	// Payment statuses
	PaymentStatusPending   PaymentStatus = "pending"   // Payment not completed yet
	PaymentStatusSubmitted PaymentStatus = "submitted" // Receipt uploaded, awaiting manual check
	PaymentStatusPaid      PaymentStatus = "paid"      // Payment completed successfully
	PaymentStatusFailed    PaymentStatus = "failed"    // Payment attempt failed
	PaymentStatusRefunded  PaymentStatus = "refunded"  // Money returned to customer
)

type Order struct {
	OrderID       string          `gorm:"primaryKey;size:32" json:"order_id"`
	SessionID     string          `gorm:"index;size:64" json:"session_id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	Occupation    string          `json:"occupation"`
	Platform      string          `gorm:"size:32" json:"platform"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2)" json:"subtotal"`
	Shipping      decimal.Decimal `gorm:"type:numeric(12,2)" json:"shipping"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2)" json:"total"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;references:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ReceiptURL    string          `json:"receipt_url"`
	Status        OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus PaymentStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   string          `gorm:"index;size:32" json:"order_id"`
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Quantity  int             `json:"quantity"`
	Machine   string          `json:"machine"`
	VariantID string          `json:"variant_id"`
	Variant   string          `json:"variant"`
}

// ParseOrderStatus maps a free-form status string onto a known status.
func ParseOrderStatus(status string) (OrderStatus, bool) {
	switch s := OrderStatus(strings.ToLower(status)); s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusReadyToShip,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusReturned, OrderStatusCancelled:
		return s, true
	}
	return "", false
}

// ParsePaymentStatus maps a free-form status string onto a known status.
func ParsePaymentStatus(status string) (PaymentStatus, bool) {
	switch s := PaymentStatus(strings.ToLower(status)); s {
	case PaymentStatusPending, PaymentStatusSubmitted, PaymentStatusPaid,
		PaymentStatusFailed, PaymentStatusRefunded:
		return s, true
	}
	return "", false
}
