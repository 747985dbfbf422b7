package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSnapshot is written when an order completes so the success view and
// the PDF export still work after the cart has been cleared.
type OrderSnapshot struct {
	OrderID       string          `json:"orderId"`
	Total         decimal.Decimal `json:"total"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Shipping      decimal.Decimal `json:"shipping"`
	PaymentMethod string          `json:"paymentMethod"`
	FormData      ShippingForm    `json:"formData"`
	CartItems     []SnapshotItem  `json:"cartItems"`
	ReceiptURL    string          `json:"receiptUrl,omitempty"`
	CompletedAt   time.Time       `json:"completedAt"`
}

// SnapshotItem is one cart line as it was priced at completion.
type SnapshotItem struct {
	ProductID  uint            `json:"productId"`
	Name       string          `json:"name"`
	Variant    string          `json:"variant,omitempty"`
	Machine    string          `json:"machine,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	FinalPrice decimal.Decimal `json:"finalPrice"`
}
