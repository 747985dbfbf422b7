package checkout

import (
	"context"
	"io"

	"github.com/Bishesh-P/coffee-alpico-sub000/models"
)

// OrderSink persists finalized orders. Each call is an independent remote
// operation; nothing is retried.
type OrderSink interface {
	InsertOrder(ctx context.Context, order models.Order) error
	UpdateOrderReceipt(ctx context.Context, orderID, receiptURL string) error
}

// ReceiptStore keeps uploaded payment receipts and returns a public URL.
type ReceiptStore interface {
	UploadReceipt(ctx context.Context, orderID string, upload Upload) (string, error)
}

// SnapshotStore keeps the last completed order per shopper.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, shopperID string, snap models.OrderSnapshot) error
	LoadSnapshot(ctx context.Context, shopperID string) (models.OrderSnapshot, bool, error)
}

// CustomerInfoCache remembers shipping details for shoppers who opt in.
type CustomerInfoCache interface {
	LoadCustomerInfo(ctx context.Context, shopperID string) (models.ShippingForm, bool, error)
	SaveCustomerInfo(ctx context.Context, shopperID string, form models.ShippingForm) error
	ClearCustomerInfo(ctx context.Context, shopperID string) error
}

// Notifier is told about every order written to the sink.
type Notifier interface {
	OrderSaved(order models.Order)
}

// Upload is a receipt file as received from the shopper.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
