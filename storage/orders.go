package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Bishesh-P/coffee-alpico-sub000/checkout"
	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrOrderNotFound = errors.New("order not found")

// upsertColumns are overwritten when an order id is written again.
// created_at is left out so the first write keeps it.
var upsertColumns = []string{
	"first_name", "last_name", "email", "phone", "address",
	"city", "state", "occupation", "platform", "subtotal", "shipping",
	"total", "updated_at",
}

// OrderStore is the gorm-backed order sink and the admin order repository.
type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// InsertOrder writes the order and its items. Writing the same order id
// again from the same session replaces the row and its items instead of
// adding a second order, so a retried submission is harmless. An id already
// held by another session is left alone and reported as
// checkout.ErrOrderIDConflict.
func (s *OrderStore) InsertOrder(ctx context.Context, order models.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := order
		row.Items = nil
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "orders.session_id = excluded.session_id"},
			}},
		}).Omit(clause.Associations).Create(&row)
		if result.Error != nil {
			return fmt.Errorf("upsert order %s: %w", order.OrderID, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("order %s: %w", order.OrderID, checkout.ErrOrderIDConflict)
		}

		if err := tx.Where("order_id = ?", order.OrderID).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("replace items of %s: %w", order.OrderID, err)
		}
		if len(order.Items) == 0 {
			return nil
		}

		items := make([]models.OrderItem, len(order.Items))
		for i, item := range order.Items {
			item.ID = 0
			item.OrderID = order.OrderID
			items[i] = item
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("insert items of %s: %w", order.OrderID, err)
		}
		return nil
	})
}

// UpdateOrderReceipt attaches the receipt URL and flags the payment for review.
func (s *OrderStore) UpdateOrderReceipt(ctx context.Context, orderID, receiptURL string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]any{
			"receipt_url":    receiptURL,
			"payment_status": models.PaymentStatusSubmitted,
		})
	if result.Error != nil {
		return fmt.Errorf("update receipt of %s: %w", orderID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// ListOrders returns every order, newest first.
func (s *OrderStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrder loads one order with its items.
func (s *OrderStore) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("order_id = ?", orderID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return order, nil
}

// UpdateStatus sets the fulfilment status.
func (s *OrderStore) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	return s.updateColumn(ctx, orderID, "status", status)
}

// UpdatePaymentStatus sets the payment status.
func (s *OrderStore) UpdatePaymentStatus(ctx context.Context, orderID string, status models.PaymentStatus) error {
	return s.updateColumn(ctx, orderID, "payment_status", status)
}

func (s *OrderStore) updateColumn(ctx context.Context, orderID, column string, value any) error {
	result := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("update %s of %s: %w", column, orderID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
