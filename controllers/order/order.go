package orderControllers

import (
	"errors"
	"net/http"

	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"github.com/Bishesh-P/coffee-alpico-sub000/storage"
	"github.com/gin-gonic/gin"
)

// -------- Request Structs --------

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// -------- Handlers --------

// GET /admin/orders
func GetAllOrdersHandler(store *storage.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := store.ListOrders(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders/:orderID
func GetOrderByIDHandler(store *storage.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := store.GetOrder(c.Request.Context(), c.Param("orderID"))
		if err != nil {
			orderError(c, err, "failed to fetch order")
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(store *storage.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status, ok := models.ParseOrderStatus(req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
			return
		}

		if err := store.UpdateStatus(c.Request.Context(), c.Param("orderID"), status); err != nil {
			orderError(c, err, "failed to update order status")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// PUT /admin/orders/:orderID/payment-status
func UpdatePaymentStatusHandler(store *storage.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status, ok := models.ParsePaymentStatus(req.PaymentStatus)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment status"})
			return
		}

		if err := store.UpdatePaymentStatus(c.Request.Context(), c.Param("orderID"), status); err != nil {
			orderError(c, err, "failed to update payment status")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}

func orderError(c *gin.Context, err error, msg string) {
	if errors.Is(err, storage.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
