package checkoutControllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/Bishesh-P/coffee-alpico-sub000/checkout"
	"github.com/Bishesh-P/coffee-alpico-sub000/middleware"
	"github.com/Bishesh-P/coffee-alpico-sub000/receipt"
	"github.com/Bishesh-P/coffee-alpico-sub000/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GET /checkout/success
func GetSuccess(svc *checkout.Service, reg *sessions.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := svc.Success(c.Request.Context(), reg.Get(c.GetString(middleware.SessionKey)))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// GET /checkout/success.pdf
func DownloadReceiptPDF(svc *checkout.Service, reg *sessions.Registry, storeName string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := svc.Success(c.Request.Context(), reg.Get(c.GetString(middleware.SessionKey)))
		if err != nil {
			respondError(c, err)
			return
		}

		var buf bytes.Buffer
		if err := receipt.Render(&buf, snap, storeName); err != nil {
			log.Error("receipt render failed", zap.String("order_id", snap.OrderID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF. Please try again."})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=order-%s.pdf", snap.OrderID))
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}

// GET /customer-info
func GetCustomerInfo(svc *checkout.Service, reg *sessions.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, ok, err := svc.CustomerInfo(c.Request.Context(), reg.Get(c.GetString(middleware.SessionKey)))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load saved information"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No saved information"})
			return
		}
		c.JSON(http.StatusOK, form)
	}
}

// DELETE /customer-info
func ClearCustomerInfo(svc *checkout.Service, reg *sessions.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.ClearCustomerInfo(c.Request.Context(), reg.Get(c.GetString(middleware.SessionKey))); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear saved information"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Saved information cleared"})
	}
}
