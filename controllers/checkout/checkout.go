package checkoutControllers

import (
	"net/http"

	"github.com/Bishesh-P/coffee-alpico-sub000/checkout"
	"github.com/Bishesh-P/coffee-alpico-sub000/middleware"
	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"github.com/Bishesh-P/coffee-alpico-sub000/sessions"
	"github.com/gin-gonic/gin"
)

type VariantInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id" binding:"required"`
}

type ShippingInput struct {
	models.ShippingForm
	SaveInfo bool `json:"save_info"`
}

type PlatformInput struct {
	Platform string `json:"platform" binding:"required"`
}

// viewHandler adapts a service call that returns a View.
func viewHandler(reg *sessions.Registry, fn func(c *gin.Context, sh *checkout.Shopper) (checkout.View, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopper := reg.Get(c.GetString(middleware.SessionKey))
		view, err := fn(c, shopper)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// POST /checkout
func BeginCheckout(svc *checkout.Service, reg *sessions.Registry) gin.HandlerFunc {
	return viewHandler(reg, func(c *gin.Context, sh *checkout.Shopper) (checkout.View, error) {
		return svc.Begin(c.Request.Context(), sh)
	})
}

// GET /checkout
func GetCheckout(svc *checkout.Service, reg *sessions.Registry) gin.HandlerFunc {
	return viewHandler(reg, func(c *gin.Context, sh *checkout.Shopper) (checkout.View, error) {
		return svc.Current(sh)
	})
}

// DELETE /checkout
func AbandonCheckout(svc *checkout.Service, reg *sessions.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Abandon(reg.Get(c.GetString(middleware.SessionKey))); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Checkout cancelled"})
	}
}

// POST /checkout/variants
func SelectVariant(svc *checkout.Service, reg *sessions.Registry) gin.HandlerFunc {
	return viewHandler(reg, func(c *gin.Context, sh *checkout.Shopper) (checkout.View, error) {
		var input VariantInput
		if err := c.ShouldBindJSON(&input); err != nil {
			return checkout.View{}, &checkout.ValidationError{Fields: map[string]string{"body": err.Error()}}
		}
		return svc.SelectVariant(sh, input.ProductID, input.VariantID)
	})
}

// POST /checkout/continue
func Continue(svc *checkout.Service, reg *sessions.Registry) gin.HandlerFunc {
	return viewHandler(reg, func(c *gin.Context, sh *checkout.Shopper) (checkout.View, error) {
		return svc.Continue(sh)
	})
}

// POST /checkout/shipping
func SubmitShipping(svc *checkout.Service, reg *sessions.Registry) gin.HandlerFunc {
	return viewHandler(reg, func(c *gin.Context, sh *checkout.Shopper) (checkout.View, error) {
		var input ShippingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			return checkout.View{}, &checkout.ValidationError{Fields: map[string]string{"body": err.Error()}}
		}
		return svc.SubmitShipping(c.Request.Context(), sh, input.ShippingForm, input.SaveInfo)
	})
}

// POST /checkout/confirm
func Confirm(svc *checkout.Service, reg *sessions.Registry) gin.HandlerFunc {
	return viewHandler(reg, func(c *gin.Context, sh *checkout.Shopper) (checkout.View, error) {
		return svc.Confirm(sh)
	})
}

// POST /checkout/platform
func SelectPlatform(svc *checkout.Service, reg *sessions.Registry) gin.HandlerFunc {
	return viewHandler(reg, func(c *gin.Context, sh *checkout.Shopper) (checkout.View, error) {
		var input PlatformInput
		if err := c.ShouldBindJSON(&input); err != nil {
			return checkout.View{}, &checkout.ValidationError{Fields: map[string]string{"platform": "required"}}
		}
		return svc.SelectPlatform(c.Request.Context(), sh, input.Platform)
	})
}

// POST /checkout/payment
func AcknowledgePayment(svc *checkout.Service, reg *sessions.Registry) gin.HandlerFunc {
	return viewHandler(reg, func(c *gin.Context, sh *checkout.Shopper) (checkout.View, error) {
		return svc.AcknowledgePayment(sh)
	})
}

// POST /checkout/back
func Back(svc *checkout.Service, reg *sessions.Registry) gin.HandlerFunc {
	return viewHandler(reg, func(c *gin.Context, sh *checkout.Shopper) (checkout.View, error) {
		return svc.Back(sh)
	})
}

// POST /checkout/receipt (multipart, field "file")
func UploadReceipt(svc *checkout.Service, reg *sessions.Registry) gin.HandlerFunc {
	return viewHandler(reg, func(c *gin.Context, sh *checkout.Shopper) (checkout.View, error) {
		header, err := c.FormFile("file")
		if err != nil {
			return svc.UploadReceipt(c.Request.Context(), sh, nil)
		}

		file, err := header.Open()
		if err != nil {
			return checkout.View{}, err
		}
		defer file.Close()

		return svc.UploadReceipt(c.Request.Context(), sh, &checkout.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		})
	})
}
