package checkoutControllers

import (
	"errors"
	"net/http"

	"github.com/Bishesh-P/coffee-alpico-sub000/checkout"
	"github.com/gin-gonic/gin"
)

// respondError maps checkout errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	var verr *checkout.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all required fields", "fields": verr.Fields})
	case errors.Is(err, checkout.ErrValidation),
		errors.Is(err, checkout.ErrUnknownPlatform),
		errors.Is(err, checkout.ErrUnknownVariant),
		errors.Is(err, checkout.ErrNoReceiptFile),
		errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrIllegalTransition),
		errors.Is(err, checkout.ErrTransitionInFlight),
		errors.Is(err, checkout.ErrVariantsPending):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrNoCheckout),
		errors.Is(err, checkout.ErrNoSnapshot):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrPersistence):
		c.JSON(http.StatusBadGateway, gin.H{"error": "There was an error processing your order. Please try again."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
