package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Bishesh-P/coffee-alpico-sub000/cart"
	"github.com/Bishesh-P/coffee-alpico-sub000/catalog"
	"github.com/Bishesh-P/coffee-alpico-sub000/checkout"
	"github.com/Bishesh-P/coffee-alpico-sub000/middleware"
	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"github.com/Bishesh-P/coffee-alpico-sub000/pricing"
	"github.com/Bishesh-P/coffee-alpico-sub000/sessions"
	"github.com/gin-gonic/gin"
)

type CartItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	VariantID string `json:"variant_id"`
	Machine   string `json:"machine"`
}

// CartItemUpdate patches one line. Only the fields present are applied.
type CartItemUpdate struct {
	Quantity *int    `json:"quantity"`
	Machine  *string `json:"machine"`
	Variant  *string `json:"variant"`
}

type cartResponse struct {
	Items   []cart.Line       `json:"items"`
	Count   int               `json:"count"`
	Pricing pricing.Breakdown `json:"pricing"`
}

func summary(c *cart.Cart, city string) cartResponse {
	return cartResponse{
		Items:   c.Lines(),
		Count:   c.Count(),
		Pricing: pricing.Summarize(c.Total(), city),
	}
}

// GET /cart?city=
func GetCart(reg *sessions.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopper := reg.Get(c.GetString(middleware.SessionKey))

		var resp cartResponse
		shopper.ReadCart(func(ct *cart.Cart) {
			resp = summary(ct, c.Query("city"))
		})
		c.JSON(http.StatusOK, resp)
	}
}

// POST /cart/items
func AddCartItem(cat *catalog.Catalog, reg *sessions.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product, err := cat.Product(input.ProductID)
		if err != nil {
			productError(c, err)
			return
		}

		var variant *models.Variant
		if input.VariantID != "" {
			v, ok := product.Variant(input.VariantID)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Variant does not exist"})
				return
			}
			variant = &v
		}

		shopper := reg.Get(c.GetString(middleware.SessionKey))
		var resp cartResponse
		if !editCart(c, shopper, func(ct *cart.Cart) {
			ct.Add(product, input.Quantity, input.Machine, variant)
			resp = summary(ct, "")
		}) {
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// PATCH /cart/items/:product_id?variant_id=
func UpdateCartItem(cat *catalog.Catalog, reg *sessions.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productParam(c)
		if !ok {
			return
		}
		variantID := c.Query("variant_id")

		var input CartItemUpdate
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var variant *models.Variant
		if input.Variant != nil {
			product, err := cat.Product(productID)
			if err != nil {
				productError(c, err)
				return
			}
			v, ok := product.Variant(*input.Variant)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Variant does not exist"})
				return
			}
			variant = &v
		}

		shopper := reg.Get(c.GetString(middleware.SessionKey))
		var resp cartResponse
		if !editCart(c, shopper, func(ct *cart.Cart) {
			if input.Machine != nil {
				ct.SetMachine(productID, *input.Machine, variantID)
			}
			if input.Quantity != nil {
				ct.UpdateQuantity(productID, *input.Quantity, variantID)
			}
			if variant != nil {
				ct.SetVariant(productID, *variant)
			}
			resp = summary(ct, "")
		}) {
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// DELETE /cart/items/:product_id?variant_id=
func DeleteCartItem(reg *sessions.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productParam(c)
		if !ok {
			return
		}

		shopper := reg.Get(c.GetString(middleware.SessionKey))
		var resp cartResponse
		if !editCart(c, shopper, func(ct *cart.Cart) {
			ct.Remove(productID, c.Query("variant_id"))
			resp = summary(ct, "")
		}) {
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// DELETE /cart
func ClearCart(reg *sessions.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopper := reg.Get(c.GetString(middleware.SessionKey))
		if !editCart(c, shopper, func(ct *cart.Cart) {
			ct.Clear()
		}) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// editCart applies fn to the shopper's cart. It reports false, after
// writing a 409, when a checkout step is still in flight.
func editCart(c *gin.Context, shopper *checkout.Shopper, fn func(ct *cart.Cart)) bool {
	if err := shopper.WithCart(fn); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func productParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return 0, false
	}
	return uint(id), true
}

func productError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
}
