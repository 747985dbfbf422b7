package routes

import (
	cartControllers "github.com/Bishesh-P/coffee-alpico-sub000/controllers/cart"
	checkoutControllers "github.com/Bishesh-P/coffee-alpico-sub000/controllers/checkout"
	productControllers "github.com/Bishesh-P/coffee-alpico-sub000/controllers/product"
	"github.com/Bishesh-P/coffee-alpico-sub000/middleware"
	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes registers the public browsing endpoints.
func SetupCatalogRoutes(r *gin.Engine, d Deps) {
	r.GET("/products", productControllers.GetProducts(d.Catalog))        // GET /products?search=&category=
	r.GET("/products/:id", productControllers.GetProductByID(d.Catalog)) // GET /products/:id
	r.GET("/categories", productControllers.GetAllCategories(d.Catalog)) // GET /categories
}

// SetupUserRoutes registers the cart and checkout endpoints. Requires a guest token.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	shop := r.Group("/")
	shop.Use(middleware.ValidateToken(d.Guests))

	// ──────────────── Shopping Cart ────────────────
	cartGroup := shop.Group("/cart")
	{
		cartGroup.GET("", cartControllers.GetCart(d.Sessions))                                // GET /cart
		cartGroup.POST("/items", cartControllers.AddCartItem(d.Catalog, d.Sessions))          // POST /cart/items
		cartGroup.PATCH("/items/:product_id", cartControllers.UpdateCartItem(d.Catalog, d.Sessions))
		cartGroup.DELETE("/items/:product_id", cartControllers.DeleteCartItem(d.Sessions))
		cartGroup.DELETE("", cartControllers.ClearCart(d.Sessions)) // DELETE /cart
	}

	// ──────────────── Checkout ────────────────
	svc, reg := d.Checkout, d.Sessions
	checkoutGroup := shop.Group("/checkout")
	{
		checkoutGroup.POST("", checkoutControllers.BeginCheckout(svc, reg))
		checkoutGroup.GET("", checkoutControllers.GetCheckout(svc, reg))
		checkoutGroup.DELETE("", checkoutControllers.AbandonCheckout(svc, reg))
		checkoutGroup.POST("/variants", checkoutControllers.SelectVariant(svc, reg))
		checkoutGroup.POST("/continue", checkoutControllers.Continue(svc, reg))
		checkoutGroup.POST("/shipping", checkoutControllers.SubmitShipping(svc, reg))
		checkoutGroup.POST("/confirm", checkoutControllers.Confirm(svc, reg))
		checkoutGroup.POST("/platform", checkoutControllers.SelectPlatform(svc, reg))
		checkoutGroup.POST("/payment", checkoutControllers.AcknowledgePayment(svc, reg))
		checkoutGroup.POST("/receipt", checkoutControllers.UploadReceipt(svc, reg))
		checkoutGroup.POST("/back", checkoutControllers.Back(svc, reg))
		checkoutGroup.GET("/success", checkoutControllers.GetSuccess(svc, reg))
		checkoutGroup.GET("/success.pdf", checkoutControllers.DownloadReceiptPDF(svc, reg, d.StoreName, d.Logger))
	}

	// ──────────────── Saved Customer Info ────────────────
	shop.GET("/customer-info", checkoutControllers.GetCustomerInfo(svc, reg))
	shop.DELETE("/customer-info", checkoutControllers.ClearCustomerInfo(svc, reg))
}
