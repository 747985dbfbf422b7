package routes

import (
	orderControllers "github.com/Bishesh-P/coffee-alpico-sub000/controllers/order"
	productControllers "github.com/Bishesh-P/coffee-alpico-sub000/controllers/product"
	"github.com/Bishesh-P/coffee-alpico-sub000/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires API‐Key middleware.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(d.APIKey))
	{
		// ─────────── Order Management ───────────
		orders := adminGroup.Group("/orders")
		{
			orders.GET("", orderControllers.GetAllOrdersHandler(d.Orders))
			orders.GET("/export-excel", orderControllers.ExportOrdersToExcel(d.Orders))
			orders.GET("/ws", d.Hub.OrderWebSocketHandler) // websocket feed of saved orders
			orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(d.Orders))
			orders.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(d.Orders))
			orders.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(d.Orders))
		}

		// ─────────── Catalog ───────────
		adminGroup.GET("/products/export-excel", productControllers.ExportProductsToExcel(d.Catalog))
	}
}
