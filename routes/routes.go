package routes

import (
	"github.com/Bishesh-P/coffee-alpico-sub000/auth"
	"github.com/Bishesh-P/coffee-alpico-sub000/catalog"
	"github.com/Bishesh-P/coffee-alpico-sub000/checkout"
	orderControllers "github.com/Bishesh-P/coffee-alpico-sub000/controllers/order"
	"github.com/Bishesh-P/coffee-alpico-sub000/sessions"
	"github.com/Bishesh-P/coffee-alpico-sub000/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is everything the handlers are built from.
type Deps struct {
	Catalog   *catalog.Catalog
	Sessions  *sessions.Registry
	Checkout  *checkout.Service
	Orders    *storage.OrderStore
	Hub       *orderControllers.Hub
	Guests    *auth.GuestIssuer
	APIKey    string
	StoreName string
	Logger    *zap.Logger
}

// SetupRoutes is the single entry‐point that wires up Auth, Shop, Checkout, and Admin route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	// 1️⃣ Public routes (no middleware)
	SetupAuthRoutes(r, d)
	SetupCatalogRoutes(r, d)

	// 2️⃣ Shopper routes (guest JWT)
	SetupUserRoutes(r, d)

	// 3️⃣ Admin routes (API‐Key‐protected)
	SetupAdminRoutes(r, d)
}
