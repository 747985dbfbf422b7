package routes

import (
	"github.com/Bishesh-P/coffee-alpico-sub000/auth"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/guest", auth.CreateGuestSession(d.Guests))
	}
}
