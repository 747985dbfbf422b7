package productcontroller

import (
	"net/http"

	"github.com/Bishesh-P/coffee-alpico-sub000/catalog"
	"github.com/gin-gonic/gin"
)

// GET /categories
func GetAllCategories(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": cat.Categories()})
	}
}
