package productcontroller

import (
	"net/http"
	"strings"

	"github.com/Bishesh-P/coffee-alpico-sub000/catalog"
	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"github.com/gin-gonic/gin"
)

type scoredProduct struct {
	models.Product
	Score int `json:"score"`
}

// GetProducts lists the catalog. With ?search= the results are ranked by
// relevance; ?category= narrows either form.
func GetProducts(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := catalog.Query{
			Text:     strings.TrimSpace(c.Query("search")),
			Category: strings.TrimSpace(c.Query("category")),
		}
		results := cat.Search(query)

		if query.Text == "" {
			products := make([]models.Product, 0, len(results))
			for _, r := range results {
				products = append(products, r.Product)
			}
			c.JSON(http.StatusOK, products)
			return
		}

		products := make([]scoredProduct, 0, len(results))
		for _, r := range results {
			products = append(products, scoredProduct{Product: r.Product, Score: r.Score})
		}
		c.JSON(http.StatusOK, products)
	}
}
