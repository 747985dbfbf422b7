package productcontroller

import (
	"net/http"

	"github.com/Bishesh-P/coffee-alpico-sub000/catalog"
	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

var productHeaders = []string{
	"ID", "Name", "Category", "Description", "Price", "OriginalPrice",
	"VariantID", "VariantName", "VariantPrice", "Size", "Weight", "InStock", "Image",
}

// ExportProductsToExcel writes one row per purchasable item: the product
// itself when it has no variants, otherwise one row per variant.
func ExportProductsToExcel(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := productsWorkbook(cat.All())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}

func productsWorkbook(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, h := range productHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		if !p.HasVariants() {
			row := productRow(sheet, p)
			row.AddCell().SetValue("")
			row.AddCell().SetValue("")
			row.AddCell().SetFloat(p.Price.InexactFloat64())
			row.AddCell().SetValue("")
			row.AddCell().SetValue("")
			row.AddCell().SetBool(p.Available())
			row.AddCell().SetValue(p.Image())
			continue
		}
		for _, v := range p.Variants {
			row := productRow(sheet, p)
			row.AddCell().SetValue(v.ID)
			row.AddCell().SetValue(v.Name)
			row.AddCell().SetFloat(v.Price.InexactFloat64())
			row.AddCell().SetValue(v.Size)
			row.AddCell().SetValue(v.Weight)
			row.AddCell().SetBool(p.Available() && v.Available())
			image := v.Image
			if image == "" {
				image = p.Image()
			}
			row.AddCell().SetValue(image)
		}
	}
	return file, nil
}

func productRow(sheet *xlsx.Sheet, p models.Product) *xlsx.Row {
	row := sheet.AddRow()
	row.AddCell().SetInt(int(p.ID))
	row.AddCell().SetValue(p.Name)
	row.AddCell().SetValue(p.Category)
	row.AddCell().SetValue(p.Description)
	row.AddCell().SetFloat(p.Price.InexactFloat64())
	original := ""
	if p.OriginalPrice != nil {
		original = p.OriginalPrice.StringFixed(2)
	}
	row.AddCell().SetValue(original)
	return row
}
