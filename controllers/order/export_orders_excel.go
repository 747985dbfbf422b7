package orderControllers

import (
	"net/http"

	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"github.com/Bishesh-P/coffee-alpico-sub000/storage"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

var orderHeaders = []string{
	"OrderID", "CreatedAt", "FirstName", "LastName", "Email", "Phone",
	"Address", "City", "State", "Platform", "Subtotal", "Shipping", "Total",
	"Status", "PaymentStatus", "ReceiptURL",
}

var itemHeaders = []string{
	"OrderID", "ProductID", "Name", "Variant", "Machine", "Quantity", "UnitPrice",
}

// GET /admin/orders/export-excel
func ExportOrdersToExcel(store *storage.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := store.ListOrders(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file, err := ordersWorkbook(orders)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}

func ordersWorkbook(orders []models.Order) (*xlsx.File, error) {
	file := xlsx.NewFile()
	orderSheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, err
	}
	itemSheet, err := file.AddSheet("Items")
	if err != nil {
		return nil, err
	}

	addHeader(orderSheet, orderHeaders)
	addHeader(itemSheet, itemHeaders)

	for _, o := range orders {
		row := orderSheet.AddRow()
		row.AddCell().SetValue(o.OrderID)
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(o.FirstName)
		row.AddCell().SetValue(o.LastName)
		row.AddCell().SetValue(o.Email)
		row.AddCell().SetValue(o.Phone)
		row.AddCell().SetValue(o.Address)
		row.AddCell().SetValue(o.City)
		row.AddCell().SetValue(o.State)
		row.AddCell().SetValue(o.Platform)
		row.AddCell().SetFloat(o.Subtotal.InexactFloat64())
		row.AddCell().SetFloat(o.Shipping.InexactFloat64())
		row.AddCell().SetFloat(o.Total.InexactFloat64())
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(string(o.PaymentStatus))
		row.AddCell().SetValue(o.ReceiptURL)

		for _, it := range o.Items {
			item := itemSheet.AddRow()
			item.AddCell().SetValue(o.OrderID)
			item.AddCell().SetInt(int(it.ProductID))
			item.AddCell().SetValue(it.Name)
			item.AddCell().SetValue(it.Variant)
			item.AddCell().SetValue(it.Machine)
			item.AddCell().SetInt(it.Quantity)
			item.AddCell().SetFloat(it.UnitPrice.InexactFloat64())
		}
	}
	return file, nil
}

func addHeader(sheet *xlsx.Sheet, headers []string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetValue(h)
	}
}
