package orderControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/abdelemjid/carpet-shop-sub000/models"
	"github.com/abdelemjid/carpet-shop-sub000/repository"
	"github.com/abdelemjid/carpet-shop-sub000/services"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return 0, false
	}
	return uint(id), true
}

// PATCH /admin/orders/:orderID
func UpdateOrderHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}

		var input services.UpdateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := svc.Update(c.Request.Context(), orderID, input)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			case errors.Is(err, models.ErrInvalidOrderStatus),
				errors.Is(err, models.ErrInvalidRefuseReason),
				errors.Is(err, services.ErrInvalidQuantity):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			}
			return
		}

		if order == nil {
			BroadcastOrderEvent(OrderEvent{Type: "deleted", OrderID: orderID})
			c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
			return
		}
		BroadcastOrderEvent(OrderEvent{Type: "updated", Order: order})
		c.JSON(http.StatusOK, order)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /user/orders
func GetUserOrdersHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID, _ := userIDVal.(string)

		orders, err := svc.ListByUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders/:orderID
func GetOrderByIDHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}

		order, err := svc.Get(c.Request.Context(), orderID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// DELETE /admin/orders/:orderID
func DeleteOrderHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), orderID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}
		BroadcastOrderEvent(OrderEvent{Type: "deleted", OrderID: orderID})
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}

// GET /admin/orders/export
func ExportOrdersToExcel(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "OrderRef", "UserID", "ProductID", "Quantity", "TotalPrice",
			"Status", "Delivered", "RefuseReason",
			"Fullname", "PhoneNumber", "City", "ShippingAddress", "Email",
			"CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.OrderRef)
			row.AddCell().SetValue(o.UserID)
			row.AddCell().SetValue(o.ProductID)
			row.AddCell().SetValue(o.Quantity)
			row.AddCell().SetValue(o.TotalPrice)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.Delivered)
			row.AddCell().SetValue(string(o.RefuseReason))
			row.AddCell().SetValue(o.Fullname)
			row.AddCell().SetValue(o.PhoneNumber)
			row.AddCell().SetValue(o.City)
			row.AddCell().SetValue(o.ShippingAddress)
			row.AddCell().SetValue(o.Email)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", `attachment; filename="orders.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}
