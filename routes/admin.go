package routes

import (
	orderControllers "github.com/abdelemjid/carpet-shop-sub000/controllers/order"
	productcontroller "github.com/abdelemjid/carpet-shop-sub000/controllers/product"
	"github.com/abdelemjid/carpet-shop-sub000/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers all "/admin/*" endpoints behind the API key.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ──────────────── Orders ────────────────
		orders := adminGroup.Group("/orders")
		{
			orders.GET("/", orderControllers.GetAllOrdersHandler(deps.Orders))        // GET /admin/orders
			orders.GET("/export", orderControllers.ExportOrdersToExcel(deps.Orders))  // GET /admin/orders/export
			orders.GET("/ws", orderControllers.OrderWebSocketHandler)                 // GET /admin/orders/ws
			orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(deps.Orders))   // GET /admin/orders/:orderID
			orders.PATCH("/:orderID", orderControllers.UpdateOrderHandler(deps.Orders))  // PATCH /admin/orders/:orderID
			orders.DELETE("/:orderID", orderControllers.DeleteOrderHandler(deps.Orders)) // DELETE /admin/orders/:orderID
		}

		// ──────────────── Products ────────────────
		products := adminGroup.Group("/products")
		{
			products.GET("/", productcontroller.GetProducts(deps.Store))          // GET /admin/products
			products.POST("/", productcontroller.CreateProduct(deps.Store))       // POST /admin/products
			products.PUT("/:id", productcontroller.UpdateProduct(deps.Store))     // PUT /admin/products/:id
			products.DELETE("/:id", productcontroller.DeleteProduct(deps.Store))  // DELETE /admin/products/:id
		}
	}
}
