package routes

import (
	cartControllers "github.com/abdelemjid/carpet-shop-sub000/controllers/cart"
	checkoutControllers "github.com/abdelemjid/carpet-shop-sub000/controllers/checkout"
	orderControllers "github.com/abdelemjid/carpet-shop-sub000/controllers/order"
	productcontroller "github.com/abdelemjid/carpet-shop-sub000/controllers/product"
	"github.com/abdelemjid/carpet-shop-sub000/middleware"
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, deps Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCart(deps.Cart))               // GET /user/cart
			cartGroup.POST("/", cartControllers.SyncCart(deps.Cart))             // POST /user/cart
			cartGroup.PATCH("/:item_id", cartControllers.UpdateCartItem(deps.Cart))  // PATCH /user/cart/:item_id
			cartGroup.DELETE("/:item_id", cartControllers.DeleteCartItem(deps.Cart)) // DELETE /user/cart/:item_id
			cartGroup.DELETE("/", cartControllers.ClearCart(deps.Cart))          // DELETE /user/cart
		}

		// ──────────────── Checkout ────────────────
		checkoutGroup := userGroup.Group("/checkout")
		{
			checkoutGroup.GET("/calculate", checkoutControllers.Calculate(deps.Checkout)) // GET /user/checkout/calculate
			checkoutGroup.POST("/confirm", checkoutControllers.Confirm(deps.Checkout))    // POST /user/checkout/confirm
		}

		// ──────────────── Own Orders ────────────────
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(deps.Orders)) // GET /user/orders

		// ──────────────── Browse Products ────────────────
		userGroup.GET("/products", productcontroller.GetProducts(deps.Store))        // GET /user/products
		userGroup.GET("/products/:id", productcontroller.GetProductByID(deps.Store)) // GET /user/products/:id
	}
}
