package routes

import (
	"github.com/abdelemjid/carpet-shop-sub000/repository"
	"github.com/abdelemjid/carpet-shop-sub000/services"
	"github.com/gin-gonic/gin"
)

// Deps bundles everything the route groups need.
type Deps struct {
	Store    repository.Store
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Orders   *services.OrderService
}

// NewDeps builds the service set over one store.
func NewDeps(store repository.Store) Deps {
	return Deps{
		Store:    store,
		Cart:     services.NewCartService(store),
		Checkout: services.NewCheckoutService(store),
		Orders:   services.NewOrderService(store),
	}
}

// SetupRoutes is the single entry-point that wires up the user and admin
// route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// User routes (JWT-protected)
	SetupUserRoutes(r, deps)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, deps)
}
