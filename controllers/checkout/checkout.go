package checkoutControllers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	cartControllers "github.com/abdelemjid/carpet-shop-sub000/controllers/cart"
	orderControllers "github.com/abdelemjid/carpet-shop-sub000/controllers/order"
	"github.com/abdelemjid/carpet-shop-sub000/services"
	"github.com/gin-gonic/gin"
)

// International format: + followed by 6 to 14 digits.
var phonePattern = regexp.MustCompile(`^\+[0-9]{6,14}$`)

// ShippingInput is the checkout destination form.
type ShippingInput struct {
	Fullname    string `json:"fullname" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	City        string `json:"city" binding:"required"`
	Address     string `json:"address" binding:"required"`
}

// productIDsFromQuery collects the repeated id query parameters.
func productIDsFromQuery(c *gin.Context) ([]uint, bool) {
	raw := c.QueryArray("id")
	ids := make([]uint, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id: " + s})
			return nil, false
		}
		ids = append(ids, uint(id))
	}
	return ids, true
}

// GET /user/checkout/calculate?id=...&id=...
func Calculate(svc *services.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		ids, ok := productIDsFromQuery(c)
		if !ok {
			return
		}

		result, err := svc.Calculate(c.Request.Context(), userID, ids)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNoProductIDs):
				c.JSON(http.StatusBadRequest, gin.H{"error": "No product ids supplied"})
			case errors.Is(err, services.ErrNoCartLines):
				c.JSON(http.StatusNotFound, gin.H{"error": "No matching cart items found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate checkout"})
			}
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// POST /user/checkout/confirm?id=...&id=...
func Confirm(svc *services.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		ids, ok := productIDsFromQuery(c)
		if !ok {
			return
		}

		var input ShippingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if !phonePattern.MatchString(input.PhoneNumber) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number must match the international format"})
			return
		}

		result, err := svc.Confirm(c.Request.Context(), userID, ids, services.ShippingInfo{
			Fullname:        input.Fullname,
			Email:           input.Email,
			PhoneNumber:     input.PhoneNumber,
			City:            input.City,
			ShippingAddress: input.Address,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNoProductIDs):
				c.JSON(http.StatusBadRequest, gin.H{"error": "No product ids supplied"})
			case errors.Is(err, services.ErrNoCartLines):
				c.JSON(http.StatusNotFound, gin.H{"error": "No matching cart items found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed, please retry later"})
			}
			return
		}

		for _, order := range result.Orders {
			orderControllers.BroadcastOrderEvent(orderControllers.OrderEvent{
				Type:  "created",
				Order: &order,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"message":   "Checkout confirmed",
			"confirmed": result.ConfirmedProductIDs,
		})
	}
}

func currentUserID(c *gin.Context) (string, bool) {
	return cartControllers.CurrentUserID(c)
}
