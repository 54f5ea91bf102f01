package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/abdelemjid/carpet-shop-sub000/models"
	"github.com/abdelemjid/carpet-shop-sub000/repository"
	"github.com/abdelemjid/carpet-shop-sub000/services"
	"github.com/gin-gonic/gin"
)

// SyncLineInput is one cart line as the storefront pushes it on sync.
type SyncLineInput struct {
	ProductID     uint     `json:"productId" binding:"required"`
	OrderQuantity int      `json:"orderQuantity" binding:"required,min=1"`
	ProductName   string   `json:"productName"`
	ProductPrice  float64  `json:"productPrice" binding:"min=0"`
	ProductImages []string `json:"productImages"`
}

type UpdateQuantityInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CurrentUserID pulls the authenticated user id the JWT middleware stored.
func CurrentUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// POST /user/cart
func SyncCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			return
		}

		var input []SyncLineInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		lines := make([]models.CartLine, 0, len(input))
		for _, in := range input {
			lines = append(lines, models.CartLine{
				ProductID:     in.ProductID,
				OrderQuantity: in.OrderQuantity,
				ProductName:   in.ProductName,
				ProductPrice:  in.ProductPrice,
				ProductImages: in.ProductImages,
			})
		}

		inserted, updated, err := svc.Replace(c.Request.Context(), userID, lines)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":  "Cart synced",
			"inserted": inserted,
			"updated":  updated,
		})
	}
}

// GET /user/cart
func GetCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			return
		}

		lines, err := svc.Get(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if lines == nil {
			lines = []models.CartLine{}
		}
		c.JSON(http.StatusOK, lines)
	}
}

// PATCH /user/cart/:item_id
func UpdateCartItem(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			return
		}
		itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := svc.UpdateQuantity(c.Request.Context(), userID, uint(itemID), *input.Quantity); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		if *input.Quantity <= 0 {
			c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item updated"})
	}
}

// DELETE /user/cart/:item_id
func DeleteCartItem(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			return
		}
		itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
			return
		}

		if err := svc.DeleteItem(c.Request.Context(), userID, uint(itemID)); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			return
		}
		if err := svc.Clear(c.Request.Context(), userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
