package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/abdelemjid/carpet-shop-sub000/models"
	"github.com/abdelemjid/carpet-shop-sub000/repository"
	"github.com/gin-gonic/gin"
)

type ProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Images      []string `json:"images"`
	Quantity    int      `json:"quantity" binding:"min=0"`
}

func parseProductID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return 0, false
	}
	return uint(id), true
}

// GET /user/products
func GetProducts(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := store.Products().FindAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		if products == nil {
			products = []models.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /user/products/:id
func GetProductByID(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseProductID(c)
		if !ok {
			return
		}
		product, err := store.Products().FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// POST /admin/products
func CreateProduct(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Images:      input.Images,
			Quantity:    input.Quantity,
		}
		if err := store.Products().Create(c.Request.Context(), &product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /admin/products/:id
func UpdateProduct(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseProductID(c)
		if !ok {
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product, err := store.Products().FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		product.Name = input.Name
		product.Description = input.Description
		product.Price = input.Price
		product.Images = input.Images
		product.Quantity = input.Quantity
		if err := store.Products().Update(c.Request.Context(), product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /admin/products/:id
func DeleteProduct(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseProductID(c)
		if !ok {
			return
		}
		if err := store.Products().Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
