// Package localcart is the storefront's anonymous cart: a durable blob of
// cart lines usable before any authentication exists. It never touches the
// network; the server-held cart takes over after login via cartsync.
package localcart

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/abdelemjid/carpet-shop-sub000/models"
)

const cacheFileName = "cart.json"

// Cache stores cart lines in a single JSON blob under dir. A missing or
// corrupt blob reads as an empty cart, never as an error.
type Cache struct {
	mu   sync.Mutex
	path string
}

func NewCache(dir string) *Cache {
	return &Cache{path: filepath.Join(dir, cacheFileName)}
}

func (c *Cache) load() []models.CartLine {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil
	}
	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil
	}
	return lines
}

func (c *Cache) save(lines []models.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0644)
}

// Lines returns the cached cart lines.
func (c *Cache) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Add puts quantity units of the product in the cart, snapshotting its name,
// price and images. Adding a product already present adds to its quantity.
// A non-positive quantity counts as one.
func (c *Cache) Add(product models.Product, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := c.load()
	for i, l := range lines {
		if l.ProductID == product.ID {
			lines[i].OrderQuantity += quantity
			return c.save(lines)
		}
	}
	lines = append(lines, models.CartLine{
		ProductID:     product.ID,
		OrderQuantity: quantity,
		ProductName:   product.Name,
		ProductPrice:  product.Price,
		ProductImages: product.Images,
	})
	return c.save(lines)
}

// SetQuantity overwrites one line's quantity; zero or less removes the line.
func (c *Cache) SetQuantity(productID uint, quantity int) error {
	if quantity <= 0 {
		return c.Remove(productID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := c.load()
	for i, l := range lines {
		if l.ProductID == productID {
			lines[i].OrderQuantity = quantity
			return c.save(lines)
		}
	}
	return nil
}

// Remove drops one product's line from the cart.
func (c *Cache) Remove(productID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := c.load()
	kept := lines[:0]
	for _, l := range lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	return c.save(kept)
}

// Clear empties the cart.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(nil)
}

// ReplaceAll overwrites the whole cart, used when adopting the server cart.
func (c *Cache) ReplaceAll(lines []models.CartLine) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(lines)
}

// Total is the sum of snapshot prices times quantities.
func (c *Cache) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, l := range c.load() {
		total += l.LineTotal()
	}
	return total
}

// Count is the number of items in the cart, quantities included.
func (c *Cache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var count int
	for _, l := range c.load() {
		count += l.OrderQuantity
	}
	return count
}
