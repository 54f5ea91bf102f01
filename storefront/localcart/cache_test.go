package localcart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdelemjid/carpet-shop-sub000/models"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	return NewCache(t.TempDir())
}

func TestMissingFileReadsAsEmptyCart(t *testing.T) {
	c := newTestCache(t)
	if lines := c.Lines(); len(lines) != 0 {
		t.Fatalf("lines = %+v, want empty", lines)
	}
	if c.Total() != 0 || c.Count() != 0 {
		t.Errorf("total=%v count=%d, want zeros", c.Total(), c.Count())
	}
}

func TestCorruptFileReadsAsEmptyCart(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, cacheFileName), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	c := NewCache(dir)
	if lines := c.Lines(); len(lines) != 0 {
		t.Fatalf("lines = %+v, want empty", lines)
	}
	// The cache stays usable afterwards.
	if err := c.Add(models.Product{ID: 1, Name: "Red Carpet", Price: 10}, 1); err != nil {
		t.Fatalf("add after corruption: %v", err)
	}
	if len(c.Lines()) != 1 {
		t.Error("line not stored after corruption recovery")
	}
}

func TestAddSnapshotsProductAndAccumulates(t *testing.T) {
	c := newTestCache(t)
	p := models.Product{ID: 7, Name: "Kilim", Price: 15, Images: []string{"kilim.jpg"}}

	if err := c.Add(p, 2); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(p, 0); err != nil { // non-positive counts as one
		t.Fatal(err)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	l := lines[0]
	if l.OrderQuantity != 3 || l.ProductName != "Kilim" || l.ProductPrice != 15 {
		t.Errorf("line = %+v", l)
	}
	if len(l.ProductImages) != 1 || l.ProductImages[0] != "kilim.jpg" {
		t.Errorf("images snapshot = %v", l.ProductImages)
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	c := newTestCache(t)
	if err := c.Add(models.Product{ID: 1, Name: "Red Carpet", Price: 10}, 2); err != nil {
		t.Fatal(err)
	}
	if err := c.SetQuantity(1, 0); err != nil {
		t.Fatal(err)
	}
	if lines := c.Lines(); len(lines) != 0 {
		t.Fatalf("line survived zero quantity: %+v", lines)
	}
}

func TestTotalAndCount(t *testing.T) {
	c := newTestCache(t)
	if err := c.Add(models.Product{ID: 1, Name: "Red Carpet", Price: 10}, 2); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(models.Product{ID: 2, Name: "Blue Carpet", Price: 20}, 1); err != nil {
		t.Fatal(err)
	}
	if got := c.Total(); got != 40 {
		t.Errorf("total = %v, want 40", got)
	}
	if got := c.Count(); got != 3 {
		t.Errorf("count = %d, want 3", got)
	}
}

func TestRemoveAndClear(t *testing.T) {
	c := newTestCache(t)
	_ = c.Add(models.Product{ID: 1, Name: "Red Carpet", Price: 10}, 1)
	_ = c.Add(models.Product{ID: 2, Name: "Blue Carpet", Price: 20}, 1)

	if err := c.Remove(1); err != nil {
		t.Fatal(err)
	}
	if lines := c.Lines(); len(lines) != 1 || lines[0].ProductID != 2 {
		t.Fatalf("lines after remove = %+v", lines)
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if len(c.Lines()) != 0 {
		t.Error("cart not empty after clear")
	}
}

func TestCartSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(dir)
	if err := c.Add(models.Product{ID: 1, Name: "Red Carpet", Price: 10}, 2); err != nil {
		t.Fatal(err)
	}

	reopened := NewCache(dir)
	lines := reopened.Lines()
	if len(lines) != 1 || lines[0].OrderQuantity != 2 {
		t.Fatalf("reopened cart = %+v", lines)
	}
}
