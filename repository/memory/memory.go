// Package memory is an in-memory Store used by the service and handler tests.
// Operations take a store-wide lock, so the conditional updates (stock
// decrement, confirmed flip) behave atomically like their SQL counterparts.
// InTx serializes whole transactions the way row locks do in Postgres and
// rolls the maps back to their pre-transaction snapshot when the callback
// returns an error.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/abdelemjid/carpet-shop-sub000/models"
	"github.com/abdelemjid/carpet-shop-sub000/repository"
)

type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	products map[uint]models.Product
	lines    map[uint]models.CartLine
	orders   map[uint]models.Order

	nextProductID uint
	nextLineID    uint
	nextOrderID   uint

	// Failure injection for tests.
	FailOrderCreate    error
	FailCartReplace    error
	FailStockDecrement error
}

func NewStore() *Store {
	return &Store{
		products:      make(map[uint]models.Product),
		lines:         make(map[uint]models.CartLine),
		orders:        make(map[uint]models.Order),
		nextProductID: 1,
		nextLineID:    1,
		nextOrderID:   1,
	}
}

func (s *Store) Products() repository.ProductStore { return (*productStore)(s) }
func (s *Store) Carts() repository.CartStore       { return (*cartStore)(s) }
func (s *Store) Orders() repository.OrderStore     { return (*orderStore)(s) }

func (s *Store) InTx(ctx context.Context, fn func(repository.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	products := maps.Clone(s.products)
	lines := maps.Clone(s.lines)
	orders := maps.Clone(s.orders)
	nextProduct, nextLine, nextOrder := s.nextProductID, s.nextLineID, s.nextOrderID
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.products, s.lines, s.orders = products, lines, orders
		s.nextProductID, s.nextLineID, s.nextOrderID = nextProduct, nextLine, nextOrder
		s.mu.Unlock()
		return err
	}
	return nil
}

// SeedProduct inserts a product and returns its id.
func (s *Store) SeedProduct(p models.Product) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextProductID
		s.nextProductID++
	} else if p.ID >= s.nextProductID {
		s.nextProductID = p.ID + 1
	}
	s.products[p.ID] = p
	return p.ID
}

// SeedLine inserts a cart line and returns its id.
func (s *Store) SeedLine(l models.CartLine) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == 0 {
		l.ID = s.nextLineID
		s.nextLineID++
	} else if l.ID >= s.nextLineID {
		s.nextLineID = l.ID + 1
	}
	s.lines[l.ID] = l
	return l.ID
}

// AllOrders returns every stored order, newest id last.
func (s *Store) AllOrders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedOrders(s.orders)
}

func sortedOrders(m map[uint]models.Order) []models.Order {
	orders := make([]models.Order, 0, len(m))
	for _, o := range m {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders
}

func sortedLines(m map[uint]models.CartLine) []models.CartLine {
	lines := make([]models.CartLine, 0, len(m))
	for _, l := range m {
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines
}

// ---- products ----

type productStore Store

func (s *productStore) Create(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextProductID
	s.nextProductID++
	s.products[p.ID] = *p
	return nil
}

func (s *productStore) Update(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = *p
	return nil
}

func (s *productStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *productStore) FindAll(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (s *productStore) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *productStore) FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var products []models.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *productStore) FindByIDsForUpdate(ctx context.Context, ids []uint) ([]models.Product, error) {
	return s.FindByIDs(ctx, ids)
}

func (s *productStore) DecrementStock(ctx context.Context, id uint, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailStockDecrement != nil {
		return s.FailStockDecrement
	}
	p, ok := s.products[id]
	if !ok || p.Quantity < qty {
		return repository.ErrInsufficientStock
	}
	p.Quantity -= qty
	s.products[id] = p
	return nil
}

// ---- cart lines ----

type cartStore Store

func (s *cartStore) ReplaceAll(ctx context.Context, userID string, lines []models.CartLine) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailCartReplace != nil {
		return 0, 0, s.FailCartReplace
	}

	// One line per product; a payload listing a product twice keeps the last.
	byProduct := make(map[uint]int, len(lines))
	collapsed := make([]models.CartLine, 0, len(lines))
	for _, l := range lines {
		if i, ok := byProduct[l.ProductID]; ok {
			collapsed[i] = l
			continue
		}
		byProduct[l.ProductID] = len(collapsed)
		collapsed = append(collapsed, l)
	}
	lines = collapsed

	current := make(map[uint]models.CartLine)
	for _, l := range s.lines {
		if l.UserID == userID && !l.Confirmed {
			current[l.ProductID] = l
		}
	}
	incoming := make(map[uint]bool, len(lines))
	for _, l := range lines {
		incoming[l.ProductID] = true
	}
	for pid, l := range current {
		if !incoming[pid] {
			delete(s.lines, l.ID)
		}
	}

	var inserted, updated int
	for _, l := range lines {
		if prev, ok := current[l.ProductID]; ok {
			prev.OrderQuantity = l.OrderQuantity
			prev.ProductName = l.ProductName
			prev.ProductPrice = l.ProductPrice
			prev.ProductImages = l.ProductImages
			s.lines[prev.ID] = prev
			updated++
		} else {
			line := l
			line.ID = s.nextLineID
			s.nextLineID++
			line.UserID = userID
			line.Confirmed = false
			s.lines[line.ID] = line
			inserted++
		}
	}
	return inserted, updated, nil
}

func (s *cartStore) FindByUser(ctx context.Context, userID string) ([]models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lines []models.CartLine
	for _, l := range sortedLines(s.lines) {
		if l.UserID == userID {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

func (s *cartStore) FindUnconfirmed(ctx context.Context, userID string, productIDs []uint) ([]models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[uint]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	var lines []models.CartLine
	for _, l := range sortedLines(s.lines) {
		if l.UserID == userID && !l.Confirmed && wanted[l.ProductID] {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

func (s *cartStore) FindUnconfirmedForUpdate(ctx context.Context, userID string, productIDs []uint) ([]models.CartLine, error) {
	return s.FindUnconfirmed(ctx, userID, productIDs)
}

func (s *cartStore) DeleteOne(ctx context.Context, userID string, lineID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lines[lineID]
	if !ok || l.UserID != userID || l.Confirmed {
		return repository.ErrNotFound
	}
	delete(s.lines, lineID)
	return nil
}

func (s *cartStore) DeleteAll(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, l := range s.lines {
		if l.UserID == userID && !l.Confirmed {
			delete(s.lines, id)
		}
	}
	return nil
}

func (s *cartStore) UpdateQuantity(ctx context.Context, userID string, lineID uint, qty int) error {
	if qty <= 0 {
		return s.DeleteOne(ctx, userID, lineID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lines[lineID]
	if !ok || l.UserID != userID || l.Confirmed {
		return repository.ErrNotFound
	}
	l.OrderQuantity = qty
	s.lines[lineID] = l
	return nil
}

func (s *cartStore) MarkConfirmed(ctx context.Context, userID string, productID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, l := range s.lines {
		if l.UserID == userID && l.ProductID == productID && !l.Confirmed {
			l.Confirmed = true
			s.lines[id] = l
			return true, nil
		}
	}
	return false, nil
}

// ---- orders ----

type orderStore Store

func (s *orderStore) CreateBatch(ctx context.Context, orders []models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailOrderCreate != nil {
		return s.FailOrderCreate
	}
	for i := range orders {
		orders[i].ID = s.nextOrderID
		s.nextOrderID++
		s.orders[orders[i].ID] = orders[i]
	}
	return nil
}

func (s *orderStore) FindAll(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedOrders(s.orders), nil
}

func (s *orderStore) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []models.Order
	for _, o := range sortedOrders(s.orders) {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (s *orderStore) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (s *orderStore) Update(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; !ok {
		return repository.ErrNotFound
	}
	s.orders[o.ID] = *o
	return nil
}

func (s *orderStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}
