package storage

import (
	"context"
	"sync"

	"bottega/internal/core"
)

// MemoryStore is a fixture-backed store for local development and
// tests. It implements the same read ports as the SQLite repository.
type MemoryStore struct {
	mu         sync.RWMutex
	customers  []core.Customer
	products   []core.Product
	categories []core.Category
	nextID     int64
}

// NewMemoryStore returns a store preloaded with the canonical
// cleaning-supplies fixture.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers: []core.Customer{
			{ID: 1, Name: "Kirk", Orders: []core.Order{
				{ID: 1, CustomerID: 1, Status: "Waiting", Date: core.NewDate(2024, 1, 10), Items: []core.OrderItem{
					{ID: 1, OrderID: 1, ProductID: 1, Quantity: 5},
				}},
				{ID: 2, CustomerID: 1, Status: "Waiting", Date: core.NewDate(2024, 2, 1), Items: []core.OrderItem{
					{ID: 2, OrderID: 2, ProductID: 1, Quantity: 5},
					{ID: 3, OrderID: 2, ProductID: 5, Quantity: 2},
				}},
			}},
			{ID: 2, Name: "Spock", Orders: []core.Order{
				{ID: 3, CustomerID: 2, Status: "In Transit", Date: core.NewDate(2024, 3, 2), Items: []core.OrderItem{
					{ID: 4, OrderID: 3, ProductID: 2, Quantity: 20},
				}},
			}},
			{ID: 3, Name: "McCoy", Orders: []core.Order{
				{ID: 4, CustomerID: 3, Status: "Delivered", Date: core.NewDate(2024, 3, 15), Items: []core.OrderItem{
					{ID: 5, OrderID: 4, ProductID: 3, Quantity: 1},
				}},
			}},
		},
		products: []core.Product{
			{ID: 1, Name: "Bleach", CategoryIDs: []int64{2, 1}},
			{ID: 2, Name: "toilet paper", CategoryIDs: []int64{2, 3}},
			{ID: 3, Name: "mop", CategoryIDs: []int64{3}},
			{ID: 4, Name: "hand soap", CategoryIDs: []int64{1}},
			{ID: 5, Name: "small bucket", CategoryIDs: []int64{3}},
		},
		categories: []core.Category{
			{ID: 1, Name: "Cleaning"},
			{ID: 2, Name: "Chemicals"},
			{ID: 3, Name: "Household Supplies"},
		},
		nextID: 100,
	}
}

// NewEmptyMemoryStore returns a store with no data, for tests that
// build their own graph.
func NewEmptyMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (m *MemoryStore) ListCustomers(ctx context.Context) ([]core.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.Customer, len(m.customers))
	copy(out, m.customers)
	return out, nil
}

func (m *MemoryStore) ListProducts(ctx context.Context) ([]core.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *MemoryStore) ListCategories(ctx context.Context) ([]core.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.Category, len(m.categories))
	copy(out, m.categories)
	return out, nil
}

func (m *MemoryStore) ListOrdersBetween(ctx context.Context, start, end core.Date) ([]core.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []core.Order
	for _, c := range m.customers {
		for _, o := range c.Orders {
			if o.Date.Before(start.Time) || o.Date.After(end.Time) {
				continue
			}
			matched = append(matched, o)
		}
	}
	return matched, nil
}

func (m *MemoryStore) InsertCustomer(ctx context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.allocID()
	m.customers = append(m.customers, core.Customer{ID: id, Name: name})
	return id, nil
}

func (m *MemoryStore) InsertCategory(ctx context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.allocID()
	m.categories = append(m.categories, core.Category{ID: id, Name: name})
	return id, nil
}

func (m *MemoryStore) InsertProduct(ctx context.Context, name string, categoryIDs []int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.allocID()
	m.products = append(m.products, core.Product{ID: id, Name: name, CategoryIDs: categoryIDs})
	return id, nil
}

func (m *MemoryStore) InsertOrder(ctx context.Context, customerID int64, status string, date core.Date) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.customers {
		if m.customers[i].ID != customerID {
			continue
		}
		id := m.allocID()
		m.customers[i].Orders = append(m.customers[i].Orders, core.Order{
			ID: id, CustomerID: customerID, Status: status, Date: date,
		})
		return id, nil
	}
	return 0, core.ErrNotFound
}

func (m *MemoryStore) InsertOrderItem(ctx context.Context, orderID, productID, quantity int64) (int64, error) {
	item := core.OrderItem{OrderID: orderID, ProductID: productID, Quantity: quantity}
	if err := item.Validate(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.customers {
		for j := range m.customers[i].Orders {
			if m.customers[i].Orders[j].ID != orderID {
				continue
			}
			item.ID = m.allocID()
			m.customers[i].Orders[j].Items = append(m.customers[i].Orders[j].Items, item)
			return item.ID, nil
		}
	}
	return 0, core.ErrNotFound
}

func (m *MemoryStore) allocID() int64 {
	id := m.nextID
	m.nextID++
	return id
}
