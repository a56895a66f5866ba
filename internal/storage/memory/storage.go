package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// Storage keeps customers, orders and carts in process memory.
type Storage struct {
	mu        sync.RWMutex
	customers map[int64]model.Customer
	emails    map[string]int64
	nextID    int64
	orders    []model.Order
	carts     map[int64]model.Cart
	now       func() time.Time
}

// New creates empty in-memory storage.
func New() *Storage {
	return &Storage{
		customers: make(map[int64]model.Customer),
		emails:    make(map[string]int64),
		carts:     make(map[int64]model.Cart),
		now:       time.Now,
	}
}

// Close is a no-op kept for parity with persistent stores.
func (s *Storage) Close() error { return nil }

func (s *Storage) Customers() repository.CustomerRepository { return customerRepository{s} }

func (s *Storage) Orders() repository.OrderRepository { return orderRepository{s} }

func (s *Storage) Carts() repository.CartRepository { return cartRepository{s} }

type customerRepository struct{ s *Storage }

func (r customerRepository) Create(_ context.Context, c *model.Customer) (*model.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := strings.ToLower(c.Email)
	if _, ok := r.s.emails[key]; ok {
		return nil, domainErrors.ErrAlreadyExists
	}
	r.s.nextID++
	created := *c
	created.ID = r.s.nextID
	created.CreatedAt = r.s.now()
	r.s.customers[created.ID] = created
	r.s.emails[key] = created.ID
	return &created, nil
}

func (r customerRepository) GetByEmail(_ context.Context, email string) (*model.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[strings.ToLower(email)]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	c := r.s.customers[id]
	return &c, nil
}

func (r customerRepository) GetByID(_ context.Context, id int64) (*model.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.customers[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &c, nil
}

type orderRepository struct{ s *Storage }

func (r orderRepository) Append(_ context.Context, order *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, o := range r.s.orders {
		if o.ID == order.ID {
			return domainErrors.ErrAlreadyExists
		}
	}
	stored := *order
	stored.Items = append([]model.CartItem(nil), order.Items...)
	r.s.orders = append(r.s.orders, stored)
	return nil
}

func (r orderRepository) GetByID(_ context.Context, id int64) (*model.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r orderRepository) ListByCustomer(_ context.Context, customerID int64) ([]model.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []model.Order
	for _, o := range r.s.orders {
		if o.CustomerID == customerID {
			result = append(result, o)
		}
	}
	newestFirst(result)
	return result, nil
}

func (r orderRepository) List(_ context.Context, limit int) ([]model.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := append([]model.Order(nil), r.s.orders...)
	newestFirst(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func newestFirst(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
}

type cartRepository struct{ s *Storage }

func (r cartRepository) Get(_ context.Context, customerID int64) (*model.Cart, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.carts[customerID]
	if !ok {
		return model.NewCart(customerID), nil
	}
	c.Items = c.Snapshot()
	return &c, nil
}

func (r cartRepository) Save(_ context.Context, cart *model.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *cart
	stored.Items = cart.Snapshot()
	r.s.carts[cart.CustomerID] = stored
	return nil
}

func (r cartRepository) Clear(_ context.Context, customerID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.carts, customerID)
	return nil
}
