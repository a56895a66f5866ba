package test

import (
	"context"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// CustomerRepositoryStub stores customers in-memory for tests.
type CustomerRepositoryStub struct {
	ByEmail map[string]*model.Customer
	ByID    map[int64]*model.Customer
	Next    int64
	Err     error
}

// NewCustomerRepositoryStub constructs stub repository with initialized maps.
func NewCustomerRepositoryStub() *CustomerRepositoryStub {
	return &CustomerRepositoryStub{
		ByEmail: make(map[string]*model.Customer),
		ByID:    make(map[int64]*model.Customer),
		Next:    1,
	}
}

// Create registers customer unless the email is taken or stub has explicit error.
func (s *CustomerRepositoryStub) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	key := strings.ToLower(c.Email)
	if _, exists := s.ByEmail[key]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	created := *c
	created.ID = s.Next
	s.Next++
	s.ByEmail[key] = &created
	s.ByID[created.ID] = &created
	return &created, nil
}

// GetByEmail fetches customer by email or returns not found.
func (s *CustomerRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if c, ok := s.ByEmail[strings.ToLower(email)]; ok {
		return c, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches customer by identifier or returns not found.
func (s *CustomerRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if c, ok := s.ByID[id]; ok {
		return c, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub records appended orders and allows overrides.
type OrderRepositoryStub struct {
	AppendFn func(context.Context, *model.Order) error
	GetFn    func(context.Context, int64) (*model.Order, error)

	mu     sync.Mutex
	Orders []model.Order
}

// Append stores order unless override fails.
func (s *OrderRepositoryStub) Append(ctx context.Context, order *model.Order) error {
	if s.AppendFn != nil {
		if err := s.AppendFn(ctx, order); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Orders = append(s.Orders, *order)
	return nil
}

// GetByID returns order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByCustomer returns stored orders of customerID, newest first.
func (s *OrderRepositoryStub) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for i := len(s.Orders) - 1; i >= 0; i-- {
		if s.Orders[i].CustomerID == customerID {
			result = append(result, s.Orders[i])
		}
	}
	return result, nil
}

// List returns up to limit stored orders, newest first.
func (s *OrderRepositoryStub) List(ctx context.Context, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for i := len(s.Orders) - 1; i >= 0; i-- {
		if limit > 0 && len(result) == limit {
			break
		}
		result = append(result, s.Orders[i])
	}
	return result, nil
}

// Count reports how many orders were appended.
func (s *OrderRepositoryStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Orders)
}

// CartRepositoryStub keeps carts per customer.
type CartRepositoryStub struct {
	Carts    map[int64]*model.Cart
	SaveErr  error
	ClearErr error
	Cleared  []int64
}

// NewCartRepositoryStub constructs stub with initialized map.
func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{Carts: make(map[int64]*model.Cart)}
}

// Get returns a copy of the stored cart or an empty one.
func (s *CartRepositoryStub) Get(ctx context.Context, customerID int64) (*model.Cart, error) {
	if c, ok := s.Carts[customerID]; ok {
		cp := *c
		cp.Items = c.Snapshot()
		return &cp, nil
	}
	return model.NewCart(customerID), nil
}

// Save stores a copy of cart.
func (s *CartRepositoryStub) Save(ctx context.Context, cart *model.Cart) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	cp := *cart
	cp.Items = cart.Snapshot()
	s.Carts[cart.CustomerID] = &cp
	return nil
}

// Clear drops the cart of customerID.
func (s *CartRepositoryStub) Clear(ctx context.Context, customerID int64) error {
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.Cleared = append(s.Cleared, customerID)
	delete(s.Carts, customerID)
	return nil
}

// SessionStoreStub is a concurrency-safe session map.
type SessionStoreStub struct {
	PurgeFn func(context.Context, time.Time) (int, error)
	SaveErr error

	mu       sync.Mutex
	Sessions map[string]model.CheckoutSession
	Purges   []time.Time
}

// NewSessionStoreStub constructs stub with initialized map.
func NewSessionStoreStub() *SessionStoreStub {
	return &SessionStoreStub{Sessions: make(map[string]model.CheckoutSession)}
}

// Save stores a copy of session when its version matches the stored one.
func (s *SessionStoreStub) Save(ctx context.Context, session *model.CheckoutSession) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Sessions[session.ID].Version != session.Version {
		return domainErrors.ErrSessionConflict
	}
	session.Version++
	cp := *session
	cp.Errors = model.FieldErrors{}
	for k, v := range session.Errors {
		cp.Errors[k] = v
	}
	s.Sessions[session.ID] = cp
	return nil
}

// Get returns a copy of the stored session.
func (s *SessionStoreStub) Get(ctx context.Context, id string) (*model.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.Sessions[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := stored
	cp.Errors = model.FieldErrors{}
	for k, v := range stored.Errors {
		cp.Errors[k] = v
	}
	return &cp, nil
}

// Delete drops the session.
func (s *SessionStoreStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Sessions, id)
	return nil
}

// PurgeIdle records the cutoff and delegates to the override.
func (s *SessionStoreStub) PurgeIdle(ctx context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	s.Purges = append(s.Purges, before)
	s.mu.Unlock()
	if s.PurgeFn != nil {
		return s.PurgeFn(ctx, before)
	}
	return 0, nil
}

// PurgeCount reports how many purges ran.
func (s *SessionStoreStub) PurgeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Purges)
}

// CatalogStub serves a fixed product list.
type CatalogStub struct {
	Products []model.Product
	Err      error
}

// List returns configured products.
func (s CatalogStub) List(ctx context.Context) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.Product(nil), s.Products...), nil
}

// Get returns the product with id.
func (s CatalogStub) Get(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

var (
	_ repository.CustomerRepository = (*CustomerRepositoryStub)(nil)
	_ repository.OrderRepository    = (*OrderRepositoryStub)(nil)
	_ repository.CartRepository     = (*CartRepositoryStub)(nil)
	_ repository.SessionStore       = (*SessionStoreStub)(nil)
	_ repository.ProductCatalog     = CatalogStub{}
)
