package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

const uniqueViolation = "23505"

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *zap.Logger
}

type customerRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type cartRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *zap.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres storage ready", zap.String("host", cfg.ConnConfig.Host))
	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// Factory methods for domain repositories.
func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS customers (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'customer',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGINT PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES customers(id),
            customer JSONB NOT NULL,
            subtotal NUMERIC(12,2) NOT NULL,
            discount NUMERIC(12,2) NOT NULL,
            delivery_fee NUMERIC(12,2) NOT NULL,
            tax NUMERIC(12,2) NOT NULL,
            total NUMERIC(12,2) NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            order_id BIGINT NOT NULL REFERENCES orders(id),
            position INT NOT NULL,
            product_id BIGINT NOT NULL,
            name TEXT NOT NULL,
            unit_price NUMERIC(12,2) NOT NULL,
            color TEXT NOT NULL,
            size TEXT NOT NULL,
            quantity INT NOT NULL,
            PRIMARY KEY (order_id, position)
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            customer_id BIGINT PRIMARY KEY REFERENCES customers(id),
            items JSONB NOT NULL,
            promo_code TEXT NOT NULL DEFAULT '',
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- CustomerRepository implementation ---

func (r *customerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	const query = `INSERT INTO customers (name, email, phone, password_hash, role) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	created := *c
	err := r.storage.pool.QueryRow(ctx, query, c.Name, c.Email, c.Phone, c.PasswordHash, string(c.Role)).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

const selectCustomer = `SELECT id, name, email, phone, password_hash, role, created_at FROM customers`

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return r.get(ctx, selectCustomer+` WHERE email=$1`, email)
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	return r.get(ctx, selectCustomer+` WHERE id=$1`, id)
}

func (r *customerRepository) get(ctx context.Context, query string, arg any) (*model.Customer, error) {
	var (
		c    model.Customer
		role string
	)
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.PasswordHash, &role, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	c.Role = model.Role(role)
	return &c, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Append(ctx context.Context, order *model.Order) error {
	customer, err := json.Marshal(order.Customer)
	if err != nil {
		return fmt.Errorf("encode order customer: %w", err)
	}

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (id, customer_id, customer, subtotal, discount, delivery_fee, tax, total, status, created_at)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
		_, err := tx.Exec(ctx, insertOrder, order.ID, order.CustomerID, customer,
			order.Subtotal.StringFixed(2), order.Discount.StringFixed(2), order.DeliveryFee.StringFixed(2),
			order.Tax.StringFixed(2), order.Total.StringFixed(2), string(order.Status), order.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, position, product_id, name, unit_price, color, size, quantity)
                            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		for i, item := range order.Items {
			if _, err := tx.Exec(ctx, insertItem, order.ID, i, item.ID, item.Name, item.UnitPrice.StringFixed(2), item.Color, item.Size, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

const selectOrders = `SELECT id, customer_id, customer, subtotal::text, discount::text, delivery_fee::text, tax::text, total::text, status, created_at FROM orders`

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	orders, err := r.list(ctx, selectOrders+` WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return &orders[0], nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return r.list(ctx, selectOrders+` WHERE customer_id=$1 ORDER BY created_at DESC, id DESC`, customerID)
}

func (r *orderRepository) List(ctx context.Context, limit int) ([]model.Order, error) {
	return r.list(ctx, selectOrders+` ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		result []model.Order
		ids    []int64
	)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return result, nil
	}

	items, err := loadItems(ctx, r.storage.pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Items = items[result[i].ID]
	}
	return result, nil
}

func scanOrder(rows pgx.Rows) (model.Order, error) {
	var (
		o        model.Order
		customer []byte
		status   string
	)
	var subtotal, discount, deliveryFee, tax, total string
	if err := rows.Scan(&o.ID, &o.CustomerID, &customer, &subtotal, &discount, &deliveryFee, &tax, &total, &status, &o.CreatedAt); err != nil {
		return o, err
	}
	if err := json.Unmarshal(customer, &o.Customer); err != nil {
		return o, fmt.Errorf("decode order customer: %w", err)
	}
	amounts := []struct {
		dst *decimal.Decimal
		raw string
	}{
		{&o.Subtotal, subtotal}, {&o.Discount, discount}, {&o.DeliveryFee, deliveryFee}, {&o.Tax, tax}, {&o.Total, total},
	}
	for _, a := range amounts {
		d, err := decimal.NewFromString(a.raw)
		if err != nil {
			return o, fmt.Errorf("decode order amount: %w", err)
		}
		*a.dst = d
	}
	o.Status = model.OrderStatus(status)
	return o, nil
}

func loadItems(ctx context.Context, q querier, orderIDs []int64) (map[int64][]model.CartItem, error) {
	const query = `SELECT order_id, product_id, name, unit_price::text, color, size, quantity
                   FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, position`
	rows, err := q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int64][]model.CartItem, len(orderIDs))
	for rows.Next() {
		var (
			orderID int64
			item    model.CartItem
			price   string
		)
		if err := rows.Scan(&orderID, &item.ID, &item.Name, &price, &item.Color, &item.Size, &item.Quantity); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("decode unit price: %w", err)
		}
		items[orderID] = append(items[orderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// --- CartRepository implementation ---

func (r *cartRepository) Get(ctx context.Context, customerID int64) (*model.Cart, error) {
	const query = `SELECT items, promo_code, updated_at FROM carts WHERE customer_id=$1`
	var (
		raw  []byte
		cart = model.NewCart(customerID)
	)
	err := r.storage.pool.QueryRow(ctx, query, customerID).Scan(&raw, &cart.PromoCode, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cart, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &cart.Items); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	return cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *model.Cart) error {
	items, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("encode cart items: %w", err)
	}
	const query = `INSERT INTO carts (customer_id, items, promo_code, updated_at) VALUES ($1, $2, $3, $4)
                   ON CONFLICT (customer_id) DO UPDATE
                   SET items = EXCLUDED.items, promo_code = EXCLUDED.promo_code, updated_at = EXCLUDED.updated_at`
	_, err = r.storage.pool.Exec(ctx, query, cart.CustomerID, items, cart.PromoCode, cart.UpdatedAt)
	return err
}

func (r *cartRepository) Clear(ctx context.Context, customerID int64) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM carts WHERE customer_id=$1`, customerID)
	return err
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
