package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

type customerRow struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Phone        string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:customer"`
	CreatedAt    time.Time
}

func (customerRow) TableName() string { return "customers" }

type orderRow struct {
	ID         int64  `gorm:"primaryKey;autoIncrement:false"`
	CustomerID int64  `gorm:"index;not null"`
	Total      string `gorm:"not null"`
	Status     string `gorm:"not null"`
	Payload    []byte `gorm:"not null"`
	CreatedAt  time.Time
}

func (orderRow) TableName() string { return "orders" }

type cartRow struct {
	CustomerID int64  `gorm:"primaryKey;autoIncrement:false"`
	Items      []byte `gorm:"not null"`
	PromoCode  string
	UpdatedAt  time.Time
}

func (cartRow) TableName() string { return "carts" }

// Storage is a single-file SQL store for development and small deployments.
type Storage struct {
	db     *gorm.DB
	logger *zap.Logger
}

type customerRepository struct {
	db *gorm.DB
}

type orderRepository struct {
	db *gorm.DB
}

type cartRepository struct {
	db *gorm.DB
}

// New opens (or creates) the database at path and migrates the schema.
func New(path string, logger *zap.Logger) (*Storage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&customerRow{}, &orderRow{}, &cartRow{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	logger.Info("sqlite storage ready", zap.String("path", path))
	return &Storage{db: db, logger: logger}, nil
}

// Close releases the underlying connection pool.
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{db: s.db}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{db: s.db}
}

func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{db: s.db}
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *customerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	row := customerRow{
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		PasswordHash: c.PasswordHash,
		Role:         string(c.Role),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicate(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return row.toModel(), nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *customerRepository) first(ctx context.Context, cond string, arg any) (*model.Customer, error) {
	var row customerRow
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return row.toModel(), nil
}

func (row customerRow) toModel() *model.Customer {
	return &model.Customer{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		Phone:        row.Phone,
		PasswordHash: row.PasswordHash,
		Role:         model.Role(row.Role),
		CreatedAt:    row.CreatedAt,
	}
}

func (r *orderRepository) Append(ctx context.Context, order *model.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	row := orderRow{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Total:      order.Total.StringFixed(2),
		Status:     string(order.Status),
		Payload:    payload,
		CreatedAt:  order.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicate(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var row orderRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return row.toModel()
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	var rows []orderRow
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("created_at DESC, id DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toOrders(rows)
}

func (r *orderRepository) List(ctx context.Context, limit int) ([]model.Order, error) {
	var rows []orderRow
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toOrders(rows)
}

func toOrders(rows []orderRow) ([]model.Order, error) {
	orders := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		o, err := row.toModel()
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func (row orderRow) toModel() (*model.Order, error) {
	var o model.Order
	if err := json.Unmarshal(row.Payload, &o); err != nil {
		return nil, fmt.Errorf("decode order %d: %w", row.ID, err)
	}
	total, err := decimal.NewFromString(row.Total)
	if err != nil {
		return nil, fmt.Errorf("decode order %d total: %w", row.ID, err)
	}
	o.Total = total
	return &o, nil
}

func (r *cartRepository) Get(ctx context.Context, customerID int64) (*model.Cart, error) {
	cart := model.NewCart(customerID)
	var row cartRow
	err := r.db.WithContext(ctx).First(&row, "customer_id = ?", customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cart, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(row.Items, &cart.Items); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	cart.PromoCode = row.PromoCode
	cart.UpdatedAt = row.UpdatedAt
	return cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *model.Cart) error {
	items, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("encode cart items: %w", err)
	}
	row := cartRow{CustomerID: cart.CustomerID, Items: items, PromoCode: cart.PromoCode, UpdatedAt: cart.UpdatedAt}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"items", "promo_code", "updated_at"}),
	}).Create(&row).Error
}

func (r *cartRepository) Clear(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).Delete(&cartRow{}, "customer_id = ?", customerID).Error
}
