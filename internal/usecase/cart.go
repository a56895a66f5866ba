package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/pricing"
)

// CartUseCase edits customer carts.
type CartUseCase struct {
	carts   repository.CartRepository
	catalog repository.ProductCatalog
	pricing *pricing.Calculator
	now     func() time.Time
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, catalog repository.ProductCatalog, calculator *pricing.Calculator) *CartUseCase {
	return &CartUseCase{carts: carts, catalog: catalog, pricing: calculator, now: time.Now}
}

// Get returns the customer's cart priced for standard delivery.
func (u *CartUseCase) Get(ctx context.Context, customerID int64) (*model.CartView, error) {
	cart, err := u.carts.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return u.view(cart), nil
}

// AddItem validates the variant against the catalog and merges it into the cart.
func (u *CartUseCase) AddItem(ctx context.Context, customerID int64, in model.CartLineInput) (*model.CartView, error) {
	if in.Quantity <= 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	product, err := u.catalog.Get(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.InStock {
		return nil, domainErrors.ErrOutOfStock
	}

	item := model.CartItem{
		ID:        product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  in.Quantity,
	}
	if len(product.Colors) > 0 {
		color, ok := product.Color(in.Color)
		if !ok {
			return nil, fmt.Errorf("%w: color %q", domainErrors.ErrInvalidOption, in.Color)
		}
		item.Color = color.Name
	}
	if len(product.Sizes) > 0 {
		size, ok := canonicalSize(product, in.Size)
		if !ok {
			return nil, fmt.Errorf("%w: size %q", domainErrors.ErrInvalidOption, in.Size)
		}
		item.Size = size
	}

	return u.update(ctx, customerID, func(c *model.Cart) error {
		c.Add(item)
		return nil
	})
}

// UpdateQuantity sets the quantity of a line. Zero or less removes the line.
func (u *CartUseCase) UpdateQuantity(ctx context.Context, customerID int64, key model.LineKey, quantity int) (*model.CartView, error) {
	return u.update(ctx, customerID, func(c *model.Cart) error {
		if !c.SetQuantity(key, quantity) {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

// RemoveItem drops a line.
func (u *CartUseCase) RemoveItem(ctx context.Context, customerID int64, key model.LineKey) (*model.CartView, error) {
	return u.update(ctx, customerID, func(c *model.Cart) error {
		if !c.Remove(key) {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

// ApplyPromo attaches a known promo code, matched case-insensitively.
func (u *CartUseCase) ApplyPromo(ctx context.Context, customerID int64, code string) (*model.CartView, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, ok := u.pricing.Policy().PromoRate(code); !ok || code == "" {
		return nil, domainErrors.ErrInvalidPromoCode
	}
	return u.update(ctx, customerID, func(c *model.Cart) error {
		c.PromoCode = code
		return nil
	})
}

// RemovePromo detaches the promo code.
func (u *CartUseCase) RemovePromo(ctx context.Context, customerID int64) (*model.CartView, error) {
	return u.update(ctx, customerID, func(c *model.Cart) error {
		c.PromoCode = ""
		return nil
	})
}

func (u *CartUseCase) update(ctx context.Context, customerID int64, apply func(*model.Cart) error) (*model.CartView, error) {
	cart, err := u.carts.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := apply(cart); err != nil {
		return nil, err
	}
	cart.UpdatedAt = u.now()
	if err := u.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return u.view(cart), nil
}

func (u *CartUseCase) view(cart *model.Cart) *model.CartView {
	return &model.CartView{
		Cart:  cart,
		Quote: u.pricing.Quote(cart.Items, model.DeliveryStandard, cart.PromoCode),
	}
}

func canonicalSize(p *model.Product, size string) (string, bool) {
	size = strings.TrimSpace(size)
	for _, s := range p.Sizes {
		if strings.EqualFold(s, size) {
			return s, true
		}
	}
	return "", false
}
