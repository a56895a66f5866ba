package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func newCartUseCase() (*CartUseCase, *testhelpers.CartRepositoryStub) {
	carts := testhelpers.NewCartRepositoryStub()
	return NewCartUseCase(carts, testCatalog(), defaultCalculator()), carts
}

func TestCartUseCaseAddItemMerges(t *testing.T) {
	uc, carts := newCartUseCase()
	ctx := context.Background()

	if _, err := uc.AddItem(ctx, 7, model.CartLineInput{ProductID: 1, Color: "white", Size: "m", Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	view, err := uc.AddItem(ctx, 7, model.CartLineInput{ProductID: 1, Color: "White", Size: "M", Quantity: 1})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(view.Cart.Items) != 1 || view.Cart.Items[0].Quantity != 2 {
		t.Fatalf("expected merged line, got %+v", view.Cart.Items)
	}
	item := view.Cart.Items[0]
	if item.Color != "White" || item.Size != "M" || item.Name != "Essential Cotton Tee" {
		t.Fatalf("expected canonical options, got %+v", item)
	}
	if stored := carts.Carts[7]; stored == nil || stored.UpdatedAt.IsZero() {
		t.Fatal("expected cart to be saved with timestamp")
	}
}

func TestCartUseCaseAddItemRejections(t *testing.T) {
	uc, _ := newCartUseCase()
	ctx := context.Background()

	cases := []struct {
		name string
		in   model.CartLineInput
		want error
	}{
		{"zero quantity", model.CartLineInput{ProductID: 1, Color: "white", Size: "M"}, domainErrors.ErrInvalidQuantity},
		{"unknown product", model.CartLineInput{ProductID: 99, Quantity: 1}, domainErrors.ErrNotFound},
		{"out of stock", model.CartLineInput{ProductID: 5, Size: "One Size", Quantity: 1}, domainErrors.ErrOutOfStock},
		{"bad color", model.CartLineInput{ProductID: 1, Color: "green", Size: "M", Quantity: 1}, domainErrors.ErrInvalidOption},
		{"bad size", model.CartLineInput{ProductID: 2, Color: "blue", Size: "XS", Quantity: 1}, domainErrors.ErrInvalidOption},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.AddItem(ctx, 1, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCartUseCaseQuantityAndRemoval(t *testing.T) {
	uc, carts := newCartUseCase()
	ctx := context.Background()
	carts.Carts[1] = referenceCart(1)
	tee := model.LineKey{ID: 1, Color: "White", Size: "M"}
	jacket := model.LineKey{ID: 2, Color: "Classic Blue", Size: "M"}

	view, err := uc.UpdateQuantity(ctx, 1, tee, 3)
	if err != nil || view.Cart.Items[0].Quantity != 3 {
		t.Fatalf("unexpected update %+v err=%v", view, err)
	}
	view, err = uc.UpdateQuantity(ctx, 1, tee, 0)
	if err != nil || len(view.Cart.Items) != 1 {
		t.Fatalf("expected zero quantity to remove the line, got %+v err=%v", view, err)
	}
	if _, err := uc.UpdateQuantity(ctx, 1, tee, 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected missing line, got %v", err)
	}
	view, err = uc.RemoveItem(ctx, 1, jacket)
	if err != nil || !view.Cart.Empty() {
		t.Fatalf("expected empty cart, got %+v err=%v", view, err)
	}
	if _, err := uc.RemoveItem(ctx, 1, jacket); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected missing line, got %v", err)
	}
}

func TestCartUseCaseQuote(t *testing.T) {
	uc, carts := newCartUseCase()
	ctx := context.Background()
	carts.Carts[1] = referenceCart(1)

	view, err := uc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	q := view.Quote
	if !q.Subtotal.Equal(dec("192")) || !q.DeliveryFee.IsZero() || !q.Tax.Equal(dec("15.36")) || !q.Total.Equal(dec("207.36")) {
		t.Fatalf("unexpected quote %+v", q)
	}
}

func TestCartUseCasePromo(t *testing.T) {
	uc, carts := newCartUseCase()
	ctx := context.Background()
	carts.Carts[1] = referenceCart(1)

	if _, err := uc.ApplyPromo(ctx, 1, "SUMMER"); !errors.Is(err, domainErrors.ErrInvalidPromoCode) {
		t.Fatalf("expected invalid promo, got %v", err)
	}
	if _, err := uc.ApplyPromo(ctx, 1, "  "); !errors.Is(err, domainErrors.ErrInvalidPromoCode) {
		t.Fatalf("expected blank promo to be rejected, got %v", err)
	}

	view, err := uc.ApplyPromo(ctx, 1, " welcome10 ")
	if err != nil {
		t.Fatalf("apply promo: %v", err)
	}
	if view.Cart.PromoCode != "WELCOME10" || !view.Quote.Discount.Equal(dec("19.2")) || !view.Quote.Total.Equal(dec("186.62")) {
		t.Fatalf("unexpected promo view: code=%s quote=%+v", view.Cart.PromoCode, view.Quote)
	}

	view, err = uc.RemovePromo(ctx, 1)
	if err != nil || view.Cart.PromoCode != "" || !view.Quote.Discount.IsZero() {
		t.Fatalf("expected promo removed, got %+v err=%v", view, err)
	}
}

func TestCartUseCaseSaveError(t *testing.T) {
	uc, carts := newCartUseCase()
	carts.SaveErr = errors.New("disk full")
	if _, err := uc.AddItem(context.Background(), 1, model.CartLineInput{ProductID: 1, Color: "white", Size: "M", Quantity: 1}); !errors.Is(err, carts.SaveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
}
