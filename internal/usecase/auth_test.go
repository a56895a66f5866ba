package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(p pkgAuth.Principal) (string, error) {
			return fmt.Sprintf("token-%d-%s", p.CustomerID, p.Role), nil
		},
		ParseFn: func(token string) (pkgAuth.Principal, error) {
			var id int64
			var role string
			if _, err := fmt.Sscanf(token, "token-%d-%s", &id, &role); err != nil {
				return pkgAuth.Principal{}, pkgAuth.ErrInvalidToken
			}
			return pkgAuth.Principal{CustomerID: id, Role: model.Role(role)}, nil
		},
	}
}

func registration(email, password string) model.Registration {
	return model.Registration{
		Name:            "Ada Lovelace",
		Email:           email,
		Phone:           "555-0100",
		Password:        password,
		ConfirmPassword: password,
	}
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := testhelpers.NewCustomerRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	customer, token, err := uc.Register(ctx, registration(" ada@example.com ", "secret1"))
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if customer.ID == 0 || customer.Role != model.RoleCustomer {
		t.Fatalf("unexpected customer: %+v", customer)
	}
	if token != "token-1-customer" {
		t.Fatalf("unexpected token %q", token)
	}
	stored, err := repo.GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("expected customer in repository: %v", err)
	}
	if stored.PasswordHash != "hash:secret1" || stored.Phone != "555-0100" {
		t.Fatalf("unexpected stored customer: %+v", stored)
	}
}

func TestAuthUseCaseRegisterRejections(t *testing.T) {
	repo := testhelpers.NewCustomerRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())
	ctx := context.Background()
	if _, _, err := uc.Register(ctx, registration("taken@example.com", "secret1")); err != nil {
		t.Fatalf("seed register failed: %v", err)
	}

	mismatch := registration("bob@example.com", "secret1")
	mismatch.ConfirmPassword = "secret2"

	cases := []struct {
		name string
		in   model.Registration
		want error
		msg  string
	}{
		{"mismatch", mismatch, domainErrors.ErrPasswordMismatch, "Passwords do not match"},
		{"too short", registration("bob@example.com", "12345"), domainErrors.ErrPasswordTooShort, "Password must be at least 6 characters"},
		{"taken", registration("TAKEN@example.com", "secret1"), domainErrors.ErrEmailTaken, "An account with this email already exists"},
		{"empty email", registration(" ", "secret1"), domainErrors.ErrInvalidCredentials, "Invalid email or password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := uc.Register(ctx, tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if got := domainErrors.Message(err); got != tc.msg {
				t.Fatalf("unexpected message %q", got)
			}
		})
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	repo := testhelpers.NewCustomerRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, registration("carol@example.com", "123456")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "carol@example.com", "bad"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "nobody@example.com", "123456"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}

	_, token, err := uc.Authenticate(ctx, "Carol@Example.com", "123456")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	p, err := uc.ParseToken(token)
	if err != nil || p.CustomerID != 1 || p.Role != model.RoleCustomer {
		t.Fatalf("unexpected principal %+v err=%v", p, err)
	}
}

func TestAuthUseCaseRepositoryError(t *testing.T) {
	repo := testhelpers.NewCustomerRepositoryStub()
	repo.Err = errors.New("db down")
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	if _, _, err := uc.Authenticate(context.Background(), "a@example.com", "secret1"); err == nil || errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestAuthUseCaseAdmin(t *testing.T) {
	repo := testhelpers.NewCustomerRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())
	ctx := context.Background()

	if err := uc.EnsureAdmin(ctx, "", ""); err != nil {
		t.Fatalf("expected empty admin email to be ignored, got %v", err)
	}
	if err := uc.EnsureAdmin(ctx, "admin@example.com", "123"); !errors.Is(err, domainErrors.ErrPasswordTooShort) {
		t.Fatalf("expected short password error, got %v", err)
	}
	if err := uc.EnsureAdmin(ctx, "admin@example.com", "admin123"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if err := uc.EnsureAdmin(ctx, "admin@example.com", "other123"); err != nil {
		t.Fatalf("second seed must be a no-op, got %v", err)
	}
	if len(repo.ByID) != 1 {
		t.Fatalf("expected one admin account, got %d", len(repo.ByID))
	}

	_, token, err := uc.AuthenticateAdmin(ctx, "admin@example.com", "admin123")
	if err != nil || token != "token-1-admin" {
		t.Fatalf("unexpected admin login token=%q err=%v", token, err)
	}

	if _, _, err := uc.Register(ctx, registration("shopper@example.com", "secret1")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := uc.AuthenticateAdmin(ctx, "shopper@example.com", "secret1"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected customer to be rejected from admin login, got %v", err)
	}
}

func TestAuthUseCaseParseTokenEmpty(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewCustomerRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())
	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}
