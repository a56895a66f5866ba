package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// AuthUseCase handles customer accounts and token management.
type AuthUseCase struct {
	customers repository.CustomerRepository
	hasher    pkgAuth.PasswordHasher
	tokens    pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(customers repository.CustomerRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{customers: customers, hasher: hasher, tokens: strategy}
}

// Register creates a customer account and returns a token for it.
func (u *AuthUseCase) Register(ctx context.Context, in model.Registration) (*model.Customer, string, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if in.Password != in.ConfirmPassword {
		return nil, "", domainErrors.ErrPasswordMismatch
	}
	if len(in.Password) < pkgAuth.MinPasswordLength {
		return nil, "", domainErrors.ErrPasswordTooShort
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	customer, err := u.customers.Create(ctx, &model.Customer{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		Role:         model.RoleCustomer,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := u.issue(customer)
	if err != nil {
		return nil, "", err
	}
	return customer, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.Customer, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	customer, err := u.customers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(customer.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.issue(customer)
	if err != nil {
		return nil, "", err
	}
	return customer, token, nil
}

// AuthenticateAdmin is Authenticate restricted to admin accounts.
func (u *AuthUseCase) AuthenticateAdmin(ctx context.Context, email, password string) (*model.Customer, string, error) {
	customer, token, err := u.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	if customer.Role != model.RoleAdmin {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	return customer, token, nil
}

// ParseToken extracts the principal from provided token.
func (u *AuthUseCase) ParseToken(token string) (pkgAuth.Principal, error) {
	if token == "" {
		return pkgAuth.Principal{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// EnsureAdmin creates the admin account unless an account with email exists.
// An empty email disables seeding.
func (u *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if _, err := u.customers.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return err
	}
	if len(password) < pkgAuth.MinPasswordLength {
		return domainErrors.ErrPasswordTooShort
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}
	_, err = u.customers.Create(ctx, &model.Customer{
		Name:         "Store Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
	if errors.Is(err, domainErrors.ErrAlreadyExists) {
		return nil
	}
	return err
}

func (u *AuthUseCase) issue(c *model.Customer) (string, error) {
	return u.tokens.IssueToken(pkgAuth.Principal{CustomerID: c.ID, Role: c.Role})
}
