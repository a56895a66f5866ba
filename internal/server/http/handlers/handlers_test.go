package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

// performRequest serves target through a router that registers handler on route.
func performRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signedIn(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.PrincipalContextKey, pkgAuth.Principal{CustomerID: id, Role: model.RoleCustomer})
	}
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", resp.Body.String(), err)
	}
	return out
}

func TestCurrentCustomerID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentCustomerID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	signedIn(42)(c)
	if got := CurrentCustomerID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		err      error
		status   int
		message  string
		location string
	}{
		{err: domainErrors.ErrNotFound, status: http.StatusNotFound, message: "not found"},
		{err: fmt.Errorf("%w: size XXL", domainErrors.ErrInvalidOption), status: http.StatusBadRequest, message: "invalid product option: size XXL"},
		{err: domainErrors.ErrInvalidPromoCode, status: http.StatusBadRequest, message: "Invalid promo code"},
		{err: domainErrors.ErrEmptyCart, status: http.StatusConflict, message: "Your cart is empty"},
		{err: domainErrors.ErrSubmissionInProgress, status: http.StatusConflict, message: "submission in progress"},
		{err: domainErrors.ErrSessionConflict, status: http.StatusConflict, message: "Your checkout was updated in another request. Please try again."},
		{err: fmt.Errorf("%w: gateway down", domainErrors.ErrSubmissionFailed), status: http.StatusBadGateway, message: "Payment failed. Please try again."},
		{err: domainErrors.ErrUnauthorized, status: http.StatusUnauthorized, location: middleware.LoginPath},
		{err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			resp := performRequest(t, http.MethodGet, "/", "/", func(c *gin.Context) { writeError(c, tt.err) }, nil, nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if loc := resp.Header().Get("Location"); loc != tt.location {
				t.Fatalf("expected location %q, got %q", tt.location, loc)
			}
			if tt.message == "" {
				if resp.Body.Len() != 0 {
					t.Fatalf("expected empty body, got %q", resp.Body.String())
				}
				return
			}
			if got := decode[dto.ErrorResponse](t, resp); got.Error != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, got.Error)
			}
		})
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	email := testhelpers.RandomASCIIString(7, 14) + "@example.com"
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.RegisterRequest{Name: "Ada Lovelace", Email: email, Phone: "555-0100", Password: password, ConfirmPassword: password})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, in model.Registration) (*model.Customer, string, error) {
		if in.Email != email || in.Password != password || in.ConfirmPassword != password || in.Name != "Ada Lovelace" {
			t.Fatalf("unexpected registration passed to facade: %+v", in)
		}
		return &model.Customer{ID: 7, Name: in.Name, Email: in.Email, Role: model.RoleCustomer}, "session-token", nil
	}})

	resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}
	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	foundCookie := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "storefront_token" && cookie.Value == "session-token" {
			foundCookie = true
		}
	}
	if !foundCookie {
		t.Fatal("expected auth cookie named storefront_token")
	}

	got := decode[dto.AuthResponse](t, resp)
	if got.Token != "session-token" || got.Customer.ID != 7 || got.Customer.Role != "customer" {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	failing := func(err error) testhelpers.AuthFacadeStub {
		return testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, model.Registration) (*model.Customer, string, error) {
			return nil, "", err
		}}
	}
	body := []byte(`{"name":"A","email":"a@b.c","password":"secret1","confirmPassword":"secret1"}`)

	tests := []struct {
		name    string
		facade  testhelpers.AuthFacadeStub
		body    []byte
		status  int
		message string
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "missing credentials", body: body, facade: failing(domainErrors.ErrInvalidCredentials), status: http.StatusBadRequest, message: "Email and password are required"},
		{name: "mismatch", body: body, facade: failing(domainErrors.ErrPasswordMismatch), status: http.StatusBadRequest, message: "Passwords do not match"},
		{name: "too short", body: body, facade: failing(domainErrors.ErrPasswordTooShort), status: http.StatusBadRequest, message: "Password must be at least 6 characters"},
		{name: "email taken", body: body, facade: failing(domainErrors.ErrEmailTaken), status: http.StatusConflict, message: "An account with this email already exists"},
		{name: "internal", body: body, facade: failing(errors.New("boom")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(tt.facade).Register, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if tt.message != "" {
				if got := decode[dto.ErrorResponse](t, resp); got.Error != tt.message {
					t.Fatalf("expected message %q, got %q", tt.message, got.Error)
				}
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := decode[dto.AuthResponse](t, resp); got.Token != "token" || got.Customer.Email != "ada@example.com" {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid", body: []byte(`{"email":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{LoginFn: func(context.Context, string, string) (*model.Customer, string, error) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusUnauthorized},
		{name: "internal", body: []byte(`{"email":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{LoginFn: func(context.Context, string, string) (*model.Customer, string, error) {
			return nil, "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(tt.facade).Login, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerAdminLogin(t *testing.T) {
	body := []byte(`{"email":"admin@example.com","password":"secret1"}`)
	resp := performRequest(t, http.MethodPost, "/admin/login", "/admin/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).AdminLogin, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := decode[dto.AuthResponse](t, resp); got.Customer.Role != "admin" || got.Token != "admin-token" {
		t.Fatalf("unexpected response %+v", got)
	}

	refused := testhelpers.AuthFacadeStub{AdminLoginFn: func(context.Context, string, string) (*model.Customer, string, error) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}}
	resp = performRequest(t, http.MethodPost, "/admin/login", "/admin/login", NewAuthHandler(refused).AdminLogin, nil, body, jsonHeaders)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
	if got := decode[dto.ErrorResponse](t, resp); got.Error != "Invalid email or password" {
		t.Fatalf("unexpected message %q", got.Error)
	}
}
