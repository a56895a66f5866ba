package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

const (
	// PrincipalContextKey is a gin context key for the authenticated principal.
	PrincipalContextKey = "principal"
	// LoginPath is where unauthenticated customers are sent.
	LoginPath = "/auth/login"
	// AdminLoginPath is where requests without admin rights are sent.
	AdminLoginPath = "/admin/login"
	authCookieName = "storefront_token"
)

// TokenParser resolves a token into the principal it was issued for.
type TokenParser interface {
	ParseToken(token string) (pkgAuth.Principal, error)
}

// Authorizer decides whether a role may call a route.
type Authorizer interface {
	Authorize(role model.Role, path, method string) (bool, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return authenticate(parser, LoginPath)
}

// AdminAuthRequired is AuthRequired for the admin area: failures go to the admin login.
func AdminAuthRequired(parser TokenParser) gin.HandlerFunc {
	return authenticate(parser, AdminLoginPath)
}

func authenticate(parser TokenParser, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			redirect(c, loginPath)
			return
		}

		principal, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				redirect(c, loginPath)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

// AdminRequired lets through principals whose role is granted the matched route.
// It must run after AdminAuthRequired.
func AdminRequired(authz Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			redirect(c, AdminLoginPath)
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		allowed, err := authz.Authorize(principal.Role, path, c.Request.Method)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if !allowed {
			redirect(c, AdminLoginPath)
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns the principal stored by AuthRequired.
func CurrentPrincipal(c *gin.Context) (pkgAuth.Principal, bool) {
	val, ok := c.Get(PrincipalContextKey)
	if !ok {
		return pkgAuth.Principal{}, false
	}
	principal, ok := val.(pkgAuth.Principal)
	return principal, ok
}

func redirect(c *gin.Context, location string) {
	c.Header("Location", location)
	c.AbortWithStatus(http.StatusUnauthorized)
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
