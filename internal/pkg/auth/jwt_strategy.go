package auth

import (
	"errors"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/polkiloo/storefront/internal/domain/model"
)

const jwtIssuer = "storefront"

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTStrategy issues HS256 JSON Web Tokens.
type JWTStrategy struct {
	secret []byte
	opts   Options
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	return &JWTStrategy{secret: []byte(secret), opts: opts.normalize()}
}

// IssueToken signs a token carrying the customer id as subject and the role as a claim.
func (s *JWTStrategy) IssueToken(p Principal) (string, error) {
	now := s.opts.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtIssuer,
			Subject:   strconv.FormatInt(p.CustomerID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TTL)),
		},
	})
	return token.SignedString(s.secret)
}

// ParseToken verifies signature, issuer and expiry.
func (s *JWTStrategy) ParseToken(token string) (Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(jwtIssuer),
		jwt.WithTimeFunc(s.opts.Now),
	)
	if err != nil || !parsed.Valid {
		return Principal{}, errors.Join(ErrInvalidToken, err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}
	customerID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}
	return Principal{CustomerID: customerID, Role: model.Role(c.Role)}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
