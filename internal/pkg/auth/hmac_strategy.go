package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// HMACStrategy implements auth token creation/verification using HMAC signatures.
// Token layout before base64: "<customer id>:<role>:<unix expiry>:<signature>".
type HMACStrategy struct {
	secret []byte
	opts   Options
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	return &HMACStrategy{secret: []byte(secret), opts: opts.normalize()}
}

// IssueToken generates signed auth token for the principal.
func (s *HMACStrategy) IssueToken(p Principal) (string, error) {
	expires := s.opts.Now().Add(s.opts.TTL).Unix()
	payload := fmt.Sprintf("%d:%s:%d", p.CustomerID, p.Role, expires)
	token := fmt.Sprintf("%s:%s", payload, s.sign(payload))
	return base64.StdEncoding.EncodeToString([]byte(token)), nil
}

// ParseToken validates token and returns the encoded principal.
func (s *HMACStrategy) ParseToken(token string) (Principal, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 4 {
		return Principal{}, ErrInvalidToken
	}

	payload := strings.Join(parts[:3], ":")
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[3])) {
		return Principal{}, ErrInvalidToken
	}

	customerID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	if time.Unix(expires, 0).Before(s.opts.Now()) {
		return Principal{}, ErrInvalidToken
	}

	return Principal{CustomerID: customerID, Role: model.Role(parts[1])}, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
