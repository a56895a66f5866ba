package model

import (
	"strings"
	"time"
)

// Role distinguishes shoppers from administrators.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Customer represents a registered shopper or administrator.
type Customer struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// SplitName splits the display name on the first space.
func (c Customer) SplitName() (first, last string) {
	name := strings.TrimSpace(c.Name)
	first, last, _ = strings.Cut(name, " ")
	return first, strings.TrimSpace(last)
}
