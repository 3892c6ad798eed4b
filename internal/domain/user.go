package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// ParseRole validates a raw role value.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleClient:
		return RoleClient, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Profile holds the optional contact fields of an account.
type Profile struct {
	Name       string
	Phone      *string
	Address    *string
	City       *string
	PostalCode *string
	Country    *string
	Company    *string
}

// User is an account able to sign in.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	Profile
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserSummary is the slim user projection joined onto subscriptions.
type UserSummary struct {
	ID    int64
	Name  string
	Email string
}
