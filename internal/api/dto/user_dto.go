package dto

import (
	"time"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// UserResponse is the public view of an account. The password hash is never
// part of it.
type UserResponse struct {
	ID         int64       `json:"id"`
	Email      string      `json:"email"`
	Name       string      `json:"name"`
	Role       domain.Role `json:"role"`
	Phone      *string     `json:"phone"`
	Address    *string     `json:"address"`
	City       *string     `json:"city"`
	PostalCode *string     `json:"postalCode"`
	Country    *string     `json:"country"`
	Company    *string     `json:"company"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// UserSummaryResponse is the slim user joined onto subscriptions.
type UserSummaryResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ClaimsResponse echoes a verified token.
type ClaimsResponse struct {
	ID        int64       `json:"id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	ExpiresAt *time.Time  `json:"expiresAt,omitempty"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Phone:      u.Phone,
		Address:    u.Address,
		City:       u.City,
		PostalCode: u.PostalCode,
		Country:    u.Country,
		Company:    u.Company,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// NewUserResponses maps a list of users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
