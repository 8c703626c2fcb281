package dto

import (
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/domain/auth"
)

// LoginRequest carries staff credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Pin      string `json:"pin" binding:"required"`
}

// LoginResponse carries the issued token and the user's profile.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	TokenType   string       `json:"tokenType"`
	User        UserResponse `json:"user"`
}

// UserResponse is the API shape of a staff user.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

// FromUser maps a user to its API shape.
func FromUser(u *auth.User) UserResponse {
	return UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

// FromUsers maps a slice of users.
func FromUsers(users []*auth.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}

// CreateUserRequest registers a new staff member.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Pin      string `json:"pin" binding:"required"`
}

// ChangePinRequest updates the caller's PIN.
type ChangePinRequest struct {
	CurrentPin string `json:"currentPin" binding:"required"`
	NewPin     string `json:"newPin" binding:"required"`
}
