// Package auth provides authentication and authorization for store staff.
package auth

import (
	"context"
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/appctx"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
)

// User is a staff member: a manager or a cashier.
type User struct {
	ID       id.ID  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`

	// PinHash is the bcrypt hash of the login PIN
	PinHash string `db:"pin_hash" json:"-"`

	Name string `db:"name" json:"name"`
	Role string `db:"role" json:"role"`

	IsActive bool `db:"is_active" json:"isActive"`

	FailedLoginAttempts int        `db:"failed_login_attempts" json:"-"`
	LockedUntil         *time.Time `db:"locked_until" json:"-"`
	LastLoginAt         *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	Version   int       `db:"version" json:"version"`
}

// NewUser creates a new staff user.
func NewUser(username, name, role, pinHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:        id.New(),
		Username:  username,
		Name:      name,
		Role:      role,
		PinHash:   pinHash,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
}

// Validate checks user invariants.
func (u *User) Validate(ctx context.Context) error {
	if u.Username == "" {
		return apperror.NewValidation("username is required").WithDetail("field", "username")
	}
	if u.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	switch u.Role {
	case appctx.RoleManager, appctx.RoleCashier:
	default:
		return apperror.NewValidation("invalid role").
			WithDetail("field", "role").
			WithDetail("value", u.Role)
	}
	return nil
}

// IsLocked returns true if the account is temporarily locked.
func (u *User) IsLocked() bool {
	return u.LockedUntil != nil && time.Now().Before(*u.LockedUntil)
}

// CanLogin checks if the user may log in right now.
func (u *User) CanLogin() error {
	if !u.IsActive {
		return apperror.NewForbidden("account is disabled")
	}
	if u.IsLocked() {
		return apperror.NewForbidden("account is temporarily locked")
	}
	return nil
}

// RecordFailedLogin increments the failed attempt counter and locks the
// account once maxAttempts is reached.
func (u *User) RecordFailedLogin(maxAttempts int, lockDuration time.Duration) {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= maxAttempts {
		lockUntil := time.Now().Add(lockDuration)
		u.LockedUntil = &lockUntil
	}
}

// RecordSuccessfulLogin resets the failed attempt counter.
func (u *User) RecordSuccessfulLogin() {
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
	now := time.Now().UTC()
	u.LastLoginAt = &now
}

// Credentials for login.
type Credentials struct {
	Username string `json:"username"`
	Pin      string `json:"pin"`
}

// Token is an issued access token.
type Token struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}
