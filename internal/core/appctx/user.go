// Package appctx provides request-scoped values extraction.
package appctx

import (
	"context"
)

// Staff roles.
const (
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// UserContext contains authenticated staff information.
type UserContext struct {
	UserID string
	Name   string
	Role   string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// HasRole checks if the authenticated user has the given role.
func HasRole(ctx context.Context, role string) bool {
	u := GetUser(ctx)
	return u != nil && u.Role == role
}

// IsManager reports whether the authenticated user is a manager.
func IsManager(ctx context.Context) bool {
	return HasRole(ctx, RoleManager)
}
