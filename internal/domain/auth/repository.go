package auth

import (
	"context"

	"github.com/mhammadjaber00/almasasuite/internal/core/id"
)

// Repository defines storage operations for staff users.
type Repository interface {
	Create(ctx context.Context, u *User) error

	GetByID(ctx context.Context, userID id.ID) (*User, error)

	GetByUsername(ctx context.Context, username string) (*User, error)

	// List returns users ordered by username ascending.
	List(ctx context.Context, activeOnly bool) ([]*User, error)

	// Update persists user fields with optimistic version checking.
	Update(ctx context.Context, u *User) error
}
