package sale

import (
	"context"

	"github.com/mhammadjaber00/almasasuite/internal/core/id"
)

// Repository defines storage operations for sale documents.
type Repository interface {
	// Create inserts the sale header and its items.
	Create(ctx context.Context, s *Sale) error

	// GetByID returns the sale with its items loaded.
	GetByID(ctx context.Context, saleID id.ID) (*Sale, error)

	// GetForUpdate locks the sale header row.
	GetForUpdate(ctx context.Context, saleID id.ID) (*Sale, error)

	// List returns non-deleted sales, newest first.
	List(ctx context.Context, limit, offset int) ([]*Sale, error)

	// MarkDeleted soft-deletes the sale header.
	MarkDeleted(ctx context.Context, s *Sale) error
}
