package product

import (
	"context"

	"github.com/mhammadjaber00/almasasuite/internal/core/id"
)

// Repository defines storage operations for the product catalog.
type Repository interface {
	Create(ctx context.Context, p *Product) error

	GetByID(ctx context.Context, productID id.ID) (*Product, error)

	// GetForUpdate locks the product row for the duration of the
	// surrounding transaction. Used by the sales workflow to guard the
	// stock check against concurrent sales of the same product.
	GetForUpdate(ctx context.Context, productID id.ID) (*Product, error)

	GetBySKU(ctx context.Context, sku string) (*Product, error)

	// List returns products ordered by name ascending.
	List(ctx context.Context, activeOnly bool) ([]*Product, error)

	// Update persists product fields with optimistic version checking.
	Update(ctx context.Context, p *Product) error

	// AdjustStock changes quantity_in_stock by delta under the row lock
	// taken by a preceding GetForUpdate.
	AdjustStock(ctx context.Context, productID id.ID, delta int) error
}
