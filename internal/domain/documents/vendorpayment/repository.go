package vendorpayment

import (
	"context"

	"github.com/mhammadjaber00/almasasuite/internal/core/id"
)

// Repository defines storage operations for payment documents.
// Payments are append-only; there is no update or delete.
type Repository interface {
	Create(ctx context.Context, p *Payment) error

	GetByID(ctx context.Context, paymentID id.ID) (*Payment, error)

	// List returns payments, newest first. A nil vendorID lists all.
	List(ctx context.Context, vendorID *id.ID, limit, offset int) ([]*Payment, error)
}
