package goldintake

import (
	"context"

	"github.com/mhammadjaber00/almasasuite/internal/core/id"
)

// Repository defines storage operations for intake documents.
// Intakes are append-only; there is no update or delete.
type Repository interface {
	Create(ctx context.Context, intake *Intake) error

	GetByID(ctx context.Context, intakeID id.ID) (*Intake, error)

	// List returns intakes, newest first.
	List(ctx context.Context, limit, offset int) ([]*Intake, error)

	// ListByVendor returns a vendor's intakes, newest first.
	ListByVendor(ctx context.Context, vendorID id.ID, limit, offset int) ([]*Intake, error)
}
