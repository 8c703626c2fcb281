package stockmutation

import (
	"context"

	"github.com/mhammadjaber00/almasasuite/internal/core/id"
)

// Repository defines storage operations for the stock mutation register.
type Repository interface {
	// Record appends a mutation. Must run in the same transaction as
	// the product quantity adjustment it journals.
	Record(ctx context.Context, m *Mutation) error

	// ListByProduct returns a product's movements, newest first.
	ListByProduct(ctx context.Context, productID id.ID, limit int) ([]*Mutation, error)

	// ListByDocument returns the movements caused by one document.
	ListByDocument(ctx context.Context, documentID id.ID) ([]*Mutation, error)
}
