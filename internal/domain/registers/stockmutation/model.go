// Package stockmutation provides the stock mutation register: an
// append-only journal of every quantity change, keyed by product.
package stockmutation

import (
	"context"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/entity"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
)

// Reason explains why stock changed.
type Reason string

const (
	ReasonGoldIntake Reason = "GOLD_INTAKE"
	ReasonSale       Reason = "SALE"
	ReasonSaleRefund Reason = "SALE_REFUND"
	ReasonManual     Reason = "MANUAL_ADJUSTMENT"
)

// Mutation is a single stock movement. The current quantity on the
// product row is the projection; this register is the history.
type Mutation struct {
	entity.BaseDocument

	ProductID id.ID  `db:"product_id" json:"productId"`
	Delta     int    `db:"delta" json:"delta"`
	Reason    Reason `db:"reason" json:"reason"`

	// DocumentID references the sale or intake that caused the movement
	DocumentID *id.ID `db:"document_id" json:"documentId,omitempty"`
}

// New creates a mutation for the given movement.
func New(productID id.ID, delta int, reason Reason, documentID *id.ID) *Mutation {
	return &Mutation{
		BaseDocument: entity.NewBaseDocument(),
		ProductID:    productID,
		Delta:        delta,
		Reason:       reason,
		DocumentID:   documentID,
	}
}

// Validate implements entity.Validatable.
func (m *Mutation) Validate(ctx context.Context) error {
	if id.IsNil(m.ProductID) {
		return apperror.NewValidation("product id is required").
			WithDetail("field", "productId")
	}
	if m.Delta == 0 {
		return apperror.NewValidation("delta cannot be zero").
			WithDetail("field", "delta")
	}
	switch m.Reason {
	case ReasonGoldIntake, ReasonSale, ReasonSaleRefund, ReasonManual:
	default:
		return apperror.NewValidation("invalid mutation reason").
			WithDetail("field", "reason").
			WithDetail("value", string(m.Reason))
	}
	return nil
}
