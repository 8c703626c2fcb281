// Package sale provides the sale document: a cashier checkout that
// decrements stock and, for vendor-sourced inventory, reduces the
// originating vendor's liability.
package sale

import (
	"context"
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/entity"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/core/types"
)

// PaymentMethod is how the customer paid.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
)

// Item is one sold line.
type Item struct {
	ID        id.ID `db:"id" json:"id"`
	SaleID    id.ID `db:"sale_id" json:"saleId"`
	ProductID id.ID `db:"product_id" json:"productId"`
	Quantity  int   `db:"quantity" json:"quantity"`

	// UnitPrice is the retail price charged per unit
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// UnitCost is the store's purchase price per unit at sale time
	UnitCost types.Money `db:"unit_cost" json:"unitCost"`

	LineTotal types.Money `db:"line_total" json:"lineTotal"`
}

// Sale is a checkout document. Deleting a sale soft-deletes the row and
// refunds stock; the original lines stay for bookkeeping.
type Sale struct {
	entity.BaseDocument

	Items []Item `db:"-" json:"items"`

	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
	TotalCost   types.Money `db:"total_cost" json:"totalCost"`
	Profit      types.Money `db:"profit" json:"profit"`

	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`

	IsDeleted bool       `db:"is_deleted" json:"isDeleted"`
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt,omitempty"`
	DeletedBy *string    `db:"deleted_by" json:"deletedBy,omitempty"`
}

// Validate checks invariants in fail-fast order.
func (s *Sale) Validate(ctx context.Context) error {
	if len(s.Items) == 0 {
		return apperror.NewValidation("sale must have at least one item").
			WithDetail("field", "items")
	}
	for idx, item := range s.Items {
		if id.IsNil(item.ProductID) {
			return apperror.NewValidation("product id is required").
				WithDetail("field", "items").
				WithDetail("index", idx)
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "items").
				WithDetail("index", idx)
		}
	}
	switch s.PaymentMethod {
	case PaymentCash, PaymentCard:
	default:
		return apperror.NewValidation("invalid payment method").
			WithDetail("field", "paymentMethod").
			WithDetail("value", string(s.PaymentMethod))
	}
	return nil
}
