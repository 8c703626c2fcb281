// Package vendorpayment provides the vendor payment document: an
// immutable record of money paid to a vendor against its liability.
package vendorpayment

import (
	"context"
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/entity"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/core/types"
)

// Method is how the payment was made.
type Method string

const (
	MethodCash     Method = "CASH"
	MethodCheck    Method = "CHECK"
	MethodTransfer Method = "BANK_TRANSFER"
	MethodOther    Method = "OTHER"
)

// Payment is an append-only ledger fact. Once created, never mutated.
type Payment struct {
	entity.BaseDocument

	VendorID id.ID       `db:"vendor_id" json:"vendorId"`
	Amount   types.Money `db:"amount" json:"amount"`

	PaymentMethod    Method  `db:"payment_method" json:"paymentMethod"`
	PaymentReference *string `db:"payment_reference" json:"paymentReference,omitempty"`
	Notes            *string `db:"notes" json:"notes,omitempty"`

	// PaidAt is when the money moved; defaults to recording time
	PaidAt time.Time `db:"paid_at" json:"paidAt"`
}

// Validate checks invariants in fail-fast order.
func (p *Payment) Validate(ctx context.Context) error {
	if !p.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}
	if id.IsNil(p.VendorID) {
		return apperror.NewValidation("vendor id is required").
			WithDetail("field", "vendorId")
	}
	switch p.PaymentMethod {
	case MethodCash, MethodCheck, MethodTransfer, MethodOther:
	default:
		return apperror.NewValidation("invalid payment method").
			WithDetail("field", "paymentMethod").
			WithDetail("value", string(p.PaymentMethod))
	}
	return nil
}
