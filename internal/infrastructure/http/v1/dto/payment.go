package dto

import (
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/types"
	"github.com/mhammadjaber00/almasasuite/internal/domain/documents/vendorpayment"
)

// VendorPaymentRequest is the input for recording a payment.
type VendorPaymentRequest struct {
	VendorID string      `json:"vendorId" binding:"required"`
	Amount   types.Money `json:"amount" binding:"required"`

	PaymentMethod    string  `json:"paymentMethod" binding:"required"`
	PaymentReference *string `json:"paymentReference"`
	Notes            *string `json:"notes"`

	// PaidAt defaults to the recording time when omitted
	PaidAt *time.Time `json:"paidAt"`
}

// VendorPaymentResponse is the API shape of a recorded payment.
type VendorPaymentResponse struct {
	ID       string      `json:"id"`
	VendorID string      `json:"vendorId"`
	Amount   types.Money `json:"amount"`

	PaymentMethod    string  `json:"paymentMethod"`
	PaymentReference *string `json:"paymentReference,omitempty"`
	Notes            *string `json:"notes,omitempty"`

	PaidAt     time.Time `json:"paidAt"`
	RecordedAt time.Time `json:"recordedAt"`
	RecordedBy string    `json:"recordedBy,omitempty"`

	// VendorBalance is the liability balance after this payment
	VendorBalance *types.Money `json:"vendorBalance,omitempty"`
}

// FromPayment maps a payment to its API shape.
func FromPayment(p *vendorpayment.Payment) VendorPaymentResponse {
	return VendorPaymentResponse{
		ID:               p.ID.String(),
		VendorID:         p.VendorID.String(),
		Amount:           p.Amount,
		PaymentMethod:    string(p.PaymentMethod),
		PaymentReference: p.PaymentReference,
		Notes:            p.Notes,
		PaidAt:           p.PaidAt,
		RecordedAt:       p.CreatedAt,
		RecordedBy:       p.CreatedBy,
	}
}

// FromPaymentResult maps a recorder result with the post-payment balance.
func FromPaymentResult(r *vendorpayment.Result) VendorPaymentResponse {
	resp := FromPayment(r.Payment)
	if r.Vendor != nil {
		balance := r.Vendor.TotalLiabilityBalance
		resp.VendorBalance = &balance
	}
	return resp
}

// FromPayments maps a slice of payments.
func FromPayments(payments []*vendorpayment.Payment) []VendorPaymentResponse {
	out := make([]VendorPaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}

// ReduceLiabilityRequest is the input for a sale-driven write-off.
type ReduceLiabilityRequest struct {
	VendorID       string      `json:"vendorId" binding:"required"`
	MetalValueSold types.Money `json:"metalValueSold" binding:"required"`
}

// ReduceLiabilityResponse reports the amount actually written off so
// callers can detect truncation at the zero floor.
type ReduceLiabilityResponse struct {
	VendorID   string      `json:"vendorId"`
	Requested  types.Money `json:"requested"`
	WrittenOff types.Money `json:"writtenOff"`
}
