package dto

import (
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/types"
	"github.com/mhammadjaber00/almasasuite/internal/domain/catalogs/vendor"
)

// VendorResponse is the API shape of a vendor with derived fields.
type VendorResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ContactInfo *string `json:"contactInfo,omitempty"`

	TotalLiabilityBalance types.Money `json:"totalLiabilityBalance"`
	TotalPaid             types.Money `json:"totalPaid"`
	TotalIntakeValue      types.Money `json:"totalIntakeValue"`

	PaymentPercentage     types.Money `json:"paymentPercentage"`
	HasOutstandingBalance bool        `json:"hasOutstandingBalance"`

	IsActive  bool      `json:"isActive"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromVendor maps a vendor to its API shape.
func FromVendor(v *vendor.Vendor) VendorResponse {
	return VendorResponse{
		ID:                    v.ID.String(),
		Name:                  v.Name,
		ContactInfo:           v.ContactInfo,
		TotalLiabilityBalance: v.TotalLiabilityBalance,
		TotalPaid:             v.TotalPaid,
		TotalIntakeValue:      v.TotalIntakeValue,
		PaymentPercentage:     v.PaymentPercentage(),
		HasOutstandingBalance: v.HasOutstandingBalance(),
		IsActive:              v.IsActive,
		Notes:                 v.Notes,
		CreatedAt:             v.CreatedAt,
		UpdatedAt:             v.UpdatedAt,
	}
}

// FromVendors maps a slice of vendors.
func FromVendors(vendors []*vendor.Vendor) []VendorResponse {
	out := make([]VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, FromVendor(v))
	}
	return out
}

// UpdateVendorRequest carries mutable non-ledger vendor fields.
type UpdateVendorRequest struct {
	Name        string  `json:"name" binding:"required"`
	ContactInfo *string `json:"contactInfo"`
	Notes       *string `json:"notes"`
}
