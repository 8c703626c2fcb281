package dto

import (
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/types"
	"github.com/mhammadjaber00/almasasuite/internal/domain/documents/goldintake"
)

// GoldIntakeRequest is the input for recording an intake.
// Monetary fields are base-10 decimals, never binary floats.
type GoldIntakeRequest struct {
	VendorID  *string `json:"vendorId"`
	PartyType string  `json:"partyType" binding:"required"`
	PartyName string  `json:"partyName" binding:"required"`

	Karat int         `json:"karat" binding:"required"`
	Grams types.Money `json:"grams" binding:"required"`

	DesignFeePerGram  types.Money `json:"designFeePerGram"`
	MetalValuePerGram types.Money `json:"metalValuePerGram"`

	ContactInfo *string `json:"contactInfo"`
	Notes       *string `json:"notes"`
}

// GoldIntakeResponse is the enriched API shape of a recorded intake.
type GoldIntakeResponse struct {
	ID        string  `json:"id"`
	VendorID  *string `json:"vendorId,omitempty"`
	PartyType string  `json:"partyType"`
	PartyName string  `json:"partyName"`

	Karat int         `json:"karat"`
	Grams types.Money `json:"grams"`

	DesignFeePerGram  types.Money `json:"designFeePerGram"`
	MetalValuePerGram types.Money `json:"metalValuePerGram"`

	TotalDesignFeePaid  types.Money `json:"totalDesignFeePaid"`
	TotalMetalValueOwed types.Money `json:"totalMetalValueOwed"`

	VendorName *string `json:"vendorName,omitempty"`
	ProductID  string  `json:"productId,omitempty"`

	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
}

// FromIntake maps an intake to its API shape.
func FromIntake(i *goldintake.Intake) GoldIntakeResponse {
	resp := GoldIntakeResponse{
		ID:                  i.ID.String(),
		PartyType:           string(i.PartyType),
		PartyName:           i.PartyName,
		Karat:               i.Karat,
		Grams:               i.Grams,
		DesignFeePerGram:    i.DesignFeePerGram,
		MetalValuePerGram:   i.MetalValuePerGram,
		TotalDesignFeePaid:  i.TotalDesignFeePaid,
		TotalMetalValueOwed: i.TotalMetalValueOwed,
		Notes:               i.Notes,
		CreatedAt:           i.CreatedAt,
		CreatedBy:           i.CreatedBy,
	}
	if i.VendorID != nil {
		vid := i.VendorID.String()
		resp.VendorID = &vid
	}
	return resp
}

// FromIntakeResult maps a recorder result, enriching with the resolved
// vendor name and the materialized product.
func FromIntakeResult(r *goldintake.Result) GoldIntakeResponse {
	resp := FromIntake(r.Intake)
	if r.Vendor != nil {
		resp.VendorName = &r.Vendor.Name
	}
	resp.ProductID = r.ProductID.String()
	return resp
}

// FromIntakes maps a slice of intakes.
func FromIntakes(intakes []*goldintake.Intake) []GoldIntakeResponse {
	out := make([]GoldIntakeResponse, 0, len(intakes))
	for _, i := range intakes {
		out = append(out, FromIntake(i))
	}
	return out
}
