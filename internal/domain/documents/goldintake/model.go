// Package goldintake provides the gold intake document: an immutable
// record of a single metal-receiving event that drives the vendor ledger.
package goldintake

import (
	"context"
	"strings"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/entity"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/core/types"
)

// PartyType identifies who brought the metal in.
type PartyType string

const (
	// PartySeller is a vendor the store will owe for the metal value.
	PartySeller PartyType = "SELLER"

	// PartyCustomer is a walk-in bringing metal for rework. No metal
	// value is owed, only the design fee changes hands.
	PartyCustomer PartyType = "CUSTOMER"
)

// Intake is an append-only ledger fact. Once created, never mutated.
type Intake struct {
	entity.BaseDocument

	// VendorID is set only for SELLER intakes
	VendorID *id.ID `db:"vendor_id" json:"vendorId,omitempty"`

	PartyType PartyType `db:"party_type" json:"partyType"`
	PartyName string    `db:"party_name" json:"partyName"`

	Karat int         `db:"karat" json:"karat"`
	Grams types.Money `db:"grams" json:"grams"`

	DesignFeePerGram  types.Money `db:"design_fee_per_gram" json:"designFeePerGram"`
	MetalValuePerGram types.Money `db:"metal_value_per_gram" json:"metalValuePerGram"`

	// Derived, stored: DesignFeePerGram * Grams
	TotalDesignFeePaid types.Money `db:"total_design_fee_paid" json:"totalDesignFeePaid"`

	// Derived, stored: MetalValuePerGram * Grams
	TotalMetalValueOwed types.Money `db:"total_metal_value_owed" json:"totalMetalValueOwed"`

	Notes *string `db:"notes" json:"notes,omitempty"`
}

// Validate checks invariants in fail-fast order, first violation wins.
func (i *Intake) Validate(ctx context.Context) error {
	if i.Karat <= 0 {
		return apperror.NewValidation("karat must be positive").
			WithDetail("field", "karat")
	}
	if !i.Grams.IsPositive() {
		return apperror.NewValidation("grams must be positive").
			WithDetail("field", "grams")
	}
	if i.DesignFeePerGram.IsNegative() {
		return apperror.NewValidation("design fee per gram cannot be negative").
			WithDetail("field", "designFeePerGram")
	}
	if i.MetalValuePerGram.IsNegative() {
		return apperror.NewValidation("metal value per gram cannot be negative").
			WithDetail("field", "metalValuePerGram")
	}
	if strings.TrimSpace(i.PartyName) == "" {
		return apperror.NewValidation("party name is required").
			WithDetail("field", "partyName")
	}
	switch i.PartyType {
	case PartySeller, PartyCustomer:
	default:
		return apperror.NewValidation("invalid party type").
			WithDetail("field", "partyType").
			WithDetail("value", string(i.PartyType))
	}
	if i.PartyType == PartyCustomer && i.MetalValuePerGram.IsPositive() {
		return apperror.NewValidation("metal value per gram must be zero for customer intakes").
			WithDetail("field", "metalValuePerGram")
	}
	return nil
}

// OwesVendor reports whether this intake creates a vendor liability.
func (i *Intake) OwesVendor() bool {
	return i.PartyType == PartySeller && i.TotalMetalValueOwed.IsPositive()
}
