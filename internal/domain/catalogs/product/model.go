// Package product provides the Product catalog: sellable inventory,
// including raw metal materialized by gold intakes.
package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/entity"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/core/types"
)

// Type categorizes a product.
type Type string

const (
	TypeRing     Type = "ring"
	TypeBracelet Type = "bracelet"
	TypeNecklace Type = "necklace"
	TypeEarring  Type = "earring"
	TypeRawGold  Type = "raw_gold"
	TypeOther    Type = "other"
)

// Product is a sellable inventory item.
//
// VendorID links raw-gold products back to the intake vendor. When such
// a product sells, the sales workflow reduces that vendor's liability by
// the purchase value of the sold quantity.
type Product struct {
	entity.Catalog

	// SKU is the unique stock keeping unit
	SKU string `db:"sku" json:"sku"`

	Type Type `db:"type" json:"type"`

	// Karat of the metal (0 for non-gold items)
	Karat int `db:"karat" json:"karat"`

	// WeightGrams is the per-unit weight
	WeightGrams types.Money `db:"weight_grams" json:"weightGrams"`

	// PurchasePrice is the per-unit cost to the store
	PurchasePrice types.Money `db:"purchase_price" json:"purchasePrice"`

	// SellingPrice is the per-unit retail price
	SellingPrice types.Money `db:"selling_price" json:"sellingPrice"`

	QuantityInStock int `db:"quantity_in_stock" json:"quantityInStock"`

	// VendorID is set for products materialized from a gold intake
	VendorID *id.ID `db:"vendor_id" json:"vendorId,omitempty"`
}

// New creates a product with the given identity fields.
func New(sku, name string, productType Type) *Product {
	return &Product{
		Catalog: entity.NewCatalog(name),
		SKU:     strings.TrimSpace(sku),
		Type:    productType,
	}
}

// NewFromIntake materializes a raw-gold product for a received intake.
// The SKU encodes karat and the intake time in epoch milliseconds so
// back-to-back intakes of the same karat stay distinct.
func NewFromIntake(vendorID *id.ID, karat int, grams, metalValueOwed types.Money, receivedAt time.Time) *Product {
	sku := fmt.Sprintf("GOLD-%dK-%d", karat, receivedAt.UnixMilli())
	p := New(sku, fmt.Sprintf("Raw gold %dK %sg", karat, grams.String()), TypeRawGold)
	p.Karat = karat
	p.WeightGrams = grams
	p.PurchasePrice = metalValueOwed
	p.SellingPrice = metalValueOwed
	p.QuantityInStock = 1
	p.VendorID = vendorID
	return p
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.SKU == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}
	if !isValidType(p.Type) {
		return apperror.NewValidation("invalid product type").
			WithDetail("field", "type").
			WithDetail("value", string(p.Type))
	}
	if p.Karat < 0 {
		return apperror.NewValidation("karat cannot be negative").
			WithDetail("field", "karat")
	}
	if p.PurchasePrice.IsNegative() || p.SellingPrice.IsNegative() {
		return apperror.NewValidation("prices cannot be negative").
			WithDetail("field", "price")
	}
	if p.QuantityInStock < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantityInStock")
	}

	return nil
}

func isValidType(t Type) bool {
	switch t {
	case TypeRing, TypeBracelet, TypeNecklace, TypeEarring, TypeRawGold, TypeOther:
		return true
	}
	return false
}
