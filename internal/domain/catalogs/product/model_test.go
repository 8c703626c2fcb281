package product

import (
	"context"
	"testing"
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/core/types"
)

func TestNewFromIntake(t *testing.T) {
	vendorID := id.New()
	receivedAt := time.Date(2026, 9, 1, 14, 5, 1, 0, time.UTC)

	p := NewFromIntake(&vendorID, 18, types.MustMoney("10"), types.MustMoney("500"), receivedAt)

	if p.Type != TypeRawGold {
		t.Errorf("type = %s, want %s", p.Type, TypeRawGold)
	}
	if p.Karat != 18 {
		t.Errorf("karat = %d, want 18", p.Karat)
	}
	if p.QuantityInStock != 1 {
		t.Errorf("quantity = %d, want 1", p.QuantityInStock)
	}
	if !p.PurchasePrice.Equal(types.MustMoney("500")) {
		t.Errorf("purchase price = %s, want 500", p.PurchasePrice)
	}
	if p.VendorID == nil || *p.VendorID != vendorID {
		t.Error("product must keep the vendor link")
	}
	if err := p.Validate(context.Background()); err != nil {
		t.Errorf("materialized product rejected: %v", err)
	}
}

func TestNewFromIntake_DistinctSKUsWithinOneSecond(t *testing.T) {
	receivedAt := time.Date(2026, 9, 1, 14, 5, 1, 0, time.UTC)

	first := NewFromIntake(nil, 18, types.MustMoney("10"), types.MustMoney("500"), receivedAt)
	second := NewFromIntake(nil, 18, types.MustMoney("5"), types.MustMoney("250"), receivedAt.Add(500*time.Millisecond))

	if first.SKU == second.SKU {
		t.Fatalf("intakes half a second apart produced identical SKU %q", first.SKU)
	}
}
