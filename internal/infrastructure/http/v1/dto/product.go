package dto

import (
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/types"
	"github.com/mhammadjaber00/almasasuite/internal/domain/catalogs/product"
	"github.com/mhammadjaber00/almasasuite/internal/domain/registers/stockmutation"
)

// ProductRequest is the input for creating or updating a product.
type ProductRequest struct {
	SKU  string `json:"sku" binding:"required"`
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`

	Karat       int         `json:"karat"`
	WeightGrams types.Money `json:"weightGrams"`

	PurchasePrice types.Money `json:"purchasePrice"`
	SellingPrice  types.Money `json:"sellingPrice"`

	QuantityInStock int `json:"quantityInStock"`
}

// ProductResponse is the API shape of a product.
type ProductResponse struct {
	ID   string `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`
	Type string `json:"type"`

	Karat       int         `json:"karat"`
	WeightGrams types.Money `json:"weightGrams"`

	PurchasePrice types.Money `json:"purchasePrice"`
	SellingPrice  types.Money `json:"sellingPrice"`

	QuantityInStock int     `json:"quantityInStock"`
	VendorID        *string `json:"vendorId,omitempty"`

	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromProduct maps a product to its API shape.
func FromProduct(p *product.Product) ProductResponse {
	resp := ProductResponse{
		ID:              p.ID.String(),
		SKU:             p.SKU,
		Name:            p.Name,
		Type:            string(p.Type),
		Karat:           p.Karat,
		WeightGrams:     p.WeightGrams,
		PurchasePrice:   p.PurchasePrice,
		SellingPrice:    p.SellingPrice,
		QuantityInStock: p.QuantityInStock,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.VendorID != nil {
		vid := p.VendorID.String()
		resp.VendorID = &vid
	}
	return resp
}

// AdjustStockRequest is the input for a manual stock correction.
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// StockMutationResponse is the API shape of one stock movement.
type StockMutationResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	Delta      int       `json:"delta"`
	Reason     string    `json:"reason"`
	DocumentID *string   `json:"documentId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	CreatedBy  string    `json:"createdBy,omitempty"`
}

// FromMutations maps a product's movement history.
func FromMutations(mutations []*stockmutation.Mutation) []StockMutationResponse {
	out := make([]StockMutationResponse, 0, len(mutations))
	for _, m := range mutations {
		resp := StockMutationResponse{
			ID:        m.ID.String(),
			ProductID: m.ProductID.String(),
			Delta:     m.Delta,
			Reason:    string(m.Reason),
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		}
		if m.DocumentID != nil {
			did := m.DocumentID.String()
			resp.DocumentID = &did
		}
		out = append(out, resp)
	}
	return out
}

// FromProducts maps a slice of products.
func FromProducts(products []*product.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}
