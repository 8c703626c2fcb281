package dto

import (
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/types"
	"github.com/mhammadjaber00/almasasuite/internal/domain/documents/sale"
)

// SaleItemRequest is one requested line of a checkout.
type SaleItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// SaleRequest is the input for a checkout.
type SaleRequest struct {
	Items         []SaleItemRequest `json:"items" binding:"required"`
	PaymentMethod string            `json:"paymentMethod" binding:"required"`
}

// SaleItemResponse is one sold line.
type SaleItemResponse struct {
	ProductID string      `json:"productId"`
	Quantity  int         `json:"quantity"`
	UnitPrice types.Money `json:"unitPrice"`
	LineTotal types.Money `json:"lineTotal"`
}

// SaleResponse is the API shape of a sale.
type SaleResponse struct {
	ID    string             `json:"id"`
	Items []SaleItemResponse `json:"items"`

	TotalAmount types.Money `json:"totalAmount"`
	Profit      types.Money `json:"profit"`

	PaymentMethod string `json:"paymentMethod"`

	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
}

// FromSale maps a sale to its API shape.
func FromSale(s *sale.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, SaleItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}

	return SaleResponse{
		ID:            s.ID.String(),
		Items:         items,
		TotalAmount:   s.TotalAmount,
		Profit:        s.Profit,
		PaymentMethod: string(s.PaymentMethod),
		IsDeleted:     s.IsDeleted,
		CreatedAt:     s.CreatedAt,
		CreatedBy:     s.CreatedBy,
	}
}

// FromSales maps a slice of sales.
func FromSales(sales []*sale.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, FromSale(s))
	}
	return out
}
