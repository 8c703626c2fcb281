// Package reports provides read-only aggregations over the ledger.
package reports

import (
	"context"
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/core/tx"
	"github.com/mhammadjaber00/almasasuite/internal/core/types"
)

// VendorLiabilitySummary is one row of the liability report.
type VendorLiabilitySummary struct {
	VendorID id.ID  `db:"vendor_id" json:"vendorId"`
	Name     string `db:"name" json:"name"`

	TotalLiabilityBalance types.Money `db:"total_liability_balance" json:"totalLiabilityBalance"`
	TotalPaid             types.Money `db:"total_paid" json:"totalPaid"`
	TotalIntakeValue      types.Money `db:"total_intake_value" json:"totalIntakeValue"`

	// PaymentPercentage is totalPaid / totalIntakeValue * 100,
	// zero when no intake has been recorded
	PaymentPercentage types.Money `db:"payment_percentage" json:"paymentPercentage"`

	LastIntakeDate  *time.Time `db:"last_intake_date" json:"lastIntakeDate,omitempty"`
	LastPaymentDate *time.Time `db:"last_payment_date" json:"lastPaymentDate,omitempty"`

	IntakeCount  int `db:"intake_count" json:"intakeCount"`
	PaymentCount int `db:"payment_count" json:"paymentCount"`
}

// SalesSummary aggregates sales over a period.
type SalesSummary struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	SaleCount   int         `db:"sale_count" json:"saleCount"`
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
	TotalCost   types.Money `db:"total_cost" json:"totalCost"`
	TotalProfit types.Money `db:"total_profit" json:"totalProfit"`
}

// Repository defines the report queries.
type Repository interface {
	// LiabilityReport returns every active vendor with a positive
	// balance, ordered by balance descending. Aggregates are computed
	// in a single query.
	LiabilityReport(ctx context.Context) ([]*VendorLiabilitySummary, error)

	// SalesSummary aggregates non-deleted sales in [from, to).
	SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error)
}

// Service exposes the reports, reading under a read-only transaction.
type Service struct {
	repo      Repository
	txManager tx.ReadOnlyManager
}

// NewService creates a new report service.
func NewService(repo Repository, txManager tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// LiabilityReport returns outstanding balances per vendor.
func (s *Service) LiabilityReport(ctx context.Context) ([]*VendorLiabilitySummary, error) {
	var result []*VendorLiabilitySummary
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		rows, err := s.repo.LiabilityReport(ctx)
		if err != nil {
			return err
		}
		result = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SalesSummary aggregates sales for the period.
func (s *Service) SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	var result *SalesSummary
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		summary, err := s.repo.SalesSummary(ctx, from, to)
		if err != nil {
			return err
		}
		result = summary
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.From = from
	result.To = to
	return result, nil
}
