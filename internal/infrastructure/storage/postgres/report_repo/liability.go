// Package report_repo provides PostgreSQL implementations for the
// read-only report queries.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/mhammadjaber00/almasasuite/internal/domain/reports"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/storage/postgres"
)

// Compile-time check that ReportRepo implements reports.Repository.
var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo runs the aggregate report queries.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// LiabilityReport returns every active vendor with a positive balance,
// ordered by balance descending. Intake and payment aggregates come from
// lateral-free grouped subqueries, one round trip for the whole report.
func (r *ReportRepo) LiabilityReport(ctx context.Context) ([]*reports.VendorLiabilitySummary, error) {
	sql := `
		SELECT
			v.id AS vendor_id,
			v.name,
			v.total_liability_balance,
			v.total_paid,
			v.total_intake_value,
			CASE
				WHEN v.total_intake_value > 0
				THEN ROUND(v.total_paid / v.total_intake_value * 100, 2)
				ELSE 0
			END AS payment_percentage,
			i.last_intake_date,
			p.last_payment_date,
			COALESCE(i.intake_count, 0) AS intake_count,
			COALESCE(p.payment_count, 0) AS payment_count
		FROM vendors v
		LEFT JOIN (
			SELECT vendor_id, MAX(created_at) AS last_intake_date, COUNT(*) AS intake_count
			FROM gold_intakes
			WHERE vendor_id IS NOT NULL
			GROUP BY vendor_id
		) i ON i.vendor_id = v.id
		LEFT JOIN (
			SELECT vendor_id, MAX(created_at) AS last_payment_date, COUNT(*) AS payment_count
			FROM vendor_payments
			GROUP BY vendor_id
		) p ON p.vendor_id = v.id
		WHERE v.is_active AND v.total_liability_balance > 0
		ORDER BY v.total_liability_balance DESC
	`

	var rows []*reports.VendorLiabilitySummary
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql); err != nil {
		return nil, fmt.Errorf("liability report: %w", err)
	}

	return rows, nil
}

// SalesSummary aggregates non-deleted sales in [from, to).
func (r *ReportRepo) SalesSummary(ctx context.Context, from, to time.Time) (*reports.SalesSummary, error) {
	sql := `
		SELECT
			COUNT(*) AS sale_count,
			COALESCE(SUM(total_amount), 0) AS total_amount,
			COALESCE(SUM(total_cost), 0) AS total_cost,
			COALESCE(SUM(profit), 0) AS total_profit
		FROM sales
		WHERE NOT is_deleted
		  AND created_at >= $1
		  AND created_at < $2
	`

	summary := &reports.SalesSummary{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), summary, sql, from, to); err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}

	return summary, nil
}
