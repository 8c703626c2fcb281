package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/core/types"
)

type readOnlyTx struct {
	calls int
}

func (t *readOnlyTx) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func (t *readOnlyTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeReportRepo struct {
	rows []*VendorLiabilitySummary
	err  error

	summaryFrom time.Time
	summaryTo   time.Time
}

func (r *fakeReportRepo) LiabilityReport(_ context.Context) ([]*VendorLiabilitySummary, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.rows, nil
}

func (r *fakeReportRepo) SalesSummary(_ context.Context, from, to time.Time) (*SalesSummary, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.summaryFrom = from
	r.summaryTo = to
	return &SalesSummary{
		SaleCount:   3,
		TotalAmount: types.MustMoney("370"),
		TotalCost:   types.MustMoney("240"),
		TotalProfit: types.MustMoney("130"),
	}, nil
}

func reportRows() []*VendorLiabilitySummary {
	return []*VendorLiabilitySummary{
		{
			VendorID:              id.New(),
			Name:                  "Ahmad Gold Workshop",
			TotalLiabilityBalance: types.MustMoney("500"),
			TotalPaid:             types.MustMoney("200"),
			TotalIntakeValue:      types.MustMoney("700"),
			PaymentPercentage:     types.MustMoney("28.57"),
			IntakeCount:           2,
			PaymentCount:          1,
		},
		{
			VendorID:              id.New(),
			Name:                  "Salma Jewellers",
			TotalLiabilityBalance: types.MustMoney("150"),
			TotalPaid:             types.ZeroMoney(),
			TotalIntakeValue:      types.MustMoney("150"),
			PaymentPercentage:     types.ZeroMoney(),
			IntakeCount:           1,
			PaymentCount:          0,
		},
	}
}

func TestLiabilityReport_IdempotentAbsentWrites(t *testing.T) {
	ctx := context.Background()
	txm := &readOnlyTx{}
	svc := NewService(&fakeReportRepo{rows: reportRows()}, txm)

	first, err := svc.LiabilityReport(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.LiabilityReport(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("rows = %d and %d, want 2 and 2", len(first), len(second))
	}
	for i := range first {
		if first[i].VendorID != second[i].VendorID {
			t.Errorf("row %d vendor changed between reads", i)
		}
		if !first[i].TotalLiabilityBalance.Equal(second[i].TotalLiabilityBalance) {
			t.Errorf("row %d balance changed between reads", i)
		}
		if !first[i].PaymentPercentage.Equal(second[i].PaymentPercentage) {
			t.Errorf("row %d payment percentage changed between reads", i)
		}
	}

	if txm.calls != 2 {
		t.Errorf("read-only transactions = %d, want 2", txm.calls)
	}
}

func TestLiabilityReport_Error(t *testing.T) {
	repoErr := errors.New("boom")
	svc := NewService(&fakeReportRepo{err: repoErr}, &readOnlyTx{})

	if _, err := svc.LiabilityReport(context.Background()); !errors.Is(err, repoErr) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSalesSummary_StampsRange(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewService(repo, &readOnlyTx{})

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	summary, err := svc.SalesSummary(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.From.Equal(from) || !summary.To.Equal(to) {
		t.Errorf("range = [%s, %s), want [%s, %s)", summary.From, summary.To, from, to)
	}
	if !repo.summaryFrom.Equal(from) || !repo.summaryTo.Equal(to) {
		t.Error("query must receive the requested range unchanged")
	}
	if summary.SaleCount != 3 {
		t.Errorf("sale count = %d, want 3", summary.SaleCount)
	}
	if !summary.TotalProfit.Equal(types.MustMoney("130")) {
		t.Errorf("profit = %s, want 130", summary.TotalProfit)
	}
}
