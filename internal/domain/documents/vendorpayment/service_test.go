package vendorpayment

import (
	"context"
	"testing"
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/core/types"
	"github.com/mhammadjaber00/almasasuite/internal/domain/audit"
	"github.com/mhammadjaber00/almasasuite/internal/domain/catalogs/vendor"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePaymentRepo struct {
	payments []*Payment
}

func (r *fakePaymentRepo) Create(_ context.Context, p *Payment) error {
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, paymentID id.ID) (*Payment, error) {
	for _, p := range r.payments {
		if p.ID == paymentID {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("vendor_payment", paymentID.String())
}

func (r *fakePaymentRepo) List(_ context.Context, vendorID *id.ID, limit, offset int) ([]*Payment, error) {
	if vendorID == nil {
		return r.payments, nil
	}
	var out []*Payment
	for _, p := range r.payments {
		if p.VendorID == *vendorID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeVendorRepo struct {
	vendors map[id.ID]*vendor.Vendor
}

func (r *fakeVendorRepo) FindOrCreate(_ context.Context, name string, contactInfo *string) (*vendor.Vendor, error) {
	v := vendor.New(name, contactInfo)
	r.vendors[v.ID] = v
	return v, nil
}

func (r *fakeVendorRepo) GetByID(_ context.Context, vendorID id.ID) (*vendor.Vendor, error) {
	if v, ok := r.vendors[vendorID]; ok {
		return v, nil
	}
	return nil, apperror.NewNotFound("vendor", vendorID.String())
}

func (r *fakeVendorRepo) GetForUpdate(ctx context.Context, vendorID id.ID) (*vendor.Vendor, error) {
	return r.GetByID(ctx, vendorID)
}

func (r *fakeVendorRepo) List(_ context.Context, activeOnly bool) ([]*vendor.Vendor, error) {
	return nil, nil
}

func (r *fakeVendorRepo) Update(_ context.Context, v *vendor.Vendor) error {
	r.vendors[v.ID] = v
	return nil
}

func (r *fakeVendorRepo) ApplyIntakeLiability(ctx context.Context, vendorID id.ID, metalValueOwed types.Money) (*vendor.Vendor, error) {
	v, err := r.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	v.RecordIntakeLiability(metalValueOwed)
	return v, nil
}

func (r *fakeVendorRepo) ApplyPayment(ctx context.Context, vendorID id.ID, amount types.Money) (*vendor.Vendor, error) {
	v, err := r.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if err := v.RecordPayment(amount); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *fakeVendorRepo) ReduceForSale(ctx context.Context, vendorID id.ID, metalValueSold types.Money) (*vendor.Vendor, types.Money, error) {
	v, err := r.GetByID(ctx, vendorID)
	if err != nil {
		return nil, types.ZeroMoney(), err
	}
	return v, v.WriteOffForSale(metalValueSold), nil
}

func setup(t *testing.T) (*Service, *fakePaymentRepo, *vendor.Vendor) {
	t.Helper()

	payments := &fakePaymentRepo{}
	vendors := &fakeVendorRepo{vendors: make(map[id.ID]*vendor.Vendor)}

	v, _ := vendors.FindOrCreate(context.Background(), "Ahmad Gold Workshop", nil)
	v.RecordIntakeLiability(types.MustMoney("500"))

	svc := NewService(payments, vendors, passthroughTx{}, audit.Noop{})
	return svc, payments, v
}

func TestRecord_Payment(t *testing.T) {
	svc, payments, v := setup(t)

	result, err := svc.Record(context.Background(), Request{
		VendorID:      v.ID,
		Amount:        types.MustMoney("200"),
		PaymentMethod: MethodCash,
	}, "manager")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Vendor.TotalLiabilityBalance.Equal(types.MustMoney("300")) {
		t.Errorf("balance = %s, want 300", result.Vendor.TotalLiabilityBalance)
	}
	if !result.Vendor.TotalPaid.Equal(types.MustMoney("200")) {
		t.Errorf("total paid = %s, want 200", result.Vendor.TotalPaid)
	}
	if len(payments.payments) != 1 {
		t.Fatalf("expected 1 payment persisted, got %d", len(payments.payments))
	}
	if result.Payment.PaidAt.IsZero() {
		t.Error("PaidAt must default to the creation time")
	}
}

func TestRecord_OverpayRejected(t *testing.T) {
	svc, payments, v := setup(t)
	ctx := context.Background()

	if _, err := svc.Record(ctx, Request{
		VendorID:      v.ID,
		Amount:        types.MustMoney("200"),
		PaymentMethod: MethodCash,
	}, "manager"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Balance is 300 now; 400 must be rejected and the ledger unchanged.
	_, err := svc.Record(ctx, Request{
		VendorID:      v.ID,
		Amount:        types.MustMoney("400"),
		PaymentMethod: MethodCash,
	}, "manager")

	if !apperror.IsInsufficientLiability(err) {
		t.Fatalf("expected InsufficientLiability, got %v", err)
	}
	if !v.TotalLiabilityBalance.Equal(types.MustMoney("300")) {
		t.Errorf("balance = %s, want 300", v.TotalLiabilityBalance)
	}
	if !v.TotalPaid.Equal(types.MustMoney("200")) {
		t.Errorf("total paid = %s, want 200", v.TotalPaid)
	}

	appErr, _ := apperror.AsAppError(err)
	if appErr.Details["requested"] != "400.00" {
		t.Errorf("requested detail = %v, want 400.00", appErr.Details["requested"])
	}
	if appErr.Details["available"] != "300.00" {
		t.Errorf("available detail = %v, want 300.00", appErr.Details["available"])
	}

	// The ledger settles before the fact insert, so the rejected
	// payment must not have been persisted.
	if len(payments.payments) != 1 {
		t.Errorf("expected 1 payment persisted, got %d", len(payments.payments))
	}
}

func TestRecord_ValidationErrors(t *testing.T) {
	svc, _, v := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
	}{
		{"zero amount", Request{VendorID: v.ID, Amount: types.ZeroMoney(), PaymentMethod: MethodCash}},
		{"negative amount", Request{VendorID: v.ID, Amount: types.MustMoney("-5"), PaymentMethod: MethodCash}},
		{"bad method", Request{VendorID: v.ID, Amount: types.MustMoney("10"), PaymentMethod: "BARTER"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Record(ctx, tt.req, "manager"); !apperror.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRecord_UnknownVendor(t *testing.T) {
	svc, payments, _ := setup(t)

	_, err := svc.Record(context.Background(), Request{
		VendorID:      id.New(),
		Amount:        types.MustMoney("50"),
		PaymentMethod: MethodCash,
	}, "manager")

	if !apperror.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}

	// Vendor resolution runs first; the fact must never reach the
	// payments table where it would trip the foreign key instead.
	if len(payments.payments) != 0 {
		t.Errorf("expected no payment persisted, got %d", len(payments.payments))
	}
}

func TestRecord_ExplicitPaidAt(t *testing.T) {
	svc, _, v := setup(t)

	paidAt := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	result, err := svc.Record(context.Background(), Request{
		VendorID:      v.ID,
		Amount:        types.MustMoney("100"),
		PaymentMethod: MethodTransfer,
		PaidAt:        paidAt,
	}, "manager")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Payment.PaidAt.Equal(paidAt) {
		t.Errorf("PaidAt = %s, want %s", result.Payment.PaidAt, paidAt)
	}
}
