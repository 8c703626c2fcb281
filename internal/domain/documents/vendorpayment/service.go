package vendorpayment

import (
	"context"
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/entity"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/core/tx"
	"github.com/mhammadjaber00/almasasuite/internal/core/types"
	"github.com/mhammadjaber00/almasasuite/internal/domain/audit"
	"github.com/mhammadjaber00/almasasuite/internal/domain/catalogs/vendor"
	"github.com/mhammadjaber00/almasasuite/pkg/logger"
)

// Request carries the input for recording a payment.
type Request struct {
	VendorID id.ID
	Amount   types.Money

	PaymentMethod    Method
	PaymentReference *string
	Notes            *string

	// PaidAt defaults to now when zero
	PaidAt time.Time
}

// Result is the outcome of a recorded payment.
type Result struct {
	Payment *Payment

	// Vendor carries the post-payment balances.
	Vendor *vendor.Vendor
}

// Service validates and persists vendor payments.
type Service struct {
	repo       Repository
	vendorRepo vendor.Repository
	txManager  tx.Manager
	auditor    audit.Recorder
}

// NewService creates a new payment recorder.
func NewService(repo Repository, vendorRepo vendor.Repository, txManager tx.Manager, auditor audit.Recorder) *Service {
	return &Service{
		repo:       repo,
		vendorRepo: vendorRepo,
		txManager:  txManager,
		auditor:    auditor,
	}
}

// Record validates and persists a payment against a vendor's liability.
// The overpay check runs against the balance read under the vendor row
// lock, inside the same transaction as the payment insert.
func (s *Service) Record(ctx context.Context, req Request, recordedBy string) (*Result, error) {
	payment := &Payment{
		BaseDocument:     entity.NewBaseDocument(),
		VendorID:         req.VendorID,
		Amount:           types.RoundMoney(req.Amount),
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		Notes:            req.Notes,
		PaidAt:           req.PaidAt,
	}
	payment.CreatedBy = recordedBy
	if payment.PaidAt.IsZero() {
		payment.PaidAt = payment.CreatedAt
	}

	if err := payment.Validate(ctx); err != nil {
		return nil, err
	}

	result := &Result{Payment: payment}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Resolve the vendor and settle the ledger before inserting the
		// fact: an unknown vendor must surface as NotFound, not as a
		// foreign key violation on the insert.
		v, err := s.vendorRepo.ApplyPayment(ctx, payment.VendorID, payment.Amount)
		if err != nil {
			return err
		}
		result.Vendor = v

		if err := s.repo.Create(ctx, payment); err != nil {
			return err
		}

		return s.auditor.LogChange(ctx, "vendor_payment", payment.ID, audit.ActionPayment, map[string]any{
			"vendor_id": payment.VendorID.String(),
			"amount":    payment.Amount.String(),
			"method":    string(payment.PaymentMethod),
			"balance":   v.TotalLiabilityBalance.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "vendor payment recorded",
		"payment_id", payment.ID.String(),
		"vendor_id", payment.VendorID.String(),
		"amount", payment.Amount.String(),
	)

	return result, nil
}

// Get returns a payment by ID.
func (s *Service) Get(ctx context.Context, paymentID id.ID) (*Payment, error) {
	return s.repo.GetByID(ctx, paymentID)
}

// List returns payments, newest first, optionally filtered by vendor.
func (s *Service) List(ctx context.Context, vendorID *id.ID, limit, offset int) ([]*Payment, error) {
	return s.repo.List(ctx, vendorID, limit, offset)
}
