package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/domain/documents/vendorpayment"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/storage/postgres"
)

// Compile-time check that VendorPaymentRepo implements vendorpayment.Repository.
var _ vendorpayment.Repository = (*VendorPaymentRepo)(nil)

// VendorPaymentRepo is the PostgreSQL store for payment documents.
type VendorPaymentRepo struct {
	*BaseDocumentRepo[*vendorpayment.Payment]
}

// NewVendorPaymentRepo creates a new vendor payment repository.
func NewVendorPaymentRepo(txManager *postgres.TxManager) *VendorPaymentRepo {
	return &VendorPaymentRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			"vendor_payments",
			postgres.ExtractDBColumns[vendorpayment.Payment](),
			func() *vendorpayment.Payment { return &vendorpayment.Payment{} },
		),
	}
}

// List returns payments, newest first. A nil vendorID lists all.
func (r *VendorPaymentRepo) List(ctx context.Context, vendorID *id.ID, limit, offset int) ([]*vendorpayment.Payment, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[vendorpayment.Payment]()...).
		From("vendor_payments").
		OrderBy("created_at DESC")

	if vendorID != nil {
		q = q.Where(squirrel.Eq{"vendor_id": *vendorID})
	}

	return r.Select(ctx, Paginate(q, limit, offset))
}
