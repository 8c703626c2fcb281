package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/domain/documents/goldintake"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/storage/postgres"
)

// Compile-time check that GoldIntakeRepo implements goldintake.Repository.
var _ goldintake.Repository = (*GoldIntakeRepo)(nil)

// GoldIntakeRepo is the PostgreSQL store for intake documents.
type GoldIntakeRepo struct {
	*BaseDocumentRepo[*goldintake.Intake]
}

// NewGoldIntakeRepo creates a new gold intake repository.
func NewGoldIntakeRepo(txManager *postgres.TxManager) *GoldIntakeRepo {
	return &GoldIntakeRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			"gold_intakes",
			postgres.ExtractDBColumns[goldintake.Intake](),
			func() *goldintake.Intake { return &goldintake.Intake{} },
		),
	}
}

// List returns intakes, newest first.
func (r *GoldIntakeRepo) List(ctx context.Context, limit, offset int) ([]*goldintake.Intake, error) {
	q := Paginate(
		r.Builder().
			Select(postgres.ExtractDBColumns[goldintake.Intake]()...).
			From("gold_intakes").
			OrderBy("created_at DESC"),
		limit, offset,
	)
	return r.Select(ctx, q)
}

// ListByVendor returns a vendor's intakes, newest first.
func (r *GoldIntakeRepo) ListByVendor(ctx context.Context, vendorID id.ID, limit, offset int) ([]*goldintake.Intake, error) {
	q := Paginate(
		r.Builder().
			Select(postgres.ExtractDBColumns[goldintake.Intake]()...).
			From("gold_intakes").
			Where(squirrel.Eq{"vendor_id": vendorID}).
			OrderBy("created_at DESC"),
		limit, offset,
	)
	return r.Select(ctx, q)
}
