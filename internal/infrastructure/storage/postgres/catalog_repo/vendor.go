package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/core/types"
	"github.com/mhammadjaber00/almasasuite/internal/domain/catalogs/vendor"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/storage/postgres"
)

// Compile-time check that VendorRepo implements vendor.Repository.
var _ vendor.Repository = (*VendorRepo)(nil)

// VendorRepo is the PostgreSQL vendor ledger store.
//
// The vendors table carries a partial unique index on (name) WHERE
// is_active, which FindOrCreate relies on to close the concurrent
// create race.
type VendorRepo struct {
	*BaseCatalogRepo[*vendor.Vendor]
}

// NewVendorRepo creates a new vendor repository.
func NewVendorRepo(txManager *postgres.TxManager) *VendorRepo {
	return &VendorRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"vendors",
			postgres.ExtractDBColumns[vendor.Vendor](),
			func() *vendor.Vendor { return &vendor.Vendor{} },
		),
	}
}

// FindOrCreate looks up an active vendor by exact name, creating one if
// absent. Insert-on-conflict-then-reselect keeps two concurrent
// first-time intakes from the same seller on a single row.
func (r *VendorRepo) FindOrCreate(ctx context.Context, name string, contactInfo *string) (*vendor.Vendor, error) {
	existing, err := r.findActiveByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	v := vendor.New(name, contactInfo)
	data := postgres.StructToMap(v)

	q := r.Builder().
		Insert("vendors").
		SetMap(data).
		Suffix("ON CONFLICT (name) WHERE is_active DO NOTHING")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("insert vendor: %w", err)
	}

	// Reselect covers both the fresh insert and the row a concurrent
	// transaction won the conflict with.
	return r.findActiveByName(ctx, name)
}

func (r *VendorRepo) findActiveByName(ctx context.Context, name string) (*vendor.Vendor, error) {
	return r.FindOne(ctx, squirrel.Eq{"name": name, "is_active": true})
}

// List returns vendors ordered by name ascending.
func (r *VendorRepo) List(ctx context.Context, activeOnly bool) ([]*vendor.Vendor, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[vendor.Vendor]()...).
		From("vendors").
		OrderBy("name ASC")

	if activeOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}

	return r.Select(ctx, q)
}

// ApplyIntakeLiability atomically adds metalValueOwed to the liability
// balance and the cumulative intake value.
func (r *VendorRepo) ApplyIntakeLiability(ctx context.Context, vendorID id.ID, metalValueOwed types.Money) (*vendor.Vendor, error) {
	v, err := r.GetForUpdate(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	v.RecordIntakeLiability(metalValueOwed)
	v.Touch()

	if err := r.updateBalances(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// ApplyPayment atomically moves amount from liability balance to total
// paid. The overpay check reads the balance under the row lock.
func (r *VendorRepo) ApplyPayment(ctx context.Context, vendorID id.ID, amount types.Money) (*vendor.Vendor, error) {
	v, err := r.GetForUpdate(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if err := v.RecordPayment(amount); err != nil {
		return nil, err
	}
	v.Touch()

	if err := r.updateBalances(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// ReduceForSale applies a floor-at-zero write-off and returns the amount
// actually written off.
func (r *VendorRepo) ReduceForSale(ctx context.Context, vendorID id.ID, metalValueSold types.Money) (*vendor.Vendor, types.Money, error) {
	v, err := r.GetForUpdate(ctx, vendorID)
	if err != nil {
		return nil, types.ZeroMoney(), err
	}

	writtenOff := v.WriteOffForSale(metalValueSold)
	if writtenOff.IsPositive() {
		v.Touch()

		if err := r.updateBalances(ctx, v); err != nil {
			return nil, types.ZeroMoney(), err
		}
	}

	return v, writtenOff, nil
}

// updateBalances writes the ledger columns of a row already locked by
// GetForUpdate. Version still advances so readers can detect the change.
func (r *VendorRepo) updateBalances(ctx context.Context, v *vendor.Vendor) error {
	q := r.Builder().
		Update("vendors").
		Set("total_liability_balance", v.TotalLiabilityBalance).
		Set("total_intake_value", v.TotalIntakeValue).
		Set("total_paid", v.TotalPaid).
		Set("updated_at", v.UpdatedAt).
		Set("version", v.Version).
		Where(squirrel.Eq{"id": v.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update vendor balances: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("vendor", v.ID.String())
	}

	return nil
}
