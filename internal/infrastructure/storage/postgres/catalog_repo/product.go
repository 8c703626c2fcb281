package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/domain/catalogs/product"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/storage/postgres"
)

// Compile-time check that ProductRepo implements product.Repository.
var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo is the PostgreSQL product catalog store.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"products",
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// GetBySKU retrieves a product by its unique SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*product.Product, error) {
	return r.FindOne(ctx, squirrel.Eq{"sku": sku})
}

// List returns products ordered by name ascending.
func (r *ProductRepo) List(ctx context.Context, activeOnly bool) ([]*product.Product, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[product.Product]()...).
		From("products").
		OrderBy("name ASC")

	if activeOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}

	return r.Select(ctx, q)
}

// AdjustStock changes quantity_in_stock by delta. The caller holds the
// row lock from a preceding GetForUpdate; the CHECK constraint on the
// column is the last line of defense against going negative.
func (r *ProductRepo) AdjustStock(ctx context.Context, productID id.ID, delta int) error {
	q := r.Builder().
		Update("products").
		Set("quantity_in_stock", squirrel.Expr("quantity_in_stock + ?", delta)).
		Set("updated_at", squirrel.Expr("now()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}

	return nil
}
