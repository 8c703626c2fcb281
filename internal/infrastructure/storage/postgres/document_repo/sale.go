package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/domain/documents/sale"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/storage/postgres"
)

// Compile-time check that SaleRepo implements sale.Repository.
var _ sale.Repository = (*SaleRepo)(nil)

var saleItemCols = postgres.ExtractDBColumns[sale.Item]()

// SaleRepo is the PostgreSQL store for sale documents. Headers live in
// sales, lines in sale_items.
type SaleRepo struct {
	*BaseDocumentRepo[*sale.Sale]
}

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(txManager *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			"sales",
			postgres.ExtractDBColumns[sale.Sale](),
			func() *sale.Sale { return &sale.Sale{} },
		),
	}
}

// Create inserts the sale header and its items.
func (r *SaleRepo) Create(ctx context.Context, s *sale.Sale) error {
	if err := r.BaseDocumentRepo.Create(ctx, s); err != nil {
		return err
	}

	q := r.Builder().Insert("sale_items").Columns(saleItemCols...)
	for _, item := range s.Items {
		data := postgres.StructToMap(item)
		vals := make([]any, 0, len(saleItemCols))
		for _, col := range saleItemCols {
			vals = append(vals, data[col])
		}
		q = q.Values(vals...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert items: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale items: %w", err)
	}

	return nil
}

// GetByID returns the sale with its items loaded.
func (r *SaleRepo) GetByID(ctx context.Context, saleID id.ID) (*sale.Sale, error) {
	s, err := r.BaseDocumentRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*sale.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// GetForUpdate locks the sale header row and loads its items.
func (r *SaleRepo) GetForUpdate(ctx context.Context, saleID id.ID) (*sale.Sale, error) {
	s, err := r.BaseDocumentRepo.GetForUpdate(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*sale.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// List returns non-deleted sales, newest first, with items loaded.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*sale.Sale, error) {
	q := Paginate(
		r.Builder().
			Select(postgres.ExtractDBColumns[sale.Sale]()...).
			From("sales").
			Where(squirrel.Eq{"is_deleted": false}).
			OrderBy("created_at DESC"),
		limit, offset,
	)

	sales, err := r.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// MarkDeleted soft-deletes the sale header.
func (r *SaleRepo) MarkDeleted(ctx context.Context, s *sale.Sale) error {
	q := r.Builder().
		Update("sales").
		Set("is_deleted", s.IsDeleted).
		Set("deleted_at", s.DeletedAt).
		Set("deleted_by", s.DeletedBy).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": s.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("mark sale deleted: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("sale", s.ID.String())
	}

	return nil
}

// loadItems fetches lines for the given sales in one query.
func (r *SaleRepo) loadItems(ctx context.Context, sales []*sale.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	ids := make([]id.ID, 0, len(sales))
	byID := make(map[id.ID]*sale.Sale, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}

	q := r.Builder().
		Select(saleItemCols...).
		From("sale_items").
		Where(squirrel.Eq{"sale_id": ids}).
		OrderBy("sale_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	var items []sale.Item
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return fmt.Errorf("select sale items: %w", err)
	}

	for _, item := range items {
		if s, ok := byID[item.SaleID]; ok {
			s.Items = append(s.Items, item)
		}
	}

	return nil
}
