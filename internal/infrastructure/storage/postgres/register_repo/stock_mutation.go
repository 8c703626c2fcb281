// Package register_repo provides PostgreSQL implementations for the
// append-only registers.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/domain/registers/stockmutation"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/storage/postgres"
)

// Compile-time check that StockMutationRepo implements stockmutation.Repository.
var _ stockmutation.Repository = (*StockMutationRepo)(nil)

var mutationCols = postgres.ExtractDBColumns[stockmutation.Mutation]()

// StockMutationRepo is the PostgreSQL store for the stock movement journal.
type StockMutationRepo struct {
	txManager *postgres.TxManager
}

// NewStockMutationRepo creates a new stock mutation repository.
func NewStockMutationRepo(txManager *postgres.TxManager) *StockMutationRepo {
	return &StockMutationRepo{txManager: txManager}
}

func (r *StockMutationRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Record appends a mutation to the journal.
func (r *StockMutationRepo) Record(ctx context.Context, m *stockmutation.Mutation) error {
	if err := m.Validate(ctx); err != nil {
		return err
	}

	data := postgres.StructToMap(m)
	filtered := make(map[string]any, len(mutationCols))
	for _, col := range mutationCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	q := r.builder().
		Insert("stock_mutations").
		SetMap(filtered)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert stock mutation: %w", err)
	}

	return nil
}

// ListByProduct returns a product's movements, newest first.
func (r *StockMutationRepo) ListByProduct(ctx context.Context, productID id.ID, limit int) ([]*stockmutation.Mutation, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	q := r.builder().
		Select(mutationCols...).
		From("stock_mutations").
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	return r.selectMutations(ctx, q)
}

// ListByDocument returns the movements caused by one document.
func (r *StockMutationRepo) ListByDocument(ctx context.Context, documentID id.ID) ([]*stockmutation.Mutation, error) {
	q := r.builder().
		Select(mutationCols...).
		From("stock_mutations").
		Where(squirrel.Eq{"document_id": documentID}).
		OrderBy("created_at ASC")

	return r.selectMutations(ctx, q)
}

func (r *StockMutationRepo) selectMutations(ctx context.Context, q squirrel.SelectBuilder) ([]*stockmutation.Mutation, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var mutations []*stockmutation.Mutation
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &mutations, sql, args...); err != nil {
		return nil, fmt.Errorf("select stock mutations: %w", err)
	}

	return mutations, nil
}
