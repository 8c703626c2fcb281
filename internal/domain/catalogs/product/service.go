package product

import (
	"context"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/core/tx"
	"github.com/mhammadjaber00/almasasuite/internal/domain/registers/stockmutation"
)

// Service provides business logic for the product catalog.
type Service struct {
	repo      Repository
	stockRepo stockmutation.Repository
	txManager tx.Manager
}

// NewService creates a new product service.
func NewService(repo Repository, stockRepo stockmutation.Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, stockRepo: stockRepo, txManager: txManager}
}

// Create validates and persists a new product.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetBySKU(ctx, p.SKU)
		if err != nil && !apperror.IsNotFound(err) {
			return err
		}
		if existing != nil {
			return apperror.NewDuplicate("product", "sku", p.SKU)
		}
		return s.repo.Create(ctx, p)
	})
}

// Get returns a product by ID.
func (s *Service) Get(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// List returns products ordered by name.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*Product, error) {
	return s.repo.List(ctx, activeOnly)
}

// Update validates and persists product changes.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, p)
	})
}

// AdjustStock applies a manual stock correction and journals it as a
// MANUAL_ADJUSTMENT mutation. Negative deltas may not take the quantity
// below zero.
func (s *Service) AdjustStock(ctx context.Context, productID id.ID, delta int, adjustedBy string) (*Product, error) {
	if delta == 0 {
		return nil, apperror.NewValidation("delta cannot be zero").
			WithDetail("field", "delta")
	}

	var result *Product
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if delta < 0 && p.QuantityInStock+delta < 0 {
			return apperror.NewInsufficientStock(p.ID.String(), -delta, p.QuantityInStock)
		}

		if err := s.repo.AdjustStock(ctx, p.ID, delta); err != nil {
			return err
		}

		mutation := stockmutation.New(p.ID, delta, stockmutation.ReasonManual, nil)
		mutation.CreatedBy = adjustedBy
		if err := s.stockRepo.Record(ctx, mutation); err != nil {
			return err
		}

		p.QuantityInStock += delta
		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// StockHistory returns a product's movement journal, newest first.
func (s *Service) StockHistory(ctx context.Context, productID id.ID, limit int) ([]*stockmutation.Mutation, error) {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.stockRepo.ListByProduct(ctx, productID, limit)
}

// Deactivate soft-deletes a product.
func (s *Service) Deactivate(ctx context.Context, productID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if !p.IsActive {
			return nil
		}
		p.Deactivate()
		return s.repo.Update(ctx, p)
	})
}
