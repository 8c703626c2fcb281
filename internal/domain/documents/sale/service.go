package sale

import (
	"context"
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/entity"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/core/tx"
	"github.com/mhammadjaber00/almasasuite/internal/core/types"
	"github.com/mhammadjaber00/almasasuite/internal/domain/audit"
	"github.com/mhammadjaber00/almasasuite/internal/domain/catalogs/product"
	"github.com/mhammadjaber00/almasasuite/internal/domain/catalogs/vendor"
	"github.com/mhammadjaber00/almasasuite/internal/domain/registers/stockmutation"
	"github.com/mhammadjaber00/almasasuite/pkg/logger"
)

// ItemRequest is one requested sale line.
type ItemRequest struct {
	ProductID id.ID
	Quantity  int
}

// Request carries the input for creating a sale.
type Request struct {
	Items         []ItemRequest
	PaymentMethod PaymentMethod
}

// Service handles checkout and sale deletion.
type Service struct {
	repo        Repository
	productRepo product.Repository
	stockRepo   stockmutation.Repository
	vendors     *vendor.Service
	txManager   tx.Manager
	auditor     audit.Recorder
}

// NewService creates a new sale service.
func NewService(
	repo Repository,
	productRepo product.Repository,
	stockRepo stockmutation.Repository,
	vendors *vendor.Service,
	txManager tx.Manager,
	auditor audit.Recorder,
) *Service {
	return &Service{
		repo:        repo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		vendors:     vendors,
		txManager:   txManager,
		auditor:     auditor,
	}
}

// Create checks stock under product row locks, decrements quantities,
// computes profit and reduces vendor liability for vendor-sourced items.
// Everything commits in one transaction.
func (s *Service) Create(ctx context.Context, req Request, soldBy string) (*Sale, error) {
	doc := &Sale{
		BaseDocument:  entity.NewBaseDocument(),
		PaymentMethod: req.PaymentMethod,
		TotalAmount:   types.ZeroMoney(),
		TotalCost:     types.ZeroMoney(),
		Profit:        types.ZeroMoney(),
	}
	doc.CreatedBy = soldBy
	for _, item := range req.Items {
		doc.Items = append(doc.Items, Item{
			ID:        id.New(),
			SaleID:    doc.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// vendorValue accumulates purchase value per vendor across lines
		vendorValue := map[id.ID]types.Money{}

		for idx := range doc.Items {
			item := &doc.Items[idx]

			p, err := s.productRepo.GetForUpdate(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if !p.IsActive {
				return apperror.NewValidation("product is not active").
					WithDetail("product_id", p.ID.String())
			}
			if p.QuantityInStock < item.Quantity {
				return apperror.NewInsufficientStock(p.ID.String(), item.Quantity, p.QuantityInStock)
			}

			item.UnitPrice = p.SellingPrice
			item.UnitCost = p.PurchasePrice
			item.LineTotal = types.MulMoney(p.SellingPrice, types.NewMoneyFromInt(int64(item.Quantity)))

			doc.TotalAmount = doc.TotalAmount.Add(item.LineTotal)
			lineCost := types.MulMoney(p.PurchasePrice, types.NewMoneyFromInt(int64(item.Quantity)))
			doc.TotalCost = doc.TotalCost.Add(lineCost)

			if err := s.productRepo.AdjustStock(ctx, p.ID, -item.Quantity); err != nil {
				return err
			}

			mutation := stockmutation.New(p.ID, -item.Quantity, stockmutation.ReasonSale, &doc.ID)
			mutation.CreatedBy = soldBy
			if err := s.stockRepo.Record(ctx, mutation); err != nil {
				return err
			}

			if p.VendorID != nil && lineCost.IsPositive() {
				vendorValue[*p.VendorID] = vendorValue[*p.VendorID].Add(lineCost)
			}
		}

		doc.Profit = doc.TotalAmount.Sub(doc.TotalCost)

		if err := s.repo.Create(ctx, doc); err != nil {
			return err
		}

		for vendorID, value := range vendorValue {
			writtenOff, err := s.vendors.ReduceLiabilityForSale(ctx, vendorID, value)
			if err != nil {
				// A vanished vendor must not block the checkout; the
				// write-off is a side effect, not the sale itself.
				if apperror.IsNotFound(err) {
					logger.Warn(ctx, "liability reduction skipped, vendor not found",
						"vendor_id", vendorID.String())
					continue
				}
				return err
			}
			if writtenOff.LessThan(value) {
				logger.Info(ctx, "liability write-off truncated at zero balance",
					"vendor_id", vendorID.String(),
					"requested", value.String(),
					"written_off", writtenOff.String(),
				)
			}
		}

		return s.auditor.LogChange(ctx, "sale", doc.ID, audit.ActionSale, map[string]any{
			"total_amount": doc.TotalAmount.String(),
			"profit":       doc.Profit.String(),
			"items":        len(doc.Items),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale created",
		"sale_id", doc.ID.String(),
		"total", doc.TotalAmount.String(),
		"items", len(doc.Items),
	)

	return doc, nil
}

// Get returns a sale by ID with its items.
func (s *Service) Get(ctx context.Context, saleID id.ID) (*Sale, error) {
	return s.repo.GetByID(ctx, saleID)
}

// List returns non-deleted sales, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Sale, error) {
	return s.repo.List(ctx, limit, offset)
}

// Delete soft-deletes a sale and refunds its stock. Vendor liability is
// not restored; write-offs are not reversible bookkeeping.
func (s *Service) Delete(ctx context.Context, saleID id.ID, deletedBy string) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if doc.IsDeleted {
			return apperror.NewConflict("sale already deleted").
				WithDetail("sale_id", saleID.String())
		}

		for _, item := range doc.Items {
			if _, err := s.productRepo.GetForUpdate(ctx, item.ProductID); err != nil {
				return err
			}
			if err := s.productRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}

			mutation := stockmutation.New(item.ProductID, item.Quantity, stockmutation.ReasonSaleRefund, &doc.ID)
			mutation.CreatedBy = deletedBy
			if err := s.stockRepo.Record(ctx, mutation); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		doc.IsDeleted = true
		doc.DeletedAt = &now
		doc.DeletedBy = &deletedBy
		if err := s.repo.MarkDeleted(ctx, doc); err != nil {
			return err
		}

		return s.auditor.LogChange(ctx, "sale", doc.ID, audit.ActionRefund, map[string]any{
			"deleted_by": deletedBy,
		})
	})
}
