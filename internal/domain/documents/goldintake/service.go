package goldintake

import (
	"context"

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

// Request carries the input for recording an intake.
type Request struct {
	// VendorID, when set, must resolve to an existing vendor. When nil
	// for a SELLER intake, the vendor is resolved by party name.
	VendorID *id.ID

	PartyType PartyType
	PartyName string

	Karat int
	Grams types.Money

	DesignFeePerGram  types.Money
	MetalValuePerGram types.Money

	// ContactInfo seeds an implicitly created vendor
	ContactInfo *string
	Notes       *string
}

// Result is the enriched outcome of a recorded intake.
type Result struct {
	Intake *Intake

	// Vendor is the resolved vendor with its post-intake balances,
	// nil for CUSTOMER intakes.
	Vendor *vendor.Vendor

	// ProductID identifies the raw-metal inventory unit materialized
	// for this intake.
	ProductID id.ID
}

// Service validates and persists intake events, driving ledger mutation.
type Service struct {
	repo        Repository
	vendorRepo  vendor.Repository
	productRepo product.Repository
	stockRepo   stockmutation.Repository
	txManager   tx.Manager
	auditor     audit.Recorder
}

// NewService creates a new intake recorder.
func NewService(
	repo Repository,
	vendorRepo vendor.Repository,
	productRepo product.Repository,
	stockRepo stockmutation.Repository,
	txManager tx.Manager,
	auditor audit.Recorder,
) *Service {
	return &Service{
		repo:        repo,
		vendorRepo:  vendorRepo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		txManager:   txManager,
		auditor:     auditor,
	}
}

// Record validates and persists a gold intake. The intake fact, the
// materialized inventory unit and the vendor ledger mutation commit in
// one transaction, so a partially applied intake is never observable.
func (s *Service) Record(ctx context.Context, req Request, recordedBy string) (*Result, error) {
	intake := &Intake{
		BaseDocument:      entity.NewBaseDocument(),
		VendorID:          req.VendorID,
		PartyType:         req.PartyType,
		PartyName:         req.PartyName,
		Karat:             req.Karat,
		Grams:             req.Grams,
		DesignFeePerGram:  req.DesignFeePerGram,
		MetalValuePerGram: req.MetalValuePerGram,
		Notes:             req.Notes,
	}
	intake.CreatedBy = recordedBy

	if err := intake.Validate(ctx); err != nil {
		return nil, err
	}

	intake.TotalDesignFeePaid = types.MulMoney(intake.DesignFeePerGram, intake.Grams)
	intake.TotalMetalValueOwed = types.MulMoney(intake.MetalValuePerGram, intake.Grams)

	result := &Result{Intake: intake}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		v, err := s.resolveVendor(ctx, intake, req.ContactInfo)
		if err != nil {
			return err
		}
		if v != nil {
			intake.VendorID = &v.ID
		}

		if err := s.repo.Create(ctx, intake); err != nil {
			return err
		}

		p := product.NewFromIntake(intake.VendorID, intake.Karat, intake.Grams, intake.TotalMetalValueOwed, intake.CreatedAt)
		if err := s.productRepo.Create(ctx, p); err != nil {
			return err
		}
		result.ProductID = p.ID

		mutation := stockmutation.New(p.ID, 1, stockmutation.ReasonGoldIntake, &intake.ID)
		mutation.CreatedBy = recordedBy
		if err := s.stockRepo.Record(ctx, mutation); err != nil {
			return err
		}

		if intake.OwesVendor() {
			updated, err := s.vendorRepo.ApplyIntakeLiability(ctx, *intake.VendorID, intake.TotalMetalValueOwed)
			if err != nil {
				return err
			}
			v = updated
		}
		result.Vendor = v

		return s.auditor.LogChange(ctx, "gold_intake", intake.ID, audit.ActionIntake, map[string]any{
			"party_type":             string(intake.PartyType),
			"party_name":             intake.PartyName,
			"karat":                  intake.Karat,
			"grams":                  intake.Grams.String(),
			"total_metal_value_owed": intake.TotalMetalValueOwed.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "gold intake recorded",
		"intake_id", intake.ID.String(),
		"party_type", string(intake.PartyType),
		"metal_value_owed", intake.TotalMetalValueOwed.String(),
	)

	return result, nil
}

// resolveVendor resolves or creates the vendor for SELLER intakes.
// CUSTOMER intakes never touch the vendor catalog.
func (s *Service) resolveVendor(ctx context.Context, intake *Intake, contactInfo *string) (*vendor.Vendor, error) {
	if intake.PartyType != PartySeller {
		return nil, nil
	}

	if intake.VendorID != nil {
		v, err := s.vendorRepo.GetByID(ctx, *intake.VendorID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return nil, apperror.NewNotFound("vendor", intake.VendorID.String())
			}
			return nil, err
		}
		return v, nil
	}

	return s.vendorRepo.FindOrCreate(ctx, intake.PartyName, contactInfo)
}

// Get returns an intake by ID.
func (s *Service) Get(ctx context.Context, intakeID id.ID) (*Intake, error) {
	return s.repo.GetByID(ctx, intakeID)
}

// List returns intakes, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Intake, error) {
	return s.repo.List(ctx, limit, offset)
}

// ListByVendor returns a vendor's intakes, newest first.
func (s *Service) ListByVendor(ctx context.Context, vendorID id.ID, limit, offset int) ([]*Intake, error) {
	return s.repo.ListByVendor(ctx, vendorID, limit, offset)
}
