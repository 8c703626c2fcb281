package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/domain/catalogs/vendor"
	"github.com/mhammadjaber00/almasasuite/internal/domain/documents/goldintake"
	"github.com/mhammadjaber00/almasasuite/internal/domain/documents/vendorpayment"
	"github.com/mhammadjaber00/almasasuite/internal/domain/reports"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/http/v1/dto"
)

// GoldIntakeHandler serves the gold intake and vendor ledger endpoints.
type GoldIntakeHandler struct {
	*BaseHandler
	intakes  *goldintake.Service
	payments *vendorpayment.Service
	vendors  *vendor.Service
	reports  *reports.Service
}

// NewGoldIntakeHandler creates a new gold intake handler.
func NewGoldIntakeHandler(
	intakes *goldintake.Service,
	payments *vendorpayment.Service,
	vendors *vendor.Service,
	reportsSvc *reports.Service,
) *GoldIntakeHandler {
	return &GoldIntakeHandler{
		BaseHandler: NewBaseHandler(),
		intakes:     intakes,
		payments:    payments,
		vendors:     vendors,
		reports:     reportsSvc,
	}
}

// ListVendors handles GET /gold-intake/vendors.
func (h *GoldIntakeHandler) ListVendors(c *gin.Context) {
	activeOnly := c.DefaultQuery("activeOnly", "true") == "true"

	vendors, err := h.vendors.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromVendors(vendors))
}

// GetVendor handles GET /gold-intake/vendors/:id.
func (h *GoldIntakeHandler) GetVendor(c *gin.Context) {
	vendorID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	v, err := h.vendors.Get(c.Request.Context(), vendorID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromVendor(v))
}

// RecordIntake handles POST /gold-intake/intakes.
func (h *GoldIntakeHandler) RecordIntake(c *gin.Context) {
	var req dto.GoldIntakeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	domainReq := goldintake.Request{
		PartyType:         goldintake.PartyType(req.PartyType),
		PartyName:         req.PartyName,
		Karat:             req.Karat,
		Grams:             req.Grams,
		DesignFeePerGram:  req.DesignFeePerGram,
		MetalValuePerGram: req.MetalValuePerGram,
		ContactInfo:       req.ContactInfo,
		Notes:             req.Notes,
	}
	if req.VendorID != nil && *req.VendorID != "" {
		vendorID, err := id.Parse(*req.VendorID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid vendor id").WithDetail("field", "vendorId"))
			return
		}
		domainReq.VendorID = &vendorID
	}

	result, err := h.intakes.Record(c.Request.Context(), domainReq, h.CallerName(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromIntakeResult(result))
}

// ListIntakes handles GET /gold-intake/intakes.
func (h *GoldIntakeHandler) ListIntakes(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 100)
	offset := h.ParseIntQuery(c, "offset", 0)

	var (
		intakes []*goldintake.Intake
		err     error
	)
	if vendorParam := c.Query("vendorId"); vendorParam != "" {
		vendorID, parseErr := id.Parse(vendorParam)
		if parseErr != nil {
			h.Error(c, apperror.NewValidation("invalid vendor id").WithDetail("field", "vendorId"))
			return
		}
		intakes, err = h.intakes.ListByVendor(c.Request.Context(), vendorID, limit, offset)
	} else {
		intakes, err = h.intakes.List(c.Request.Context(), limit, offset)
	}
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromIntakes(intakes))
}

// RecordPayment handles POST /gold-intake/payments.
func (h *GoldIntakeHandler) RecordPayment(c *gin.Context) {
	var req dto.VendorPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	vendorID, err := id.Parse(req.VendorID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid vendor id").WithDetail("field", "vendorId"))
		return
	}

	domainReq := vendorpayment.Request{
		VendorID:         vendorID,
		Amount:           req.Amount,
		PaymentMethod:    vendorpayment.Method(req.PaymentMethod),
		PaymentReference: req.PaymentReference,
		Notes:            req.Notes,
	}
	if req.PaidAt != nil {
		domainReq.PaidAt = *req.PaidAt
	}

	result, err := h.payments.Record(c.Request.Context(), domainReq, h.CallerName(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromPaymentResult(result))
}

// ListPayments handles GET /gold-intake/payments?vendorId=.
func (h *GoldIntakeHandler) ListPayments(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 100)
	offset := h.ParseIntQuery(c, "offset", 0)

	var vendorID *id.ID
	if vendorParam := c.Query("vendorId"); vendorParam != "" {
		parsed, err := id.Parse(vendorParam)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid vendor id").WithDetail("field", "vendorId"))
			return
		}
		vendorID = &parsed
	}

	payments, err := h.payments.List(c.Request.Context(), vendorID, limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPayments(payments))
}

// LiabilityReport handles GET /gold-intake/liability-report.
func (h *GoldIntakeHandler) LiabilityReport(c *gin.Context) {
	report, err := h.reports.LiabilityReport(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// ReduceLiability handles POST /gold-intake/reduce-liability.
func (h *GoldIntakeHandler) ReduceLiability(c *gin.Context) {
	var req dto.ReduceLiabilityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	vendorID, err := id.Parse(req.VendorID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid vendor id").WithDetail("field", "vendorId"))
		return
	}

	writtenOff, err := h.vendors.ReduceLiabilityForSale(c.Request.Context(), vendorID, req.MetalValueSold)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ReduceLiabilityResponse{
		VendorID:   req.VendorID,
		Requested:  req.MetalValueSold,
		WrittenOff: writtenOff,
	})
}
