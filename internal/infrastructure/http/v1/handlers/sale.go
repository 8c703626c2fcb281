package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/domain/documents/sale"
	"github.com/mhammadjaber00/almasasuite/internal/domain/reports"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/http/v1/dto"
)

// SaleHandler serves the checkout endpoints.
type SaleHandler struct {
	*BaseHandler
	sales   *sale.Service
	reports *reports.Service
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(sales *sale.Service, reportsSvc *reports.Service) *SaleHandler {
	return &SaleHandler{
		BaseHandler: NewBaseHandler(),
		sales:       sales,
		reports:     reportsSvc,
	}
}

// Create handles POST /sales.
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.SaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	domainReq := sale.Request{
		PaymentMethod: sale.PaymentMethod(req.PaymentMethod),
	}
	for _, item := range req.Items {
		productID, err := id.Parse(item.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid product id").WithDetail("field", "items"))
			return
		}
		domainReq.Items = append(domainReq.Items, sale.ItemRequest{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	s, err := h.sales.Create(c.Request.Context(), domainReq, h.CallerName(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromSale(s))
}

// Get handles GET /sales/:id.
func (h *SaleHandler) Get(c *gin.Context) {
	saleID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	s, err := h.sales.Get(c.Request.Context(), saleID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSale(s))
}

// List handles GET /sales.
func (h *SaleHandler) List(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 100)
	offset := h.ParseIntQuery(c, "offset", 0)

	sales, err := h.sales.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSales(sales))
}

// Delete handles DELETE /sales/:id (soft delete with stock refund).
func (h *SaleHandler) Delete(c *gin.Context) {
	saleID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.sales.Delete(c.Request.Context(), saleID, h.CallerName(c)); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Summary handles GET /sales/summary?from=&to=.
func (h *SaleHandler) Summary(c *gin.Context) {
	now := time.Now().UTC()
	from := now.Truncate(24 * time.Hour)
	to := from.Add(24 * time.Hour)

	if fromParam := c.Query("from"); fromParam != "" {
		parsed, err := time.Parse(time.RFC3339, fromParam)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid from timestamp").WithDetail("field", "from"))
			return
		}
		from = parsed
	}
	if toParam := c.Query("to"); toParam != "" {
		parsed, err := time.Parse(time.RFC3339, toParam)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid to timestamp").WithDetail("field", "to"))
			return
		}
		to = parsed
	}

	summary, err := h.reports.SalesSummary(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, summary)
}
