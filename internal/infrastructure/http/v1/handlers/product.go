package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mhammadjaber00/almasasuite/internal/domain/catalogs/product"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the product catalog endpoints.
type ProductHandler struct {
	*BaseHandler
	products *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products *product.Service) *ProductHandler {
	return &ProductHandler{
		BaseHandler: NewBaseHandler(),
		products:    products,
	}
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := product.New(req.SKU, req.Name, product.Type(req.Type))
	p.Karat = req.Karat
	p.WeightGrams = req.WeightGrams
	p.PurchasePrice = req.PurchasePrice
	p.SellingPrice = req.SellingPrice
	p.QuantityInStock = req.QuantityInStock

	if err := h.products.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromProduct(p))
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	p, err := h.products.Get(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(p))
}

// List handles GET /products.
func (h *ProductHandler) List(c *gin.Context) {
	activeOnly := c.DefaultQuery("activeOnly", "true") == "true"

	products, err := h.products.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProducts(products))
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.products.Get(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	p.SKU = req.SKU
	p.Name = req.Name
	p.Type = product.Type(req.Type)
	p.Karat = req.Karat
	p.WeightGrams = req.WeightGrams
	p.PurchasePrice = req.PurchasePrice
	p.SellingPrice = req.SellingPrice
	p.QuantityInStock = req.QuantityInStock
	p.Touch()

	if err := h.products.Update(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(p))
}

// AdjustStock handles POST /products/:id/stock.
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.products.AdjustStock(c.Request.Context(), productID, req.Delta, h.CallerName(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(p))
}

// StockHistory handles GET /products/:id/stock.
func (h *ProductHandler) StockHistory(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	limit := h.ParseIntQuery(c, "limit", 100)

	mutations, err := h.products.StockHistory(c.Request.Context(), productID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromMutations(mutations))
}

// Delete handles DELETE /products/:id (soft delete).
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.products.Deactivate(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
