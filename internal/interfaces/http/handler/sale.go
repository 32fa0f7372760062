package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/phf/backend/internal/application/sales"
	"github.com/phf/backend/internal/interfaces/http/router"
)

// SaleHandler exposes the point-of-sale endpoints
type SaleHandler struct {
	BaseHandler
	service *sales.SaleService
}

// NewSaleHandler creates a sale handler
func NewSaleHandler(service *sales.SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

// Routes returns the sales route group
func (h *SaleHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("sales", "/sales").
		POST("", h.Create).
		GET("", h.List).
		GET("/:id", h.Get).
		GET("/receipt/:number", h.GetByReceipt)
}

// Create commits a checkout. Either every line is allocated and
// deducted or the whole sale is rejected.
func (h *SaleHandler) Create(c *gin.Context) {
	var req sales.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	req.CashierID = h.getOperatorID(c)

	sale, err := h.service.CreateSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// Get returns a sale by id
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// GetByReceipt returns a sale by its receipt number
func (h *SaleHandler) GetByReceipt(c *gin.Context) {
	sale, err := h.service.GetByReceiptNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List returns a page of sales, optionally bounded by sold_at time
func (h *SaleHandler) List(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	from, ok := h.parseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.parseTimeQuery(c, "to")
	if !ok {
		return
	}

	page, err := h.service.List(c.Request.Context(), filter, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, paginatedMeta(page))
}

func (h *SaleHandler) parseTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		h.BadRequest(c, name+" must be RFC 3339 formatted")
		return nil, false
	}
	return &t, true
}
