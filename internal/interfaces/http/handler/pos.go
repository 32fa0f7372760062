package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/phf/backend/internal/application/sales"
	"github.com/phf/backend/internal/interfaces/http/router"
)

// POSHandler exposes the checkout-screen endpoints: what can be sold
// right now, and committing a sale.
type POSHandler struct {
	BaseHandler
	service *sales.SaleService
}

// NewPOSHandler creates a point-of-sale handler
func NewPOSHandler(service *sales.SaleService) *POSHandler {
	return &POSHandler{service: service}
}

// Routes returns the point-of-sale route group
func (h *POSHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("pos", "/pos").
		GET("/products", h.SellableProducts).
		POST("/sales", h.CreateSale)
}

// SellableProducts lists active products with available stock and the
// price the next sale would charge
func (h *POSHandler) SellableProducts(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	products, err := h.service.SellableProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// CreateSale commits a checkout from the sales counter
func (h *POSHandler) CreateSale(c *gin.Context) {
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
