package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/phf/backend/internal/application/procurement"
	"github.com/phf/backend/internal/interfaces/http/router"
)

// PurchaseOrderHandler exposes the purchase order lifecycle endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	service *procurement.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a purchase order handler
func NewPurchaseOrderHandler(service *procurement.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{service: service}
}

// Routes returns the purchase order route group
func (h *PurchaseOrderHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("procurement", "/purchase-orders").
		POST("", h.Create).
		GET("", h.List).
		GET("/:id", h.Get).
		PUT("/:id/lines", h.UpdateLines).
		POST("/:id/send", h.Send).
		POST("/:id/receive", h.Receive).
		POST("/:id/cancel", h.Cancel).
		DELETE("/:id", h.Delete)
}

// Create opens a draft order against a supplier
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req procurement.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Get returns an order with its lines
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List returns a page of orders, optionally restricted to one status
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	page, err := h.service.List(c.Request.Context(), filter, c.Query("status"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, paginatedMeta(page))
}

// UpdateLines replaces a draft order's lines
func (h *PurchaseOrderHandler) UpdateLines(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req procurement.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.UpdateLines(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Send transitions a draft order to ORDERED
func (h *PurchaseOrderHandler) Send(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	req := procurement.SendPurchaseOrderRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	order, err := h.service.Send(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Receive marks an order received and materializes its lines into
// ledger batches
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	req := procurement.ReceivePurchaseOrderRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	result, err := h.service.Receive(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Cancel voids an order that has not been received
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete removes a draft order
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
