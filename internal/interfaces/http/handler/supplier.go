package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/phf/backend/internal/application/partner"
	"github.com/phf/backend/internal/interfaces/http/router"
)

// SupplierHandler exposes the supplier directory endpoints
type SupplierHandler struct {
	BaseHandler
	service *partner.SupplierService
}

// NewSupplierHandler creates a supplier handler
func NewSupplierHandler(service *partner.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

// Routes returns the supplier route group
func (h *SupplierHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("partner", "/suppliers").
		POST("", h.Create).
		GET("", h.List).
		GET("/:id", h.Get).
		PUT("/:id", h.Update).
		POST("/:id/activate", h.Activate).
		DELETE("/:id", h.Deactivate)
}

// Create registers a new supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req partner.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// Get returns a supplier by id
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	supplier, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// List returns a page of suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}
	activeOnly := c.Query("active_only") == "true"

	page, err := h.service.List(c.Request.Context(), filter, activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, paginatedMeta(page))
}

// Update changes a supplier's contact details
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req partner.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Activate restores a supplier for new purchase orders
func (h *SupplierHandler) Activate(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	supplier, err := h.service.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Deactivate blocks a supplier from new purchase orders
func (h *SupplierHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	supplier, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}
