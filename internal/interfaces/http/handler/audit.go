package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/phf/backend/internal/application/audit"
	"github.com/phf/backend/internal/interfaces/http/router"
)

// AuditHandler exposes the audit trail endpoints
type AuditHandler struct {
	BaseHandler
	service *audit.AuditService
}

// NewAuditHandler creates an audit handler
func NewAuditHandler(service *audit.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// Routes returns the audit route group
func (h *AuditHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("audit", "/audit").
		GET("", h.List).
		GET("/:resource_type/:id", h.ListByResource)
}

// List returns a page of audit entries
func (h *AuditHandler) List(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}
	filters := map[string]interface{}{}
	if action := c.Query("action"); action != "" {
		filters["action"] = action
	}
	if resourceType := c.Query("resource_type"); resourceType != "" {
		filters["resource_type"] = resourceType
	}
	if len(filters) > 0 {
		filter.Filters = filters
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, paginatedMeta(page))
}

// ListByResource returns the audit history of a single resource
func (h *AuditHandler) ListByResource(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	entries, err := h.service.ListByResource(c.Request.Context(), c.Param("resource_type"), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
