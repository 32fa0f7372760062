package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/phf/backend/internal/application/catalog"
	"github.com/phf/backend/internal/interfaces/http/router"
)

// ProductHandler exposes the product catalog endpoints
type ProductHandler struct {
	BaseHandler
	service *catalog.ProductService
}

// NewProductHandler creates a product handler
func NewProductHandler(service *catalog.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Routes returns the product route group
func (h *ProductHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("catalog", "/products").
		POST("", h.Create).
		GET("", h.List).
		GET("/:id", h.Get).
		GET("/sku/:sku", h.GetBySKU).
		PUT("/:id", h.Update).
		PUT("/:id/alerts", h.ConfigureAlerts).
		POST("/:id/activate", h.Activate).
		DELETE("/:id", h.Deactivate)
}

// Create registers a new product
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Get returns a product by id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// GetBySKU returns a product by its stock keeping unit
func (h *ProductHandler) GetBySKU(c *gin.Context) {
	product, err := h.service.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List returns a page of products
func (h *ProductHandler) List(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}
	if category := c.Query("category"); category != "" {
		filter.Filters = map[string]interface{}{"category": category}
	}
	activeOnly := c.Query("active_only") == "true"

	page, err := h.service.List(c.Request.Context(), filter, activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, paginatedMeta(page))
}

// Update changes a product's descriptive fields
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req catalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ConfigureAlerts sets a product's low stock threshold and expiry window
func (h *ProductHandler) ConfigureAlerts(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req catalog.ConfigureAlertsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.service.ConfigureAlerts(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Activate returns a product to the sellable catalog
func (h *ProductHandler) Activate(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.service.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Deactivate removes a product from sale without deleting its history
func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}
