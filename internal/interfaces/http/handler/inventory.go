package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/phf/backend/internal/application/inventory"
	"github.com/phf/backend/internal/interfaces/http/router"
)

// InventoryHandler exposes the batch ledger, adjustment and alert endpoints
type InventoryHandler struct {
	BaseHandler
	ledger *inventory.LedgerService
	alerts *inventory.AlertService
}

// NewInventoryHandler creates an inventory handler
func NewInventoryHandler(ledger *inventory.LedgerService, alerts *inventory.AlertService) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, alerts: alerts}
}

// Routes returns the inventory route group
func (h *InventoryHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("inventory", "/inventory").
		POST("/batches", h.RecordBatch).
		GET("/batches/:id", h.GetBatch).
		GET("/batches/:id/adjustments", h.ListAdjustments).
		POST("/adjustments", h.Adjust).
		GET("/products/:id/batches", h.ListBatches).
		GET("/products/:id/stock", h.StockSummary).
		GET("/alerts/low-stock", h.LowStockAlerts).
		GET("/alerts/near-expiry", h.NearExpiryAlerts)
}

// RecordBatch enters a batch into the ledger outside the purchase flow
func (h *InventoryHandler) RecordBatch(c *gin.Context) {
	var req inventory.RecordBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.PerformedBy = h.getOperatorID(c)

	batch, err := h.ledger.RecordBatch(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, batch)
}

// GetBatch returns a single ledger batch
func (h *InventoryHandler) GetBatch(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	batch, err := h.ledger.GetBatch(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// ListBatches returns a product's batches. With available=true only
// sellable batches are returned, in the order a sale would draw them.
func (h *InventoryHandler) ListBatches(c *gin.Context) {
	productID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var (
		batches []*inventory.BatchResponse
		err     error
	)
	if c.Query("available") == "true" {
		batches, err = h.ledger.AvailableBatches(c.Request.Context(), productID)
	} else {
		batches, err = h.ledger.AllBatches(c.Request.Context(), productID)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// StockSummary returns a product's sellable quantity across batches
func (h *InventoryHandler) StockSummary(c *gin.Context) {
	productID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.ledger.StockSummary(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Adjust applies a manual correction to a batch's balance
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req inventory.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.PerformedBy = h.getOperatorID(c)

	adjustment, err := h.ledger.Adjust(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, adjustment)
}

// ListAdjustments returns a batch's adjustment history
func (h *InventoryHandler) ListAdjustments(c *gin.Context) {
	batchID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}
	if adjType := c.Query("type"); adjType != "" {
		filter.Filters = map[string]interface{}{"type": adjType}
	}

	adjustments, err := h.ledger.ListAdjustments(c.Request.Context(), batchID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, adjustments)
}

// LowStockAlerts evaluates products whose sellable stock sits at or
// below their configured threshold
func (h *InventoryHandler) LowStockAlerts(c *gin.Context) {
	alerts, err := h.alerts.EvaluateLowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alerts)
}

// NearExpiryAlerts evaluates batches expiring within their product's window
func (h *InventoryHandler) NearExpiryAlerts(c *gin.Context) {
	alerts, err := h.alerts.EvaluateNearExpiry(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alerts)
}
