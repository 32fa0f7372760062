package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/shared"
	"github.com/phf/backend/internal/interfaces/http/dto"
	"github.com/phf/backend/internal/interfaces/http/middleware"
)

// OperatorIDHeader identifies the staff member performing a request.
// Adjustments and audit entries record it as the acting party.
const OperatorIDHeader = "X-Operator-ID"

// BaseHandler provides common response helpers for HTTP handlers
type BaseHandler struct{}

func (h *BaseHandler) getRequestID(c *gin.Context) string {
	if id, ok := c.Get(middleware.RequestIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// getOperatorID resolves the acting operator from the request headers.
// A missing or malformed header yields the nil UUID and the domain layer
// decides whether the operation requires an identified actor.
func (h *BaseHandler) getOperatorID(c *gin.Context) uuid.UUID {
	raw := c.GetHeader(OperatorIDHeader)
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// parseIDParam parses a UUID path parameter, replying 400 on failure
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}

// bindListFilter binds common list query parameters into a domain filter
func (h *BaseHandler) bindListFilter(c *gin.Context) (shared.Filter, bool) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return shared.Filter{}, false
	}
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter, true
}

// paginatedMeta converts pagination fields into response meta
func paginatedMeta[T any](p *shared.Paginated[T]) dto.Meta {
	return dto.Meta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}
}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with data and pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, meta dto.Meta) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, meta))
}

// Created sends a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response with a message
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, message, h.getRequestID(c)))
}

// HandleError maps an error to its HTTP response. Domain errors carry
// their own codes, anything else becomes an internal error.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, domainErr.Message, h.getRequestID(c)))
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "internal server error", h.getRequestID(c)))
}
