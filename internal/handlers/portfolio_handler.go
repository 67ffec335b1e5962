package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/pcabrera/inmo/api/internal/errors"
	"github.com/pcabrera/inmo/api/internal/models"
	"github.com/pcabrera/inmo/api/internal/pagination"
	"github.com/pcabrera/inmo/api/internal/services"
)

// PortfolioHandler handles property listing requests.
type PortfolioHandler struct {
	service services.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler instance.
func NewPortfolioHandler(service services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

// ListRequest is the optional scope filter accepted by list reads.
type ListRequest struct {
	TeamID string `json:"team_id"`
}

// PropertyRequest identifies a single property.
type PropertyRequest struct {
	ID string `json:"id" binding:"required"`
}

// PageRequest is the payload for paginated list reads.
type PageRequest struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	TeamID   string `json:"team_id"`
}

// PropertiesResponse wraps the full property list.
type PropertiesResponse struct {
	Properties []models.Property `json:"properties"`
}

// PropertyResponse wraps a single property; Property is null when the
// id matched nothing.
type PropertyResponse struct {
	Property *models.Property `json:"property"`
}

// FetchProperties handles POST /api/fetch_properties.
func (h *PortfolioHandler) FetchProperties(c *gin.Context) {
	var req ListRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	properties, err := h.service.ListProperties(c.Request.Context(), req.TeamID)
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, PropertiesResponse{Properties: properties})
}

// FetchProperty handles POST /api/fetch_property. A missing property is
// not an error: the response carries a null property with 200.
func (h *PortfolioHandler) FetchProperty(c *gin.Context) {
	var req PropertyRequest
	if !bindJSON(c, &req) {
		return
	}

	property, err := h.service.GetProperty(c.Request.Context(), req.ID)
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, PropertyResponse{Property: property})
}

// SaveProperty handles POST /api/save_property: an upsert keyed on the
// optional id field.
func (h *PortfolioHandler) SaveProperty(c *gin.Context) {
	var req models.Property
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.service.SaveProperty(c.Request.Context(), req)
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse{OK: true, ID: id})
}

// FetchTeamPortfolioPaginated handles POST /api/fetch_team_portfolio_paginated.
func (h *PortfolioHandler) FetchTeamPortfolioPaginated(c *gin.Context) {
	var req PageRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	page, err := h.service.PortfolioPage(c.Request.Context(), req.TeamID, pagination.Request{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
