package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/pcabrera/inmo/api/internal/errors"
	"github.com/pcabrera/inmo/api/internal/pagination"
	"github.com/pcabrera/inmo/api/internal/services"
)

// LeadHandler handles lead pipeline requests.
type LeadHandler struct {
	service services.LeadService
}

// NewLeadHandler creates a new LeadHandler instance.
func NewLeadHandler(service services.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

// GetLeads handles POST /api/get_leads.
func (h *LeadHandler) GetLeads(c *gin.Context) {
	var req PageRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	page, err := h.service.LeadsPage(c.Request.Context(), req.TeamID, pagination.Request{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
