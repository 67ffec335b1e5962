package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/pcabrera/inmo/api/internal/errors"
	"github.com/pcabrera/inmo/api/internal/models"
	"github.com/pcabrera/inmo/api/internal/services"
)

// SyncHandler handles integration and sync job requests.
type SyncHandler struct {
	service services.SyncService
}

// NewSyncHandler creates a new SyncHandler instance.
func NewSyncHandler(service services.SyncService) *SyncHandler {
	return &SyncHandler{service: service}
}

// RunSyncRequest names the provider to sync against.
type RunSyncRequest struct {
	Provider string `json:"provider" binding:"required"`
}

// IntegrationsResponse wraps the provider connection list.
type IntegrationsResponse struct {
	Integrations []models.Integration `json:"integrations"`
}

// JobsResponse wraps the sync job list, newest first.
type JobsResponse struct {
	Jobs []models.SyncJob `json:"jobs"`
}

// FetchIntegrationData handles POST /api/fetch_integration_data.
func (h *SyncHandler) FetchIntegrationData(c *gin.Context) {
	integrations, err := h.service.Integrations(c.Request.Context())
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, IntegrationsResponse{Integrations: integrations})
}

// ActiveTeamSyncJobs handles POST /api/active_team_sync_jobs.
func (h *SyncHandler) ActiveTeamSyncJobs(c *gin.Context) {
	var req ListRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	jobs, err := h.service.Jobs(c.Request.Context(), req.TeamID)
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, JobsResponse{Jobs: jobs})
}

// RunSync handles POST /api/run_sync.
func (h *SyncHandler) RunSync(c *gin.Context) {
	var req RunSyncRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.service.RunSync(c.Request.Context(), req.Provider)
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse{OK: true, ID: id})
}
