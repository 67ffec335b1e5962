package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/pcabrera/inmo/api/internal/errors"
	"github.com/pcabrera/inmo/api/internal/services"
)

// AnalyticsHandler handles derived dashboard and analytics reads.
type AnalyticsHandler struct {
	service services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler instance.
func NewAnalyticsHandler(service services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// FetchDashboardAnalytics handles POST /api/fetch_dashboard_analytics.
func (h *AnalyticsHandler) FetchDashboardAnalytics(c *gin.Context) {
	counts, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// FetchAnalytics handles POST /api/fetch_analytics.
func (h *AnalyticsHandler) FetchAnalytics(c *gin.Context) {
	analytics, err := h.service.Analytics(c.Request.Context())
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}
