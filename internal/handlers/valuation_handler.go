package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/pcabrera/inmo/api/internal/errors"
	"github.com/pcabrera/inmo/api/internal/services"
)

// ValuationHandler handles valuation model requests.
type ValuationHandler struct {
	service services.ValuationService
}

// NewValuationHandler creates a new ValuationHandler instance.
func NewValuationHandler(service services.ValuationService) *ValuationHandler {
	return &ValuationHandler{service: service}
}

// ConditionsResponse wraps the valuation model weights.
type ConditionsResponse struct {
	Conditions *services.ValuationConditions `json:"conditions"`
}

// SeriesResponse wraps the historical estimate series.
type SeriesResponse struct {
	Series []services.ValuationPoint `json:"series"`
}

// SchemaResponse wraps the extra features schema.
type SchemaResponse struct {
	Schema map[string]string `json:"schema"`
}

// GetValuationConditions handles POST /api/get_valuation_conditions.
func (h *ValuationHandler) GetValuationConditions(c *gin.Context) {
	conditions, err := h.service.Conditions(c.Request.Context())
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, ConditionsResponse{Conditions: conditions})
}

// FetchHistoricalValuations handles POST /api/fetch_historical_valuations.
func (h *ValuationHandler) FetchHistoricalValuations(c *gin.Context) {
	series, err := h.service.HistoricalSeries(c.Request.Context())
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, SeriesResponse{Series: series})
}

// GetExtraFeaturesSchema handles POST /api/get_extra_features_schema.
func (h *ValuationHandler) GetExtraFeaturesSchema(c *gin.Context) {
	schema, err := h.service.ExtraFeaturesSchema(c.Request.Context())
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, SchemaResponse{Schema: schema})
}
