package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/pcabrera/inmo/api/internal/errors"
	"github.com/pcabrera/inmo/api/internal/models"
	"github.com/pcabrera/inmo/api/internal/services"
)

// GeoHandler handles map dataset and subplot requests.
type GeoHandler struct {
	service services.GeoService
}

// NewGeoHandler creates a new GeoHandler instance.
func NewGeoHandler(service services.GeoService) *GeoHandler {
	return &GeoHandler{service: service}
}

// BoundsRequest is the viewport payload sent by map clients. The plot
// dataset is returned whole regardless of the bounds for now.
type BoundsRequest struct {
	Bounds *Bounds `json:"bounds"`
	TeamID string  `json:"team_id"`
}

// Bounds is a [south, west, north, east] viewport rectangle.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// SaveSubplotRequest carries the polygon to persist.
type SaveSubplotRequest struct {
	Polygon [][]float64 `json:"polygon" binding:"required,min=1"`
}

// IndexesResponse wraps the map search index list.
type IndexesResponse struct {
	Indexes []models.MapIndex `json:"indexes"`
}

// SubplotsResponse wraps the stored subplot list.
type SubplotsResponse struct {
	Subplots []models.Subplot `json:"subplots"`
}

// FetchMapSearchIndexes handles POST /api/fetch_map_search_indexes.
func (h *GeoHandler) FetchMapSearchIndexes(c *gin.Context) {
	indexes, err := h.service.MapIndexes(c.Request.Context())
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, IndexesResponse{Indexes: indexes})
}

// GetPlotsByBounds handles POST /api/get_plots_by_bounds. The response
// body is the GeoJSON feature collection itself.
func (h *GeoHandler) GetPlotsByBounds(c *gin.Context) {
	var req BoundsRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	plots, err := h.service.PlotsByBounds(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to load plot dataset", err)
		return
	}
	c.JSON(http.StatusOK, plots)
}

// GetSubplotsByBounds handles POST /api/get_subplots_by_bounds.
func (h *GeoHandler) GetSubplotsByBounds(c *gin.Context) {
	var req BoundsRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	subplots, err := h.service.SubplotsByBounds(c.Request.Context(), req.TeamID)
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, SubplotsResponse{Subplots: subplots})
}

// SaveSubplotBounds handles POST /api/save_subplot_bounds.
func (h *GeoHandler) SaveSubplotBounds(c *gin.Context) {
	var req SaveSubplotRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.service.SaveSubplotBounds(c.Request.Context(), req.Polygon)
	if err != nil {
		if errors.Is(err, services.ErrEmptyPolygon) {
			apierrors.BadRequest(c, "Subplot polygon must not be empty", nil)
			return
		}
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse{OK: true, ID: id})
}
