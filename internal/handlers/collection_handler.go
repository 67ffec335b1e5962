package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/pcabrera/inmo/api/internal/errors"
	"github.com/pcabrera/inmo/api/internal/services"
)

// CollectionHandler handles property collection requests.
type CollectionHandler struct {
	service services.CollectionService
}

// NewCollectionHandler creates a new CollectionHandler instance.
func NewCollectionHandler(service services.CollectionService) *CollectionHandler {
	return &CollectionHandler{service: service}
}

// SaveCollectionRequest is the action-discriminated mutation payload.
// The action set is closed: anything outside create|add|remove fails
// validation instead of silently doing nothing.
type SaveCollectionRequest struct {
	Action       string `json:"action" binding:"required,oneof=create add remove"`
	Name         string `json:"name" binding:"required_if=Action create"`
	CollectionID string `json:"collection_id" binding:"required_if=Action add,required_if=Action remove"`
	PropertyID   string `json:"property_id" binding:"required_if=Action add,required_if=Action remove"`
}

// FetchCollections handles POST /api/fetch_collections.
func (h *CollectionHandler) FetchCollections(c *gin.Context) {
	listing, err := h.service.List(c.Request.Context())
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// SaveCollection handles POST /api/save_collection.
func (h *CollectionHandler) SaveCollection(c *gin.Context) {
	var req SaveCollectionRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	switch req.Action {
	case services.CollectionActionCreate:
		id, err := h.service.Create(ctx, req.Name)
		if err != nil {
			apierrors.StoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, OKResponse{OK: true, ID: id})

	case services.CollectionActionAdd:
		if err := h.service.Add(ctx, req.CollectionID, req.PropertyID); err != nil {
			if errors.Is(err, services.ErrDuplicateMembership) {
				apierrors.BadRequest(c, "Property is already in the collection", map[string]interface{}{
					"collection_id": req.CollectionID,
					"property_id":   req.PropertyID,
				})
				return
			}
			apierrors.StoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, OKResponse{OK: true})

	case services.CollectionActionRemove:
		if err := h.service.Remove(ctx, req.CollectionID, req.PropertyID); err != nil {
			apierrors.StoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, OKResponse{OK: true})
	}
}
