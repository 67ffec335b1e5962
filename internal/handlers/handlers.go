// Package handlers exposes the operation catalog over HTTP. Every
// operation is a POST with a JSON body under /api; handlers bind and
// validate the payload, call a service, and write the response envelope.
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/pcabrera/inmo/api/internal/errors"
)

// OKResponse is the acknowledgement returned by mutations. ID carries
// the generated id when the mutation created a record.
type OKResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id,omitempty"`
}

// bindJSON binds a required JSON body, writing the error response on
// failure. Returns false when the request has already been answered.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return false
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return false
	}
	return true
}

// bindOptionalJSON binds a JSON body that may be absent entirely. Reads
// with no payload (fetch_properties and friends) fall through with dst
// left at its zero value.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	return bindJSON(c, dst)
}
