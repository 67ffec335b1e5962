package errors

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pcabrera/inmo/api/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/test", handler)

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return resp
}

func TestNotFound(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		NotFound(c, "No property found")
	})

	if w.Code != 404 {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Error.Code != ErrNotFound {
		t.Errorf("Expected code %s, got %s", ErrNotFound, resp.Error.Code)
	}
	if resp.Error.Message != "No property found" {
		t.Errorf("Unexpected message %q", resp.Error.Message)
	}
	if resp.Error.RequestID == "" {
		t.Error("Expected request id in error detail")
	}
}

func TestBadRequest(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		BadRequest(c, "Invalid payload", map[string]interface{}{"field": "page"})
	})

	if w.Code != 400 {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Error.Code != ErrBadRequest {
		t.Errorf("Expected code %s, got %s", ErrBadRequest, resp.Error.Code)
	}
	if resp.Error.Details["field"] != "page" {
		t.Errorf("Expected details to carry field, got %v", resp.Error.Details)
	}
}

func TestInternalServerError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		InternalServerError(c, "Something broke", errors.New("boom"))
	})

	if w.Code != 500 {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Error.Code != ErrInternalServer {
		t.Errorf("Expected code %s, got %s", ErrInternalServer, resp.Error.Code)
	}
}

func TestStoreError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		StoreError(c, errors.New("disk gone"))
	})

	if w.Code != 500 {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Error.Code != ErrStore {
		t.Errorf("Expected code %s, got %s", ErrStore, resp.Error.Code)
	}
	// Internal detail must not leak to the client.
	if resp.Error.Message == "disk gone" {
		t.Error("Store error detail leaked into response message")
	}
}
