package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/pcabrera/inmo/api/internal/errors"
	"github.com/pcabrera/inmo/api/internal/models"
	"github.com/pcabrera/inmo/api/internal/services"
)

// AccountHandler handles user and team account requests.
type AccountHandler struct {
	service services.AccountService
}

// NewAccountHandler creates a new AccountHandler instance.
func NewAccountHandler(service services.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// UsersResponse wraps the team member list.
type UsersResponse struct {
	Users []models.User `json:"users"`
}

// NotificationsResponse wraps the notification list.
type NotificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

// NotificationsRequest is the optional scope for notification reads.
type NotificationsRequest struct {
	UserID string `json:"user_id"`
}

// FetchUserData handles POST /api/fetch_user_data.
func (h *AccountHandler) FetchUserData(c *gin.Context) {
	account, err := h.service.CurrentAccount(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoCurrentUser) {
			apierrors.NotFound(c, "No user account exists")
			return
		}
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// SaveUserData handles POST /api/save_user_data: set fields merge into
// the current user.
func (h *AccountHandler) SaveUserData(c *gin.Context) {
	var req models.User
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.SaveUserData(c.Request.Context(), req); err != nil {
		if errors.Is(err, services.ErrNoCurrentUser) {
			apierrors.NotFound(c, "No user account exists")
			return
		}
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse{OK: true})
}

// GetUsersInTeam handles POST /api/get_users_in_team.
func (h *AccountHandler) GetUsersInTeam(c *gin.Context) {
	var req ListRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	users, err := h.service.UsersInTeam(c.Request.Context(), req.TeamID)
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, UsersResponse{Users: users})
}

// FetchSubscription handles POST /api/fetch_subscription.
func (h *AccountHandler) FetchSubscription(c *gin.Context) {
	sub, err := h.service.Subscription(c.Request.Context())
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// FetchUserNotifications handles POST /api/fetch_user_notifications.
func (h *AccountHandler) FetchUserNotifications(c *gin.Context) {
	var req NotificationsRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	notifications, err := h.service.Notifications(c.Request.Context(), req.UserID)
	if err != nil {
		apierrors.StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, NotificationsResponse{Notifications: notifications})
}
