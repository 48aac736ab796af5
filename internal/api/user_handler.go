package api

import (
	"errors"
	"net/http"

	"nutrifit/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes profile and account operations.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMyProfile returns the caller's profile with latest weight and avatar URL.
func (h *UserHandler) GetMyProfile(c *gin.Context) {
	userID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch profile.")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// RequestAvatarUploadURL returns a presigned PUT URL for the caller's profile photo.
func (h *UserHandler) RequestAvatarUploadURL(c *gin.Context) {
	var req RequestImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	resp, err := h.userService.RequestAvatarUploadURL(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmAvatar records the uploaded object key as the caller's profile photo.
func (h *UserHandler) ConfirmAvatar(c *gin.Context) {
	var req ConfirmImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.userService.ConfirmAvatar(c.Request.Context(), userID, req.ObjectKey); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to confirm profile photo.")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAccount removes a user and everything they own. Allowed for the user
// themselves or an administrator.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	actorID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), actorID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPermissionDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to delete account.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
