// internal/handlers/profile_handler.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/autoaidc6/school-planner/internal/middleware"
	"github.com/autoaidc6/school-planner/models"
)

// GetProfileHandler returns the signed-in profile.
func (h *Handlers) GetProfileHandler(c *gin.Context) {
	v, _ := c.Get(middleware.UserKey)
	user, ok := v.(models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No session"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfileHandler changes the display name.
func (h *Handlers) UpdateProfileHandler(c *gin.Context) {
	sess := h.session(c)
	if sess.Guest {
		c.JSON(http.StatusForbidden, gin.H{"error": "Guest profiles cannot be edited"})
		return
	}
	if !h.requireAccounts(c) {
		return
	}
	var payload struct {
		DisplayName string `json:"displayName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}

	if err := h.users.UpdateUser(c.Request.Context(), sess.UserID, map[string]any{"display_name": payload.DisplayName}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update profile"})
		return
	}
	middleware.InvalidateUserCache(sess.UserID)

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// ChangePasswordHandler verifies the current password before replacing it.
func (h *Handlers) ChangePasswordHandler(c *gin.Context) {
	sess := h.session(c)
	if sess.Guest {
		c.JSON(http.StatusForbidden, gin.H{"error": "Guest sessions have no password"})
		return
	}
	if !h.requireAccounts(c) {
		return
	}
	var payload struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.UserByID(ctx, sess.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load profile"})
		return
	}
	if user.PasswordHash == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This account signs in with Google and has no password"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.CurrentPassword)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}
	if err := h.users.UpdateUser(ctx, sess.UserID, map[string]any{"password_hash": string(hashed)}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update password"})
		return
	}
	middleware.InvalidateUserCache(sess.UserID)

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
