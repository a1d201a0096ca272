// internal/handlers/auth_handler.go

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/autoaidc6/school-planner/config"
	"github.com/autoaidc6/school-planner/internal/mail"
	"github.com/autoaidc6/school-planner/internal/middleware"
	"github.com/autoaidc6/school-planner/internal/store/remote"
	"github.com/autoaidc6/school-planner/models"
)

const (
	sessionTokenTTL = 72 * time.Hour
	resetTokenTTL   = 15 * time.Minute
)

func issueToken(userID string, guest bool) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"is_guest": guest,
		"exp":      time.Now().Add(sessionTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JwtKey)
}

func (h *Handlers) setAuthCookie(c *gin.Context, token string) {
	c.SetCookie("auth_token", token, int(sessionTokenTTL.Seconds()), "/", "", false, true)
}

func (h *Handlers) requireAccounts(c *gin.Context) bool {
	if h.users == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Accounts are not available on this server; continue as guest"})
		return false
	}
	return true
}

// SignupHandler creates an account and its top-level profile document, then
// signs the new user in.
func (h *Handlers) SignupHandler(c *gin.Context) {
	if !h.requireAccounts(c) {
		return
	}
	var payload struct {
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required,min=6"`
		DisplayName string `json:"displayName"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.users.UserByEmail(ctx, payload.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	} else if !errors.Is(err, remote.ErrUserNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not check existing accounts"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	displayName := payload.DisplayName
	if displayName == "" {
		displayName = strings.Split(payload.Email, "@")[0]
	}
	user, err := h.users.CreateUser(ctx, models.User{
		Email:        payload.Email,
		DisplayName:  displayName,
		PasswordHash: string(hashed),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create account"})
		return
	}

	h.respondSignedIn(c, user)
}

// LoginHandler answers email/password sign-in.
func (h *Handlers) LoginHandler(c *gin.Context) {
	if !h.requireAccounts(c) {
		return
	}
	var payload struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}

	user, err := h.users.UserByEmail(c.Request.Context(), payload.Email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	h.respondSignedIn(c, user)
}

// GuestLoginHandler synthesizes the local-only identity. No account, no
// remote data; everything this session touches stays in the local store.
func (h *Handlers) GuestLoginHandler(c *gin.Context) {
	guest := models.GuestUser()
	token, err := issueToken(guest.ID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create session"})
		return
	}
	h.setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": guest})
}

// LogoutHandler clears the session cookie.
func (h *Handlers) LogoutHandler(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// RequestPasswordResetHandler mails a short-lived reset link. The response
// never reveals whether the email has an account.
func (h *Handlers) RequestPasswordResetHandler(c *gin.Context) {
	if !h.requireAccounts(c) {
		return
	}
	var payload struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.UserByEmail(ctx, payload.Email)
	if err == nil {
		claims := jwt.MapClaims{
			"user_id": user.ID,
			"purpose": "password_reset",
			"exp":     time.Now().Add(resetTokenTTL).Unix(),
		}
		token, signErr := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JwtKey)
		if signErr == nil {
			link := fmt.Sprintf("%s/reset-password?token=%s", h.base, token)
			msg := mail.Message{
				To:      user.Email,
				Subject: "Reset your School Planner password",
				Body:    "Someone requested a password reset for this address. Open the link below within 15 minutes to choose a new password:\n\n" + link,
			}
			if sendErr := h.mailer.Send(ctx, msg); sendErr != nil {
				slog.Error("Failed to send password reset mail", "error", sendErr)
			}
		}
	} else if !errors.Is(err, remote.ErrUserNotFound) {
		slog.Error("Password reset lookup failed", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "If that address has an account, a reset link is on its way"})
}

// ConfirmPasswordResetHandler exchanges a valid reset token for a new
// password.
func (h *Handlers) ConfirmPasswordResetHandler(c *gin.Context) {
	if !h.requireAccounts(c) {
		return
	}
	var payload struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}

	token, err := jwt.Parse(payload.Token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return config.JwtKey, nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired reset token"})
		return
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["purpose"] != "password_reset" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid reset token"})
		return
	}
	userID, _ := claims["user_id"].(string)

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}
	if err := h.users.UpdateUser(c.Request.Context(), userID, map[string]any{"password_hash": string(hashed)}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update password"})
		return
	}
	middleware.InvalidateUserCache(userID)

	c.JSON(http.StatusOK, gin.H{"message": "Password updated, you can sign in now"})
}

func (h *Handlers) respondSignedIn(c *gin.Context, user models.User) {
	token, err := issueToken(user.ID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create session"})
		return
	}
	h.setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
