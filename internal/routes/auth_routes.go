// internal/routes/auth_routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/autoaidc6/school-planner/internal/handlers"
)

// RegisterAuthRoutes wires the public routes: everything a visitor can reach
// before a session exists.
func RegisterAuthRoutes(r *gin.Engine, h *handlers.Handlers) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", h.SignupHandler)
		auth.POST("/login", h.LoginHandler)
		auth.POST("/guest", h.GuestLoginHandler)
		auth.POST("/logout", h.LogoutHandler)

		auth.POST("/password-reset", h.RequestPasswordResetHandler)
		auth.POST("/password-reset/confirm", h.ConfirmPasswordResetHandler)

		auth.GET("/google", h.GoogleLoginHandler)
		auth.GET("/google/callback", h.GoogleCallbackHandler)
	}
}
