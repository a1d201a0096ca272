// internal/routes/router.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/autoaidc6/school-planner/internal/handlers"
	"github.com/autoaidc6/school-planner/internal/middleware"
	"github.com/autoaidc6/school-planner/internal/store/remote"
)

// SetupRoutes initializes every route of the application.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, users *remote.Store) {
	// Public routes first: sign-in, sign-up and the OAuth dance do not
	// require a token.
	RegisterAuthRoutes(r, h)

	// Everything else runs behind the session middleware, guest tokens
	// included: a guest still carries a token, it just resolves to the
	// local-only identity.
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware(users))
	{
		RegisterAPIRoutes(authRequired, h)
	}
}
