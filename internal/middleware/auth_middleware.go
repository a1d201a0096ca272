package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/autoaidc6/school-planner/config"
	"github.com/autoaidc6/school-planner/internal/planner"
	"github.com/autoaidc6/school-planner/internal/store/remote"
	"github.com/autoaidc6/school-planner/models"
)

// CachedUserData is the profile slice kept in the cache so most requests
// never touch the database.
type CachedUserData struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// SessionKey is where the resolved planner session lives on the gin context.
const SessionKey = "session"

// UserKey holds the resolved profile for authenticated requests.
const UserKey = "user"

// Session pulls the planner session a previous AuthMiddleware stored.
func Session(c *gin.Context) planner.Session {
	v, _ := c.Get(SessionKey)
	sess, _ := v.(planner.Session)
	return sess
}

// AuthMiddleware resolves the caller's session from the auth token (cookie or
// bearer header). Guest tokens carry their synthesized identity directly;
// account tokens are resolved to a profile through the cache, then the
// database.
func AuthMiddleware(users *remote.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("auth_token")
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				handleAuthError(c, "Authorization token not provided")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				handleAuthError(c, "Invalid Authorization header format")
				return
			}
			tokenStr = parts[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return config.JwtKey, nil
		})
		if err != nil || !token.Valid {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			handleAuthError(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			handleAuthError(c, "Invalid token claims")
			return
		}
		userID, _ := claims["user_id"].(string)
		if userID == "" {
			handleAuthError(c, "Invalid user ID in token")
			return
		}

		if isGuest, _ := claims["is_guest"].(bool); isGuest {
			guest := models.GuestUser()
			c.Set(UserKey, guest)
			c.Set(SessionKey, planner.GuestSession())
			c.Next()
			return
		}

		if users == nil {
			handleAuthError(c, "Accounts are not available on this server")
			return
		}

		cacheKey := fmt.Sprintf("user:%s:data", userID)
		if config.RDB != nil {
			cached, err := config.RDB.Get(config.Ctx, cacheKey).Result()
			if err == nil {
				var data CachedUserData
				if json.Unmarshal([]byte(cached), &data) == nil {
					setContextAndProceed(c, &data)
					return
				}
				slog.Warn("Failed to unmarshal cached user data", "user_id", userID)
			} else if err != redis.Nil {
				slog.Error("Redis GET command failed", "error", err, "user_id", userID)
			}
		}

		dbUser, err := users.UserByID(c.Request.Context(), userID)
		if err != nil {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			handleAuthError(c, "User from token not found")
			return
		}

		data := CachedUserData{UserID: dbUser.ID, Email: dbUser.Email, DisplayName: dbUser.DisplayName}
		if config.RDB != nil {
			if jsonData, err := json.Marshal(data); err == nil {
				if err := config.RDB.Set(config.Ctx, cacheKey, jsonData, 10*time.Minute).Err(); err != nil {
					slog.Error("Failed to cache user data", "error", err, "user_id", userID)
				}
			}
		}

		setContextAndProceed(c, &data)
	}
}

// InvalidateUserCache drops the cached profile after a profile mutation so
// the next request re-reads the database.
func InvalidateUserCache(userID string) {
	if config.RDB == nil {
		return
	}
	if err := config.RDB.Del(config.Ctx, fmt.Sprintf("user:%s:data", userID)).Err(); err != nil {
		slog.Warn("Failed to invalidate user cache", "error", err, "user_id", userID)
	}
}

func setContextAndProceed(c *gin.Context, data *CachedUserData) {
	c.Set(UserKey, models.User{ID: data.UserID, Email: data.Email, DisplayName: data.DisplayName})
	c.Set(SessionKey, planner.Session{UserID: data.UserID})
	c.Next()
}

func handleAuthError(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	c.Abort()
}
