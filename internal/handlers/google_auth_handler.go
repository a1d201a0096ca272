// internal/handlers/google_auth_handler.go

package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	oauth2v2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/autoaidc6/school-planner/config"
	"github.com/autoaidc6/school-planner/internal/store/remote"
	"github.com/autoaidc6/school-planner/models"
)

const oauthStateCookie = "oauth_state"

// GoogleLoginHandler redirects the browser to Google's consent screen.
func (h *Handlers) GoogleLoginHandler(c *gin.Context) {
	if config.GoogleOAuth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google sign-in is not configured on this server"})
		return
	}
	state := randomState()
	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, config.GoogleOAuth.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GoogleCallbackHandler finishes the OAuth dance: exchange the code, read the
// Google profile, find or create the matching account and sign it in.
func (h *Handlers) GoogleCallbackHandler(c *gin.Context) {
	if config.GoogleOAuth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google sign-in is not configured on this server"})
		return
	}
	if !h.requireAccounts(c) {
		return
	}

	wantState, err := c.Cookie(oauthStateCookie)
	if err != nil || wantState == "" || c.Query("state") != wantState {
		c.JSON(http.StatusBadRequest, gin.H{"error": "OAuth state mismatch"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	ctx := c.Request.Context()
	token, err := config.GoogleOAuth.Exchange(ctx, c.Query("code"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not exchange authorization code"})
		return
	}

	svc, err := oauth2v2.NewService(ctx, option.WithTokenSource(config.GoogleOAuth.TokenSource(ctx, token)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not reach Google"})
		return
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil || info.Email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not read Google profile"})
		return
	}

	user, err := h.users.UserByGoogleID(ctx, info.Id)
	if errors.Is(err, remote.ErrUserNotFound) {
		// Fall back on the email so pre-existing password accounts get
		// linked instead of duplicated.
		user, err = h.users.UserByEmail(ctx, info.Email)
		if err == nil {
			if linkErr := h.users.UpdateUser(ctx, user.ID, map[string]any{"google_id": info.Id}); linkErr == nil {
				user.GoogleID = info.Id
			}
		} else if errors.Is(err, remote.ErrUserNotFound) {
			user, err = h.users.CreateUser(ctx, models.User{
				Email:       info.Email,
				DisplayName: info.Name,
				GoogleID:    info.Id,
			})
		}
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not sign in with Google"})
		return
	}

	h.respondSignedIn(c, user)
}

func randomState() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
