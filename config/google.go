// config/google.go
package config

import (
	"context"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

var (
	GeminiClient *genai.GenerativeModel
	GoogleOAuth  *oauth2.Config
)

// InitGoogleServices initializes the Gemini client for study-plan generation
// and the OAuth config for federated sign-in. Both are optional; either one
// missing its credentials logs and stays nil, with the corresponding feature
// answering a graceful fallback.
func InitGoogleServices(cfg Config) {
	ctx := context.Background()

	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set, study plan generation disabled")
	} else {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			slog.Error("Unable to create Gemini client, study plan generation disabled", "error", err)
		} else {
			GeminiClient = client.GenerativeModel("gemini-1.5-flash")
			slog.Info("Gemini API client initialized")
		}
	}

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		slog.Warn("Google OAuth credentials not set, federated sign-in disabled")
		return
	}
	redirect := cfg.GoogleRedirectURL
	if redirect == "" {
		redirect = cfg.BaseURL + "/api/auth/google/callback"
	}
	GoogleOAuth = &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  redirect,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
	slog.Info("Google OAuth configured", "redirect_url", redirect)
}
