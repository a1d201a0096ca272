// internal/handlers/handlers.go

// Package handlers implements the HTTP and websocket surface over the
// persistence router.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/autoaidc6/school-planner/internal/mail"
	"github.com/autoaidc6/school-planner/internal/middleware"
	"github.com/autoaidc6/school-planner/internal/planner"
	"github.com/autoaidc6/school-planner/internal/store"
	"github.com/autoaidc6/school-planner/internal/store/remote"
)

type Handlers struct {
	svc    *planner.Service
	users  *remote.Store // nil when the remote backend is off
	feed   *store.Feed
	mailer mail.Sender
	base   string // public base URL, used in reset links
}

func New(svc *planner.Service, users *remote.Store, feed *store.Feed, mailer mail.Sender, baseURL string) *Handlers {
	return &Handlers{svc: svc, users: users, feed: feed, mailer: mailer, base: baseURL}
}

func (h *Handlers) session(c *gin.Context) planner.Session {
	return middleware.Session(c)
}
