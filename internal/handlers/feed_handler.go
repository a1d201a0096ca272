// internal/handlers/feed_handler.go

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/autoaidc6/school-planner/internal/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type feedMessage struct {
	Type  string     `json:"type"`
	Kind  store.Kind `json:"kind,omitempty"`
	Items any        `json:"items,omitempty"`
}

// FeedWSHandler streams collection snapshots over a websocket. On connect the
// client gets the current state of every collection followed by a ready
// marker; after that, every mutation pushes the changed collection in full,
// so the client replaces wholesale instead of patching.
func (h *Handlers) FeedWSHandler(c *gin.Context) {
	sess := h.session(c)
	if sess.UserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	// Subscribe before reading the initial snapshots: a mutation landing
	// between the read and the subscription would otherwise be in neither,
	// and the client would sit on stale data until the next change of that
	// kind. The other order only risks a duplicate delivery, which clients
	// absorb by replacing wholesale.
	updates, cancel := h.feed.Subscribe(sess.UserID)
	defer cancel()

	snapshots, err := h.svc.Snapshots(c.Request.Context(), sess)
	if err != nil {
		respondPlannerError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer conn.Close()

	for _, snap := range snapshots {
		if err := writeFeedMessage(conn, feedMessage{Type: "snapshot", Kind: snap.Kind, Items: snap.Items}); err != nil {
			return
		}
	}
	if err := writeFeedMessage(conn, feedMessage{Type: "ready"}); err != nil {
		return
	}

	// Drain the client side so pings and close frames are processed; the
	// feed is one-directional, client payloads are discarded.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					slog.Warn("Unexpected websocket close error", "error", err)
				}
				return
			}
		}
	}()

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := writeFeedMessage(conn, feedMessage{Type: "snapshot", Kind: snap.Kind, Items: snap.Items}); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func writeFeedMessage(conn *websocket.Conn, msg feedMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("Failed to marshal feed message", "error", err)
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to write message to websocket", "error", err)
		return err
	}
	return nil
}
