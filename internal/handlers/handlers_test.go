// internal/handlers/handlers_test.go

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoaidc6/school-planner/config"
	"github.com/autoaidc6/school-planner/internal/grades"
	"github.com/autoaidc6/school-planner/internal/handlers"
	"github.com/autoaidc6/school-planner/internal/mail"
	"github.com/autoaidc6/school-planner/internal/planner"
	"github.com/autoaidc6/school-planner/internal/routes"
	"github.com/autoaidc6/school-planner/internal/store"
	"github.com/autoaidc6/school-planner/internal/store/local"
	"github.com/autoaidc6/school-planner/models"
)

func newTestRouter(t *testing.T) *gin.Engine {
	r, _ := newTestRouterWithService(t)
	return r
}

func newTestRouterWithService(t *testing.T) (*gin.Engine, *planner.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JwtKey = []byte("test-secret")

	localStore, err := local.Open(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = localStore.Close() })

	feed := store.NewFeed()
	svc := planner.New(localStore, nil, feed)
	h := handlers.New(svc, nil, feed, mail.NewConsoleSender(), "http://localhost:8080")

	r := gin.New()
	routes.SetupRoutes(r, h, nil)
	return r, svc
}

func guestToken(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/guest", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	require.Equal(t, models.GuestUserID, body.User.ID)
	return body.Token
}

func doJSON(t *testing.T, r *gin.Engine, token, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, "", http.MethodGet, "/api/tasks", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuestTaskLifecycle(t *testing.T) {
	r := newTestRouter(t)
	token := guestToken(t, r)

	w := doJSON(t, r, token, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 4, "a fresh guest sees the sample agenda")

	w = doJSON(t, r, token, http.MethodPost, "/api/tasks", models.Task{
		Title:    "Finish chemistry lab writeup",
		Subject:  "Chemistry",
		Category: models.CategoryHomework,
		DueDate:  time.Now().Add(48 * time.Hour),
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, token, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	assert.Len(t, tasks, 5)

	w = doJSON(t, r, token, http.MethodPost, "/api/tasks/1/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, token, http.MethodGet, "/api/tasks", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	for _, task := range tasks {
		if task.ID == "1" {
			assert.True(t, task.Completed)
		}
	}

	w = doJSON(t, r, token, http.MethodDelete, "/api/tasks/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, token, http.MethodGet, "/api/tasks", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	assert.Len(t, tasks, 4)
}

func TestSaveTaskRejectsBadRecords(t *testing.T) {
	r := newTestRouter(t)
	token := guestToken(t, r)

	// startTime without endTime
	w := doJSON(t, r, token, http.MethodPost, "/api/tasks", map[string]any{
		"title":     "Broken window",
		"subject":   "Physics",
		"category":  "Homework",
		"dueDate":   time.Now().Format(time.RFC3339),
		"startTime": "10:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, token, http.MethodPost, "/api/grades", map[string]any{
		"subjectId": "s1",
		"name":      "Quiz",
		"score":     5,
		"total":     0,
		"weight":    10,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleUnknownTaskIs404(t *testing.T) {
	r := newTestRouter(t)
	token := guestToken(t, r)
	w := doJSON(t, r, token, http.MethodPost, "/api/tasks/no-such-task/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubjectCascadeOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := guestToken(t, r)

	w := doJSON(t, r, token, http.MethodGet, "/api/grades", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var before []models.Grade
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &before))
	require.NotEmpty(t, before)

	removed := 0
	for _, g := range before {
		if g.SubjectID == "s1" {
			removed++
		}
	}
	require.Greater(t, removed, 0)

	w = doJSON(t, r, token, http.MethodDelete, "/api/subjects/s1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var after []models.Grade
	w = doJSON(t, r, token, http.MethodGet, "/api/grades", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &after))
	assert.Len(t, after, len(before)-removed)
}

func TestGradeSummaryEndpoint(t *testing.T) {
	r := newTestRouter(t)
	token := guestToken(t, r)

	w := doJSON(t, r, token, http.MethodGet, "/api/subjects/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []grades.SubjectSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 3)
	for _, s := range summaries {
		if s.Graded {
			assert.Greater(t, s.CurrentGrade, 0.0)
			assert.LessOrEqual(t, s.CurrentGrade, 100.0)
		}
	}
}

func TestGradeExportContentType(t *testing.T) {
	r := newTestRouter(t)
	token := guestToken(t, r)

	w := doJSON(t, r, token, http.MethodGet, "/api/grades/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "grade_report_")
	assert.NotZero(t, w.Body.Len())
}

func TestCalendarEventUnionEndpoint(t *testing.T) {
	r := newTestRouter(t)
	token := guestToken(t, r)

	w := doJSON(t, r, token, http.MethodPost, "/api/events", models.PlannerEvent{
		Kind: models.KindClass,
		Class: &models.ClassEvent{
			Subject:   "Biology",
			Day:       4,
			StartTime: "14:00",
			EndTime:   "15:30",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var classes []models.ClassEvent
	w = doJSON(t, r, token, http.MethodGet, "/api/classes", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &classes))
	assert.Len(t, classes, 5)

	// Kind and payload must agree.
	w = doJSON(t, r, token, http.MethodPost, "/api/events", map[string]any{
		"kind": "task",
		"class": map[string]any{
			"subject":   "Biology",
			"day":       4,
			"startTime": "14:00",
			"endTime":   "15:30",
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGuestProfileIsReadOnly(t *testing.T) {
	r := newTestRouter(t)
	token := guestToken(t, r)

	w := doJSON(t, r, token, http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, models.GuestUserID, user.ID)

	w = doJSON(t, r, token, http.MethodPut, "/api/profile", map[string]any{"displayName": "Someone"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func dialFeed(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/feed/ws"
	header := http.Header{"Authorization": []string{"Bearer " + token}}
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

type feedMessage struct {
	Type  string          `json:"type"`
	Kind  store.Kind      `json:"kind"`
	Items json.RawMessage `json:"items"`
}

func readFeedMessage(t *testing.T, conn *websocket.Conn) feedMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg feedMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestFeedDeliversInitialSnapshotsThenReady(t *testing.T) {
	r, _ := newTestRouterWithService(t)
	srv := httptest.NewServer(r)
	defer srv.Close()
	token := guestToken(t, r)

	conn := dialFeed(t, srv, token)

	seen := make([]store.Kind, 0, 4)
	for i := 0; i < 4; i++ {
		msg := readFeedMessage(t, conn)
		require.Equal(t, "snapshot", msg.Type)
		seen = append(seen, msg.Kind)
	}
	assert.Equal(t, store.Kinds(), seen, "initial snapshots arrive in canonical order")

	msg := readFeedMessage(t, conn)
	assert.Equal(t, "ready", msg.Type)
}

func TestFeedDoesNotMissMutationDuringConnect(t *testing.T) {
	r, svc := newTestRouterWithService(t)
	srv := httptest.NewServer(r)
	defer srv.Close()
	token := guestToken(t, r)

	conn := dialFeed(t, srv, token)

	// Mutate as soon as the handshake completes, while the handler may still
	// be writing the initial snapshots. The new task must show up either in
	// the initial tasks snapshot or in a pushed update; never in neither.
	require.NoError(t, svc.SaveTask(context.Background(), planner.GuestSession(), models.Task{
		Title:    "Revise trigonometry",
		Subject:  "Mathematics",
		Category: models.CategoryStudy,
		DueDate:  time.Now().Add(24 * time.Hour),
	}))

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		msg := readFeedMessage(t, conn)
		if msg.Type != "snapshot" || msg.Kind != store.KindTasks {
			continue
		}
		var tasks []models.Task
		require.NoError(t, json.Unmarshal(msg.Items, &tasks))
		for _, task := range tasks {
			if task.Title == "Revise trigonometry" {
				return
			}
		}
	}
	t.Fatal("mutation made during the connect window never reached the feed")
}

func TestSignupUnavailableWithoutDatabase(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, "", http.MethodPost, "/api/auth/signup", map[string]any{
		"email":    "student@example.com",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
