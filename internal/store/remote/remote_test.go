package remote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/autoaidc6/school-planner/internal/store"
	"github.com/autoaidc6/school-planner/models"
)

// The adapter is exercised over the SQLite driver here; gorm keeps the
// queries portable between it and the postgres deployment driver.
func newTestStore(t *testing.T, feed *store.Feed) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	s, err := New(db, feed)
	require.NoError(t, err)
	return s
}

func TestInsertAssignsOpaqueID(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.InsertTask(ctx, "u1", models.Task{
		ID:      "1728400000123", // caller-minted id must be discarded
		Title:   "Read chapter 4",
		Subject: "History",
		DueDate: time.Now(),
	}))

	tasks, err := s.Tasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.NotEqual(t, "1728400000123", tasks[0].ID)
	assert.Greater(t, len(tasks[0].ID), 15, "store-assigned ids are longer than any local timestamp id")
}

func TestUpsertCreatesWhenAbsent(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	g := models.Grade{ID: "1728400000123", SubjectID: "s1", Name: "Quiz 1", Score: 9, Total: 10, Weight: 5}
	require.NoError(t, s.UpsertGrade(ctx, "u1", g))

	all, err := s.Grades(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, all, 1, "updating an unknown id must append, never drop")
	assert.Equal(t, "1728400000123", all[0].ID)
}

func TestUpsertRewritesFullRecord(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	orig := models.Task{ID: "t-fixed-000001", Title: "Draft essay", Subject: "Literature", Description: "outline first"}
	require.NoError(t, s.UpsertTask(ctx, "u1", orig))

	// Resend with the description cleared: the stored record must match the
	// payload, not keep stale fields.
	update := orig
	update.Title = "Draft essay v2"
	update.Description = ""
	update.Completed = true
	require.NoError(t, s.UpsertTask(ctx, "u1", update))

	tasks, err := s.Tasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Draft essay v2", tasks[0].Title)
	assert.Empty(t, tasks[0].Description)
	assert.True(t, tasks[0].Completed)
}

func TestDeleteScopedToUser(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.UpsertClass(ctx, "u1", models.ClassEvent{ID: "c1", Subject: "Math", Day: 1, StartTime: "09:00", EndTime: "10:00"}))
	require.NoError(t, s.UpsertClass(ctx, "u2", models.ClassEvent{ID: "c1", Subject: "Math", Day: 1, StartTime: "09:00", EndTime: "10:00"}))

	// Both rows must exist before the delete; the second upsert may not have
	// claimed the first user's row.
	mineBefore, err := s.Classes(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mineBefore, 1)
	theirsBefore, err := s.Classes(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, theirsBefore, 1)

	require.NoError(t, s.DeleteClass(ctx, "u1", "c1"))

	mine, err := s.Classes(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := s.Classes(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, theirs, 1, "another user's identically-keyed record must survive")

	// Deleting an absent id stays a no-op.
	require.NoError(t, s.DeleteClass(ctx, "u1", "c1"))
}

func TestUpsertKeyedPerUser(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	// Short guest-shaped ids collide across users: two signed-in users who
	// both echo seed id "1" must each end up with their own row.
	require.NoError(t, s.UpsertTask(ctx, "user-a", models.Task{ID: "1", Title: "Algebra homework"}))
	require.NoError(t, s.UpsertTask(ctx, "user-b", models.Task{ID: "1", Title: "Chemistry lab"}))

	aTasks, err := s.Tasks(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, aTasks, 1, "user A's task must survive user B's save of the same id")
	assert.Equal(t, "Algebra homework", aTasks[0].Title)

	bTasks, err := s.Tasks(ctx, "user-b")
	require.NoError(t, err)
	require.Len(t, bTasks, 1)
	assert.Equal(t, "Chemistry lab", bTasks[0].Title)

	// An upsert still only rewrites its owner's row.
	require.NoError(t, s.UpsertTask(ctx, "user-b", models.Task{ID: "1", Title: "Chemistry lab, revised"}))
	aTasks, err = s.Tasks(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, aTasks, 1)
	assert.Equal(t, "Algebra homework", aTasks[0].Title)
}

func TestMutationsRepublishWholeCollection(t *testing.T) {
	feed := store.NewFeed()
	s := newTestStore(t, feed)
	ctx := context.Background()

	ch, cancel := feed.Subscribe("u1")
	defer cancel()

	require.NoError(t, s.InsertSubject(ctx, "u1", models.Subject{Name: "Physics", Credits: 4, Goal: 85}))
	require.NoError(t, s.InsertSubject(ctx, "u1", models.Subject{Name: "Art", Credits: 2, Goal: 70}))

	first := <-ch
	require.Equal(t, store.KindSubjects, first.Kind)
	assert.Len(t, first.Items.([]models.Subject), 1)

	second := <-ch
	items := second.Items.([]models.Subject)
	assert.Len(t, items, 2, "every publish carries the entire current collection")
}

func TestUserLifecycle(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, models.User{Email: "amelie@example.com", DisplayName: "Amelie"})
	require.NoError(t, err)
	assert.Greater(t, len(u.ID), 15)
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := s.UserByEmail(ctx, "amelie@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	require.NoError(t, s.UpdateUser(ctx, u.ID, map[string]any{"display_name": "Amélie"}))
	byID, err := s.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amélie", byID.DisplayName)

	_, err = s.UserByGoogleID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
