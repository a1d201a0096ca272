// internal/store/remote/remote.go

// Package remote is the authenticated-mode persistence backend: per-user
// entity collections in a relational document store, with server-assigned
// identities and a live snapshot feed. Mutations are keyed by (user, id);
// after every commit the whole affected collection is republished so
// subscribed clients converge without being told what changed.
package remote

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/autoaidc6/school-planner/internal/store"
	"github.com/autoaidc6/school-planner/models"
)

// Store wraps the shared gorm handle. The feed may be nil in tests that only
// exercise the CRUD surface.
type Store struct {
	db   *gorm.DB
	feed *store.Feed
}

// New prepares the schema and returns the adapter.
func New(db *gorm.DB, feed *store.Feed) (*Store, error) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.ClassEvent{},
		&models.Subject{},
		&models.Grade{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate remote store: %w", err)
	}
	return &Store{db: db, feed: feed}, nil
}

// NewID mints a store-assigned identity. These are opaque 36-character
// strings, never confusable with the short timestamp ids guest sessions mint.
func NewID() string { return uuid.NewString() }

// upsertConflict targets the composite (user_id, id) key. Ids are only unique
// within one user's collection; conflicting on id alone would let a save
// rewrite a row another user owns.
var upsertConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "user_id"}, {Name: "id"}},
	UpdateAll: true,
}

// --- tasks ---

// Tasks returns the user's full task collection in stable id order.
func (s *Store) Tasks(ctx context.Context, userID string) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	return tasks, nil
}

// InsertTask stores a fresh task under a server-assigned id. The caller's id,
// if any, is discarded; the new identity reaches clients through the feed,
// never through the return path.
func (s *Store) InsertTask(ctx context.Context, userID string, t models.Task) error {
	t.ID = NewID()
	t.UserID = userID
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	s.publish(ctx, userID, store.KindTasks)
	return nil
}

// UpsertTask rewrites the task keyed by its id, creating it when absent. The
// full record is persisted, not a delta, so fields omitted by the caller
// would not silently survive from the old row.
func (s *Store) UpsertTask(ctx context.Context, userID string, t models.Task) error {
	t.UserID = userID
	err := s.db.WithContext(ctx).Clauses(upsertConflict).Create(&t).Error
	if err != nil {
		return fmt.Errorf("upsert task: %w", err)
	}
	s.publish(ctx, userID, store.KindTasks)
	return nil
}

// DeleteTask removes one task. Deleting an absent id is a no-op.
func (s *Store) DeleteTask(ctx context.Context, userID, id string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Task{}, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	s.publish(ctx, userID, store.KindTasks)
	return nil
}

// --- classes ---

func (s *Store) Classes(ctx context.Context, userID string) ([]models.ClassEvent, error) {
	classes := make([]models.ClassEvent, 0)
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&classes).Error; err != nil {
		return nil, fmt.Errorf("fetch classes: %w", err)
	}
	return classes, nil
}

func (s *Store) InsertClass(ctx context.Context, userID string, c models.ClassEvent) error {
	c.ID = NewID()
	c.UserID = userID
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return fmt.Errorf("insert class: %w", err)
	}
	s.publish(ctx, userID, store.KindClasses)
	return nil
}

func (s *Store) UpsertClass(ctx context.Context, userID string, c models.ClassEvent) error {
	c.UserID = userID
	err := s.db.WithContext(ctx).Clauses(upsertConflict).Create(&c).Error
	if err != nil {
		return fmt.Errorf("upsert class: %w", err)
	}
	s.publish(ctx, userID, store.KindClasses)
	return nil
}

func (s *Store) DeleteClass(ctx context.Context, userID, id string) error {
	if err := s.db.WithContext(ctx).Delete(&models.ClassEvent{}, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	s.publish(ctx, userID, store.KindClasses)
	return nil
}

// --- subjects ---

func (s *Store) Subjects(ctx context.Context, userID string) ([]models.Subject, error) {
	subjects := make([]models.Subject, 0)
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&subjects).Error; err != nil {
		return nil, fmt.Errorf("fetch subjects: %w", err)
	}
	return subjects, nil
}

func (s *Store) InsertSubject(ctx context.Context, userID string, sub models.Subject) error {
	sub.ID = NewID()
	sub.UserID = userID
	if err := s.db.WithContext(ctx).Create(&sub).Error; err != nil {
		return fmt.Errorf("insert subject: %w", err)
	}
	s.publish(ctx, userID, store.KindSubjects)
	return nil
}

func (s *Store) UpsertSubject(ctx context.Context, userID string, sub models.Subject) error {
	sub.UserID = userID
	err := s.db.WithContext(ctx).Clauses(upsertConflict).Create(&sub).Error
	if err != nil {
		return fmt.Errorf("upsert subject: %w", err)
	}
	s.publish(ctx, userID, store.KindSubjects)
	return nil
}

func (s *Store) DeleteSubject(ctx context.Context, userID, id string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Subject{}, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	s.publish(ctx, userID, store.KindSubjects)
	return nil
}

// --- grades ---

func (s *Store) Grades(ctx context.Context, userID string) ([]models.Grade, error) {
	gradesList := make([]models.Grade, 0)
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&gradesList).Error; err != nil {
		return nil, fmt.Errorf("fetch grades: %w", err)
	}
	return gradesList, nil
}

func (s *Store) InsertGrade(ctx context.Context, userID string, g models.Grade) error {
	g.ID = NewID()
	g.UserID = userID
	if err := s.db.WithContext(ctx).Create(&g).Error; err != nil {
		return fmt.Errorf("insert grade: %w", err)
	}
	s.publish(ctx, userID, store.KindGrades)
	return nil
}

func (s *Store) UpsertGrade(ctx context.Context, userID string, g models.Grade) error {
	g.UserID = userID
	err := s.db.WithContext(ctx).Clauses(upsertConflict).Create(&g).Error
	if err != nil {
		return fmt.Errorf("upsert grade: %w", err)
	}
	s.publish(ctx, userID, store.KindGrades)
	return nil
}

func (s *Store) DeleteGrade(ctx context.Context, userID, id string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Grade{}, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		return fmt.Errorf("delete grade: %w", err)
	}
	s.publish(ctx, userID, store.KindGrades)
	return nil
}

// --- snapshots ---

// Snapshot reads the current collection of one kind.
func (s *Store) Snapshot(ctx context.Context, userID string, kind store.Kind) (store.Snapshot, error) {
	var (
		items any
		err   error
	)
	switch kind {
	case store.KindTasks:
		items, err = s.Tasks(ctx, userID)
	case store.KindClasses:
		items, err = s.Classes(ctx, userID)
	case store.KindSubjects:
		items, err = s.Subjects(ctx, userID)
	case store.KindGrades:
		items, err = s.Grades(ctx, userID)
	default:
		err = fmt.Errorf("unknown collection kind %q", kind)
	}
	if err != nil {
		return store.Snapshot{}, err
	}
	return store.Snapshot{Kind: kind, Items: items}, nil
}

// publish redelivers the full collection of one kind to live subscribers.
// Feed delivery is deliberately decoupled from the mutation result: a failed
// reload only costs subscribers one update.
func (s *Store) publish(ctx context.Context, userID string, kind store.Kind) {
	if s.feed == nil {
		return
	}
	snap, err := s.Snapshot(ctx, userID, kind)
	if err != nil {
		return
	}
	s.feed.Publish(userID, snap)
}
