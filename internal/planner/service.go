// internal/planner/service.go

// Package planner routes entity mutations to the right persistence backend.
// A session is in exactly one mode: guest sessions mutate the local
// collection store synchronously, authenticated sessions dispatch to the
// remote store and converge through its snapshot feed. Both tracks expose the
// same save/delete/toggle contract; latency and the convergence path are the
// only observable differences.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/autoaidc6/school-planner/internal/store"
	"github.com/autoaidc6/school-planner/internal/store/local"
	"github.com/autoaidc6/school-planner/internal/store/remote"
	"github.com/autoaidc6/school-planner/models"
)

var (
	// ErrRemoteUnavailable: an authenticated session reached the router while
	// the remote backend is not configured. Guest mode keeps working.
	ErrRemoteUnavailable = errors.New("remote persistence is not configured")
	// ErrNotFound: a targeted operation (toggle, study-plan append) named an
	// id that is not in the current collection.
	ErrNotFound = errors.New("record not found")
	// ErrInvalid wraps record validation failures so callers can tell bad
	// input apart from storage trouble.
	ErrInvalid = errors.New("invalid record")
)

// Session identifies whose data a call operates on and which track it takes.
type Session struct {
	UserID string
	Guest  bool
}

// GuestSession is the synthesized local-only session.
func GuestSession() Session {
	return Session{UserID: models.GuestUserID, Guest: true}
}

// Service is the persistence router.
type Service struct {
	local  *local.Store
	remote *remote.Store // nil when the remote backend is unconfigured
	feed   *store.Feed
	now    func() time.Time
}

// New wires the router. remoteStore may be nil; guest mode needs only the
// local store.
func New(localStore *local.Store, remoteStore *remote.Store, feed *store.Feed) *Service {
	return &Service{local: localStore, remote: remoteStore, feed: feed, now: time.Now}
}

func (s *Service) requireRemote() error {
	if s.remote == nil {
		return ErrRemoteUnavailable
	}
	return nil
}

// replaceOrAppend is the guest-track upsert: replace the record with the same
// id in place, or append when there is none. An update aimed at a missing id
// is therefore never silently dropped.
func replaceOrAppend[T interface{ GetID() string }](list []T, item T) []T {
	for i := range list {
		if list[i].GetID() == item.GetID() {
			list[i] = item
			return list
		}
	}
	return append(list, item)
}

func removeByID[T interface{ GetID() string }](list []T, id string) []T {
	out := list[:0]
	for _, it := range list {
		if it.GetID() != id {
			out = append(out, it)
		}
	}
	return out
}

// --- reads ---

// Tasks returns the session's full task collection. Guest reads seed the
// starter collection when nothing has been stored yet.
func (s *Service) Tasks(ctx context.Context, sess Session) ([]models.Task, error) {
	if sess.Guest {
		return s.localTasks(sess), nil
	}
	if err := s.requireRemote(); err != nil {
		return nil, err
	}
	return s.remote.Tasks(ctx, sess.UserID)
}

func (s *Service) Classes(ctx context.Context, sess Session) ([]models.ClassEvent, error) {
	if sess.Guest {
		return s.localClasses(sess), nil
	}
	if err := s.requireRemote(); err != nil {
		return nil, err
	}
	return s.remote.Classes(ctx, sess.UserID)
}

func (s *Service) Subjects(ctx context.Context, sess Session) ([]models.Subject, error) {
	if sess.Guest {
		return s.localSubjects(sess), nil
	}
	if err := s.requireRemote(); err != nil {
		return nil, err
	}
	return s.remote.Subjects(ctx, sess.UserID)
}

// Grades returns the session's grades, hiding orphans: a grade whose subject
// is gone (a cascade delete that only partially completed) is filtered out on
// read instead of erroring, and disappears for good when its subject does.
func (s *Service) Grades(ctx context.Context, sess Session) ([]models.Grade, error) {
	subjects, err := s.Subjects(ctx, sess)
	if err != nil {
		return nil, err
	}
	var all []models.Grade
	if sess.Guest {
		all = s.localGrades(sess)
	} else {
		if err := s.requireRemote(); err != nil {
			return nil, err
		}
		if all, err = s.remote.Grades(ctx, sess.UserID); err != nil {
			return nil, err
		}
	}

	known := make(map[string]struct{}, len(subjects))
	for _, sub := range subjects {
		known[sub.ID] = struct{}{}
	}
	visible := make([]models.Grade, 0, len(all))
	for _, g := range all {
		if _, ok := known[g.SubjectID]; ok {
			visible = append(visible, g)
		}
	}
	return visible, nil
}

// Snapshots reads all four collections in canonical order, the initial state
// a live subscriber needs before rendering anything.
func (s *Service) Snapshots(ctx context.Context, sess Session) ([]store.Snapshot, error) {
	tasks, err := s.Tasks(ctx, sess)
	if err != nil {
		return nil, err
	}
	classes, err := s.Classes(ctx, sess)
	if err != nil {
		return nil, err
	}
	subjects, err := s.Subjects(ctx, sess)
	if err != nil {
		return nil, err
	}
	gradesList, err := s.Grades(ctx, sess)
	if err != nil {
		return nil, err
	}
	return []store.Snapshot{
		{Kind: store.KindTasks, Items: tasks},
		{Kind: store.KindClasses, Items: classes},
		{Kind: store.KindSubjects, Items: subjects},
		{Kind: store.KindGrades, Items: gradesList},
	}, nil
}

// --- events (tasks and classes through the shared modal path) ---

// SaveEvent stores one calendar item; the explicit kind tag picks the
// variant.
func (s *Service) SaveEvent(ctx context.Context, sess Session, ev models.PlannerEvent) error {
	if err := ev.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch ev.Kind {
	case models.KindTask:
		return s.SaveTask(ctx, sess, *ev.Task)
	case models.KindClass:
		return s.SaveClass(ctx, sess, *ev.Class)
	default:
		return fmt.Errorf("%w: unknown event kind %q", ErrInvalid, ev.Kind)
	}
}

// --- tasks ---

func (s *Service) SaveTask(ctx context.Context, sess Session, t models.Task) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if sess.Guest {
		list := s.localTasks(sess)
		if t.ID == "" {
			t.ID = NewLocalID()
			list = append(list, t)
		} else {
			list = replaceOrAppend(list, t)
		}
		return s.saveLocal(sess, store.KindTasks, list)
	}

	if err := s.requireRemote(); err != nil {
		return err
	}
	if t.ID == "" {
		return s.remote.InsertTask(ctx, sess.UserID, t)
	}
	if ClassifyID(t.ID) == IDClassUpsert {
		return s.remote.UpsertTask(ctx, sess.UserID, t)
	}
	// A long id is store-shaped. If the record is already there this is a
	// plain edit; inserting again would duplicate it, so existence decides.
	current, err := s.remote.Tasks(ctx, sess.UserID)
	if err != nil {
		return err
	}
	for _, existing := range current {
		if existing.ID == t.ID {
			return s.remote.UpsertTask(ctx, sess.UserID, t)
		}
	}
	return s.remote.InsertTask(ctx, sess.UserID, t)
}

func (s *Service) DeleteTask(ctx context.Context, sess Session, id string) error {
	if sess.Guest {
		return s.saveLocal(sess, store.KindTasks, removeByID(s.localTasks(sess), id))
	}
	if err := s.requireRemote(); err != nil {
		return err
	}
	return s.remote.DeleteTask(ctx, sess.UserID, id)
}

// ToggleTask flips a task's completion flag. The whole record is resent on
// the remote track: its update merges provided fields over the stored ones,
// so the known current values ride along with the flipped flag.
func (s *Service) ToggleTask(ctx context.Context, sess Session, id string) error {
	tasks, err := s.Tasks(ctx, sess)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.ID != id {
			continue
		}
		t.Completed = !t.Completed
		if sess.Guest {
			return s.saveLocal(sess, store.KindTasks, replaceOrAppend(tasks, t))
		}
		return s.remote.UpsertTask(ctx, sess.UserID, t)
	}
	return fmt.Errorf("toggle task %s: %w", id, ErrNotFound)
}

// AppendToTaskDescription adds generated text (study plans) to the end of a
// task's description, resending the full record.
func (s *Service) AppendToTaskDescription(ctx context.Context, sess Session, id, text string) error {
	tasks, err := s.Tasks(ctx, sess)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.ID != id {
			continue
		}
		if t.Description == "" {
			t.Description = text
		} else {
			t.Description += "\n\n" + text
		}
		if sess.Guest {
			return s.saveLocal(sess, store.KindTasks, replaceOrAppend(tasks, t))
		}
		return s.remote.UpsertTask(ctx, sess.UserID, t)
	}
	return fmt.Errorf("append to task %s: %w", id, ErrNotFound)
}

// --- classes ---

func (s *Service) SaveClass(ctx context.Context, sess Session, c models.ClassEvent) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if sess.Guest {
		list := s.localClasses(sess)
		if c.ID == "" {
			c.ID = NewLocalID()
			list = append(list, c)
		} else {
			list = replaceOrAppend(list, c)
		}
		return s.saveLocal(sess, store.KindClasses, list)
	}

	if err := s.requireRemote(); err != nil {
		return err
	}
	if c.ID == "" {
		return s.remote.InsertClass(ctx, sess.UserID, c)
	}
	if ClassifyID(c.ID) == IDClassUpsert {
		return s.remote.UpsertClass(ctx, sess.UserID, c)
	}
	current, err := s.remote.Classes(ctx, sess.UserID)
	if err != nil {
		return err
	}
	for _, existing := range current {
		if existing.ID == c.ID {
			return s.remote.UpsertClass(ctx, sess.UserID, c)
		}
	}
	return s.remote.InsertClass(ctx, sess.UserID, c)
}

func (s *Service) DeleteClass(ctx context.Context, sess Session, id string) error {
	if sess.Guest {
		return s.saveLocal(sess, store.KindClasses, removeByID(s.localClasses(sess), id))
	}
	if err := s.requireRemote(); err != nil {
		return err
	}
	return s.remote.DeleteClass(ctx, sess.UserID, id)
}

// --- subjects ---

func (s *Service) SaveSubject(ctx context.Context, sess Session, sub models.Subject) error {
	if err := sub.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if sess.Guest {
		list := s.localSubjects(sess)
		if sub.ID == "" {
			sub.ID = NewLocalID()
			list = append(list, sub)
		} else {
			list = replaceOrAppend(list, sub)
		}
		return s.saveLocal(sess, store.KindSubjects, list)
	}

	if err := s.requireRemote(); err != nil {
		return err
	}
	if sub.ID == "" {
		return s.remote.InsertSubject(ctx, sess.UserID, sub)
	}
	if ClassifyID(sub.ID) == IDClassUpsert {
		return s.remote.UpsertSubject(ctx, sess.UserID, sub)
	}
	current, err := s.remote.Subjects(ctx, sess.UserID)
	if err != nil {
		return err
	}
	for _, existing := range current {
		if existing.ID == sub.ID {
			return s.remote.UpsertSubject(ctx, sess.UserID, sub)
		}
	}
	return s.remote.InsertSubject(ctx, sess.UserID, sub)
}

// DeleteSubject removes the subject and cascades to every grade that
// references it, each as an independent deletion. A grade deletion that fails
// after the subject is gone leaves an orphan, which stays hidden on read and
// is retried the next time the cascade runs.
func (s *Service) DeleteSubject(ctx context.Context, sess Session, id string) error {
	if sess.Guest {
		if err := s.saveLocal(sess, store.KindSubjects, removeByID(s.localSubjects(sess), id)); err != nil {
			return err
		}
		gradesList := s.localGrades(sess)
		kept := gradesList[:0]
		for _, g := range gradesList {
			if g.SubjectID != id {
				kept = append(kept, g)
			}
		}
		return s.saveLocal(sess, store.KindGrades, kept)
	}

	if err := s.requireRemote(); err != nil {
		return err
	}
	if err := s.remote.DeleteSubject(ctx, sess.UserID, id); err != nil {
		return err
	}
	owned, err := s.remote.Grades(ctx, sess.UserID)
	if err != nil {
		return err
	}
	for _, g := range owned {
		if g.SubjectID != id {
			continue
		}
		if err := s.remote.DeleteGrade(ctx, sess.UserID, g.ID); err != nil {
			// Not transactional: keep going, the orphan is hidden on read.
			slog.Warn("cascade delete left an orphaned grade", "subject_id", id, "grade_id", g.ID, "error", err)
		}
	}
	return nil
}

// --- grades ---

func (s *Service) SaveGrade(ctx context.Context, sess Session, g models.Grade) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if sess.Guest {
		list := s.localGrades(sess)
		if g.ID == "" {
			g.ID = NewLocalID()
			list = append(list, g)
		} else {
			list = replaceOrAppend(list, g)
		}
		return s.saveLocal(sess, store.KindGrades, list)
	}

	if err := s.requireRemote(); err != nil {
		return err
	}
	if g.ID == "" {
		return s.remote.InsertGrade(ctx, sess.UserID, g)
	}
	if ClassifyID(g.ID) == IDClassUpsert {
		return s.remote.UpsertGrade(ctx, sess.UserID, g)
	}
	current, err := s.remote.Grades(ctx, sess.UserID)
	if err != nil {
		return err
	}
	for _, existing := range current {
		if existing.ID == g.ID {
			return s.remote.UpsertGrade(ctx, sess.UserID, g)
		}
	}
	return s.remote.InsertGrade(ctx, sess.UserID, g)
}

func (s *Service) DeleteGrade(ctx context.Context, sess Session, id string) error {
	if sess.Guest {
		return s.saveLocal(sess, store.KindGrades, removeByID(s.localGrades(sess), id))
	}
	if err := s.requireRemote(); err != nil {
		return err
	}
	return s.remote.DeleteGrade(ctx, sess.UserID, id)
}

// --- guest-track plumbing ---

func (s *Service) localTasks(sess Session) []models.Task {
	list := models.SeedTasks(s.now())
	s.local.Load(store.CollectionKey(store.KindTasks, sess.UserID), &list)
	return list
}

func (s *Service) localClasses(sess Session) []models.ClassEvent {
	list := models.SeedClasses()
	s.local.Load(store.CollectionKey(store.KindClasses, sess.UserID), &list)
	return list
}

func (s *Service) localSubjects(sess Session) []models.Subject {
	list := models.SeedSubjects()
	s.local.Load(store.CollectionKey(store.KindSubjects, sess.UserID), &list)
	return list
}

func (s *Service) localGrades(sess Session) []models.Grade {
	list := models.SeedGrades()
	s.local.Load(store.CollectionKey(store.KindGrades, sess.UserID), &list)
	return list
}

// saveLocal persists a whole guest collection and republishes it so live
// subscribers see guest mutations the same way they see remote ones.
func (s *Service) saveLocal(sess Session, kind store.Kind, items any) error {
	if err := s.local.Save(store.CollectionKey(kind, sess.UserID), items); err != nil {
		return err
	}
	if s.feed != nil {
		s.feed.Publish(sess.UserID, store.Snapshot{Kind: kind, Items: items})
	}
	return nil
}
