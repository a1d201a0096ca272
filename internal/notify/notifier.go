// internal/notify/notifier.go

package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/autoaidc6/school-planner/config"
	"github.com/autoaidc6/school-planner/internal/planner"
	"github.com/autoaidc6/school-planner/internal/store"
	"github.com/autoaidc6/school-planner/internal/store/local"
	"github.com/autoaidc6/school-planner/models"
)

// reminderKind tags reminder deliveries on the live feed so clients can tell
// them apart from collection snapshots.
const reminderKind = store.Kind("reminders")

const pollInterval = 30 * time.Second

// Alerter delivers one due reminder to one user.
type Alerter func(userID string, r Reminder)

// Notifier periodically scans the planner collections of every user with a
// live feed subscription and fires the reminders that have come due. Scanning
// only connected users mirrors how reminders only ever reach someone who is
// looking; it also bounds the scan.
type Notifier struct {
	svc   *planner.Service
	feed  *store.Feed
	local *local.Store
	alert Alerter
	cron  *cron.Cron
	now   func() time.Time
}

func New(svc *planner.Service, feed *store.Feed, localStore *local.Store) *Notifier {
	n := &Notifier{
		svc:   svc,
		feed:  feed,
		local: localStore,
		cron:  cron.New(cron.WithSeconds()),
		now:   time.Now,
	}
	n.alert = n.deliver
	return n
}

// SetAlerter swaps the delivery hook.
func (n *Notifier) SetAlerter(a Alerter) { n.alert = a }

// Start schedules the poll and runs it until Stop.
func (n *Notifier) Start() error {
	spec := fmt.Sprintf("@every %ds", int(pollInterval.Seconds()))
	if _, err := n.cron.AddFunc(spec, n.Poll); err != nil {
		return err
	}
	n.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running poll to finish.
func (n *Notifier) Stop() {
	ctx := n.cron.Stop()
	<-ctx.Done()
}

// Poll runs one scan over every connected user.
func (n *Notifier) Poll() {
	ctx, cancel := context.WithTimeout(context.Background(), pollInterval)
	defer cancel()

	for _, userID := range n.feed.ActiveUsers() {
		n.pollUser(ctx, userID)
	}
}

func (n *Notifier) pollUser(ctx context.Context, userID string) {
	sess := planner.Session{UserID: userID, Guest: userID == models.GuestUserID}
	now := n.now()

	tasks, err := n.svc.Tasks(ctx, sess)
	if err != nil {
		slog.Warn("Reminder scan could not load tasks", "user_id", userID, "error", err)
		return
	}
	for _, t := range tasks {
		if at, ok := TaskReminderTime(t); ok && due(at, now) {
			n.fire(userID, Reminder{
				EventID: t.ID,
				Title:   "Reminder: " + t.Title,
				Body:    "This is due now.",
				At:      at,
			})
		}
	}

	classes, err := n.svc.Classes(ctx, sess)
	if err != nil {
		slog.Warn("Reminder scan could not load classes", "user_id", userID, "error", err)
		return
	}
	for _, c := range classes {
		if at, ok := ClassReminderTime(c, now); ok && due(at, now) {
			n.fire(userID, Reminder{
				EventID: c.ID,
				Title:   fmt.Sprintf("Reminder: %s Class", c.Subject),
				Body:    fmt.Sprintf("Starts at %s.", c.StartTime),
				At:      at,
			})
		}
	}
}

func (n *Notifier) fire(userID string, r Reminder) {
	key := r.DedupeKey()
	if n.alreadySent(userID, key) {
		return
	}
	n.markSent(userID, key)
	n.alert(userID, r)
}

// deliver is the default Alerter: a feed message plus a log line.
func (n *Notifier) deliver(userID string, r Reminder) {
	slog.Info("Reminder fired", "user_id", userID, "event_id", r.EventID, "title", r.Title)
	if n.feed != nil {
		n.feed.Publish(userID, store.Snapshot{Kind: reminderKind, Items: []Reminder{r}})
	}
}

func sentSetKey(userID string) string {
	return "sent-notifications:" + userID
}

func (n *Notifier) alreadySent(userID, key string) bool {
	if config.RDB != nil {
		sent, err := config.RDB.SIsMember(config.Ctx, sentSetKey(userID), key).Result()
		if err == nil {
			return sent
		}
		slog.Warn("Redis SISMEMBER failed, falling back to local store", "error", err)
	}
	var sent []string
	n.local.Load(sentSetKey(userID), &sent)
	for _, s := range sent {
		if s == key {
			return true
		}
	}
	return false
}

func (n *Notifier) markSent(userID, key string) {
	if config.RDB != nil {
		err := config.RDB.SAdd(config.Ctx, sentSetKey(userID), key).Err()
		if err == nil {
			return
		}
		slog.Warn("Redis SADD failed, falling back to local store", "error", err)
	}
	var sent []string
	n.local.Load(sentSetKey(userID), &sent)
	sent = append(sent, key)
	if err := n.local.Save(sentSetKey(userID), sent); err != nil {
		slog.Warn("Could not persist sent-notification key", "error", err)
	}
}
