// internal/notify/reminder.go

// Package notify polls the planner collections and fires reminders when an
// event's reminder time falls inside the current check window.
package notify

import (
	"fmt"
	"time"

	"github.com/autoaidc6/school-planner/models"
)

// fireWindow is how far in the past a reminder time may lie and still fire.
// The poll runs more often than this, so a reminder is caught exactly once
// by the dedupe set and never silently skipped between polls.
const fireWindow = time.Minute

// Reminder is one due notification, addressed to the event it came from.
type Reminder struct {
	EventID string    `json:"eventId"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	At      time.Time `json:"at"`
}

// DedupeKey identifies a reminder occurrence. Weekly classes produce a new
// key every week because the occurrence time moves.
func (r Reminder) DedupeKey() string {
	return fmt.Sprintf("%s-%d", r.EventID, r.At.UnixMilli())
}

// TaskReminderTime computes when a task's reminder fires. ok is false for
// completed tasks and for tasks without a reminder.
func TaskReminderTime(t models.Task) (time.Time, bool) {
	if t.Completed {
		return time.Time{}, false
	}
	offset, ok := t.Reminder.Offset()
	if !ok {
		return time.Time{}, false
	}
	return t.DueDate.Add(-offset), true
}

// ClassReminderTime computes when a class's reminder next fires, relative to
// its next weekly occurrence. A class scheduled for today whose start time
// has already passed rolls over to next week.
func ClassReminderTime(c models.ClassEvent, now time.Time) (time.Time, bool) {
	offset, ok := c.Reminder.Offset()
	if !ok {
		return time.Time{}, false
	}
	start, err := nextClassStart(c, now)
	if err != nil {
		return time.Time{}, false
	}
	return start.Add(-offset), true
}

// nextClassStart resolves the next wall-clock occurrence of a weekly class
// in now's location.
func nextClassStart(c models.ClassEvent, now time.Time) (time.Time, error) {
	clock, err := time.Parse("15:04", c.StartTime)
	if err != nil {
		return time.Time{}, err
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())
	daysUntil := (c.Day - int(now.Weekday()) + 7) % 7
	if daysUntil == 0 && start.Before(now) {
		return start.AddDate(0, 0, 7), nil
	}
	return start.AddDate(0, 0, daysUntil), nil
}

// due reports whether a reminder time falls inside the trailing fire window:
// already reached, but by less than fireWindow.
func due(reminderAt, now time.Time) bool {
	if reminderAt.After(now) {
		return false
	}
	return now.Sub(reminderAt) < fireWindow
}
