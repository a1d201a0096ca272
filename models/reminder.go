// models/reminder.go

package models

import "time"

// ReminderOption expresses how long before an event its reminder fires.
type ReminderOption string

const (
	ReminderNone       ReminderOption = "None"
	ReminderAtTime     ReminderOption = "At time of event"
	ReminderFiveMin    ReminderOption = "5 minutes before"
	ReminderFifteenMin ReminderOption = "15 minutes before"
	ReminderOneHour    ReminderOption = "1 hour before"
	ReminderOneDay     ReminderOption = "1 day before"
)

// Valid reports whether r is a known option. The empty string means no
// reminder, same as ReminderNone.
func (r ReminderOption) Valid() bool {
	_, ok := reminderOffsets[r]
	return ok || r == "" || r == ReminderNone
}

var reminderOffsets = map[ReminderOption]time.Duration{
	ReminderAtTime:     0,
	ReminderFiveMin:    5 * time.Minute,
	ReminderFifteenMin: 15 * time.Minute,
	ReminderOneHour:    time.Hour,
	ReminderOneDay:     24 * time.Hour,
}

// Offset returns how far ahead of the event the reminder fires. ok is false
// when no reminder is configured.
func (r ReminderOption) Offset() (time.Duration, bool) {
	d, ok := reminderOffsets[r]
	return d, ok
}
