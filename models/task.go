// models/task.go

package models

import (
	"errors"
	"fmt"
	"time"
)

// TaskCategory classifies a task in the agenda and calendar views.
type TaskCategory string

const (
	CategoryHomework TaskCategory = "Homework"
	CategoryStudy    TaskCategory = "Study"
	CategoryExam     TaskCategory = "Exam"
	CategoryProject  TaskCategory = "Project"
	CategoryPersonal TaskCategory = "Personal"
	CategoryOther    TaskCategory = "Other"
)

// Valid reports whether c is one of the known categories.
func (c TaskCategory) Valid() bool {
	switch c {
	case CategoryHomework, CategoryStudy, CategoryExam, CategoryProject, CategoryPersonal, CategoryOther:
		return true
	}
	return false
}

// RecurrenceOption is declared on tasks but a recurring task is kept as a
// single occurrence; nothing expands it into future rows.
type RecurrenceOption string

const (
	RecurNone    RecurrenceOption = "None"
	RecurDaily   RecurrenceOption = "Daily"
	RecurWeekly  RecurrenceOption = "Weekly"
	RecurMonthly RecurrenceOption = "Monthly"
)

// Valid reports whether r is a known recurrence option. The empty string is
// accepted and means RecurNone.
func (r RecurrenceOption) Valid() bool {
	switch r {
	case "", RecurNone, RecurDaily, RecurWeekly, RecurMonthly:
		return true
	}
	return false
}

// Task is a single item in the planner: homework, an exam, a study block.
type Task struct {
	ID          string           `json:"id" gorm:"primaryKey;size:64"`
	UserID      string           `json:"-" gorm:"primaryKey;size:64"`
	Title       string           `json:"title" binding:"required"`
	Subject     string           `json:"subject"`
	Category    TaskCategory     `json:"category" gorm:"size:32"`
	DueDate     time.Time        `json:"dueDate"`
	Completed   bool             `json:"completed"`
	Description string           `json:"description,omitempty"`
	Reminder    ReminderOption   `json:"reminder,omitempty" gorm:"size:32"`
	StartTime   string           `json:"startTime,omitempty" gorm:"size:5"`
	EndTime     string           `json:"endTime,omitempty" gorm:"size:5"`
	Recurrence  RecurrenceOption `json:"recurrence,omitempty" gorm:"size:16"`
}

func (t Task) GetID() string { return t.ID }

// Validate checks the field invariants before a task reaches either store.
func (t *Task) Validate() error {
	if t.Title == "" {
		return errors.New("task title is required")
	}
	if t.Category != "" && !t.Category.Valid() {
		return fmt.Errorf("unknown task category %q", t.Category)
	}
	if !t.Reminder.Valid() {
		return fmt.Errorf("unknown reminder option %q", t.Reminder)
	}
	if !t.Recurrence.Valid() {
		return fmt.Errorf("unknown recurrence option %q", t.Recurrence)
	}
	if t.StartTime != "" || t.EndTime != "" {
		if err := validateTimeWindow(t.StartTime, t.EndTime); err != nil {
			return err
		}
	}
	return nil
}

// validateTimeWindow enforces the timed-event invariant: both bounds present,
// "HH:MM" shaped, and end not before start. "HH:MM" strings compare correctly
// as plain strings.
func validateTimeWindow(start, end string) error {
	if start == "" || end == "" {
		return errors.New("startTime and endTime must both be set")
	}
	if !validClockTime(start) || !validClockTime(end) {
		return fmt.Errorf("times must be HH:MM, got %q and %q", start, end)
	}
	if end < start {
		return fmt.Errorf("endTime %s is before startTime %s", end, start)
	}
	return nil
}

func validClockTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
