// models/class_event.go

package models

import (
	"errors"
	"fmt"
)

// ClassEvent is a recurring weekly timetable slot, not a dated event.
// Day follows time.Weekday numbering: 0 is Sunday.
type ClassEvent struct {
	ID          string         `json:"id" gorm:"primaryKey;size:64"`
	UserID      string         `json:"-" gorm:"primaryKey;size:64"`
	Subject     string         `json:"subject" binding:"required"`
	Day         int            `json:"day"`
	StartTime   string         `json:"startTime" binding:"required"`
	EndTime     string         `json:"endTime" binding:"required"`
	Description string         `json:"description,omitempty"`
	Reminder    ReminderOption `json:"reminder,omitempty" gorm:"size:32"`
}

func (c ClassEvent) GetID() string { return c.ID }

// Validate checks the field invariants before a class reaches either store.
func (c *ClassEvent) Validate() error {
	if c.Subject == "" {
		return errors.New("class subject is required")
	}
	if c.Day < 0 || c.Day > 6 {
		return fmt.Errorf("day must be 0-6 (0 = Sunday), got %d", c.Day)
	}
	if !c.Reminder.Valid() {
		return fmt.Errorf("unknown reminder option %q", c.Reminder)
	}
	return validateTimeWindow(c.StartTime, c.EndTime)
}
