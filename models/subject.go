// models/subject.go

package models

import (
	"errors"
	"fmt"
)

// SubjectColors is the fixed palette a subject's Color field keys into.
// The frontend maps these keys onto its own styling.
var SubjectColors = []string{"blue", "indigo", "purple", "pink", "green", "yellow", "teal", "gray"}

// DefaultSubjectColor is used when a subject carries no color key.
const DefaultSubjectColor = "gray"

// Subject is a course the student tracks grades for. Tasks and classes point
// back at it by Name, not by ID; renaming a subject orphans that linkage for
// existing events, which is the documented compatibility behavior.
type Subject struct {
	ID      string  `json:"id" gorm:"primaryKey;size:64"`
	UserID  string  `json:"-" gorm:"primaryKey;size:64"`
	Name    string  `json:"name" binding:"required"`
	Credits int     `json:"credits"`
	Goal    float64 `json:"goal"`
	Color   string  `json:"color,omitempty" gorm:"size:16"`
}

func (s Subject) GetID() string { return s.ID }

// Validate checks the field invariants before a subject reaches either store.
func (s *Subject) Validate() error {
	if s.Name == "" {
		return errors.New("subject name is required")
	}
	if s.Credits <= 0 {
		return fmt.Errorf("credits must be positive, got %d", s.Credits)
	}
	if s.Goal < 0 || s.Goal > 100 {
		return fmt.Errorf("goal must be 0-100, got %v", s.Goal)
	}
	if s.Color != "" && !validSubjectColor(s.Color) {
		return fmt.Errorf("unknown subject color %q", s.Color)
	}
	return nil
}

func validSubjectColor(key string) bool {
	for _, c := range SubjectColors {
		if c == key {
			return true
		}
	}
	return false
}
