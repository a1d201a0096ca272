// models/grade.go

package models

import (
	"errors"
	"fmt"
)

// Grade is one scored assignment inside a subject. The subject exclusively
// owns its grades: deleting the subject cascades to them.
//
// Total must be positive; that is enforced here at the boundary so the
// weighted-average math never has to guard a division by zero.
type Grade struct {
	ID        string  `json:"id" gorm:"primaryKey;size:64"`
	UserID    string  `json:"-" gorm:"primaryKey;size:64"`
	SubjectID string  `json:"subjectId" binding:"required" gorm:"index;size:64"`
	Name      string  `json:"name" binding:"required"`
	Score     float64 `json:"score"`
	Total     float64 `json:"total"`
	Weight    float64 `json:"weight"`
}

func (g Grade) GetID() string { return g.ID }

// Validate checks the field invariants before a grade reaches either store.
func (g *Grade) Validate() error {
	if g.SubjectID == "" {
		return errors.New("grade subjectId is required")
	}
	if g.Name == "" {
		return errors.New("grade name is required")
	}
	if g.Total <= 0 {
		return fmt.Errorf("total must be > 0, got %v", g.Total)
	}
	if g.Weight < 0 {
		return fmt.Errorf("weight must be >= 0, got %v", g.Weight)
	}
	return nil
}
