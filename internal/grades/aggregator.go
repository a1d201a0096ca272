// internal/grades/aggregator.go

// Package grades computes weighted course averages. Everything here is a pure
// function of its inputs; results are recomputed on every read because grades
// change far more often than they are displayed.
package grades

import (
	"math"

	"github.com/autoaidc6/school-planner/models"
)

// CurrentGrade returns the weighted percentage for one subject.
//
// Each grade contributes its score ratio scaled by its declared weight, and
// the sum is normalized by the total weight, so weights do not need to add up
// to 100. ok is false when the subject has no grades, or when every weight is
// zero and there is nothing to normalize by.
//
// Grade.Total is validated to be positive before a record is ever persisted,
// so the ratio below cannot divide by zero.
func CurrentGrade(subjectID string, all []models.Grade) (pct float64, ok bool) {
	var weightedSum, totalWeight float64
	matched := false
	for _, g := range all {
		if g.SubjectID != subjectID {
			continue
		}
		matched = true
		weightedSum += (g.Score / g.Total) * g.Weight
		totalWeight += g.Weight
	}
	if !matched || totalWeight == 0 {
		return 0, false
	}
	return (weightedSum / totalWeight) * 100, true
}

// Round2 rounds a percentage to the two decimals the UI displays.
func Round2(pct float64) float64 {
	return math.Round(pct*100) / 100
}

// SubjectSummary pairs a subject with its computed standing for the chart
// endpoint and the spreadsheet export.
type SubjectSummary struct {
	SubjectID    string  `json:"subjectId"`
	Name         string  `json:"name"`
	Credits      int     `json:"credits"`
	Goal         float64 `json:"goal"`
	Color        string  `json:"color"`
	CurrentGrade float64 `json:"currentGrade"`
	// Graded is false while the subject has no weighted grades; CurrentGrade
	// is meaningless then and the UI shows N/A instead of zero.
	Graded bool `json:"graded"`
}

// Summarize computes the standing of every subject over the current grade
// collection, preserving subject order.
func Summarize(subjects []models.Subject, all []models.Grade) []SubjectSummary {
	out := make([]SubjectSummary, 0, len(subjects))
	for _, s := range subjects {
		color := s.Color
		if color == "" {
			color = models.DefaultSubjectColor
		}
		sum := SubjectSummary{
			SubjectID: s.ID,
			Name:      s.Name,
			Credits:   s.Credits,
			Goal:      s.Goal,
			Color:     color,
		}
		if pct, ok := CurrentGrade(s.ID, all); ok {
			sum.CurrentGrade = Round2(pct)
			sum.Graded = true
		}
		out = append(out, sum)
	}
	return out
}
