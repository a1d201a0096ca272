package grades

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoaidc6/school-planner/models"
)

func TestCurrentGradeWeightedAverage(t *testing.T) {
	all := []models.Grade{
		{ID: "g1", SubjectID: "s1", Name: "Homework 1", Score: 95, Total: 100, Weight: 10},
		{ID: "g2", SubjectID: "s1", Name: "Midterm", Score: 85, Total: 100, Weight: 30},
		{ID: "g3", SubjectID: "s2", Name: "Lab", Score: 50, Total: 100, Weight: 100},
	}

	pct, ok := CurrentGrade("s1", all)
	require.True(t, ok)
	// ((0.95*10 + 0.85*30) / 40) * 100
	assert.InDelta(t, 87.5, pct, 1e-9)
	assert.Equal(t, 87.5, Round2(pct))
}

func TestCurrentGradeNormalizesByTotalWeight(t *testing.T) {
	// Weights sum to 60, not 100; the formula normalizes regardless.
	all := []models.Grade{
		{SubjectID: "s1", Score: 80, Total: 100, Weight: 20},
		{SubjectID: "s1", Score: 60, Total: 100, Weight: 40},
	}
	pct, ok := CurrentGrade("s1", all)
	require.True(t, ok)
	assert.InDelta(t, (0.8*20+0.6*40)/60*100, pct, 1e-9)
}

func TestCurrentGradeUsesScoreRatioNotRawScore(t *testing.T) {
	all := []models.Grade{
		{SubjectID: "s1", Score: 18, Total: 20, Weight: 50},
	}
	pct, ok := CurrentGrade("s1", all)
	require.True(t, ok)
	assert.InDelta(t, 90, pct, 1e-9)
}

func TestCurrentGradeEmptySet(t *testing.T) {
	_, ok := CurrentGrade("s1", nil)
	assert.False(t, ok)

	// Grades exist, none for this subject.
	all := []models.Grade{{SubjectID: "other", Score: 10, Total: 10, Weight: 10}}
	_, ok = CurrentGrade("s1", all)
	assert.False(t, ok)
}

func TestCurrentGradeZeroTotalWeight(t *testing.T) {
	all := []models.Grade{
		{SubjectID: "s1", Score: 95, Total: 100, Weight: 0},
		{SubjectID: "s1", Score: 40, Total: 100, Weight: 0},
	}
	_, ok := CurrentGrade("s1", all)
	assert.False(t, ok, "all-zero weights must report not-available, not 0 or NaN")
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 87.5, Round2(87.499999999))
	assert.Equal(t, 66.67, Round2(66.666666))
	assert.Equal(t, 100.0, Round2(100))
}

func TestSummarize(t *testing.T) {
	subjects := []models.Subject{
		{ID: "s1", Name: "Mathematics", Credits: 4, Goal: 90, Color: "blue"},
		{ID: "s2", Name: "Physics", Credits: 4, Goal: 85},
	}
	all := []models.Grade{
		{SubjectID: "s1", Score: 95, Total: 100, Weight: 10},
		{SubjectID: "s1", Score: 85, Total: 100, Weight: 30},
	}

	got := Summarize(subjects, all)
	require.Len(t, got, 2)

	assert.Equal(t, "Mathematics", got[0].Name)
	assert.True(t, got[0].Graded)
	assert.Equal(t, 87.5, got[0].CurrentGrade)
	assert.Equal(t, "blue", got[0].Color)

	assert.False(t, got[1].Graded, "ungraded subject stays N/A")
	assert.Equal(t, models.DefaultSubjectColor, got[1].Color)
}
