// internal/handlers/export_handler.go

package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/autoaidc6/school-planner/internal/grades"
)

// ExportGradesHandler streams an xlsx grade report: one summary sheet with
// the weighted standing per subject, one sheet with every recorded grade.
func (h *Handlers) ExportGradesHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sess := h.session(c)

	subjects, err := h.svc.Subjects(ctx, sess)
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	gradeList, err := h.svc.Grades(ctx, sess)
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	summaries := grades.Summarize(subjects, gradeList)
	subjectNames := make(map[string]string, len(subjects))
	for _, s := range subjects {
		subjectNames[s.ID] = s.Name
	}

	f := excelize.NewFile()
	summarySheet := "Summary"
	index, _ := f.NewSheet(summarySheet)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	summaryHeaders := []string{"Subject", "Credits", "Goal (%)", "Current Grade (%)"}
	for i, header := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(summarySheet, cell, header)
	}
	for i, s := range summaries {
		row := i + 2
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), s.Name)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), s.Credits)
		f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), s.Goal)
		if s.Graded {
			f.SetCellValue(summarySheet, fmt.Sprintf("D%d", row), s.CurrentGrade)
		} else {
			f.SetCellValue(summarySheet, fmt.Sprintf("D%d", row), "N/A")
		}
	}

	gradeSheet := "Grades"
	f.NewSheet(gradeSheet)
	gradeHeaders := []string{"Subject", "Assessment", "Score", "Total", "Weight", "Percent"}
	for i, header := range gradeHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(gradeSheet, cell, header)
	}
	for i, g := range gradeList {
		row := i + 2
		f.SetCellValue(gradeSheet, fmt.Sprintf("A%d", row), subjectNames[g.SubjectID])
		f.SetCellValue(gradeSheet, fmt.Sprintf("B%d", row), g.Name)
		f.SetCellValue(gradeSheet, fmt.Sprintf("C%d", row), g.Score)
		f.SetCellValue(gradeSheet, fmt.Sprintf("D%d", row), g.Total)
		f.SetCellValue(gradeSheet, fmt.Sprintf("E%d", row), g.Weight)
		if g.Total > 0 {
			f.SetCellValue(gradeSheet, fmt.Sprintf("F%d", row), grades.Round2(g.Score/g.Total*100))
		}
	}

	fileName := fmt.Sprintf("grade_report_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}
