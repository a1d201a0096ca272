// internal/handlers/subject_handler.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autoaidc6/school-planner/internal/grades"
	"github.com/autoaidc6/school-planner/models"
)

func (h *Handlers) ListSubjectsHandler(c *gin.Context) {
	subjects, err := h.svc.Subjects(c.Request.Context(), h.session(c))
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, subjects)
}

func (h *Handlers) SaveSubjectHandler(c *gin.Context) {
	var subject models.Subject
	if err := c.ShouldBindJSON(&subject); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}
	if err := h.svc.SaveSubject(c.Request.Context(), h.session(c), subject); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subject saved"})
}

// DeleteSubjectHandler removes the subject and every grade filed under it.
func (h *Handlers) DeleteSubjectHandler(c *gin.Context) {
	if err := h.svc.DeleteSubject(c.Request.Context(), h.session(c), c.Param("id")); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subject and its grades deleted"})
}

// GradeSummaryHandler reports the weighted standing per subject for the
// dashboard cards.
func (h *Handlers) GradeSummaryHandler(c *gin.Context) {
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

	c.JSON(http.StatusOK, grades.Summarize(subjects, gradeList))
}
