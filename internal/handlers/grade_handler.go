// internal/handlers/grade_handler.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autoaidc6/school-planner/models"
)

func (h *Handlers) ListGradesHandler(c *gin.Context) {
	list, err := h.svc.Grades(c.Request.Context(), h.session(c))
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) SaveGradeHandler(c *gin.Context) {
	var grade models.Grade
	if err := c.ShouldBindJSON(&grade); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}
	if err := h.svc.SaveGrade(c.Request.Context(), h.session(c), grade); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Grade saved"})
}

func (h *Handlers) DeleteGradeHandler(c *gin.Context) {
	if err := h.svc.DeleteGrade(c.Request.Context(), h.session(c), c.Param("id")); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Grade deleted"})
}
